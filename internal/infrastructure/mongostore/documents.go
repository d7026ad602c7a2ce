package mongostore

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jhoicas/stockroom-api/internal/domain/entity"
)

type userDoc struct {
	ID           string             `bson:"_id"`
	Seq          primitive.ObjectID `bson:"seq"`
	Username     string             `bson:"username"`
	PasswordHash string             `bson:"password_hash"`
	Role         string             `bson:"role"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

type productDoc struct {
	ID          string               `bson:"_id"`
	Seq         primitive.ObjectID   `bson:"seq"`
	Name        string               `bson:"name"`
	Type        string               `bson:"type"`
	SKU         string               `bson:"sku"`
	Description string               `bson:"description,omitempty"`
	ImageURL    string               `bson:"image_url,omitempty"`
	Quantity    int64                `bson:"quantity"`
	Price       primitive.Decimal128 `bson:"price"`
	CreatedAt   time.Time            `bson:"created_at"`
	UpdatedAt   time.Time            `bson:"updated_at"`
}

func newUserDoc(u *entity.User) userDoc {
	return userDoc{
		ID:           u.ID,
		Seq:          primitive.NewObjectID(),
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (d userDoc) entity() *entity.User {
	return &entity.User{
		ID:           d.ID,
		Username:     d.Username,
		PasswordHash: d.PasswordHash,
		Role:         d.Role,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func newProductDoc(p *entity.Product) (productDoc, error) {
	price, err := primitive.ParseDecimal128(p.Price.String())
	if err != nil {
		return productDoc{}, fmt.Errorf("price a Decimal128: %w", err)
	}
	return productDoc{
		ID:          p.ID,
		Seq:         primitive.NewObjectID(),
		Name:        p.Name,
		Type:        p.Type,
		SKU:         p.SKU,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		Quantity:    p.Quantity,
		Price:       price,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}, nil
}

func (d productDoc) entity() (*entity.Product, error) {
	price, err := decimal.NewFromString(d.Price.String())
	if err != nil {
		return nil, fmt.Errorf("price desde Decimal128: %w", err)
	}
	return &entity.Product{
		ID:          d.ID,
		Name:        d.Name,
		Type:        d.Type,
		SKU:         d.SKU,
		Description: d.Description,
		ImageURL:    d.ImageURL,
		Quantity:    d.Quantity,
		Price:       price,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}, nil
}
