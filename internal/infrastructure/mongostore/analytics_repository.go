package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/stockroom-api/internal/domain/entity"
	"github.com/jhoicas/stockroom-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura sobre la colección products.
type AnalyticsRepo struct {
	coll *mongo.Collection
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(db *mongo.Database) *AnalyticsRepo {
	return &AnalyticsRepo{coll: db.Collection(productsCollection)}
}

// TopByQuantity ordena por cantidad descendente; el orden de inserción desempata.
func (r *AnalyticsRepo) TopByQuantity(ctx context.Context, limit int) ([]*entity.Product, error) {
	opts := options.Find().
		SetSort(bson.D{
			{Key: "quantity", Value: -1},
			{Key: "created_at", Value: 1},
			{Key: "seq", Value: 1},
		}).
		SetLimit(int64(limit))
	return findProducts(ctx, r.coll, opts)
}
