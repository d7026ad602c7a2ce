package memory

import (
	"context"
	"time"

	"github.com/jhoicas/stockroom-api/internal/domain"
	"github.com/jhoicas/stockroom-api/internal/domain/entity"
	"github.com/jhoicas/stockroom-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación en memoria de ProductRepository.
type ProductRepo struct {
	db *DB
}

// NewProductRepository construye el repositorio sobre db.
func NewProductRepository(db *DB) *ProductRepo {
	return &ProductRepo{db: db}
}

// Create persiste el producto; SKU duplicado -> domain.ErrConflict.
func (r *ProductRepo) Create(_ context.Context, product *entity.Product) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, p := range r.db.products {
		if p.SKU == product.SKU || p.ID == product.ID {
			return domain.ErrConflict
		}
	}
	r.db.products = append(r.db.products, cloneProduct(product))
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	for _, p := range r.db.products {
		if p.ID == id {
			return cloneProduct(p), nil
		}
	}
	return nil, nil
}

// GetBySKU obtiene un producto por SKU.
func (r *ProductRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	for _, p := range r.db.products {
		if p.SKU == sku {
			return cloneProduct(p), nil
		}
	}
	return nil, nil
}

// UpdateQuantity reemplaza la cantidad y devuelve el registro actualizado.
func (r *ProductRepo) UpdateQuantity(_ context.Context, id string, quantity int64) (*entity.Product, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, p := range r.db.products {
		if p.ID == id {
			p.Quantity = quantity
			p.UpdatedAt = time.Now().UTC()
			return cloneProduct(p), nil
		}
	}
	return nil, nil
}

// List devuelve una ventana [offset, offset+limit) en orden de inserción.
func (r *ProductRepo) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	if offset < 0 || offset >= len(r.db.products) || limit <= 0 {
		return []*entity.Product{}, nil
	}
	end := offset + limit
	if end > len(r.db.products) || end < offset {
		end = len(r.db.products)
	}
	out := make([]*entity.Product, 0, end-offset)
	for _, p := range r.db.products[offset:end] {
		out = append(out, cloneProduct(p))
	}
	return out, nil
}

// Count devuelve el total de productos.
func (r *ProductRepo) Count(_ context.Context) (int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return int64(len(r.db.products)), nil
}
