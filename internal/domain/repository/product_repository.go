package repository

import (
	"context"

	"github.com/jhoicas/stockroom-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// El orden "nativo" del store es el de inserción; List y TopByQuantity lo respetan.
type ProductRepository interface {
	// Create persiste el producto; devuelve domain.ErrConflict si el SKU ya existe.
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	// UpdateQuantity reemplaza la cantidad y devuelve el registro actualizado,
	// o (nil, nil) si el id no existe.
	UpdateQuantity(ctx context.Context, id string, quantity int64) (*entity.Product, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
	Count(ctx context.Context) (int64, error)
}
