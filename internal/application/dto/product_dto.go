package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
// Quantity y Price son punteros para distinguir "ausente" de cero.
type CreateProductRequest struct {
	Name        string           `json:"name"`
	Type        string           `json:"type"`
	SKU         string           `json:"sku"`
	Description string           `json:"description"`
	ImageURL    string           `json:"image_url"`
	Quantity    *json.Number     `json:"quantity"`
	Price       *decimal.Decimal `json:"price"`
}

// UpdateQuantityRequest entrada cruda: quantity se valida en el caso de uso
// para rechazar strings, booleanos y null antes de tocar el store.
type UpdateQuantityRequest struct {
	Quantity json.RawMessage `json:"quantity"`
}

// CreateProductResponse salida de la creación.
type CreateProductResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Type        string          `json:"type"`
	SKU         string          `json:"sku"`
	Description string          `json:"description,omitempty"`
	ImageURL    string          `json:"image_url,omitempty"`
	Quantity    int64           `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// UpdateQuantityResponse salida de la actualización de cantidad.
type UpdateQuantityResponse struct {
	Message string          `json:"message"`
	Product ProductResponse `json:"product"`
}

// ProductPageResponse sobre de paginación de productos.
type ProductPageResponse struct {
	CurrentPage   int               `json:"currentPage"`
	TotalPages    int64             `json:"totalPages"`
	TotalProducts int64             `json:"totalProducts"`
	Products      []ProductResponse `json:"products"`
}
