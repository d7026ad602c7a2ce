package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
// Quantity solo cambia vía UpdateQuantity; los productos no se eliminan.
type Product struct {
	ID          string
	Name        string
	Type        string
	SKU         string // único en todo el catálogo
	Description string
	ImageURL    string
	Quantity    int64
	Price       decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
