package ports

import (
	"context"
	"time"
)

// Tipos de evento de catálogo.
const (
	EventProductCreated         = "product.created"
	EventProductQuantityUpdated = "product.quantity_updated"
)

// ProductEvent es el payload publicado cuando cambia el catálogo.
type ProductEvent struct {
	Type       string    `json:"type"`
	ProductID  string    `json:"product_id"`
	SKU        string    `json:"sku"`
	Quantity   int64     `json:"quantity"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ProductEventPublisher define el puerto de salida para eventos de catálogo.
// La publicación es best effort: el caso de uso registra el error pero no falla.
type ProductEventPublisher interface {
	Publish(ctx context.Context, event ProductEvent) error
}

// NopPublisher descarta los eventos (cuando no hay brokers configurados).
type NopPublisher struct{}

// Publish no hace nada.
func (NopPublisher) Publish(context.Context, ProductEvent) error { return nil }
