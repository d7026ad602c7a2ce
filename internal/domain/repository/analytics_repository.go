package repository

import (
	"context"

	"github.com/jhoicas/stockroom-api/internal/domain/entity"
)

// AnalyticsRepository define las consultas de lectura para analítica del catálogo.
// Las implementaciones son read-only (no modifican datos).
type AnalyticsRepository interface {
	// TopByQuantity devuelve hasta limit productos ordenados por cantidad descendente;
	// los empates conservan el orden de inserción.
	TopByQuantity(ctx context.Context, limit int) ([]*entity.Product, error)
}
