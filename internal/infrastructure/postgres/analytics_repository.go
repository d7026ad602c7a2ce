package postgres

import (
	"context"

	"github.com/jhoicas/stockroom-api/internal/domain/entity"
	"github.com/jhoicas/stockroom-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para analítica del catálogo.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// TopByQuantity usa el índice (quantity DESC, seq); seq desempata por orden de inserción.
func (r *AnalyticsRepo) TopByQuantity(ctx context.Context, limit int) ([]*entity.Product, error) {
	const query = `
	SELECT ` + productColumns + `
	FROM products
	ORDER BY quantity DESC, seq ASC
	LIMIT $1`
	return queryProducts(ctx, r.q, query, limit)
}
