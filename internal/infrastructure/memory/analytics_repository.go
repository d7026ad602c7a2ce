package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/stockroom-api/internal/domain/entity"
	"github.com/jhoicas/stockroom-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura sobre el store en memoria.
type AnalyticsRepo struct {
	db *DB
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(db *DB) *AnalyticsRepo {
	return &AnalyticsRepo{db: db}
}

// TopByQuantity ordena por cantidad descendente con sort estable (empates por inserción).
func (r *AnalyticsRepo) TopByQuantity(_ context.Context, limit int) ([]*entity.Product, error) {
	r.db.mu.RLock()
	list := make([]*entity.Product, 0, len(r.db.products))
	for _, p := range r.db.products {
		list = append(list, cloneProduct(p))
	}
	r.db.mu.RUnlock()

	sort.SliceStable(list, func(i, j int) bool { return list[i].Quantity > list[j].Quantity })
	if limit >= 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}
