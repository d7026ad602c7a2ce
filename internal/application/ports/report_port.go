package ports

import (
	"context"
	"time"

	"github.com/jhoicas/stockroom-api/internal/domain/entity"
)

// TopProductsReportGenerator genera la representación imprimible del ranking de productos.
type TopProductsReportGenerator interface {
	GenerateTopProductsPDF(ctx context.Context, products []*entity.Product, generatedAt time.Time) ([]byte, error)
}
