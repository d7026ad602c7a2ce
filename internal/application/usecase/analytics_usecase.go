package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/stockroom-api/internal/application/dto"
	"github.com/jhoicas/stockroom-api/internal/application/ports"
	"github.com/jhoicas/stockroom-api/internal/domain/repository"
)

// TopProductsLimit máximo de productos en el ranking por cantidad.
const TopProductsLimit = 5

// AnalyticsUseCase consultas de solo lectura sobre el catálogo.
type AnalyticsUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	reports       ports.TopProductsReportGenerator
}

// NewAnalyticsUseCase construye el caso de uso. reports puede ser nil si no se expone el PDF.
func NewAnalyticsUseCase(analyticsRepo repository.AnalyticsRepository, reports ports.TopProductsReportGenerator) *AnalyticsUseCase {
	return &AnalyticsUseCase{analyticsRepo: analyticsRepo, reports: reports}
}

// TopProducts devuelve hasta 5 productos con mayor cantidad (desc; empates en orden de inserción).
func (uc *AnalyticsUseCase) TopProducts(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.analyticsRepo.TopByQuantity(ctx, TopProductsLimit)
	if err != nil {
		return nil, fmt.Errorf("analytics: top products: %w", err)
	}
	return toProductResponses(list), nil
}

// TopProductsReport genera el PDF del ranking actual.
func (uc *AnalyticsUseCase) TopProductsReport(ctx context.Context) ([]byte, error) {
	if uc.reports == nil {
		return nil, fmt.Errorf("analytics: generador de reportes no configurado")
	}
	list, err := uc.analyticsRepo.TopByQuantity(ctx, TopProductsLimit)
	if err != nil {
		return nil, fmt.Errorf("analytics: top products: %w", err)
	}
	return uc.reports.GenerateTopProductsPDF(ctx, list, time.Now())
}
