package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockroom-api/internal/application/usecase"
)

// AnalyticsHandler maneja los endpoints de analítica de existencias (solo admin).
type AnalyticsHandler struct {
	uc *usecase.AnalyticsUseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(uc *usecase.AnalyticsUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// TopProducts godoc
// @Summary      Productos con más existencias
// @Description  Hasta 5 productos ordenados por cantidad descendente; los empates conservan el orden de alta.
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.ProductResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /analytics/top-products [get]
func (h *AnalyticsHandler) TopProducts(c *fiber.Ctx) error {
	out, err := h.uc.TopProducts(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// TopProductsReport godoc
// @Summary      Reporte PDF de productos con más existencias
// @Tags         analytics
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}    file
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /analytics/top-products/report.pdf [get]
func (h *AnalyticsHandler) TopProductsReport(c *fiber.Ctx) error {
	pdf, err := h.uc.TopProductsReport(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	filename := fmt.Sprintf("top-productos-%s.pdf", time.Now().Format("20060102"))
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="%s"`, filename))
	return c.Send(pdf)
}
