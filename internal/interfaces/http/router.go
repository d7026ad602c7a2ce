package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockroom-api/internal/application/auth"
	"github.com/jhoicas/stockroom-api/internal/application/usecase"
	"github.com/jhoicas/stockroom-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	Gate        *auth.Gate
	UserUC      *usecase.UserUseCase
	ProductUC   *usecase.ProductUseCase
	AnalyticsUC *usecase.AnalyticsUseCase
}

// Router registra las rutas de la API en la raíz de la app.
func Router(app *fiber.App, deps RouterDeps) {
	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	app.Post("/register", authHandler.Register)
	app.Post("/login", authHandler.Login)

	authn := AuthMiddleware(deps.Gate)
	adminOnly := RequireRole(deps.Gate, entity.RoleAdmin)

	// Users (admin)
	userHandler := NewUserHandler(deps.UserUC)
	app.Get("/users", authn, adminOnly, userHandler.List)

	// Products (cualquier usuario autenticado)
	products := app.Group("/products", authn)
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id/quantity", productHandler.UpdateQuantity)

	// Analytics (admin)
	analytics := app.Group("/analytics", authn, adminOnly)
	analyticsHandler := NewAnalyticsHandler(deps.AnalyticsUC)
	analytics.Get("/top-products", analyticsHandler.TopProducts)
	analytics.Get("/top-products/report.pdf", analyticsHandler.TopProductsReport)
}
