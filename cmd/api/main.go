package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/stockroom-api/docs"
	"github.com/jhoicas/stockroom-api/internal/application/auth"
	"github.com/jhoicas/stockroom-api/internal/application/ports"
	"github.com/jhoicas/stockroom-api/internal/application/usecase"
	infraevents "github.com/jhoicas/stockroom-api/internal/infrastructure/events"
	infrapdf "github.com/jhoicas/stockroom-api/internal/infrastructure/pdf"
	"github.com/jhoicas/stockroom-api/internal/infrastructure/store"
	httpRouter "github.com/jhoicas/stockroom-api/internal/interfaces/http"
	"github.com/jhoicas/stockroom-api/pkg/config"
	"github.com/jhoicas/stockroom-api/pkg/logger"
	"github.com/jhoicas/stockroom-api/pkg/password"
)

// @title                       Stockroom API
// @version                     1.0
// @description                 API de inventario: usuarios con roles, catálogo de productos paginado y analítica de existencias.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("configuración inválida")
	}
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	repos, err := store.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir store")
	}

	// Eventos de catálogo: Kafka solo si hay brokers configurados.
	var events ports.ProductEventPublisher = ports.NopPublisher{}
	var kafkaPub *infraevents.KafkaPublisher
	if cfg.Kafka.Enabled() {
		kafkaPub = infraevents.NewKafkaPublisher(cfg.Kafka)
		events = kafkaPub
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("publicación de eventos habilitada")
	}

	authUC := auth.NewAuthUseCase(repos.Users, password.NewHasher(cfg.Auth.BcryptCost), auth.JWTConfig{
		Secret: cfg.JWT.Secret,
		Issuer: cfg.JWT.Issuer,
	})
	if cfg.Auth.AdminUsername != "" {
		created, err := authUC.EnsureAdmin(ctx, cfg.Auth.AdminUsername, cfg.Auth.AdminPassword)
		if err != nil {
			log.Fatal().Err(err).Msg("crear usuario admin")
		}
		if created {
			log.Info().Str("username", cfg.Auth.AdminUsername).Msg("usuario admin creado")
		}
	}

	gate := auth.NewGate(repos.Users, cfg.JWT.Secret)
	userUC := usecase.NewUserUseCase(repos.Users)
	productUC := usecase.NewProductUseCase(repos.Products, events, log)

	// PDF: reporte de productos con más existencias
	reportGenerator := infrapdf.NewMarotoReportGenerator(cfg.App.Name)
	analyticsUC := usecase.NewAnalyticsUseCase(repos.Analytics, reportGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.Swagger.FilePath); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.Swagger.FilePath,
			Path:     "docs",
			Title:    "Stockroom API",
		}))
	} else {
		log.Warn().Str("file", cfg.Swagger.FilePath).Msg("swagger UI deshabilitado: archivo no encontrado")
	}
	app.Get("/swagger.json", func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Send(docs.JSON())
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "store": cfg.Store.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		Gate:        gate,
		UserUC:      userUC,
		ProductUC:   productUC,
		AnalyticsUC: analyticsUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if kafkaPub != nil {
		if err := kafkaPub.Close(); err != nil {
			log.Error().Err(err).Msg("cerrar publicador kafka")
		}
	}
	if err := repos.Close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("cerrar store")
	}

	log.Info().Msg("aplicación detenida")
}
