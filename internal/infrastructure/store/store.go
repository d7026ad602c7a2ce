// Package store selecciona y abre el adaptador de persistencia configurado.
package store

import (
	"context"
	"fmt"

	"github.com/jhoicas/stockroom-api/internal/domain/repository"
	"github.com/jhoicas/stockroom-api/internal/infrastructure/memory"
	"github.com/jhoicas/stockroom-api/internal/infrastructure/mongostore"
	"github.com/jhoicas/stockroom-api/internal/infrastructure/postgres"
	"github.com/jhoicas/stockroom-api/pkg/config"
	"github.com/jhoicas/stockroom-api/pkg/logger"
)

// Repositories agrupa los puertos que consumen los casos de uso.
type Repositories struct {
	Users     repository.UserRepository
	Products  repository.ProductRepository
	Analytics repository.AnalyticsRepository

	closeFn func(context.Context) error
}

// Close libera las conexiones del adaptador.
func (r *Repositories) Close(ctx context.Context) error {
	if r.closeFn == nil {
		return nil
	}
	return r.closeFn(ctx)
}

// Open abre el driver indicado en cfg.Store.Driver.
func Open(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Repositories, error) {
	switch cfg.Store.Driver {
	case config.StorePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Str("driver", cfg.Store.Driver).Msg("conexión a PostgreSQL establecida")
		return &Repositories{
			Users:     postgres.NewUserRepository(pool),
			Products:  postgres.NewProductRepository(pool),
			Analytics: postgres.NewAnalyticsRepository(pool),
			closeFn: func(context.Context) error {
				pool.Close()
				return nil
			},
		}, nil

	case config.StoreMongo:
		client, db, err := mongostore.Connect(ctx, cfg.Mongo)
		if err != nil {
			return nil, err
		}
		log.Info().Str("driver", cfg.Store.Driver).Str("database", cfg.Mongo.Database).Msg("conexión a MongoDB establecida")
		return &Repositories{
			Users:     mongostore.NewUserRepository(db),
			Products:  mongostore.NewProductRepository(db),
			Analytics: mongostore.NewAnalyticsRepository(db),
			closeFn:   client.Disconnect,
		}, nil

	case config.StoreMemory:
		log.Warn().Msg("usando almacenamiento en memoria; los datos se pierden al reiniciar")
		return Memory(), nil

	default:
		return nil, fmt.Errorf("store: driver no soportado %q", cfg.Store.Driver)
	}
}

// Memory construye repositorios en memoria que comparten una misma base.
func Memory() *Repositories {
	db := memory.NewDB()
	return &Repositories{
		Users:     memory.NewUserRepository(db),
		Products:  memory.NewProductRepository(db),
		Analytics: memory.NewAnalyticsRepository(db),
	}
}
