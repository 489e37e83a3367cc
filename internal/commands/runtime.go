package commands

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/buchwerk/buchwerk/internal/core/ports/services"
	coreservices "github.com/buchwerk/buchwerk/internal/core/services"
	"github.com/buchwerk/buchwerk/internal/platform/config"
	"github.com/buchwerk/buchwerk/internal/repositories/database/pgsql"
	"github.com/buchwerk/buchwerk/pkg/database"
)

// withServices loads config, connects the pool and hands a fully wired
// service container to fn. The pool is closed when fn returns.
func withServices(ctx context.Context, fn func(ctx context.Context, cfg *config.Config, svc *services.ServiceContainer) error) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer dbPool.Close()

	return fn(ctx, cfg, buildServices(cfg, dbPool))
}

func buildServices(cfg *config.Config, dbPool *pgxpool.Pool) *services.ServiceContainer {
	repos := pgsql.NewRepositoryProvider(dbPool, cfg.NumberPrefixes())
	return coreservices.NewServiceContainer(cfg, repos)
}
