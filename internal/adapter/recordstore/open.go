// Package recordstore selects the record store backend named by the
// configuration.
package recordstore

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/couchcryptid/ajudejf/internal/adapter/postgres"
	"github.com/couchcryptid/ajudejf/internal/adapter/postgrest"
	"github.com/couchcryptid/ajudejf/internal/config"
	"github.com/couchcryptid/ajudejf/internal/domain"
	"github.com/couchcryptid/ajudejf/internal/observability"
)

// Store is a record store that can report whether its backend is reachable.
type Store interface {
	domain.RecordStore
	CheckReadiness(ctx context.Context) error
}

// Open builds the store for cfg.StoreDriver. The returned func releases its
// resources.
func Open(ctx context.Context, cfg *config.Config, metrics *observability.Metrics, logger *slog.Logger) (Store, func(), error) {
	switch cfg.StoreDriver {
	case config.DriverPostgREST:
		logger.Info("record store: postgrest", "url", cfg.SupabaseURL, "timeout", cfg.StoreTimeout)
		return postgrest.NewClient(cfg.SupabaseURL, cfg.SupabaseKey, cfg.StoreTimeout, metrics, logger), func() {}, nil
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("record store: postgres", "max_conns", cfg.DatabaseMaxConns)
		return postgres.NewStore(pool, metrics, logger), pool.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
