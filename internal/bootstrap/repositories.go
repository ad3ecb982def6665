package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/PlantTycoon_Go/internal/config"
	"github.com/osse101/PlantTycoon_Go/internal/database"
	"github.com/osse101/PlantTycoon_Go/internal/database/jsonfile"
	"github.com/osse101/PlantTycoon_Go/internal/database/postgres"
	"github.com/osse101/PlantTycoon_Go/internal/garden"
	"github.com/osse101/PlantTycoon_Go/internal/metrics"
	"github.com/osse101/PlantTycoon_Go/internal/repository"
)

// OpenRepository selects the gardener repository for cfg.StoreBackend.
// The returned pool is nil for the file backend; the caller closes it otherwise.
func OpenRepository(ctx context.Context, cfg *config.Config) (repository.GardenerRepository, *pgxpool.Pool, error) {
	switch cfg.StoreBackend {
	case config.StoreBackendPostgres:
		pool, err := database.NewPool(ctx, cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectDB, err)
		}
		if err := database.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("%s: %w", ErrMsgFailedMigrate, err)
		}
		return postgres.NewGardenerRepository(pool), pool, nil

	case config.StoreBackendFile:
		if err := os.MkdirAll(filepath.Dir(cfg.DataFile), DirPermission); err != nil {
			return nil, nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateDataDir, err)
		}
		return jsonfile.NewGardenerRepository(cfg.DataFile), nil, nil
	}

	return nil, nil, fmt.Errorf("%s: %q", ErrMsgUnsupportedBackend, cfg.StoreBackend)
}

// OpenStore loads every gardener from repo into a new Store
func OpenStore(ctx context.Context, repo repository.GardenerRepository, backend string) (*garden.Store, error) {
	store := garden.NewStore(repo)
	if err := store.Load(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadGardeners, err)
	}

	count := len(store.UserIDs())
	metrics.ActiveGardeners.Set(float64(count))
	slog.Info(LogMsgStoreOpened, "backend", backend, "gardeners", count)
	return store, nil
}
