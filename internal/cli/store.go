package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/xyz-asif/kubertodo/internal/config"
	"github.com/xyz-asif/kubertodo/internal/database"
	"github.com/xyz-asif/kubertodo/internal/features/health"
	"github.com/xyz-asif/kubertodo/internal/features/todos"
	"github.com/xyz-asif/kubertodo/internal/pkg/logger"
)

// backend is the opened store together with its liveness probe.
type backend struct {
	Store  todos.Store
	Pinger health.Pinger
	Close  func(ctx context.Context) error
}

func openBackend(ctx context.Context, cfg *config.Config) (*backend, error) {
	switch cfg.Store.Driver {
	case config.DriverMemory:
		store := todos.NewMemoryStore()
		return &backend{
			Store:  store,
			Pinger: store,
			Close:  func(context.Context) error { return nil },
		}, nil

	case config.DriverMongo:
		db, err := database.Connect(ctx, database.Config{
			URI:     cfg.Mongo.ConnectionString,
			DBName:  cfg.Mongo.Database,
			Timeout: cfg.Mongo.Timeout,
		})
		if err != nil {
			return nil, err
		}
		return &backend{
			Store:  todos.NewRepository(db.Database),
			Pinger: db,
			Close:  db.Disconnect,
		}, nil
	}

	return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}

// prepare checks the store once at startup. Failures are logged, not fatal:
// the service starts anyway and /health reports the outage.
func (b *backend) prepare(ctx context.Context, timeout time.Duration) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if repo, ok := b.Store.(*todos.Repository); ok {
		if err := repo.EnsureIndexes(ctx); err != nil {
			logger.Warn("could not ensure indexes", "err", err)
		}
	}

	if err := b.Pinger.Ping(ctx); err != nil {
		logger.Warn("store is not reachable yet", "err", err)
		return
	}
	logger.Info("store is reachable")
}
