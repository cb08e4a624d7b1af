package dedup

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/kaalika/checkout/internal/config"
	"github.com/kaalika/checkout/internal/domain/repository"
)

// Module wires the dedup chain: remote tier over the content store's
// webhook-events collection, local tier chosen by configuration
// (postgres > redis > file).
var Module = fx.Options(
	fx.Provide(newDedupStore),
)

type storeParams struct {
	fx.In

	Ctx       context.Context
	Config    *config.Config
	Logger    *slog.Logger
	Events    repository.EventStore
	Lifecycle fx.Lifecycle
}

func newDedupStore(p storeParams) (repository.DedupStore, error) {
	local, err := newLocalTier(p)
	if err != nil {
		return nil, err
	}
	return NewChain(NewRemoteStore(p.Events), local, p.Logger), nil
}

func newLocalTier(p storeParams) (repository.DedupStore, error) {
	switch {
	case p.Config.DedupDatabaseURI != "":
		store, err := NewPostgresStore(p.Ctx, p.Config.DedupDatabaseURI, p.Logger)
		if err != nil {
			return nil, err
		}
		p.Lifecycle.Append(fx.Hook{
			OnStop: func(context.Context) error {
				store.Close()
				return nil
			},
		})
		return store, nil
	case p.Config.DedupRedisAddr != "":
		store := NewRedisStore(redis.NewClient(&redis.Options{Addr: p.Config.DedupRedisAddr}))
		p.Lifecycle.Append(fx.Hook{
			OnStop: func(context.Context) error {
				return store.Close()
			},
		})
		return store, nil
	default:
		return NewFileStore(p.Config.DedupFilePath)
	}
}
