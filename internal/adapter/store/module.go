package store

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/kaalika/checkout/internal/config"
	"github.com/kaalika/checkout/internal/domain/repository"
)

// Module exposes the content store client and its capability interfaces.
var Module = fx.Options(
	fx.Provide(newClient),
	fx.Provide(
		func(c *Client) repository.OrderStore { return c },
		func(c *Client) repository.ProductStore { return c },
		func(c *Client) repository.EventStore { return c },
	),
)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (*Client, error) {
	return NewClient(
		p.Config.StoreBaseURL,
		p.Config.StoreToken,
		p.Config.MaxRetries,
		p.Config.RetryBaseDelay,
		p.Logger,
	)
}
