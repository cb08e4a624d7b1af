package gateway

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/kaalika/checkout/internal/config"
	"github.com/kaalika/checkout/internal/domain/repository"
)

// Module exposes the gateway client implementation to the fx graph.
var Module = fx.Options(
	fx.Provide(newClient),
	fx.Provide(func(c Client) repository.PaymentGateway { return c }),
)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewHTTPClient(
		p.Config.GatewayBaseURL,
		p.Config.GatewayKeyID,
		p.Config.GatewayKeySecret,
		p.Logger,
	)
}
