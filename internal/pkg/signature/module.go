package signature

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/kaalika/checkout/internal/config"
)

// Module provides the webhook signature verifier via fx.
var Module = fx.Provide(newVerifier)

type verifierParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newVerifier(p verifierParams) *Verifier {
	return New(p.Config.WebhookSecret, p.Config.RequireSignature, p.Logger)
}
