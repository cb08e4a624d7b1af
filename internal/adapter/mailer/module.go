package mailer

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/kaalika/checkout/internal/config"
	"github.com/kaalika/checkout/internal/domain/repository"
)

// Module exposes the mail client to the fx graph.
var Module = fx.Options(
	fx.Provide(newMailer),
	fx.Provide(func(m *HTTPMailer) repository.Mailer { return m }),
)

type mailerParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newMailer(p mailerParams) (*HTTPMailer, error) {
	return NewHTTPMailer(p.Config.MailBaseURL, p.Config.MailAPIKey, p.Config.MailFrom, p.Logger)
}
