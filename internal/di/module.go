package di

import (
	"go.uber.org/fx"

	"github.com/kaalika/checkout/internal/adapter/gateway"
	"github.com/kaalika/checkout/internal/adapter/mailer"
	"github.com/kaalika/checkout/internal/adapter/store"
	"github.com/kaalika/checkout/internal/app"
	"github.com/kaalika/checkout/internal/config"
	"github.com/kaalika/checkout/internal/dedup"
	"github.com/kaalika/checkout/internal/logger"
	"github.com/kaalika/checkout/internal/pkg/signature"
	"github.com/kaalika/checkout/internal/server/http/handlers"
	"github.com/kaalika/checkout/internal/server/http/router"
	"github.com/kaalika/checkout/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		signature.Module,
		store.Module,
		gateway.Module,
		mailer.Module,
		dedup.Module,
		usecase.Module,
		fx.Provide(func(f *app.CheckoutFacade) handlers.StorefrontFacade { return f }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
