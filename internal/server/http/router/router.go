package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/kaalika/checkout/internal/server/http/handlers"
	"github.com/kaalika/checkout/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.StorefrontFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	checkoutHandler := handlers.NewCheckoutHandler(facade)
	webhookHandler := handlers.NewWebhookHandler(facade)
	invoiceHandler := handlers.NewInvoiceHandler(facade)

	api := engine.Group("/api")
	api.POST("/checkout", checkoutHandler.Create)
	api.POST("/webhooks/payment", webhookHandler.Receive)
	api.POST("/send-invoice", invoiceHandler.Send)

	return engine
}
