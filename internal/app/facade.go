package app

import (
	"context"

	"github.com/kaalika/checkout/internal/domain/model"
	"github.com/kaalika/checkout/internal/domain/repository"
	"github.com/kaalika/checkout/internal/usecase"
)

// CheckoutFacade aggregates the operations exposed to HTTP handlers and the
// background reconciler.
type CheckoutFacade struct {
	checkout *usecase.CheckoutUseCase
	webhooks *usecase.WebhookUseCase
	orders   repository.OrderStore
	mailer   repository.Mailer
}

// NewCheckoutFacade constructs the facade over the use cases.
func NewCheckoutFacade(checkout *usecase.CheckoutUseCase, webhooks *usecase.WebhookUseCase, orders repository.OrderStore, mailer repository.Mailer) *CheckoutFacade {
	return &CheckoutFacade{checkout: checkout, webhooks: webhooks, orders: orders, mailer: mailer}
}

func (f *CheckoutFacade) Checkout(ctx context.Context, req model.CheckoutRequest, idempotencyKey string) (*model.CheckoutResult, error) {
	return f.checkout.Checkout(ctx, req, idempotencyKey)
}

func (f *CheckoutFacade) HandleWebhook(ctx context.Context, raw []byte, signature string) (*model.WebhookResult, error) {
	return f.webhooks.HandleEvent(ctx, raw, signature)
}

func (f *CheckoutFacade) SendInvoice(ctx context.Context, recipient, subject, html string) error {
	return f.mailer.Send(ctx, repository.Message{To: recipient, Subject: subject, HTML: html})
}

func (f *CheckoutFacade) PendingOrders(ctx context.Context, limit int) ([]model.Order, error) {
	return f.orders.ListPending(ctx, limit)
}

func (f *CheckoutFacade) ReconcileOrder(ctx context.Context, order model.Order) error {
	return f.webhooks.ReconcileOrder(ctx, order)
}
