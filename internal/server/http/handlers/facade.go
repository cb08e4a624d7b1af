package handlers

import (
	"context"

	"github.com/kaalika/checkout/internal/domain/model"
)

// CheckoutFacade describes checkout capabilities required by handlers.
type CheckoutFacade interface {
	Checkout(ctx context.Context, req model.CheckoutRequest, idempotencyKey string) (*model.CheckoutResult, error)
}

// WebhookFacade processes inbound gateway events.
type WebhookFacade interface {
	HandleWebhook(ctx context.Context, raw []byte, signature string) (*model.WebhookResult, error)
}

// InvoiceFacade sends invoice email.
type InvoiceFacade interface {
	SendInvoice(ctx context.Context, recipient, subject, html string) error
}

// StorefrontFacade aggregates the full set of operations used across handlers.
type StorefrontFacade interface {
	CheckoutFacade
	WebhookFacade
	InvoiceFacade
}
