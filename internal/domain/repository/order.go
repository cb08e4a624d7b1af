package repository

import (
	"context"

	"github.com/kaalika/checkout/internal/domain/model"
)

// OrderStore describes order persistence in the remote content store.
// Create attaches the idempotency key so retried writes collapse into one
// logical record.
type OrderStore interface {
	Create(ctx context.Context, order model.Order, idempotencyKey string) (*model.Order, error)
	FindByPaymentID(ctx context.Context, paymentID string) (*model.Order, error)
	FindByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*model.Order, error)
	ListPending(ctx context.Context, limit int) ([]model.Order, error)
	Update(ctx context.Context, id string, fields map[string]any) (*model.Order, error)
}
