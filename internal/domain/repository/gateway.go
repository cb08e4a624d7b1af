package repository

import (
	"context"

	"github.com/kaalika/checkout/internal/domain/model"
)

// InvoiceItem is one line of a gateway invoice, amount in minor units.
type InvoiceItem struct {
	Name     string
	Amount   int64
	Currency string
	Quantity int
}

// InvoiceRequest asks the gateway to issue and send an invoice.
type InvoiceRequest struct {
	CustomerEmail string
	CustomerName  string
	Items         []InvoiceItem
	Currency      string
}

// PaymentGateway exposes the payment gateway operations this system uses.
// All amounts are in minor currency units.
type PaymentGateway interface {
	FetchPayment(ctx context.Context, paymentID string) (*model.Payment, error)
	CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*model.GatewayOrder, error)
	CreateInvoice(ctx context.Context, req InvoiceRequest) (*model.Invoice, error)
}
