package test

import (
	"context"
	"sync"

	domainErrors "github.com/kaalika/checkout/internal/domain/errors"
	"github.com/kaalika/checkout/internal/domain/model"
	"github.com/kaalika/checkout/internal/domain/repository"
)

// OrderStoreStub provides controllable order persistence behaviour.
type OrderStoreStub struct {
	CreateFn               func(context.Context, model.Order, string) (*model.Order, error)
	FindByPaymentIDFn      func(context.Context, string) (*model.Order, error)
	FindByGatewayOrderIDFn func(context.Context, string) (*model.Order, error)
	ListPendingFn          func(context.Context, int) ([]model.Order, error)
	UpdateFn               func(context.Context, string, map[string]any) (*model.Order, error)
}

func (s OrderStoreStub) Create(ctx context.Context, order model.Order, key string) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order, key)
	}
	created := order
	created.ID = "1"
	return &created, nil
}

func (s OrderStoreStub) FindByPaymentID(ctx context.Context, paymentID string) (*model.Order, error) {
	if s.FindByPaymentIDFn != nil {
		return s.FindByPaymentIDFn(ctx, paymentID)
	}
	return nil, domainErrors.ErrNotFound
}

func (s OrderStoreStub) FindByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*model.Order, error) {
	if s.FindByGatewayOrderIDFn != nil {
		return s.FindByGatewayOrderIDFn(ctx, gatewayOrderID)
	}
	return nil, domainErrors.ErrNotFound
}

func (s OrderStoreStub) ListPending(ctx context.Context, limit int) ([]model.Order, error) {
	if s.ListPendingFn != nil {
		return s.ListPendingFn(ctx, limit)
	}
	return nil, nil
}

func (s OrderStoreStub) Update(ctx context.Context, id string, fields map[string]any) (*model.Order, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, id, fields)
	}
	return &model.Order{ID: id}, nil
}

// ProductStoreStub simulates the externally owned product catalog.
type ProductStoreStub struct {
	StockFn    func(context.Context, string) (string, float64, error)
	SetStockFn func(context.Context, string, string, float64) error
}

func (s ProductStoreStub) Stock(ctx context.Context, productID string) (string, float64, error) {
	if s.StockFn != nil {
		return s.StockFn(ctx, productID)
	}
	return "stock", 10, nil
}

func (s ProductStoreStub) SetStock(ctx context.Context, productID, field string, value float64) error {
	if s.SetStockFn != nil {
		return s.SetStockFn(ctx, productID, field, value)
	}
	return nil
}

// GatewayStub simulates the payment gateway.
type GatewayStub struct {
	FetchPaymentFn  func(context.Context, string) (*model.Payment, error)
	CreateOrderFn   func(context.Context, int64, string, string) (*model.GatewayOrder, error)
	CreateInvoiceFn func(context.Context, repository.InvoiceRequest) (*model.Invoice, error)
}

func (s GatewayStub) FetchPayment(ctx context.Context, paymentID string) (*model.Payment, error) {
	if s.FetchPaymentFn != nil {
		return s.FetchPaymentFn(ctx, paymentID)
	}
	return &model.Payment{ID: paymentID, Status: model.PaymentStatusCaptured}, nil
}

func (s GatewayStub) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*model.GatewayOrder, error) {
	if s.CreateOrderFn != nil {
		return s.CreateOrderFn(ctx, amount, currency, receipt)
	}
	return &model.GatewayOrder{ID: "order_stub", Amount: amount, Currency: currency, Receipt: receipt}, nil
}

func (s GatewayStub) CreateInvoice(ctx context.Context, req repository.InvoiceRequest) (*model.Invoice, error) {
	if s.CreateInvoiceFn != nil {
		return s.CreateInvoiceFn(ctx, req)
	}
	return &model.Invoice{ID: "inv_stub", ShortURL: "https://inv.example/inv_stub"}, nil
}

// MailerStub records sent messages.
type MailerStub struct {
	SendFn func(context.Context, repository.Message) error

	mu   sync.Mutex
	sent []repository.Message
}

func (s *MailerStub) Send(ctx context.Context, msg repository.Message) error {
	if s.SendFn != nil {
		return s.SendFn(ctx, msg)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, msg)
	return nil
}

// Sent returns a copy of delivered messages.
func (s *MailerStub) Sent() []repository.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]repository.Message(nil), s.sent...)
}

// DedupStub is an in-memory dedup store with optional failure injection.
type DedupStub struct {
	IsProcessedFn   func(context.Context, string) (bool, error)
	MarkProcessedFn func(context.Context, string, []byte) error

	mu  sync.Mutex
	ids map[string]struct{}
}

func (s *DedupStub) IsProcessed(ctx context.Context, eventID string) (bool, error) {
	if s.IsProcessedFn != nil {
		return s.IsProcessedFn(ctx, eventID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.ids[eventID]
	return ok, nil
}

func (s *DedupStub) MarkProcessed(ctx context.Context, eventID string, raw []byte) error {
	if s.MarkProcessedFn != nil {
		return s.MarkProcessedFn(ctx, eventID, raw)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ids == nil {
		s.ids = make(map[string]struct{})
	}
	s.ids[eventID] = struct{}{}
	return nil
}

// FacadeStub provides controllable behaviour for HTTP handler tests.
type FacadeStub struct {
	CheckoutFn      func(context.Context, model.CheckoutRequest, string) (*model.CheckoutResult, error)
	HandleWebhookFn func(context.Context, []byte, string) (*model.WebhookResult, error)
	SendInvoiceFn   func(context.Context, string, string, string) error
}

func (s FacadeStub) Checkout(ctx context.Context, req model.CheckoutRequest, key string) (*model.CheckoutResult, error) {
	if s.CheckoutFn != nil {
		return s.CheckoutFn(ctx, req, key)
	}
	return &model.CheckoutResult{OrderID: "1", RedirectURL: "/order/success?orderId=1"}, nil
}

func (s FacadeStub) HandleWebhook(ctx context.Context, raw []byte, signature string) (*model.WebhookResult, error) {
	if s.HandleWebhookFn != nil {
		return s.HandleWebhookFn(ctx, raw, signature)
	}
	return &model.WebhookResult{}, nil
}

func (s FacadeStub) SendInvoice(ctx context.Context, recipient, subject, html string) error {
	if s.SendInvoiceFn != nil {
		return s.SendInvoiceFn(ctx, recipient, subject, html)
	}
	return nil
}
