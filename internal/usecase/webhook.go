package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"unicode"

	domainErrors "github.com/kaalika/checkout/internal/domain/errors"
	"github.com/kaalika/checkout/internal/domain/model"
	"github.com/kaalika/checkout/internal/domain/repository"
	"github.com/kaalika/checkout/internal/pkg/signature"
)

// WebhookUseCase reconciles asynchronous payment events against the order
// store: verify, dedupe, find-or-create the order, advance its status, run
// best-effort side effects, mark the event processed, acknowledge.
type WebhookUseCase struct {
	orders   repository.OrderStore
	products repository.ProductStore
	gateway  repository.PaymentGateway
	dedup    repository.DedupStore
	verifier *signature.Verifier
	logger   *slog.Logger
}

// NewWebhookUseCase constructs WebhookUseCase.
func NewWebhookUseCase(orders repository.OrderStore, products repository.ProductStore, gateway repository.PaymentGateway, dedup repository.DedupStore, verifier *signature.Verifier, logger *slog.Logger) *WebhookUseCase {
	return &WebhookUseCase{
		orders:   orders,
		products: products,
		gateway:  gateway,
		dedup:    dedup,
		verifier: verifier,
		logger:   logger,
	}
}

// eventPayload mirrors the gateway's webhook body. Signature verification
// runs over the raw bytes before this decode.
type eventPayload struct {
	ID      string `json:"id"`
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity *model.Payment `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

// HandleEvent processes one inbound webhook delivery. raw must be the exact
// request body bytes as received. Signature and parse failures are returned;
// reconciliation failures are logged and swallowed so the gateway is not
// driven into a retry storm over an event already durably recorded as seen.
func (u *WebhookUseCase) HandleEvent(ctx context.Context, raw []byte, providedSignature string) (*model.WebhookResult, error) {
	if err := u.verifier.VerifyPayload(raw, providedSignature); err != nil {
		return nil, err
	}

	var decoded eventPayload
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("decode event: %w", err)
	}

	event := model.PaymentEvent{
		ID:      decoded.ID,
		Type:    decoded.Event,
		Payment: decoded.Payload.Payment.Entity,
	}
	if event.Payment == nil {
		// Some event types carry no payment entity; nothing to reconcile.
		u.logger.Info("event carries no payment entity", slog.String("event", event.Type))
		return &model.WebhookResult{}, nil
	}

	dedupeID := event.DedupeID()
	processed, err := u.dedup.IsProcessed(ctx, dedupeID)
	if err != nil {
		u.logger.Warn("dedup lookup failed, treating event as new",
			slog.String("dedupe_id", dedupeID),
			slog.String("error", err.Error()),
		)
	}
	if processed {
		return &model.WebhookResult{Duplicate: true}, nil
	}

	result := &model.WebhookResult{}
	order, err := u.reconcile(ctx, event.Payment)
	if err != nil {
		u.logger.Error("reconciliation failed",
			slog.String("dedupe_id", dedupeID),
			slog.String("error", err.Error()),
		)
	} else {
		result.OrderID = order.ID
		if event.Payment.Status == model.PaymentStatusCaptured {
			u.applySideEffects(ctx, order, event.Payment)
		}
	}

	// Marked regardless of reconcile outcome so redeliveries are not
	// reprocessed.
	if err := u.dedup.MarkProcessed(ctx, dedupeID, raw); err != nil {
		u.logger.Error("failed to mark event processed",
			slog.String("dedupe_id", dedupeID),
			slog.String("error", err.Error()),
		)
	}

	return result, nil
}

// ReconcileOrder advances one pending order by asking the gateway for its
// payment state. Used by the background reconciler when webhook delivery
// never arrived.
func (u *WebhookUseCase) ReconcileOrder(ctx context.Context, order model.Order) error {
	if order.PaymentID == "" {
		return nil
	}
	payment, err := u.gateway.FetchPayment(ctx, order.PaymentID)
	if err != nil {
		return err
	}
	if !isSettledStatus(payment.Status) {
		// Still in flight at the gateway; the next poll picks the order up
		// again.
		return nil
	}

	updated, err := u.updateOrder(ctx, order.ID, payment)
	if err != nil {
		return err
	}
	if payment.Status == model.PaymentStatusCaptured {
		u.applySideEffects(ctx, updated, payment)
	}
	return nil
}

// reconcile finds the order for a payment, searching by payment id then by
// gateway order id, and creates a minimal order when neither matches.
func (u *WebhookUseCase) reconcile(ctx context.Context, payment *model.Payment) (*model.Order, error) {
	order, err := u.orders.FindByPaymentID(ctx, payment.ID)
	if errors.Is(err, domainErrors.ErrNotFound) {
		order, err = u.orders.FindByGatewayOrderID(ctx, payment.GatewayOrderID)
	}
	if err == nil {
		return u.updateOrder(ctx, order.ID, payment)
	}
	if !errors.Is(err, domainErrors.ErrNotFound) {
		return nil, err
	}

	// No matching order; the webhook outran checkout persistence. Create a
	// minimal record from the payment entity.
	minimal := model.Order{
		CustomerEmail:  payment.Email,
		CustomerName:   payment.Contact,
		Cart:           []model.LineItem{},
		TotalCost:      payment.MajorAmount(),
		PaymentMethod:  payment.Method,
		PaymentID:      payment.ID,
		GatewayOrderID: payment.GatewayOrderID,
		Status:         mapGatewayStatus(payment.Status),
	}
	return u.orders.Create(ctx, minimal, payment.ID)
}

func (u *WebhookUseCase) updateOrder(ctx context.Context, orderID string, payment *model.Payment) (*model.Order, error) {
	return u.orders.Update(ctx, orderID, map[string]any{
		"transactionStatus": string(mapGatewayStatus(payment.Status)),
		"paymentId":         payment.ID,
		"gatewayOrderId":    payment.GatewayOrderID,
	})
}

// applySideEffects decrements stock and issues an invoice. Both are
// best-effort: failures are logged and never fail the webhook response.
func (u *WebhookUseCase) applySideEffects(ctx context.Context, order *model.Order, payment *model.Payment) {
	u.decrementStock(ctx, order)

	invoice, err := u.issueInvoice(ctx, order, payment)
	if err != nil {
		u.logger.Warn("invoice issuance failed",
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
		return
	}

	if _, err := u.orders.Update(ctx, order.ID, map[string]any{
		"invoiceId":  invoice.ID,
		"invoiceUrl": invoice.ShortURL,
	}); err != nil {
		u.logger.Warn("attaching invoice to order failed",
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
	}
}

func (u *WebhookUseCase) decrementStock(ctx context.Context, order *model.Order) {
	for _, item := range order.Cart {
		field, current, err := u.products.Stock(ctx, item.ProductID)
		if err != nil {
			u.logger.Warn("stock lookup failed",
				slog.String("product_id", item.ProductID),
				slog.String("error", err.Error()),
			)
			continue
		}
		remaining := current - float64(item.Quantity)
		if remaining < 0 {
			remaining = 0
		}
		if err := u.products.SetStock(ctx, item.ProductID, field, remaining); err != nil {
			u.logger.Warn("stock decrement failed",
				slog.String("product_id", item.ProductID),
				slog.String("error", err.Error()),
			)
		}
	}
}

func (u *WebhookUseCase) issueInvoice(ctx context.Context, order *model.Order, payment *model.Payment) (*model.Invoice, error) {
	currency := payment.Currency
	if currency == "" {
		currency = "INR"
	}

	items := make([]repository.InvoiceItem, 0, len(order.Cart))
	for _, item := range order.Cart {
		items = append(items, repository.InvoiceItem{
			Name:     item.ProductID,
			Amount:   minorUnits(item.Price),
			Currency: currency,
			Quantity: item.Quantity,
		})
	}
	if len(items) == 0 {
		items = append(items, repository.InvoiceItem{
			Name:     "Order Total",
			Amount:   minorUnits(order.TotalCost),
			Currency: currency,
			Quantity: 1,
		})
	}

	return u.gateway.CreateInvoice(ctx, repository.InvoiceRequest{
		CustomerEmail: order.CustomerEmail,
		CustomerName:  sanitizeCustomerName(order.CustomerName),
		Items:         items,
		Currency:      currency,
	})
}

// isSettledStatus reports whether a gateway payment status is final enough to
// rewrite the order. Anything else (created, pending) keeps the order in the
// poll set.
func isSettledStatus(status string) bool {
	switch status {
	case model.PaymentStatusCaptured, model.PaymentStatusAuthorized, model.PaymentStatusFailed:
		return true
	}
	return false
}

// minorUnits converts a major-unit price to minor units. Rounded, not
// truncated; 19.99 stored as a float multiplies to 1998.999....
func minorUnits(major float64) int64 {
	return int64(math.Round(major * 100))
}

// mapGatewayStatus maps the gateway's captured status to paid and passes any
// other status through verbatim.
func mapGatewayStatus(status string) model.TransactionStatus {
	if status == model.PaymentStatusCaptured {
		return model.TransactionStatusPaid
	}
	return model.TransactionStatus(status)
}

// sanitizeCustomerName reduces a display name to the gateway-accepted
// character set. Returns empty when the result is too short to be usable, in
// which case the name field is omitted from the invoice.
func sanitizeCustomerName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case r == ' ' || r == '.' || r == '-' || r == '\'':
			b.WriteRune(r)
		}
	}
	cleaned := strings.Join(strings.Fields(b.String()), " ")
	if len(cleaned) < 4 {
		return ""
	}
	return cleaned
}
