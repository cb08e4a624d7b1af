package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/kaalika/checkout/internal/domain/errors"
	"github.com/kaalika/checkout/internal/domain/model"
	"github.com/kaalika/checkout/internal/domain/repository"
	"github.com/kaalika/checkout/internal/pkg/signature"
)

// CheckoutUseCase validates checkout requests and persists the resulting
// order through the resilient store writer.
type CheckoutUseCase struct {
	orders   repository.OrderStore
	gateway  repository.PaymentGateway
	mailer   repository.Mailer
	verifier *signature.Verifier
	logger   *slog.Logger
}

// NewCheckoutUseCase constructs CheckoutUseCase.
func NewCheckoutUseCase(orders repository.OrderStore, gateway repository.PaymentGateway, mailer repository.Mailer, verifier *signature.Verifier, logger *slog.Logger) *CheckoutUseCase {
	return &CheckoutUseCase{orders: orders, gateway: gateway, mailer: mailer, verifier: verifier, logger: logger}
}

// Checkout validates and normalizes the request, verifies the synchronous
// payment confirmation when present, and persists the order. headerKey is the
// client-supplied Idempotency-Key header, preferred over the body field.
func (u *CheckoutUseCase) Checkout(ctx context.Context, req model.CheckoutRequest, headerKey string) (*model.CheckoutResult, error) {
	normalized, err := ValidateCheckout(req)
	if err != nil {
		return nil, err
	}

	method, ok := MapPaymentMethod(normalized.PaymentMethod)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domainErrors.ErrInvalidPaymentMethod, normalized.PaymentMethod)
	}
	normalized.PaymentMethod = method

	status := model.TransactionStatusPaid
	switch {
	case normalized.PaymentID != "" && normalized.GatewayOrderID != "" && normalized.Signature != "":
		if err := u.confirmPayment(ctx, normalized); err != nil {
			return nil, err
		}
	case normalized.GatewayOrderID != "" && normalized.PaymentID == "":
		// Payment initiated with the gateway but not completed yet; the
		// webhook or the reconciler advances it.
		status = model.TransactionStatusPending
	}

	idempotencyKey := headerKey
	if idempotencyKey == "" {
		idempotencyKey = normalized.IdempotencyKey
	}
	if idempotencyKey == "" {
		idempotencyKey = uuid.NewString()
	}

	order := model.Order{
		CustomerEmail:  normalized.CustomerEmail,
		CustomerName:   normalized.CustomerName,
		Cart:           normalized.Cart,
		TotalCost:      normalized.TotalCost,
		Address:        normalized.Address,
		PaymentMethod:  normalized.PaymentMethod,
		PaymentID:      normalized.PaymentID,
		GatewayOrderID: normalized.GatewayOrderID,
		Status:         status,
	}

	created, err := u.orders.Create(ctx, order, idempotencyKey)
	if err != nil {
		return nil, err
	}

	orderID := created.ID
	if orderID == "" {
		// Sentinel when the store write succeeded without returning an id;
		// not a uniqueness guarantee.
		orderID = strconv.FormatInt(time.Now().UnixMilli(), 10)
	}

	u.sendConfirmationEmail(ctx, normalized, orderID)

	return &model.CheckoutResult{
		OrderID:     orderID,
		RedirectURL: "/order/success?orderId=" + orderID,
	}, nil
}

// confirmPayment runs the synchronous confirmation path: signature over the
// gateway order id and payment id, then a payment lookup whose status must be
// captured or authorized.
func (u *CheckoutUseCase) confirmPayment(ctx context.Context, normalized *model.NormalizedCheckout) error {
	if err := u.verifier.VerifyPaymentConfirmation(normalized.GatewayOrderID, normalized.PaymentID, normalized.Signature); err != nil {
		return err
	}

	payment, err := u.gateway.FetchPayment(ctx, normalized.PaymentID)
	if err != nil {
		return err
	}

	switch payment.Status {
	case model.PaymentStatusCaptured, model.PaymentStatusAuthorized:
		return nil
	default:
		return fmt.Errorf("%w: payment %s is %s", domainErrors.ErrPaymentNotAccepted, payment.ID, payment.Status)
	}
}

func (u *CheckoutUseCase) sendConfirmationEmail(ctx context.Context, normalized *model.NormalizedCheckout, orderID string) {
	if normalized.CustomerEmail == "" {
		return
	}
	msg := repository.Message{
		To:      normalized.CustomerEmail,
		Subject: "Your order confirmation",
		Text:    fmt.Sprintf("Thank you for your purchase! Your order %s total was %.2f.", orderID, normalized.TotalCost),
		HTML:    fmt.Sprintf("<h3>Order %s</h3><p>Total: %.2f</p>", orderID, normalized.TotalCost),
	}
	if err := u.mailer.Send(ctx, msg); err != nil {
		u.logger.Warn("confirmation email failed",
			slog.String("order_id", orderID),
			slog.String("error", err.Error()),
		)
	}
}
