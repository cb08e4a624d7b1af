package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	domainErrors "github.com/kaalika/checkout/internal/domain/errors"
	"github.com/kaalika/checkout/internal/domain/model"
)

const ordersPath = "/api/orders"

// orderAttributes is the store-side shape of an order, without the id.
type orderAttributes struct {
	CustomerEmail  string           `json:"customerEmail"`
	CustomerName   string           `json:"customerName"`
	Cart           []model.LineItem `json:"cart"`
	TotalCost      float64          `json:"totalCost"`
	Address        string           `json:"address"`
	PaymentMethod  string           `json:"paymentMethod"`
	PaymentID      string           `json:"paymentId,omitempty"`
	GatewayOrderID string           `json:"gatewayOrderId,omitempty"`
	Status         string           `json:"transactionStatus"`
	InvoiceID      string           `json:"invoiceId,omitempty"`
	InvoiceURL     string           `json:"invoiceUrl,omitempty"`
}

// Create persists a new order. The idempotency key, when present, is attached
// so the store collapses duplicate retried writes.
func (c *Client) Create(ctx context.Context, order model.Order, idempotencyKey string) (*model.Order, error) {
	body := envelopeRequest{Data: toAttributes(order)}
	payload, err := c.doWithRetry(ctx, http.MethodPost, ordersPath, nil, body, idempotencyKey)
	if err != nil {
		return nil, err
	}

	rec, err := decodeRecord(payload)
	if err != nil {
		// The write went through but the store returned no record; the
		// caller assigns a fallback id.
		if errors.Is(err, domainErrors.ErrNotFound) {
			created := order
			created.ID = ""
			return &created, nil
		}
		return nil, err
	}
	return orderFromRecord(rec)
}

// FindByPaymentID returns the order carrying the given payment id.
func (c *Client) FindByPaymentID(ctx context.Context, paymentID string) (*model.Order, error) {
	return c.findOrder(ctx, "paymentId", paymentID)
}

// FindByGatewayOrderID returns the order carrying the given gateway order id.
func (c *Client) FindByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*model.Order, error) {
	return c.findOrder(ctx, "gatewayOrderId", gatewayOrderID)
}

// ListPending returns up to limit orders still awaiting payment confirmation.
func (c *Client) ListPending(ctx context.Context, limit int) ([]model.Order, error) {
	query := url.Values{}
	query.Set("filters[transactionStatus][$eq]", string(model.TransactionStatusPending))
	query.Set("pagination[pageSize]", strconv.Itoa(limit))

	payload, err := c.do(ctx, http.MethodGet, ordersPath, query, nil, "")
	if err != nil {
		return nil, err
	}

	recs, err := decodeRecords(payload)
	if err != nil {
		return nil, err
	}
	orders := make([]model.Order, 0, len(recs))
	for i := range recs {
		order, err := orderFromRecord(&recs[i])
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	return orders, nil
}

// Update applies a partial change to an existing order.
func (c *Client) Update(ctx context.Context, id string, fields map[string]any) (*model.Order, error) {
	body := envelopeRequest{Data: fields}
	payload, err := c.doWithRetry(ctx, http.MethodPut, ordersPath+"/"+id, nil, body, "")
	if err != nil {
		return nil, err
	}

	rec, err := decodeRecord(payload)
	if err != nil {
		return nil, err
	}
	return orderFromRecord(rec)
}

func (c *Client) findOrder(ctx context.Context, field, value string) (*model.Order, error) {
	if value == "" {
		return nil, domainErrors.ErrNotFound
	}
	query := url.Values{}
	query.Set(fmt.Sprintf("filters[%s][$eq]", field), value)

	payload, err := c.do(ctx, http.MethodGet, ordersPath, query, nil, "")
	if err != nil {
		return nil, err
	}

	recs, err := decodeRecords(payload)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, domainErrors.ErrNotFound
	}
	return orderFromRecord(&recs[0])
}

// envelopeRequest wraps outbound bodies under the store's data key.
type envelopeRequest struct {
	Data any `json:"data"`
}

func toAttributes(order model.Order) orderAttributes {
	return orderAttributes{
		CustomerEmail:  order.CustomerEmail,
		CustomerName:   order.CustomerName,
		Cart:           order.Cart,
		TotalCost:      order.TotalCost,
		Address:        order.Address,
		PaymentMethod:  order.PaymentMethod,
		PaymentID:      order.PaymentID,
		GatewayOrderID: order.GatewayOrderID,
		Status:         string(order.Status),
		InvoiceID:      order.InvoiceID,
		InvoiceURL:     order.InvoiceURL,
	}
}

func orderFromRecord(rec *record) (*model.Order, error) {
	var attrs orderAttributes
	if len(rec.Attributes) > 0 {
		if err := json.Unmarshal(rec.Attributes, &attrs); err != nil {
			return nil, fmt.Errorf("decode order attributes: %w", err)
		}
	}
	return &model.Order{
		ID:             rec.ID.String(),
		CustomerEmail:  attrs.CustomerEmail,
		CustomerName:   attrs.CustomerName,
		Cart:           attrs.Cart,
		TotalCost:      attrs.TotalCost,
		Address:        attrs.Address,
		PaymentMethod:  attrs.PaymentMethod,
		PaymentID:      attrs.PaymentID,
		GatewayOrderID: attrs.GatewayOrderID,
		Status:         model.TransactionStatus(attrs.Status),
		InvoiceID:      attrs.InvoiceID,
		InvoiceURL:     attrs.InvoiceURL,
	}, nil
}
