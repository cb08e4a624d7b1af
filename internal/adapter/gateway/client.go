package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"time"

	domainErrors "github.com/kaalika/checkout/internal/domain/errors"
	"github.com/kaalika/checkout/internal/domain/model"
	"github.com/kaalika/checkout/internal/domain/repository"
	"github.com/kaalika/checkout/internal/pkg/mask"
)

// Client exposes payment gateway operations.
type Client interface {
	repository.PaymentGateway
}

// HTTPClient implements Client against the gateway's REST API using basic
// auth. All amounts are minor currency units.
type HTTPClient struct {
	baseURL    *url.URL
	keyID      string
	keySecret  string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewHTTPClient creates a gateway client with default timeout.
func NewHTTPClient(baseURL, keyID, keySecret string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse gateway url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("gateway url must be absolute")
	}
	logger.Info("gateway client configured",
		slog.String("url", parsed.String()),
		slog.String("key", mask.Secret(keyID)),
	)
	return &HTTPClient{
		baseURL:   parsed,
		keyID:     keyID,
		keySecret: keySecret,
		logger:    logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// FetchPayment retrieves a payment entity by id.
func (c *HTTPClient) FetchPayment(ctx context.Context, paymentID string) (*model.Payment, error) {
	payload, err := c.do(ctx, http.MethodGet, "/v1/payments/"+paymentID, nil)
	if err != nil {
		return nil, err
	}
	var payment model.Payment
	if err := json.Unmarshal(payload, &payment); err != nil {
		return nil, fmt.Errorf("decode payment: %w", err)
	}
	return &payment, nil
}

// CreateOrder registers an order with the gateway before collecting payment.
func (c *HTTPClient) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*model.GatewayOrder, error) {
	body := map[string]any{
		"amount":   amount,
		"currency": currency,
		"receipt":  receipt,
	}
	payload, err := c.do(ctx, http.MethodPost, "/v1/orders", body)
	if err != nil {
		return nil, err
	}
	var order model.GatewayOrder
	if err := json.Unmarshal(payload, &order); err != nil {
		return nil, fmt.Errorf("decode gateway order: %w", err)
	}
	return &order, nil
}

// CreateInvoice issues an invoice and asks the gateway to send it.
func (c *HTTPClient) CreateInvoice(ctx context.Context, req repository.InvoiceRequest) (*model.Invoice, error) {
	items := make([]map[string]any, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, map[string]any{
			"name":     item.Name,
			"amount":   item.Amount,
			"currency": item.Currency,
			"quantity": item.Quantity,
		})
	}

	customer := map[string]any{"email": req.CustomerEmail}
	if req.CustomerName != "" {
		customer["name"] = req.CustomerName
	}

	body := map[string]any{
		"type":         "invoice",
		"customer":     customer,
		"line_items":   items,
		"currency":     req.Currency,
		"sms_notify":   0,
		"email_notify": 1,
	}

	payload, err := c.do(ctx, http.MethodPost, "/v1/invoices", body)
	if err != nil {
		return nil, err
	}
	var invoice model.Invoice
	if err := json.Unmarshal(payload, &invoice); err != nil {
		return nil, fmt.Errorf("decode invoice: %w", err)
	}
	return &invoice, nil
}

func (c *HTTPClient) do(ctx context.Context, method, p string, body any) ([]byte, error) {
	if c.keyID == "" || c.keySecret == "" {
		return nil, domainErrors.ErrNoCredentials
	}

	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, p)

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode gateway request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), reader)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.keyID, c.keySecret)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	op := method + " " + p
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domainErrors.RemoteError{Op: op, Transient: true, Err: err}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domainErrors.RemoteError{Op: op, Transient: true, Err: err}
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return payload, nil
	case resp.StatusCode >= 500:
		return nil, &domainErrors.RemoteError{Op: op, Status: resp.StatusCode, Transient: true}
	default:
		c.logger.Error("gateway rejected request",
			slog.String("op", op),
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(payload)),
		)
		return nil, &domainErrors.RemoteError{Op: op, Status: resp.StatusCode}
	}
}
