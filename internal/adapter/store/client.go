package store

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
	"github.com/kaalika/checkout/internal/pkg/mask"
)

// Client talks to the headless content store holding orders, products and
// processed webhook events. Writes are retried with exponential backoff on
// transient failures; an Idempotency-Key header lets the store collapse
// retried creates into one logical record.
type Client struct {
	baseURL    *url.URL
	token      string
	httpClient *http.Client
	logger     *slog.Logger
	maxRetries int
	baseDelay  time.Duration
}

// envelope is the store's data-wrapped request/response body.
type envelope struct {
	Data json.RawMessage `json:"data"`
}

// record is a single store entity: numeric id plus an attribute object.
type record struct {
	ID         json.Number     `json:"id"`
	Attributes json.RawMessage `json:"attributes"`
}

// NewClient creates a store client with default timeout.
func NewClient(baseURL, token string, maxRetries int, baseDelay time.Duration, logger *slog.Logger) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse store url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("store url must be absolute")
	}
	if maxRetries < 0 {
		maxRetries = 0
	}
	if baseDelay <= 0 {
		baseDelay = 500 * time.Millisecond
	}
	logger.Info("store client configured",
		slog.String("url", parsed.String()),
		slog.String("token", mask.Secret(token)),
	)
	return &Client{
		baseURL:    parsed,
		token:      token,
		logger:     logger,
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// do performs a single request against the store and classifies failures.
func (c *Client) do(ctx context.Context, method, p string, query url.Values, body any, idempotencyKey string) ([]byte, error) {
	if c.token == "" {
		return nil, domainErrors.ErrNoCredentials
	}

	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, p)
	if query != nil {
		endpoint.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode store request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}

	op := method + " " + p
	resp, err := c.httpClient.Do(req)
	if err != nil {
		// No response at all: connection reset, timeout, refused.
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
		c.logger.Warn("store request failed",
			slog.String("op", op),
			slog.Int("status", resp.StatusCode),
		)
		return nil, &domainErrors.RemoteError{Op: op, Status: resp.StatusCode, Transient: true}
	default:
		c.logger.Error("store rejected request",
			slog.String("op", op),
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(payload)),
		)
		return nil, &domainErrors.RemoteError{Op: op, Status: resp.StatusCode}
	}
}

// doWithRetry retries transient failures with exponential backoff
// (baseDelay * 2^(attempt-1)), up to maxRetries additional attempts.
// Permanent failures are surfaced immediately.
func (c *Client) doWithRetry(ctx context.Context, method, p string, query url.Values, body any, idempotencyKey string) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= c.maxRetries+1; attempt++ {
		payload, err := c.do(ctx, method, p, query, body, idempotencyKey)
		if err == nil {
			return payload, nil
		}
		if !domainErrors.IsTransient(err) {
			return nil, err
		}
		lastErr = err
		if attempt == c.maxRetries+1 {
			break
		}

		delay := c.baseDelay * time.Duration(1<<(attempt-1))
		c.logger.Warn("retrying store request",
			slog.String("op", method+" "+p),
			slog.Int("attempt", attempt),
			slog.Duration("delay", delay),
		)
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	return nil, lastErr
}

func decodeRecord(payload []byte) (*record, error) {
	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return nil, fmt.Errorf("decode store response: %w", err)
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil, domainErrors.ErrNotFound
	}
	var rec record
	if err := json.Unmarshal(env.Data, &rec); err != nil {
		return nil, fmt.Errorf("decode store record: %w", err)
	}
	return &rec, nil
}

func decodeRecords(payload []byte) ([]record, error) {
	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return nil, fmt.Errorf("decode store response: %w", err)
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil, nil
	}
	var recs []record
	if err := json.Unmarshal(env.Data, &recs); err != nil {
		return nil, fmt.Errorf("decode store records: %w", err)
	}
	return recs, nil
}
