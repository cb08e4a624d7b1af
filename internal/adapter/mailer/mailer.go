package mailer

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
	"github.com/kaalika/checkout/internal/domain/repository"
	"github.com/kaalika/checkout/internal/pkg/mask"
)

// HTTPMailer sends transactional email through a SendGrid-style REST API.
type HTTPMailer struct {
	baseURL    *url.URL
	apiKey     string
	from       string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewHTTPMailer creates a mailer client with default timeout.
func NewHTTPMailer(baseURL, apiKey, from string, logger *slog.Logger) (*HTTPMailer, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse mail url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("mail url must be absolute")
	}
	logger.Info("mail client configured",
		slog.String("from", from),
		slog.String("key", mask.Secret(apiKey)),
	)
	return &HTTPMailer{
		baseURL: parsed,
		apiKey:  apiKey,
		from:    from,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// Send delivers one message. Callers treat failures as best-effort.
func (m *HTTPMailer) Send(ctx context.Context, msg repository.Message) error {
	if m.apiKey == "" {
		return domainErrors.ErrNoCredentials
	}

	content := make([]map[string]string, 0, 2)
	if msg.Text != "" {
		content = append(content, map[string]string{"type": "text/plain", "value": msg.Text})
	}
	if msg.HTML != "" {
		content = append(content, map[string]string{"type": "text/html", "value": msg.HTML})
	}

	body := map[string]any{
		"personalizations": []map[string]any{
			{"to": []map[string]string{{"email": msg.To}}},
		},
		"from":    map[string]string{"email": m.from},
		"subject": msg.Subject,
		"content": content,
	}

	encoded, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode mail request: %w", err)
	}

	endpoint := *m.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/v3/mail/send")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(encoded))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return &domainErrors.RemoteError{Op: "send mail", Transient: true, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(resp.Body)
		m.logger.Error("mail provider rejected message",
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(payload)),
		)
		return &domainErrors.RemoteError{Op: "send mail", Status: resp.StatusCode, Transient: resp.StatusCode >= 500}
	}
	return nil
}
