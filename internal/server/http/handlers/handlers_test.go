package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/kaalika/checkout/internal/domain/errors"
	"github.com/kaalika/checkout/internal/domain/model"
	"github.com/kaalika/checkout/internal/server/http/dto"
	testhelpers "github.com/kaalika/checkout/internal/test"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performRequest(t *testing.T, method, path string, handler gin.HandlerFunc, body []byte, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.Handle(method, path, handler)

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func checkoutBody(t *testing.T) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]any{
		"cart":          []map[string]any{{"productId": "p1", "quantity": 2, "price": 500}},
		"totalCost":     1000,
		"name":          "Asha Rao",
		"address":       "12 Temple Street",
		"paymentMethod": "upi",
		"customerEmail": "asha@example.com",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return body
}

func TestCheckoutHandlerCreate(t *testing.T) {
	idemKey := testhelpers.RandomASCIIString(8, 16)
	handler := NewCheckoutHandler(testhelpers.FacadeStub{
		CheckoutFn: func(_ context.Context, req model.CheckoutRequest, headerKey string) (*model.CheckoutResult, error) {
			if req.PaymentMethod != "upi" {
				t.Fatalf("unexpected payment method: %q", req.PaymentMethod)
			}
			if headerKey != idemKey {
				t.Fatalf("expected idempotency header forwarded, got %q", headerKey)
			}
			return &model.CheckoutResult{OrderID: "42", RedirectURL: "/order/success?orderId=42"}, nil
		},
	})

	resp := performRequest(t, http.MethodPost, "/api/checkout", handler.Create, checkoutBody(t), map[string]string{
		"Content-Type":    "application/json",
		"Idempotency-Key": idemKey,
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var body dto.CheckoutResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !body.Success || body.OrderID != "42" || body.RedirectURL != "/order/success?orderId=42" {
		t.Fatalf("unexpected response: %+v", body)
	}
}

func TestCheckoutHandlerErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "validation error",
			err:        &domainErrors.ValidationError{Fields: []string{"address"}},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "missing or invalid fields: address",
		},
		{
			name:       "invalid payment method",
			err:        domainErrors.ErrInvalidPaymentMethod,
			wantStatus: http.StatusBadRequest,
			wantMsg:    "invalid payment method",
		},
		{
			name:       "payment not accepted",
			err:        domainErrors.ErrPaymentNotAccepted,
			wantStatus: http.StatusBadRequest,
			wantMsg:    "payment not accepted",
		},
		{
			name:       "invalid signature",
			err:        domainErrors.ErrInvalidSignature,
			wantStatus: http.StatusBadRequest,
			wantMsg:    "invalid signature",
		},
		{
			name:       "missing credentials",
			err:        domainErrors.ErrNoCredentials,
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "store API token not set",
		},
		{
			name:       "store failure",
			err:        &domainErrors.RemoteError{Op: "POST /api/orders", Status: 502, Transient: true},
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "failed to save order",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewCheckoutHandler(testhelpers.FacadeStub{
				CheckoutFn: func(context.Context, model.CheckoutRequest, string) (*model.CheckoutResult, error) {
					return nil, tc.err
				},
			})
			resp := performRequest(t, http.MethodPost, "/api/checkout", handler.Create, checkoutBody(t), map[string]string{"Content-Type": "application/json"})
			if resp.Code != tc.wantStatus {
				t.Fatalf("expected status %d, got %d", tc.wantStatus, resp.Code)
			}
			var body dto.CheckoutResponse
			if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if body.Success || body.Message != tc.wantMsg {
				t.Fatalf("unexpected response: %+v", body)
			}
		})
	}
}

func TestCheckoutHandlerMalformedJSON(t *testing.T) {
	handler := NewCheckoutHandler(testhelpers.FacadeStub{
		CheckoutFn: func(context.Context, model.CheckoutRequest, string) (*model.CheckoutResult, error) {
			t.Fatal("facade must not be reached for malformed json")
			return nil, nil
		},
	})
	resp := performRequest(t, http.MethodPost, "/api/checkout", handler.Create, []byte("{not json"), map[string]string{"Content-Type": "application/json"})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestWebhookHandlerReceive(t *testing.T) {
	raw := []byte(`{"id":"evt_1","event":"payment.captured"}`)
	handler := NewWebhookHandler(testhelpers.FacadeStub{
		HandleWebhookFn: func(_ context.Context, gotRaw []byte, sig string) (*model.WebhookResult, error) {
			if !bytes.Equal(gotRaw, raw) {
				t.Fatalf("expected exact raw body, got %s", gotRaw)
			}
			if sig != "abc123" {
				t.Fatalf("expected signature header forwarded, got %q", sig)
			}
			return &model.WebhookResult{OrderID: "42"}, nil
		},
	})

	resp := performRequest(t, http.MethodPost, "/api/webhooks/payment", handler.Receive, raw, map[string]string{SignatureHeader: "abc123"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var body dto.WebhookResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Status != "ok" || body.OrderID != "42" || body.Duplicate {
		t.Fatalf("unexpected response: %+v", body)
	}
}

func TestWebhookHandlerDuplicateAcknowledged(t *testing.T) {
	handler := NewWebhookHandler(testhelpers.FacadeStub{
		HandleWebhookFn: func(context.Context, []byte, string) (*model.WebhookResult, error) {
			return &model.WebhookResult{Duplicate: true}, nil
		},
	})

	resp := performRequest(t, http.MethodPost, "/api/webhooks/payment", handler.Receive, []byte("{}"), nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("duplicates must be acknowledged with 200, got %d", resp.Code)
	}
	var body dto.WebhookResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !body.Duplicate {
		t.Fatal("expected duplicate marker in response")
	}
}

func TestWebhookHandlerErrorMapping(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{"invalid signature", domainErrors.ErrInvalidSignature, "invalid signature"},
		{"missing signature", domainErrors.ErrMissingSignature, "missing signature"},
		{"malformed body", errors.New("decode event: unexpected end of JSON input"), "malformed event"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewWebhookHandler(testhelpers.FacadeStub{
				HandleWebhookFn: func(context.Context, []byte, string) (*model.WebhookResult, error) {
					return nil, tc.err
				},
			})
			resp := performRequest(t, http.MethodPost, "/api/webhooks/payment", handler.Receive, []byte("{}"), nil)
			if resp.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d", resp.Code)
			}
			var body dto.WebhookResponse
			if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if body.Status != "error" || body.Message != tc.wantMsg {
				t.Fatalf("unexpected response: %+v", body)
			}
		})
	}
}

func TestInvoiceHandlerSend(t *testing.T) {
	var gotRecipient, gotSubject, gotHTML string
	handler := NewInvoiceHandler(testhelpers.FacadeStub{
		SendInvoiceFn: func(_ context.Context, recipient, subject, html string) error {
			gotRecipient, gotSubject, gotHTML = recipient, subject, html
			return nil
		},
	})

	body, _ := json.Marshal(dto.InvoiceRequest{
		Recipient: "asha@example.com",
		Subject:   "Your invoice",
		HTML:      "<p>Invoice</p>",
	})
	resp := performRequest(t, http.MethodPost, "/api/send-invoice", handler.Send, body, map[string]string{"Content-Type": "application/json"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if gotRecipient != "asha@example.com" || gotSubject != "Your invoice" || gotHTML != "<p>Invoice</p>" {
		t.Fatalf("unexpected facade call: %q %q %q", gotRecipient, gotSubject, gotHTML)
	}
}

func TestInvoiceHandlerMissingFields(t *testing.T) {
	handler := NewInvoiceHandler(testhelpers.FacadeStub{
		SendInvoiceFn: func(context.Context, string, string, string) error {
			t.Fatal("facade must not be reached for incomplete request")
			return nil
		},
	})

	body, _ := json.Marshal(dto.InvoiceRequest{Recipient: "asha@example.com"})
	resp := performRequest(t, http.MethodPost, "/api/send-invoice", handler.Send, body, map[string]string{"Content-Type": "application/json"})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestInvoiceHandlerMailerFailure(t *testing.T) {
	handler := NewInvoiceHandler(testhelpers.FacadeStub{
		SendInvoiceFn: func(context.Context, string, string, string) error {
			return &domainErrors.RemoteError{Op: "send mail", Status: 500, Transient: true}
		},
	})

	body, _ := json.Marshal(dto.InvoiceRequest{
		Recipient: "asha@example.com",
		Subject:   "Your invoice",
		HTML:      "<p>Invoice</p>",
	})
	resp := performRequest(t, http.MethodPost, "/api/send-invoice", handler.Send, body, map[string]string{"Content-Type": "application/json"})
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", resp.Code)
	}
}
