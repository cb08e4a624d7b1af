package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/kaalika/checkout/internal/domain/errors"
	"github.com/kaalika/checkout/internal/server/http/dto"
)

// SignatureHeader carries the gateway's HMAC over the raw request body.
const SignatureHeader = "X-Webhook-Signature"

// WebhookHandler ingests asynchronous payment events.
type WebhookHandler struct {
	facade WebhookFacade
}

// NewWebhookHandler constructs WebhookHandler.
func NewWebhookHandler(facade WebhookFacade) *WebhookHandler {
	return &WebhookHandler{facade: facade}
}

// Receive handles POST /api/webhooks/payment. The body is read as raw bytes;
// signature verification must see the payload exactly as delivered.
func (h *WebhookHandler) Receive(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.WebhookResponse{Status: "error", Message: "unreadable body"})
		return
	}

	result, err := h.facade.HandleWebhook(c.Request.Context(), raw, c.GetHeader(SignatureHeader))
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidSignature), errors.Is(err, domainErrors.ErrMissingSignature):
			c.JSON(http.StatusBadRequest, dto.WebhookResponse{Status: "error", Message: err.Error()})
		default:
			c.JSON(http.StatusBadRequest, dto.WebhookResponse{Status: "error", Message: "malformed event"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.WebhookResponse{
		Status:    "ok",
		Duplicate: result.Duplicate,
		OrderID:   result.OrderID,
	})
}
