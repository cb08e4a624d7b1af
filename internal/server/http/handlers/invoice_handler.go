package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kaalika/checkout/internal/server/http/dto"
)

// InvoiceHandler emails rendered invoices on demand.
type InvoiceHandler struct {
	facade InvoiceFacade
}

// NewInvoiceHandler constructs InvoiceHandler.
func NewInvoiceHandler(facade InvoiceFacade) *InvoiceHandler {
	return &InvoiceHandler{facade: facade}
}

// Send handles POST /api/send-invoice.
func (h *InvoiceHandler) Send(c *gin.Context) {
	var req dto.InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Recipient == "" || req.Subject == "" || req.HTML == "" {
		c.JSON(http.StatusBadRequest, dto.InvoiceResponse{Success: false, Message: "missing required fields"})
		return
	}

	if err := h.facade.SendInvoice(c.Request.Context(), req.Recipient, req.Subject, req.HTML); err != nil {
		c.JSON(http.StatusInternalServerError, dto.InvoiceResponse{Success: false, Message: "failed to send invoice"})
		return
	}

	c.JSON(http.StatusOK, dto.InvoiceResponse{Success: true, Message: "invoice sent"})
}
