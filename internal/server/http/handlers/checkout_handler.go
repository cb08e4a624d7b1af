package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/kaalika/checkout/internal/domain/errors"
	"github.com/kaalika/checkout/internal/domain/model"
	"github.com/kaalika/checkout/internal/server/http/dto"
)

// CheckoutHandler manages the storefront checkout endpoint.
type CheckoutHandler struct {
	facade CheckoutFacade
}

// NewCheckoutHandler constructs CheckoutHandler.
func NewCheckoutHandler(facade CheckoutFacade) *CheckoutHandler {
	return &CheckoutHandler{facade: facade}
}

// Create handles POST /api/checkout.
func (h *CheckoutHandler) Create(c *gin.Context) {
	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.CheckoutResponse{Success: false, Message: "invalid request body"})
		return
	}

	result, err := h.facade.Checkout(c.Request.Context(), model.CheckoutRequest{
		Cart:           req.Cart,
		TotalCost:      req.TotalCost,
		Name:           req.Name,
		Address:        req.Address,
		PaymentMethod:  req.PaymentMethod,
		CustomerEmail:  req.CustomerEmail,
		PaymentID:      req.PaymentID,
		GatewayOrderID: req.GatewayOrderID,
		Signature:      req.Signature,
		IdempotencyKey: req.IdempotencyKey,
	}, c.GetHeader("Idempotency-Key"))
	if err != nil {
		status, message := checkoutError(err)
		c.JSON(status, dto.CheckoutResponse{Success: false, Message: message})
		return
	}

	c.JSON(http.StatusOK, dto.CheckoutResponse{
		Success:     true,
		OrderID:     result.OrderID,
		RedirectURL: result.RedirectURL,
	})
}

func checkoutError(err error) (int, string) {
	var validation *domainErrors.ValidationError
	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest, validation.Error()
	case errors.Is(err, domainErrors.ErrInvalidPaymentMethod),
		errors.Is(err, domainErrors.ErrPaymentNotAccepted),
		errors.Is(err, domainErrors.ErrInvalidSignature),
		errors.Is(err, domainErrors.ErrMissingSignature):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domainErrors.ErrNoCredentials):
		return http.StatusInternalServerError, "store API token not set"
	default:
		return http.StatusInternalServerError, "failed to save order"
	}
}
