package dto

// CheckoutRequest is the storefront checkout payload. Cart and TotalCost are
// untyped so validation can name every malformed field in one response.
type CheckoutRequest struct {
	Cart           any    `json:"cart"`
	TotalCost      any    `json:"totalCost"`
	Name           string `json:"name"`
	Address        string `json:"address"`
	PaymentMethod  string `json:"paymentMethod"`
	CustomerEmail  string `json:"customerEmail"`
	PaymentID      string `json:"paymentId"`
	GatewayOrderID string `json:"gatewayOrderId"`
	Signature      string `json:"signature"`
	IdempotencyKey string `json:"idempotencyKey"`
}

// CheckoutResponse mirrors the storefront's expected checkout result.
type CheckoutResponse struct {
	Success     bool   `json:"success"`
	OrderID     string `json:"orderId,omitempty"`
	RedirectURL string `json:"redirectUrl,omitempty"`
	Message     string `json:"message,omitempty"`
}
