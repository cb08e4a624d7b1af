package model

// CheckoutRequest is the raw inbound checkout payload. Cart and TotalCost are
// kept untyped so validation can report shape errors field by field instead of
// failing on the first JSON type mismatch.
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

// NormalizedCheckout is a validated checkout ready for persistence.
type NormalizedCheckout struct {
	CustomerEmail  string
	CustomerName   string
	Cart           []LineItem
	TotalCost      float64
	Address        string
	PaymentMethod  string
	PaymentID      string
	GatewayOrderID string
	Signature      string
	IdempotencyKey string
}

// CheckoutResult is returned to the storefront after a successful checkout.
type CheckoutResult struct {
	OrderID     string
	RedirectURL string
}
