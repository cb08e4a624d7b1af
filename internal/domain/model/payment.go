package model

// Payment statuses reported by the gateway.
const (
	PaymentStatusCaptured   = "captured"
	PaymentStatusAuthorized = "authorized"
	PaymentStatusFailed     = "failed"
)

// Payment mirrors a payment entity fetched from the gateway.
// Amount is expressed in minor currency units.
type Payment struct {
	ID             string `json:"id"`
	GatewayOrderID string `json:"order_id"`
	Status         string `json:"status"`
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
	Email          string `json:"email"`
	Contact        string `json:"contact"`
	Method         string `json:"method"`
}

// MajorAmount converts the minor-unit amount to major units.
func (p Payment) MajorAmount() float64 {
	return float64(p.Amount) / 100
}

// PaymentEvent is an asynchronous event delivered by the gateway webhook.
type PaymentEvent struct {
	ID      string   `json:"id"`
	Type    string   `json:"event"`
	Payment *Payment `json:"-"`
}

// DedupeID returns the identifier used to recognize redeliveries. Falls back
// to event type plus payment id when the gateway supplies no event id.
func (e PaymentEvent) DedupeID() string {
	if e.ID != "" {
		return e.ID
	}
	paymentID := ""
	if e.Payment != nil {
		paymentID = e.Payment.ID
	}
	return e.Type + ":" + paymentID
}

// GatewayOrder is an order registered with the payment gateway.
type GatewayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// Invoice is the gateway-issued invoice attached back onto an order.
type Invoice struct {
	ID       string `json:"id"`
	ShortURL string `json:"short_url"`
}

// WebhookResult reports the outcome of processing one inbound event.
type WebhookResult struct {
	Duplicate bool
	OrderID   string
}
