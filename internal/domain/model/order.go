package model

// TransactionStatus describes payment state of an order. Besides the
// well-known values the gateway's raw status may be carried verbatim.
type TransactionStatus string

const (
	TransactionStatusPending TransactionStatus = "pending"
	TransactionStatusPaid    TransactionStatus = "paid"
	TransactionStatusFailed  TransactionStatus = "failed"
)

// LineItem is a single cart position. Immutable after order creation.
type LineItem struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// Order is the order record persisted in the remote content store.
type Order struct {
	ID             string            `json:"id,omitempty"`
	CustomerEmail  string            `json:"customerEmail"`
	CustomerName   string            `json:"customerName"`
	Cart           []LineItem        `json:"cart"`
	TotalCost      float64           `json:"totalCost"`
	Address        string            `json:"address"`
	PaymentMethod  string            `json:"paymentMethod"`
	PaymentID      string            `json:"paymentId,omitempty"`
	GatewayOrderID string            `json:"gatewayOrderId,omitempty"`
	Status         TransactionStatus `json:"transactionStatus"`
	InvoiceID      string            `json:"invoiceId,omitempty"`
	InvoiceURL     string            `json:"invoiceUrl,omitempty"`
}
