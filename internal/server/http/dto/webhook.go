package dto

// WebhookResponse acknowledges an inbound gateway event. Duplicates are
// acknowledged with the marker set so the gateway stops redelivering.
type WebhookResponse struct {
	Status    string `json:"status"`
	Duplicate bool   `json:"duplicate,omitempty"`
	OrderID   string `json:"orderId,omitempty"`
	Message   string `json:"message,omitempty"`
}

// InvoiceRequest asks the service to email a rendered invoice.
type InvoiceRequest struct {
	Recipient string `json:"recipient"`
	Subject   string `json:"subject"`
	HTML      string `json:"html"`
}

// InvoiceResponse reports the outcome of an invoice send.
type InvoiceResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
