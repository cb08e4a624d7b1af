package usecase

// paymentMethodAliases maps client-facing payment tokens to the canonical
// vocabulary stored on orders.
var paymentMethodAliases = map[string]string{
	"credit-card": "Card",
	"paypal":      "Paypal",
	"cod":         "Cash on Delivery",
	"upi":         "UPI",
	"gpay":        "UPI",
	"netbanking":  "Net Banking",
	"wallet":      "Wallet",
	"razorpay":    "Razorpay",
}

// canonicalPaymentMethods is the identity side of the vocabulary: canonical
// tokens pass through unchanged.
var canonicalPaymentMethods = map[string]struct{}{
	"Card":             {},
	"Paypal":           {},
	"Cash on Delivery": {},
	"UPI":              {},
	"Net Banking":      {},
	"Wallet":           {},
	"Razorpay":         {},
}

// MapPaymentMethod resolves a payment-method token against the fixed
// vocabulary. Unknown tokens report no mapping rather than an error.
func MapPaymentMethod(method string) (string, bool) {
	if canonical, ok := paymentMethodAliases[method]; ok {
		return canonical, true
	}
	if _, ok := canonicalPaymentMethods[method]; ok {
		return method, true
	}
	return "", false
}
