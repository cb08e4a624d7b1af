package usecase

import "testing"

func TestMapPaymentMethodAliases(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"credit-card", "Card"},
		{"paypal", "Paypal"},
		{"cod", "Cash on Delivery"},
		{"upi", "UPI"},
		{"gpay", "UPI"},
		{"netbanking", "Net Banking"},
		{"wallet", "Wallet"},
		{"razorpay", "Razorpay"},
	}

	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			got, ok := MapPaymentMethod(tc.input)
			if !ok {
				t.Fatalf("expected mapping for %q", tc.input)
			}
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestMapPaymentMethodCanonicalPassThrough(t *testing.T) {
	for _, method := range []string{"Card", "Paypal", "Cash on Delivery", "UPI", "Net Banking", "Wallet", "Razorpay"} {
		t.Run(method, func(t *testing.T) {
			got, ok := MapPaymentMethod(method)
			if !ok {
				t.Fatalf("expected canonical %q to pass through", method)
			}
			if got != method {
				t.Fatalf("expected %q unchanged, got %q", method, got)
			}
		})
	}
}

func TestMapPaymentMethodUnknown(t *testing.T) {
	for _, method := range []string{"bitcoin", "", "CARD", "upi "} {
		if got, ok := MapPaymentMethod(method); ok {
			t.Fatalf("expected no mapping for %q, got %q", method, got)
		}
	}
}
