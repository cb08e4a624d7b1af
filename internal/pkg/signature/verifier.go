package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"

	domainErrors "github.com/kaalika/checkout/internal/domain/errors"
)

// Verifier validates that inbound payloads were signed by the payment
// gateway with the shared webhook secret. In required mode a missing
// signature rejects the request; in advisory mode it proceeds with a warning.
type Verifier struct {
	secret   []byte
	required bool
	logger   *slog.Logger
}

// New builds a Verifier for the given shared secret.
func New(secret string, required bool, logger *slog.Logger) *Verifier {
	return &Verifier{secret: []byte(secret), required: required, logger: logger}
}

// VerifyPayload checks the signature over the exact raw bytes of a webhook
// body. The body must not be re-serialized before verification.
func (v *Verifier) VerifyPayload(raw []byte, provided string) error {
	return v.verify(raw, provided)
}

// VerifyPaymentConfirmation checks the synchronous checkout confirmation,
// where the signed text is the gateway order id and payment id joined with a
// pipe rather than a full payload.
func (v *Verifier) VerifyPaymentConfirmation(gatewayOrderID, paymentID, provided string) error {
	return v.verify([]byte(gatewayOrderID+"|"+paymentID), provided)
}

func (v *Verifier) verify(signed []byte, provided string) error {
	if provided == "" {
		if v.required {
			return domainErrors.ErrMissingSignature
		}
		v.logger.Warn("signature header absent, proceeding unverified")
		return nil
	}

	providedMAC, err := hex.DecodeString(provided)
	if err != nil {
		return domainErrors.ErrInvalidSignature
	}

	mac := hmac.New(sha256.New, v.secret)
	mac.Write(signed)
	if !hmac.Equal(mac.Sum(nil), providedMAC) {
		return domainErrors.ErrInvalidSignature
	}
	return nil
}

// Sign computes the hex-encoded signature for payload. The producing side of
// the verifier contract, used to build signed payloads in tests.
func (v *Verifier) Sign(payload []byte) string {
	mac := hmac.New(sha256.New, v.secret)
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}
