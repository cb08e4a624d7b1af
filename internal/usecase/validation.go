package usecase

import (
	domainErrors "github.com/kaalika/checkout/internal/domain/errors"
	"github.com/kaalika/checkout/internal/domain/model"
)

// ValidateCheckout checks shape and presence of every checkout field and
// collects all problems into one aggregate error.
func ValidateCheckout(req model.CheckoutRequest) (*model.NormalizedCheckout, error) {
	var fields []string

	cart, cartFields := validateCart(req.Cart)
	fields = append(fields, cartFields...)

	totalCost, ok := req.TotalCost.(float64)
	if !ok {
		fields = append(fields, "totalCost (must be a number)")
	} else if totalCost < 0 {
		fields = append(fields, "totalCost (must be non-negative)")
	}

	if req.Name == "" {
		fields = append(fields, "name")
	}
	if req.Address == "" {
		fields = append(fields, "address")
	}
	if req.PaymentMethod == "" {
		fields = append(fields, "paymentMethod")
	}

	if len(fields) > 0 {
		return nil, &domainErrors.ValidationError{Fields: fields}
	}

	return &model.NormalizedCheckout{
		CustomerEmail:  req.CustomerEmail,
		CustomerName:   req.Name,
		Cart:           cart,
		TotalCost:      totalCost,
		Address:        req.Address,
		PaymentMethod:  req.PaymentMethod,
		PaymentID:      req.PaymentID,
		GatewayOrderID: req.GatewayOrderID,
		Signature:      req.Signature,
		IdempotencyKey: req.IdempotencyKey,
	}, nil
}

func validateCart(raw any) ([]model.LineItem, []string) {
	if raw == nil {
		return nil, []string{"cart"}
	}
	entries, ok := raw.([]any)
	if !ok {
		return nil, []string{"cart (must be an array)"}
	}

	items := make([]model.LineItem, 0, len(entries))
	for _, entry := range entries {
		attrs, ok := entry.(map[string]any)
		if !ok {
			return nil, []string{"cart (invalid line item)"}
		}
		productID, _ := attrs["productId"].(string)
		quantity, qOK := attrs["quantity"].(float64)
		price, _ := attrs["price"].(float64)
		if productID == "" || !qOK || quantity <= 0 || quantity != float64(int(quantity)) {
			return nil, []string{"cart (invalid line item)"}
		}
		items = append(items, model.LineItem{
			ProductID: productID,
			Quantity:  int(quantity),
			Price:     price,
		})
	}
	return items, nil
}
