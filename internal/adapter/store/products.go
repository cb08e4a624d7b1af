package store

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	domainErrors "github.com/kaalika/checkout/internal/domain/errors"
)

const productsPath = "/api/products"

// stockFieldCandidates lists the attribute names that may hold the available
// quantity, tried in order. Catalogs disagree on the name.
var stockFieldCandidates = []string{"stock", "quantity", "inventory", "available"}

// Stock fetches a product and discovers which attribute holds its available
// quantity, returning the field name and the current value.
func (c *Client) Stock(ctx context.Context, productID string) (string, float64, error) {
	payload, err := c.do(ctx, http.MethodGet, productsPath+"/"+productID, nil, nil, "")
	if err != nil {
		return "", 0, err
	}

	rec, err := decodeRecord(payload)
	if err != nil {
		return "", 0, err
	}

	var attrs map[string]any
	if len(rec.Attributes) > 0 {
		if err := json.Unmarshal(rec.Attributes, &attrs); err != nil {
			return "", 0, fmt.Errorf("decode product attributes: %w", err)
		}
	}

	for _, field := range stockFieldCandidates {
		if value, ok := attrs[field].(float64); ok {
			return field, value, nil
		}
	}
	return "", 0, fmt.Errorf("product %s: %w: no stock-like field", productID, domainErrors.ErrNotFound)
}

// SetStock writes a new quantity into the discovered stock field.
func (c *Client) SetStock(ctx context.Context, productID, field string, value float64) error {
	body := envelopeRequest{Data: map[string]any{field: value}}
	_, err := c.doWithRetry(ctx, http.MethodPut, productsPath+"/"+productID, nil, body, "")
	return err
}
