package repository

import "context"

// ProductStore gives access to the externally owned product records.
// The stock-like field name varies between catalogs, so reads report which
// field held the quantity and writes address that field.
type ProductStore interface {
	Stock(ctx context.Context, productID string) (field string, value float64, err error)
	SetStock(ctx context.Context, productID, field string, value float64) error
}
