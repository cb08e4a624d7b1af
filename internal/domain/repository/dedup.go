package repository

import "context"

// DedupStore records which webhook events have already been processed.
// Implementations are best-effort individually; the chained production store
// keeps a durable local tier as the backstop.
type DedupStore interface {
	IsProcessed(ctx context.Context, eventID string) (bool, error)
	MarkProcessed(ctx context.Context, eventID string, rawEvent []byte) error
}

// EventStore is the optional remote tier of the dedup chain, backed by the
// content store's webhook-events collection.
type EventStore interface {
	FindEvent(ctx context.Context, eventID string) (bool, error)
	CreateEvent(ctx context.Context, eventID string, rawEvent []byte) error
}
