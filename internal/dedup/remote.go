package dedup

import (
	"context"

	"github.com/kaalika/checkout/internal/domain/repository"
)

// RemoteStore adapts the content store's webhook-events collection to the
// DedupStore contract. It is the primary tier of the production chain.
type RemoteStore struct {
	events repository.EventStore
}

// NewRemoteStore wraps an EventStore.
func NewRemoteStore(events repository.EventStore) *RemoteStore {
	return &RemoteStore{events: events}
}

func (s *RemoteStore) IsProcessed(ctx context.Context, eventID string) (bool, error) {
	return s.events.FindEvent(ctx, eventID)
}

func (s *RemoteStore) MarkProcessed(ctx context.Context, eventID string, rawEvent []byte) error {
	return s.events.CreateEvent(ctx, eventID, rawEvent)
}
