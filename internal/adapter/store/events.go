package store

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

const eventsPath = "/api/webhook-events"

// FindEvent reports whether a processed-webhook record exists for eventID.
func (c *Client) FindEvent(ctx context.Context, eventID string) (bool, error) {
	query := url.Values{}
	query.Set("filters[eventId][$eq]", eventID)

	payload, err := c.do(ctx, http.MethodGet, eventsPath, query, nil, "")
	if err != nil {
		return false, err
	}

	recs, err := decodeRecords(payload)
	if err != nil {
		return false, err
	}
	return len(recs) > 0, nil
}

// CreateEvent records eventID as processed together with the raw payload.
func (c *Client) CreateEvent(ctx context.Context, eventID string, rawEvent []byte) error {
	body := envelopeRequest{Data: map[string]any{
		"eventId":     eventID,
		"payload":     string(rawEvent),
		"processedAt": time.Now().UTC().Format(time.RFC3339),
	}}
	_, err := c.doWithRetry(ctx, http.MethodPost, eventsPath, nil, body, "")
	return err
}
