package dedup

import (
	"context"
	"log/slog"

	"github.com/kaalika/checkout/internal/domain/repository"
)

// Chain is the production dedup store: a remote primary with a durable local
// fallback. The local tier is the backstop; a remote outage must never turn
// into duplicate side effects being allowed forever.
type Chain struct {
	remote repository.DedupStore
	local  repository.DedupStore
	logger *slog.Logger
}

// NewChain builds a remote-then-local dedup chain. remote may be nil when no
// remote tier is provisioned.
func NewChain(remote, local repository.DedupStore, logger *slog.Logger) *Chain {
	return &Chain{remote: remote, local: local, logger: logger}
}

// IsProcessed consults the remote tier first. A remote miss still checks the
// local tier, because marks taken during a remote outage exist only locally.
func (c *Chain) IsProcessed(ctx context.Context, eventID string) (bool, error) {
	if c.remote != nil {
		processed, err := c.remote.IsProcessed(ctx, eventID)
		if err == nil && processed {
			return true, nil
		}
		if err != nil {
			c.logger.Warn("remote dedup lookup failed, using local tier",
				slog.String("event_id", eventID),
				slog.String("error", err.Error()),
			)
		}
	}
	return c.local.IsProcessed(ctx, eventID)
}

// MarkProcessed writes to the remote tier and falls back to the local tier on
// failure.
func (c *Chain) MarkProcessed(ctx context.Context, eventID string, rawEvent []byte) error {
	if c.remote != nil {
		err := c.remote.MarkProcessed(ctx, eventID, rawEvent)
		if err == nil {
			return nil
		}
		c.logger.Warn("remote dedup mark failed, falling back to local tier",
			slog.String("event_id", eventID),
			slog.String("error", err.Error()),
		)
	}
	return c.local.MarkProcessed(ctx, eventID, rawEvent)
}
