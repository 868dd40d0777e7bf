// Package notify delivers best-effort announcements to event
// participants. Delivery failures are logged, never surfaced back to
// the scheduling core.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Broadcaster sends one announcement to a set of recipients. The
// scheduling service invokes it exactly once per cancellation or
// capacity change, with the full affected-recipient set.
type Broadcaster interface {
	Broadcast(ctx context.Context, recipients []string, message string) error
}

// Announcement is the wire envelope published for each recipient.
type Announcement struct {
	ID      string    `json:"id"`
	To      string    `json:"to"`
	Message string    `json:"message"`
	SentAt  time.Time `json:"sent_at"`
}

// RedisBroadcaster publishes announcements over Redis pub/sub, one
// per-user channel per recipient.
type RedisBroadcaster struct {
	client redis.UniversalClient
}

// NewRedisBroadcaster wraps a Redis client.
func NewRedisBroadcaster(client redis.UniversalClient) *RedisBroadcaster {
	return &RedisBroadcaster{client: client}
}

// Channel returns the pub/sub channel for a recipient.
func Channel(username string) string {
	return fmt.Sprintf("user-%s", username)
}

// Broadcast publishes the announcement to every recipient's channel.
// All recipients are attempted even if some publishes fail; the first
// failure is returned for logging by the caller.
func (b *RedisBroadcaster) Broadcast(ctx context.Context, recipients []string, message string) error {
	ann := Announcement{
		ID:      uuid.New().String(),
		Message: message,
		SentAt:  time.Now().UTC(),
	}

	var firstErr error
	for _, recipient := range recipients {
		ann.To = recipient
		payload, err := json.Marshal(ann)
		if err != nil {
			return fmt.Errorf("marshal announcement: %w", err)
		}
		if err := b.client.Publish(ctx, Channel(recipient), string(payload)).Err(); err != nil {
			log.Warn().Err(err).Str("recipient", recipient).Msg("announcement publish failed")
			if firstErr == nil {
				firstErr = fmt.Errorf("publish to %s: %w", recipient, err)
			}
		}
	}
	return firstErr
}

// NopBroadcaster drops all announcements. Used when no Redis address is
// configured.
type NopBroadcaster struct{}

// Broadcast discards the announcement.
func (NopBroadcaster) Broadcast(ctx context.Context, recipients []string, message string) error {
	return nil
}
