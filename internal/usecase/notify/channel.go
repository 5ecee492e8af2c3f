// Package notify fans article moderation events out to chat channels in the
// background so a slow or failing webhook never delays the API response.
package notify

import (
	"context"

	"news-portal/internal/domain/entity"
)

// Channel is one notification destination such as a Slack or Discord webhook.
//
// Implementations own their rate limiting and retries, must be safe for
// concurrent use and must respect ctx cancellation.
type Channel interface {
	// Name is the lowercase identifier used in logs and metric labels.
	Name() string

	// IsEnabled reports whether the channel is configured. Disabled channels are skipped.
	IsEnabled() bool

	// Send delivers ev, returning an error only after the channel's own retries are exhausted.
	Send(ctx context.Context, ev entity.ModerationEvent) error
}
