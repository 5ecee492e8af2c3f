package notifier

import (
	"context"
	"time"

	"news-portal/internal/domain/entity"
)

// DiscordConfig contains configuration for Discord webhook notifications.
type DiscordConfig struct {
	// WebhookURL is the Discord webhook URL. Empty disables the channel.
	WebhookURL string

	// Timeout is the HTTP request timeout for Discord API calls
	Timeout time.Duration
}

// DiscordNotifier posts moderation events to Discord via webhook.
type DiscordNotifier struct {
	hook *webhook
}

// NewDiscordNotifier creates a Discord notifier limited to 0.5 requests/second
// with burst of 3 (30 requests per minute per webhook).
func NewDiscordNotifier(config DiscordConfig) *DiscordNotifier {
	return &DiscordNotifier{
		hook: newWebhook("Discord", config.WebhookURL, config.Timeout, NewRateLimiter(0.5, 3)),
	}
}

// DiscordWebhookPayload represents the JSON payload sent to Discord webhook.
type DiscordWebhookPayload struct {
	Embeds []DiscordEmbed `json:"embeds"`
}

// DiscordEmbed represents a Discord embed message.
type DiscordEmbed struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Color       int                `json:"color"`
	Footer      DiscordEmbedFooter `json:"footer"`
	Timestamp   string             `json:"timestamp"`
}

// DiscordEmbedFooter represents the footer of a Discord embed.
type DiscordEmbedFooter struct {
	Text string `json:"text"`
}

const (
	// Discord limits
	maxTitleLength       = 256
	maxDescriptionLength = 4096
	truncationSuffix     = "..."
)

// embedColors gives each transition its own sidebar color.
var embedColors = map[entity.Transition]int{
	entity.TransitionSubmit:    0xF1C40F, // yellow
	entity.TransitionApprove:   0x2ECC71, // green
	entity.TransitionReject:    0xE74C3C, // red
	entity.TransitionPublish:   0x5865F2, // blurple
	entity.TransitionUnpublish: 0x95A5A6, // grey
}

// Name returns "discord".
func (d *DiscordNotifier) Name() string { return "discord" }

// IsEnabled reports whether a webhook URL is configured.
func (d *DiscordNotifier) IsEnabled() bool { return d.hook.url != "" }

// Send posts ev to the webhook.
func (d *DiscordNotifier) Send(ctx context.Context, ev entity.ModerationEvent) error {
	return d.hook.deliver(ctx, ev, d.buildEmbedPayload(ev))
}

func (d *DiscordNotifier) buildEmbedPayload(ev entity.ModerationEvent) DiscordWebhookPayload {
	return DiscordWebhookPayload{
		Embeds: []DiscordEmbed{{
			Title:       truncate(headline(ev), maxTitleLength, truncationSuffix),
			Description: truncate(ev.Title, maxDescriptionLength, truncationSuffix),
			Color:       embedColors[ev.Transition],
			Footer:      DiscordEmbedFooter{Text: detail(ev)},
			Timestamp:   ev.At.UTC().Format(time.RFC3339),
		}},
	}
}
