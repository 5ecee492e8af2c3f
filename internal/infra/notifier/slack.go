package notifier

import (
	"context"
	"fmt"
	"time"

	"news-portal/internal/domain/entity"
)

// SlackConfig contains configuration for Slack webhook notifications.
type SlackConfig struct {
	// WebhookURL is the Incoming Webhook URL. Empty disables the channel.
	WebhookURL string

	// Timeout is the HTTP request timeout for Slack API calls
	Timeout time.Duration
}

// SlackNotifier posts moderation events to Slack via Incoming Webhook.
type SlackNotifier struct {
	hook *webhook
}

// NewSlackNotifier creates a Slack notifier limited to 1 request/second with
// burst of 1 (the Incoming Webhook limit).
func NewSlackNotifier(config SlackConfig) *SlackNotifier {
	return &SlackNotifier{
		hook: newWebhook("Slack", config.WebhookURL, config.Timeout, NewRateLimiter(1.0, 1)),
	}
}

// SlackWebhookPayload represents the JSON payload sent to Slack webhook using Block Kit.
type SlackWebhookPayload struct {
	Text   string       `json:"text"`   // Fallback text (required)
	Blocks []SlackBlock `json:"blocks"` // Rich formatting blocks
}

// SlackBlock represents a Slack Block Kit block.
type SlackBlock struct {
	Type     string            `json:"type"`               // "section", "context"
	Text     *SlackTextObject  `json:"text,omitempty"`     // Text content (for section)
	Elements []SlackTextObject `json:"elements,omitempty"` // Elements (for context)
}

// SlackTextObject represents a text object in Slack Block Kit.
type SlackTextObject struct {
	Type string `json:"type"` // "mrkdwn" or "plain_text"
	Text string `json:"text"`
}

const (
	// Slack Block Kit limits
	maxSectionTextLength = 3000
	maxFallbackLength    = 150

	slackTruncationSuffix = "..."
)

// Name returns "slack".
func (s *SlackNotifier) Name() string { return "slack" }

// IsEnabled reports whether a webhook URL is configured.
func (s *SlackNotifier) IsEnabled() bool { return s.hook.url != "" }

// Send posts ev to the webhook.
func (s *SlackNotifier) Send(ctx context.Context, ev entity.ModerationEvent) error {
	return s.hook.deliver(ctx, ev, s.buildBlockKitPayload(ev))
}

// buildBlockKitPayload renders ev as a section block (headline and title)
// followed by a context block (transition detail and timestamp).
func (s *SlackNotifier) buildBlockKitPayload(ev entity.ModerationEvent) SlackWebhookPayload {
	title := headline(ev)
	section := truncate(fmt.Sprintf("*%s*\n%s", title, escapeMrkdwn(ev.Title)), maxSectionTextLength, slackTruncationSuffix)
	footer := fmt.Sprintf("%s • %s", detail(ev), ev.At.UTC().Format(time.RFC3339))

	return SlackWebhookPayload{
		Text: truncate(title, maxFallbackLength, slackTruncationSuffix),
		Blocks: []SlackBlock{
			{Type: "section", Text: &SlackTextObject{Type: "mrkdwn", Text: section}},
			{Type: "context", Elements: []SlackTextObject{{Type: "mrkdwn", Text: footer}}},
		},
	}
}

// escapeMrkdwn escapes the three characters Slack treats as control sequences.
func escapeMrkdwn(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '&':
			out = append(out, "&amp;"...)
		case '<':
			out = append(out, "&lt;"...)
		case '>':
			out = append(out, "&gt;"...)
		default:
			out = append(out, s[i])
		}
	}
	return string(out)
}
