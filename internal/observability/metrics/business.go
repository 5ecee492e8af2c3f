package metrics

import (
	"time"

	"news-portal/internal/domain/entity"
)

// RecordTransition records the result of a moderation transition.
// Result should be one of "success", "forbidden", "not_found", "conflict" or "error".
func RecordTransition(t entity.Transition, result string) {
	ModerationTransitionsTotal.WithLabelValues(string(t), result).Inc()
}

// RecordReactionToggle records a reaction toggle, e.g. ("article", "liked").
func RecordReactionToggle(target entity.TargetType, outcome string) {
	ReactionTogglesTotal.WithLabelValues(string(target), outcome).Inc()
}

// RecordCommentCreated records a new comment or reply.
func RecordCommentCreated(reply bool) {
	kind := "comment"
	if reply {
		kind = "reply"
	}
	CommentsCreatedTotal.WithLabelValues(kind).Inc()
}

// RecordActivityFailure records an audit entry that could not be written.
func RecordActivityFailure(target string) {
	ActivityLogFailuresTotal.WithLabelValues(target).Inc()
}

// RecordAuthAttempt records a signup or login attempt.
func RecordAuthAttempt(action string, success bool) {
	result := "success"
	if !success {
		result = "failure"
	}
	AuthAttemptsTotal.WithLabelValues(action, result).Inc()
}

// UpdateArticlesByStatus replaces the per-status gauge values.
// Statuses missing from counts are reset to zero.
func UpdateArticlesByStatus(counts map[entity.ArticleStatus]int64) {
	for _, st := range entity.AllStatuses {
		ArticlesByStatus.WithLabelValues(string(st)).Set(float64(counts[st]))
	}
}

// RecordTokensPruned adds n to the pruned revocations counter.
func RecordTokensPruned(n int64) {
	if n > 0 {
		RevokedTokensPrunedTotal.Add(float64(n))
	}
}

// RecordDBQuery records the duration of a database query operation.
// Operation should describe the query type (e.g., "list_articles", "save_transition").
func RecordDBQuery(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// UpdateDBConnectionStats updates database connection pool statistics.
func UpdateDBConnectionStats(active, idle int) {
	DBConnectionsActive.Set(float64(active))
	DBConnectionsIdle.Set(float64(idle))
}
