// Package metrics holds the process-wide Prometheus collectors.
//
// Collectors are registered on the default registry through promauto and
// served by /metrics on the API and on the worker health port. Callers use the
// Record*/Update* helpers rather than touching the vectors, so label values
// stay consistent:
//
//	metrics.RecordTransition(entity.TransitionApprove, "success")
//	metrics.RecordReactionToggle(entity.TargetArticle, "liked")
//
// HTTP paths are normalized by pathutil before they reach RecordHTTPRequest.
package metrics
