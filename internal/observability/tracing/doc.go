// Package tracing provides OpenTelemetry tracing integration.
//
// InitProvider installs an SDK tracer provider so that every request gets a
// real trace ID; Middleware starts one server span per HTTP request and
// returns the trace ID in the X-Trace-Id header. Spans are sampled but not
// exported; the IDs are used to correlate access logs, error logs and client
// reports.
//
// Example usage:
//
//	shutdown := tracing.InitProvider("news-portal", version)
//	defer func() { _ = shutdown(context.Background()) }()
//	handler := tracing.Middleware(mux)
package tracing
