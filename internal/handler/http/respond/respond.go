// Package respond writes the JSON envelope every /v1 endpoint returns and maps
// domain errors onto HTTP status codes. Internal errors are sanitized before
// they are logged and are only echoed to clients when explicitly enabled.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync/atomic"

	"news-portal/internal/domain/entity"
	"news-portal/internal/observability/logging"
)

// Envelope is the body of every /v1 response.
type Envelope struct {
	OK         bool   `json:"ok"`
	Message    string `json:"message"`
	Data       any    `json:"data"`
	StatusCode int    `json:"statusCode"`
}

var exposeInternal atomic.Bool

// SetExposeInternalErrors controls whether 500 responses carry the raw error in data.error.
func SetExposeInternalErrors(v bool) {
	exposeInternal.Store(v)
}

// JSON writes a JSON response with the given status code and data.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			// Log the error but cannot send error response as headers already sent
			slog.Default().Error("failed to encode JSON response",
				slog.Int("status_code", code),
				slog.Any("error", err))
		}
	}
}

// Success writes {"ok": true, ...}.
func Success(w http.ResponseWriter, code int, message string, data any) {
	JSON(w, code, Envelope{OK: true, Message: message, Data: data, StatusCode: code})
}

// Failure writes {"ok": false, ...} with an explicit status and message.
func Failure(w http.ResponseWriter, code int, message string, data any) {
	JSON(w, code, Envelope{OK: false, Message: message, Data: data, StatusCode: code})
}

// Fail maps err onto a status code and writes the failure envelope.
// Business errors carry their own client message; anything unrecognised is a
// 500 that reports fallback, e.g. "Failed to approve article.".
func Fail(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	code, message, data := classify(err)
	if code == http.StatusInternalServerError {
		logging.WithTrace(r.Context(), slog.Default()).Error("internal server error",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("message", fallback),
			slog.String("error", SanitizeError(err)))
		message = fallback
		if exposeInternal.Load() {
			data = map[string]string{"error": SanitizeError(err)}
		}
	}
	Failure(w, code, message, data)
}

// StatusOf returns the status code Fail would use for err.
func StatusOf(err error) int {
	code, _, _ := classify(err)
	return code
}

func classify(err error) (int, string, any) {
	var (
		ve  *entity.ValidationError
		sce *entity.StatusConflictError
		de  *entity.DomainError
	)
	switch {
	case err == nil:
		return http.StatusOK, "", nil
	case errors.As(err, &ve):
		// 422 はフィールド単位のエラーを data.errors に入れる
		return http.StatusUnprocessableEntity, ve.Message,
			map[string]any{"errors": map[string]string{ve.Field: ve.Message}}
	case errors.As(err, &sce):
		return http.StatusBadRequest, sce.Error(), nil
	case errors.As(err, &de):
		return statusOfKind(de.Kind), de.Message, nil
	case errors.Is(err, entity.ErrNotFound),
		errors.Is(err, entity.ErrForbidden),
		errors.Is(err, entity.ErrConflict),
		errors.Is(err, entity.ErrUnauthenticated),
		errors.Is(err, entity.ErrInvalidInput):
		code := statusOfErr(err)
		return code, http.StatusText(code), nil
	default:
		return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError), nil
	}
}

func statusOfKind(kind error) int {
	if kind == nil {
		return http.StatusInternalServerError
	}
	return statusOfErr(kind)
}

func statusOfErr(err error) int {
	switch {
	case errors.Is(err, entity.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, entity.ErrConflict):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, entity.ErrInvalidInput):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
