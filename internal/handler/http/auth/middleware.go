// Package auth verifies bearer tokens and serves the signup, login and logout endpoints.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"news-portal/internal/domain/entity"
	"news-portal/internal/handler/http/respond"
	"news-portal/internal/observability/logging"
	authsvc "news-portal/internal/service/auth"
)

type ctxKey string

const ctxSession ctxKey = "session"

// Session is the verified bearer token of the current request.
type Session struct {
	Actor     entity.Actor
	JTI       string
	ExpiresAt time.Time
}

// WithSession stores s in ctx.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, ctxSession, s)
}

// SessionFromContext returns the session attached by the middleware.
func SessionFromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(ctxSession).(Session)
	return s, ok
}

// ActorFromContext returns the authenticated actor, or entity.Anonymous.
func ActorFromContext(ctx context.Context) entity.Actor {
	if s, ok := SessionFromContext(ctx); ok {
		return s.Actor
	}
	return entity.Anonymous
}

// TokenParser verifies a signed token.
type TokenParser interface {
	Parse(token string) (*authsvc.Claims, error)
}

// RevocationChecker reports whether a token id has been logged out.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

var (
	errMissingToken = errors.New("missing bearer token")
	errRevokedToken = errors.New("token revoked")
)

// Authenticator is the bearer token middleware.
type Authenticator struct {
	Tokens      TokenParser
	Revocations RevocationChecker
	// PublicEndpoints defaults to DefaultPublicEndpoints.
	PublicEndpoints []string
}

func (a *Authenticator) endpoints() []string {
	if a.PublicEndpoints == nil {
		return DefaultPublicEndpoints
	}
	return a.PublicEndpoints
}

// Authz requires a valid, unrevoked bearer token on every endpoint except the
// public ones. On public endpoints a valid token is attached to the context and
// an invalid or missing one leaves the request anonymous.
func (a *Authenticator) Authz(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		a.serve(w, r, next, IsPublicEndpoint(r.URL.Path, a.endpoints()))
	})
}

// Optional attaches the actor when a valid token is present and never rejects.
func (a *Authenticator) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		a.serve(w, r, next, true)
	})
}

func (a *Authenticator) serve(w http.ResponseWriter, r *http.Request, next http.Handler, optional bool) {
	start := time.Now()
	sess, err := a.authenticate(r)
	RecordAuthzCheckDuration(time.Since(start).Seconds())

	if err == nil {
		RecordBearerCheck(string(sess.Actor.Role), "success")
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
		return
	}

	result := resultOf(err)
	RecordBearerCheck("unknown", result)
	if optional {
		if result == "error" {
			logging.WithTrace(r.Context(), slog.Default()).Warn("token check failed on public endpoint, continuing anonymously",
				slog.String("path", r.URL.Path),
				slog.String("error", respond.SanitizeError(err)))
		}
		next.ServeHTTP(w, r)
		return
	}
	if result == "error" {
		respond.Fail(w, r, err, "Failed to authenticate.")
		return
	}
	respond.Failure(w, http.StatusUnauthorized, "Unauthenticated.", nil)
}

func (a *Authenticator) authenticate(r *http.Request) (Session, error) {
	const prefix = "Bearer "
	authz := r.Header.Get("Authorization")
	if !strings.HasPrefix(authz, prefix) {
		return Session{}, errMissingToken
	}
	claims, err := a.Tokens.Parse(strings.TrimSpace(strings.TrimPrefix(authz, prefix)))
	if err != nil {
		return Session{}, err
	}
	actor, err := claims.Actor()
	if err != nil {
		return Session{}, err
	}

	if a.Revocations != nil {
		revoked, err := a.Revocations.IsRevoked(r.Context(), claims.ID)
		if err != nil {
			return Session{}, fmt.Errorf("check revocation: %w", err)
		}
		if revoked {
			return Session{}, errRevokedToken
		}
	}

	sess := Session{Actor: actor, JTI: claims.ID}
	if claims.ExpiresAt != nil {
		sess.ExpiresAt = claims.ExpiresAt.Time
	}
	return sess, nil
}

func resultOf(err error) string {
	switch {
	case errors.Is(err, errMissingToken):
		return "missing"
	case errors.Is(err, errRevokedToken):
		return "revoked"
	case errors.Is(err, authsvc.ErrInvalidToken):
		return "invalid"
	default:
		return "error"
	}
}
