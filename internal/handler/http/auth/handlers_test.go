package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"news-portal/internal/domain/entity"
	authsvc "news-portal/internal/service/auth"
	userUC "news-portal/internal/usecase/user"
)

type stubAccounts struct {
	signupIn  userUC.SignupInput
	signupErr error
	loginErr  error
	logoutErr error

	loggedOut struct {
		actor entity.Actor
		jti   string
	}
}

func (s *stubAccounts) session() *userUC.Session {
	return &userUC.Session{
		User:  &entity.User{ID: 11, Name: "Jane", Email: "jane@example.com", Role: entity.RoleUser, PasswordHash: "$2a$secret"},
		Token: authsvc.IssuedToken{Value: "signed.jwt.value", JTI: "jti-1", ExpiresAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
}

func (s *stubAccounts) Signup(_ context.Context, in userUC.SignupInput) (*userUC.Session, error) {
	s.signupIn = in
	if s.signupErr != nil {
		return nil, s.signupErr
	}
	return s.session(), nil
}

func (s *stubAccounts) Login(_ context.Context, _, _ string) (*userUC.Session, error) {
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return s.session(), nil
}

func (s *stubAccounts) Logout(_ context.Context, actor entity.Actor, jti string, _ time.Time) error {
	s.loggedOut.actor = actor
	s.loggedOut.jti = jti
	return s.logoutErr
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func post(h http.Handler, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))
	return rec
}

func TestSignupHandler(t *testing.T) {
	svc := &stubAccounts{}
	rec := post(SignupHandler{Svc: svc}, `{"name":"Jane","email":"jane@example.com","password":"long-enough-pass"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, userUC.SignupInput{Name: "Jane", Email: "jane@example.com", Password: "long-enough-pass"}, svc.signupIn)

	body := decodeBody(t, rec)
	assert.Equal(t, "Register successfully.", body["message"])
	data := body["data"].(map[string]any)
	assert.Equal(t, "signed.jwt.value", data["token"])
	assert.Equal(t, "Bearer", data["token_type"])
	user := data["user"].(map[string]any)
	assert.Equal(t, "jane@example.com", user["email"])
	assert.NotContains(t, rec.Body.String(), "$2a$secret")
}

func TestSignupHandler_Errors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		err      error
		wantCode int
	}{
		{name: "malformed json", body: `{"name":`, wantCode: http.StatusBadRequest},
		{name: "email taken", body: `{}`, err: userUC.ErrEmailTaken, wantCode: http.StatusUnprocessableEntity},
		{name: "internal", body: `{}`, err: errors.New("db down"), wantCode: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(SignupHandler{Svc: &stubAccounts{signupErr: tt.err}}, tt.body)
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, false, decodeBody(t, rec)["ok"])
		})
	}
}

func TestLoginHandler(t *testing.T) {
	rec := post(LoginHandler{Svc: &stubAccounts{}}, `{"email":"jane@example.com","password":"pw"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Login successfully.", decodeBody(t, rec)["message"])

	rec = post(LoginHandler{Svc: &stubAccounts{loginErr: userUC.ErrInvalidCredentials}}, `{"email":"x@y.z","password":"bad"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid credentials", decodeBody(t, rec)["message"])
}

func TestLogoutHandler(t *testing.T) {
	svc := &stubAccounts{}
	h := LogoutHandler{Svc: svc}

	// セッションなし
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/auth/logout", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	sess := Session{Actor: entity.Actor{UserID: 4, Role: entity.RoleUser}, JTI: "jti-4", ExpiresAt: time.Now().Add(time.Hour)}
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/logout", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req.WithContext(WithSession(req.Context(), sess)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "jti-4", svc.loggedOut.jti)
	assert.Equal(t, int64(4), svc.loggedOut.actor.UserID)
}

func TestRegister_RateLimitWrapsCredentialsOnly(t *testing.T) {
	blocked := func(http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		})
	}
	mux := http.NewServeMux()
	Register(mux, &stubAccounts{}, blocked)

	for _, path := range []string{"/v1/auth/signup", "/v1/auth/login"} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, strings.NewReader(`{}`)))
		assert.Equal(t, http.StatusTooManyRequests, rec.Code, path)
	}

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/auth/logout", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
