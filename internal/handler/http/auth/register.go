package auth

import "net/http"

// Register registers the signup, login and logout endpoints.
// limit wraps signup and login; pass nil to disable rate limiting.
func Register(mux *http.ServeMux, svc AccountService, limit func(http.Handler) http.Handler) {
	if limit == nil {
		limit = func(h http.Handler) http.Handler { return h }
	}
	mux.Handle("POST /v1/auth/signup", limit(SignupHandler{Svc: svc}))
	mux.Handle("POST /v1/auth/login", limit(LoginHandler{Svc: svc}))
	mux.Handle("POST /v1/auth/logout", LogoutHandler{Svc: svc})
}
