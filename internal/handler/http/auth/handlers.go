package auth

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"news-portal/internal/domain/entity"
	"news-portal/internal/handler/http/request"
	"news-portal/internal/handler/http/respond"
	"news-portal/internal/observability/logging"
	userUC "news-portal/internal/usecase/user"
)

// AccountService is the part of the user use case the auth endpoints need.
type AccountService interface {
	Signup(ctx context.Context, in userUC.SignupInput) (*userUC.Session, error)
	Login(ctx context.Context, email, password string) (*userUC.Session, error)
	Logout(ctx context.Context, actor entity.Actor, jti string, expiresAt time.Time) error
}

type signupRequest struct {
	Name     string `json:"name" example:"Jane Doe"`
	Email    string `json:"email" example:"jane@example.com"`
	Password string `json:"password" example:"correct-horse-battery"`
}

type loginRequest struct {
	Email    string `json:"email" example:"jane@example.com"`
	Password string `json:"password" example:"correct-horse-battery"`
}

// SignupHandler creates a user-role account and returns a token for it.
type SignupHandler struct{ Svc AccountService }

// ServeHTTP アカウント登録
// @Summary      アカウント登録
// @Description  user ロールのアカウントを作成し、JWT トークンを発行します
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body signupRequest true "登録情報"
// @Success      201 {object} respond.Envelope{data=SessionDTO} "Register successfully."
// @Failure      400 {object} respond.Envelope "Invalid request body"
// @Failure      422 {object} respond.Envelope "Validation error (email already exists, weak password)"
// @Failure      429 {object} respond.Envelope "Too many requests"
// @Failure      500 {object} respond.Envelope "Failed to register."
// @Router       /v1/auth/signup [post]
func (h SignupHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	defer func() { RecordAuthDuration("signup", time.Since(start).Seconds()) }()

	var req signupRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		respond.Failure(w, http.StatusBadRequest, "Invalid request body.", nil)
		return
	}

	sess, err := h.Svc.Signup(r.Context(), userUC.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respond.Fail(w, r, err, "Failed to register.")
		return
	}

	logging.WithTrace(r.Context(), slog.Default()).Info("account registered",
		slog.Int64("user_id", sess.User.ID))
	respond.Success(w, http.StatusCreated, "Register successfully.", newSessionDTO(sess))
}

// LoginHandler exchanges credentials for a token.
type LoginHandler struct{ Svc AccountService }

// ServeHTTP ログイン
// @Summary      ログイン
// @Description  メールアドレスとパスワードで認証し、JWT トークンを発行します
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body loginRequest true "ログイン情報"
// @Success      200 {object} respond.Envelope{data=SessionDTO} "Login successfully."
// @Failure      400 {object} respond.Envelope "Invalid request body"
// @Failure      401 {object} respond.Envelope "invalid credentials"
// @Failure      429 {object} respond.Envelope "Too many requests"
// @Failure      500 {object} respond.Envelope "Failed to login."
// @Router       /v1/auth/login [post]
func (h LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	defer func() { RecordAuthDuration("login", time.Since(start).Seconds()) }()

	var req loginRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		respond.Failure(w, http.StatusBadRequest, "Invalid request body.", nil)
		return
	}

	sess, err := h.Svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		// メールアドレスはログに残さない
		logging.WithTrace(r.Context(), slog.Default()).Warn("login failed",
			slog.Int("status", respond.StatusOf(err)))
		respond.Fail(w, r, err, "Failed to login.")
		return
	}

	respond.Success(w, http.StatusOK, "Login successfully.", newSessionDTO(sess))
}

// LogoutHandler revokes the bearer token used for the request.
type LogoutHandler struct{ Svc AccountService }

// ServeHTTP ログアウト
// @Summary      ログアウト
// @Description  使用中の JWT トークンを失効させます
// @Tags         auth
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} respond.Envelope "Logout successfully."
// @Failure      401 {object} respond.Envelope "Unauthenticated."
// @Failure      500 {object} respond.Envelope "Failed to logout."
// @Router       /v1/auth/logout [post]
func (h LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	defer func() { RecordAuthDuration("logout", time.Since(start).Seconds()) }()

	sess, ok := SessionFromContext(r.Context())
	if !ok {
		respond.Failure(w, http.StatusUnauthorized, "Unauthenticated.", nil)
		return
	}
	if err := h.Svc.Logout(r.Context(), sess.Actor, sess.JTI, sess.ExpiresAt); err != nil {
		respond.Fail(w, r, err, "Failed to logout.")
		return
	}
	respond.Success(w, http.StatusOK, "Logout successfully.", nil)
}
