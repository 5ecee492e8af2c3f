// Package profile serves the authenticated user's own account.
package profile

import (
	"context"
	"net/http"

	"news-portal/internal/domain/entity"
	"news-portal/internal/handler/http/auth"
	"news-portal/internal/handler/http/request"
	"news-portal/internal/handler/http/respond"
	userUC "news-portal/internal/usecase/user"
)

// Service is the part of the user use case the profile endpoints need.
type Service interface {
	Profile(ctx context.Context, actor entity.Actor) (*entity.User, error)
	UpdateProfile(ctx context.Context, actor entity.Actor, in userUC.ProfileInput) (*entity.User, error)
}

type updateRequest struct {
	Name     *string `json:"name,omitempty" example:"Jane Doe"`
	Email    *string `json:"email,omitempty" example:"jane@example.com"`
	Password *string `json:"password,omitempty" example:"another-long-passphrase"`
}

// GetHandler returns the caller's profile.
type GetHandler struct{ Svc Service }

// ServeHTTP プロフィール取得
// @Summary      プロフィール取得
// @Description  ログイン中のユーザー情報を取得します
// @Tags         profile
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} respond.Envelope{data=auth.UserDTO} "Get profile successfully"
// @Failure      401 {object} respond.Envelope "Unauthenticated"
// @Failure      404 {object} respond.Envelope "User not found"
// @Failure      500 {object} respond.Envelope "Failed to get profile."
// @Router       /v1/profile [get]
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	u, err := h.Svc.Profile(r.Context(), auth.ActorFromContext(r.Context()))
	if err != nil {
		respond.Fail(w, r, err, "Failed to get profile.")
		return
	}
	respond.Success(w, http.StatusOK, "Get profile successfully", auth.NewUserDTO(u))
}

// UpdateHandler changes the caller's name, email or password.
type UpdateHandler struct{ Svc Service }

// ServeHTTP プロフィール更新
// @Summary      プロフィール更新
// @Description  名前・メールアドレス・パスワードを部分更新します
// @Tags         profile
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        profile body updateRequest true "更新内容"
// @Success      200 {object} respond.Envelope{data=auth.UserDTO} "Update profile successfully"
// @Failure      400 {object} respond.Envelope "Invalid request body"
// @Failure      401 {object} respond.Envelope "Unauthenticated"
// @Failure      422 {object} respond.Envelope "Validation error"
// @Failure      500 {object} respond.Envelope "Update profile failed"
// @Router       /v1/profile [patch]
func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		respond.Failure(w, http.StatusBadRequest, "Invalid request body.", nil)
		return
	}

	u, err := h.Svc.UpdateProfile(r.Context(), auth.ActorFromContext(r.Context()), userUC.ProfileInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respond.Fail(w, r, err, "Update profile failed")
		return
	}
	respond.Success(w, http.StatusOK, "Update profile successfully", auth.NewUserDTO(u))
}

// Register mounts the profile routes on mux.
func Register(mux *http.ServeMux, svc Service) {
	mux.Handle("GET /v1/profile", GetHandler{Svc: svc})
	mux.Handle("PATCH /v1/profile", UpdateHandler{Svc: svc})
}
