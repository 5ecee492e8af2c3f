package comment

import (
	"log/slog"
	"net/http"
	"time"

	"news-portal/internal/common/pagination"
	"news-portal/internal/domain/entity"
	"news-portal/internal/handler/http/auth"
	"news-portal/internal/handler/http/pathutil"
	"news-portal/internal/handler/http/request"
	"news-portal/internal/handler/http/respond"
	"news-portal/internal/observability/logging"
	"news-portal/internal/repository"
	cmtUC "news-portal/internal/usecase/comment"
	"news-portal/internal/usecase/reaction"
)

type createRequest struct {
	ArticleID int64  `json:"article_id" example:"5"`
	Content   string `json:"content" example:"Great news!"`
}

type contentRequest struct {
	Content string `json:"content" example:"Thanks for the update"`
}

type toggleRequest struct {
	Type string `json:"type" example:"like" enums:"like,dislike"`
}

// ListHandler serves the comment listing.
type ListHandler struct {
	Svc        Service
	Pagination pagination.Config
}

// ServeHTTP コメント一覧取得
// @Summary      コメント一覧取得
// @Description  コメントをページネーション付きで取得します。各コメントには直下の返信が含まれます
// @Tags         comments
// @Security     BearerAuth
// @Produce      json
// @Param        page query int false "ページ番号" default(1) minimum(1)
// @Param        limit query int false "1ページあたりの件数" default(20) minimum(1) maximum(100)
// @Param        sort_by query string false "ソート項目" Enums(id, created_at, updated_at)
// @Param        sort query int false "1: 昇順, -1: 降順" Enums(1, -1)
// @Param        article_id query int false "記事ID"
// @Param        parent_id query string false "親コメントID（null でトップレベルのみ）"
// @Param        content query string false "本文（部分一致）"
// @Param        start_created_at query string false "作成日（開始, YYYY-MM-DD）"
// @Param        end_created_at query string false "作成日（終了, YYYY-MM-DD）"
// @Success      200 {object} respond.Envelope{data=pagination.Response[DTO]} "Get list comments successfully"
// @Failure      401 {object} respond.Envelope "Unauthenticated"
// @Failure      422 {object} respond.Envelope "Invalid query parameter"
// @Failure      500 {object} respond.Envelope "Failed get comments"
// @Router       /v1/comments [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	status := http.StatusOK
	page := 0
	defer func() {
		pagination.RecordRequest("comments", status, page)
		pagination.RecordDuration("comments", time.Since(start).Seconds())
	}()

	params, sort, err := request.Listing(r, h.Pagination, repository.CommentSortFields)
	if err == nil {
		page = params.Page
	}
	var filter repository.CommentFilter
	if err == nil {
		filter, err = ParseFilter(r.URL.Query())
	}
	var res *cmtUC.ListResult
	if err == nil {
		res, err = h.Svc.List(r.Context(), auth.ActorFromContext(r.Context()), filter, params, sort)
	}
	if err != nil {
		status = respond.StatusOf(err)
		respond.Fail(w, r, err, "Failed get comments")
		return
	}

	respond.Success(w, http.StatusOK, "Get list comments successfully",
		pagination.NewResponse(FromViews(res.Items), res.Pagination, res.Sort))
}

// CreateHandler adds a top-level comment to an article.
type CreateHandler struct{ Svc Service }

// ServeHTTP コメント作成
// @Summary      コメント作成
// @Description  記事にトップレベルのコメントを追加します
// @Tags         comments
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        comment body createRequest true "コメント内容"
// @Success      201 {object} respond.Envelope{data=DTO} "Comment has been created successfully."
// @Failure      400 {object} respond.Envelope "Invalid request body"
// @Failure      401 {object} respond.Envelope "Unauthenticated"
// @Failure      404 {object} respond.Envelope "Article not found."
// @Failure      422 {object} respond.Envelope "Validation error"
// @Failure      500 {object} respond.Envelope "Failed to create comment."
// @Router       /v1/comments [post]
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		respond.Failure(w, http.StatusBadRequest, "Invalid request body.", nil)
		return
	}
	if req.ArticleID <= 0 {
		respond.Fail(w, r, &entity.ValidationError{Field: "article_id", Message: "article_id is required"}, "Failed to create comment.")
		return
	}

	c, err := h.Svc.Add(r.Context(), auth.ActorFromContext(r.Context()), req.ArticleID, req.Content)
	if err != nil {
		respond.Fail(w, r, err, "Failed to create comment.")
		return
	}

	logging.WithTrace(r.Context(), slog.Default()).Info("comment created",
		slog.Int64("comment_id", c.ID),
		slog.Int64("article_id", c.ArticleID))
	respond.Success(w, http.StatusCreated, "Comment has been created successfully.", FromComment(c))
}

// ReplyHandler answers an existing comment. The reply joins the parent's article.
type ReplyHandler struct{ Svc Service }

// ServeHTTP コメント返信
// @Summary      コメント返信
// @Description  指定したコメントに返信します。返信は親コメントと同じ記事に紐づきます
// @Tags         comments
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path int true "親コメントID"
// @Param        comment body contentRequest true "返信内容"
// @Success      201 {object} respond.Envelope{data=DTO} "Comment has been created successfully."
// @Failure      400 {object} respond.Envelope "Invalid request body"
// @Failure      401 {object} respond.Envelope "Unauthenticated"
// @Failure      404 {object} respond.Envelope "Parent comment not found."
// @Failure      422 {object} respond.Envelope "Validation error"
// @Failure      500 {object} respond.Envelope "Failed to create comment."
// @Router       /v1/comments/{id}/reply [post]
func (h ReplyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	parentID, err := pathutil.PathID(r, "id")
	if err != nil {
		respond.Fail(w, r, cmtUC.ErrInvalidCommentID, "Failed to create comment.")
		return
	}
	var req contentRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		respond.Failure(w, http.StatusBadRequest, "Invalid request body.", nil)
		return
	}

	c, err := h.Svc.Reply(r.Context(), auth.ActorFromContext(r.Context()), parentID, req.Content)
	if err != nil {
		respond.Fail(w, r, err, "Failed to create comment.")
		return
	}

	respond.Success(w, http.StatusCreated, "Comment has been created successfully.", FromComment(c))
}

// GetHandler returns one comment with its direct replies.
type GetHandler struct{ Svc Service }

// ServeHTTP コメント詳細取得
// @Summary      コメント詳細取得
// @Description  指定されたIDのコメントを返信付きで取得します
// @Tags         comments
// @Security     BearerAuth
// @Produce      json
// @Param        id path int true "コメントID"
// @Success      200 {object} respond.Envelope{data=DTO} "Comment found."
// @Failure      401 {object} respond.Envelope "Unauthenticated"
// @Failure      404 {object} respond.Envelope "Comment not found."
// @Failure      500 {object} respond.Envelope "Failed get comments"
// @Router       /v1/comments/{id} [get]
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.PathID(r, "id")
	if err != nil {
		respond.Fail(w, r, cmtUC.ErrInvalidCommentID, "Failed get comments")
		return
	}

	view, err := h.Svc.Get(r.Context(), auth.ActorFromContext(r.Context()), id)
	if err != nil {
		respond.Fail(w, r, err, "Failed get comments")
		return
	}

	respond.Success(w, http.StatusOK, "Comment found.", FromView(view))
}

// UpdateHandler edits a comment's content.
type UpdateHandler struct{ Svc Service }

// ServeHTTP コメント更新
// @Summary      コメント更新
// @Description  コメント本文を更新します。投稿者のみ（admin は全コメント）
// @Tags         comments
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path int true "コメントID"
// @Param        comment body contentRequest true "更新内容"
// @Success      200 {object} respond.Envelope{data=DTO} "Comment has been updated successfully."
// @Failure      400 {object} respond.Envelope "Invalid request body"
// @Failure      401 {object} respond.Envelope "Unauthenticated"
// @Failure      403 {object} respond.Envelope "Not authorized"
// @Failure      404 {object} respond.Envelope "Comment not found."
// @Failure      422 {object} respond.Envelope "Validation error"
// @Failure      500 {object} respond.Envelope "Failed to update comment."
// @Router       /v1/comments/{id} [patch]
func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.PathID(r, "id")
	if err != nil {
		respond.Fail(w, r, cmtUC.ErrInvalidCommentID, "Failed to update comment.")
		return
	}
	var req contentRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		respond.Failure(w, http.StatusBadRequest, "Invalid request body.", nil)
		return
	}

	c, err := h.Svc.Update(r.Context(), auth.ActorFromContext(r.Context()), id, req.Content)
	if err != nil {
		respond.Fail(w, r, err, "Failed to update comment.")
		return
	}

	respond.Success(w, http.StatusOK, "Comment has been updated successfully.", FromComment(c))
}

// DeleteHandler soft-deletes a comment.
type DeleteHandler struct{ Svc Service }

// ServeHTTP コメント削除
// @Summary      コメント削除
// @Description  コメントを論理削除します。投稿者のみ（admin は全コメント）
// @Tags         comments
// @Security     BearerAuth
// @Produce      json
// @Param        id path int true "コメントID"
// @Success      200 {object} respond.Envelope "Comment has been deleted successfully."
// @Failure      401 {object} respond.Envelope "Unauthenticated"
// @Failure      403 {object} respond.Envelope "Not authorized"
// @Failure      404 {object} respond.Envelope "Comment not found."
// @Failure      500 {object} respond.Envelope "Failed to delete comment."
// @Router       /v1/comments/{id} [delete]
func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.PathID(r, "id")
	if err != nil {
		respond.Fail(w, r, cmtUC.ErrInvalidCommentID, "Failed to delete comment.")
		return
	}

	if err := h.Svc.Delete(r.Context(), auth.ActorFromContext(r.Context()), id); err != nil {
		respond.Fail(w, r, err, "Failed to delete comment.")
		return
	}

	respond.Success(w, http.StatusOK, "Comment has been deleted successfully.", nil)
}

// ToggleReactionHandler adds or removes the caller's like or dislike on a comment.
type ToggleReactionHandler struct{ Svc Service }

// ServeHTTP コメントリアクション切替
// @Summary      コメントリアクション切替
// @Description  like / dislike をトグルします
// @Tags         comments
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path int true "コメントID"
// @Param        reaction body toggleRequest true "リアクション種別"
// @Success      200 {object} respond.Envelope "Successfully toggle reaction to liked"
// @Failure      400 {object} respond.Envelope "Invalid request body"
// @Failure      401 {object} respond.Envelope "Unauthenticated"
// @Failure      404 {object} respond.Envelope "Comment not found."
// @Failure      422 {object} respond.Envelope "type must be like or dislike"
// @Failure      500 {object} respond.Envelope "Failed toggle reaction"
// @Router       /v1/comments/{id}/toggle-reaction [post]
func (h ToggleReactionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.PathID(r, "id")
	if err != nil {
		respond.Fail(w, r, cmtUC.ErrInvalidCommentID, "Failed toggle reaction")
		return
	}
	var req toggleRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		respond.Failure(w, http.StatusBadRequest, "Invalid request body.", nil)
		return
	}
	kind, err := entity.ParseReactionKind(req.Type)
	if err != nil {
		respond.Fail(w, r, err, "Failed toggle reaction")
		return
	}

	outcome, err := h.Svc.ToggleReaction(r.Context(), auth.ActorFromContext(r.Context()), id, kind)
	if err != nil {
		respond.Fail(w, r, err, "Failed toggle reaction")
		return
	}

	respond.Success(w, http.StatusOK, reaction.Message(kind, outcome), nil)
}
