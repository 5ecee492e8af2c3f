// Package dashboard serves the public reading surface: published articles and
// their comments. A bearer token is optional and only personalises reactions.
package dashboard

import (
	"context"
	"net/http"
	"time"

	"news-portal/internal/common/pagination"
	"news-portal/internal/domain/entity"
	"news-portal/internal/handler/http/article"
	"news-portal/internal/handler/http/auth"
	"news-portal/internal/handler/http/comment"
	"news-portal/internal/handler/http/pathutil"
	"news-portal/internal/handler/http/request"
	"news-portal/internal/handler/http/respond"
	"news-portal/internal/repository"
	artUC "news-portal/internal/usecase/article"
	cmtUC "news-portal/internal/usecase/comment"
)

// Articles reads published articles.
type Articles interface {
	ListPublished(ctx context.Context, viewer entity.Actor, filter repository.ArticleFilter, params pagination.Params, sort pagination.Sort) (*artUC.ListResult, error)
	GetPublished(ctx context.Context, viewer entity.Actor, id int64) (*artUC.View, error)
}

// Comments reads the comment thread of a published article.
type Comments interface {
	ListForPublishedArticle(ctx context.Context, viewer entity.Actor, articleID int64, params pagination.Params, sort pagination.Sort) (*cmtUC.ListResult, error)
}

// ListHandler lists published articles.
type ListHandler struct {
	Articles   Articles
	Pagination pagination.Config
}

// ServeHTTP 公開記事一覧取得
// @Summary      公開記事一覧取得
// @Description  公開中 (published) の記事をページネーション付きで取得します。認証は任意です
// @Tags         dashboard
// @Produce      json
// @Param        page query int false "ページ番号" default(1) minimum(1)
// @Param        limit query int false "1ページあたりの件数" default(20) minimum(1) maximum(100)
// @Param        sort_by query string false "ソート項目" Enums(id, title, published_at, created_at, updated_at)
// @Param        sort query int false "1: 昇順, -1: 降順" Enums(1, -1)
// @Param        user_id query int false "作成者ID"
// @Param        title query string false "タイトル（部分一致）"
// @Param        content query string false "本文（部分一致）"
// @Param        start_published_at query string false "公開日（開始, YYYY-MM-DD）"
// @Param        end_published_at query string false "公開日（終了, YYYY-MM-DD）"
// @Success      200 {object} respond.Envelope{data=pagination.Response[article.DTO]} "Get list articles for dashboard successfully"
// @Failure      422 {object} respond.Envelope "Invalid query parameter"
// @Failure      500 {object} respond.Envelope "Failed get articles"
// @Router       /v1/dashboard [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	status := http.StatusOK
	page := 0
	defer func() {
		pagination.RecordRequest("dashboard", status, page)
		pagination.RecordDuration("dashboard", time.Since(start).Seconds())
	}()

	fail := func(err error) {
		status = respond.StatusOf(err)
		respond.Fail(w, r, err, "Failed get articles")
	}

	params, sort, err := request.Listing(r, h.Pagination, repository.ArticleSortFields)
	if err != nil {
		fail(err)
		return
	}
	page = params.Page

	filter, err := article.ParseFilter(r.URL.Query())
	if err != nil {
		fail(err)
		return
	}

	res, err := h.Articles.ListPublished(r.Context(), auth.ActorFromContext(r.Context()), filter, params, sort)
	if err != nil {
		fail(err)
		return
	}

	respond.Success(w, http.StatusOK, "Get list articles for dashboard successfully",
		pagination.NewResponse(article.FromViews(res.Items), res.Pagination, res.Sort))
}

// DetailHandler returns one published article with rendered content.
type DetailHandler struct{ Articles Articles }

// ServeHTTP 公開記事詳細取得
// @Summary      公開記事詳細取得
// @Description  公開中の記事を取得します。未公開・削除済みの記事は 404 になります
// @Tags         dashboard
// @Produce      json
// @Param        id path int true "記事ID"
// @Success      200 {object} respond.Envelope{data=article.DTO} "Article found."
// @Failure      404 {object} respond.Envelope "Article not found."
// @Failure      422 {object} respond.Envelope "Invalid ID"
// @Failure      500 {object} respond.Envelope "Failed get articles"
// @Router       /v1/dashboard/{id} [get]
func (h DetailHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.PathID(r, "id")
	if err != nil {
		respond.Fail(w, r, artUC.ErrInvalidArticleID, "Failed get articles")
		return
	}

	view, err := h.Articles.GetPublished(r.Context(), auth.ActorFromContext(r.Context()), id)
	if err != nil {
		respond.Fail(w, r, err, "Failed get articles")
		return
	}

	respond.Success(w, http.StatusOK, "Article found.", article.FromView(view))
}

// CommentsHandler lists the top-level comments of a published article with their replies.
type CommentsHandler struct {
	Comments   Comments
	Pagination pagination.Config
}

// ServeHTTP 公開記事コメント一覧取得
// @Summary      公開記事コメント一覧取得
// @Description  公開中の記事のトップレベルコメントを返信付きで取得します
// @Tags         dashboard
// @Produce      json
// @Param        id path int true "記事ID"
// @Param        page query int false "ページ番号" default(1) minimum(1)
// @Param        limit query int false "1ページあたりの件数" default(20) minimum(1) maximum(100)
// @Param        sort_by query string false "ソート項目" Enums(id, created_at, updated_at)
// @Param        sort query int false "1: 昇順, -1: 降順" Enums(1, -1)
// @Success      200 {object} respond.Envelope{data=pagination.Response[comment.DTO]} "Get list comments successfully"
// @Failure      404 {object} respond.Envelope "Article not found."
// @Failure      422 {object} respond.Envelope "Invalid query parameter"
// @Failure      500 {object} respond.Envelope "Failed get comments"
// @Router       /v1/dashboard/{id}/comments [get]
func (h CommentsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.PathID(r, "id")
	if err != nil {
		respond.Fail(w, r, artUC.ErrInvalidArticleID, "Failed get comments")
		return
	}
	params, sort, err := request.Listing(r, h.Pagination, repository.CommentSortFields)
	if err != nil {
		respond.Fail(w, r, err, "Failed get comments")
		return
	}

	res, err := h.Comments.ListForPublishedArticle(r.Context(), auth.ActorFromContext(r.Context()), id, params, sort)
	if err != nil {
		respond.Fail(w, r, err, "Failed get comments")
		return
	}

	respond.Success(w, http.StatusOK, "Get list comments successfully",
		pagination.NewResponse(comment.FromViews(res.Items), res.Pagination, res.Sort))
}

// Register mounts the public dashboard routes on mux.
func Register(mux *http.ServeMux, articles Articles, comments Comments, cfg pagination.Config) {
	mux.Handle("GET /v1/dashboard", ListHandler{Articles: articles, Pagination: cfg})
	mux.Handle("GET /v1/dashboard/{id}", DetailHandler{Articles: articles})
	mux.Handle("GET /v1/dashboard/{id}/comments", CommentsHandler{Comments: comments, Pagination: cfg})
}
