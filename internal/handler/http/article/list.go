package article

import (
	"net/http"
	"time"

	"news-portal/internal/common/pagination"
	"news-portal/internal/handler/http/auth"
	"news-portal/internal/handler/http/request"
	"news-portal/internal/handler/http/respond"
	"news-portal/internal/repository"
)

// ListHandler serves the back-office article listing.
type ListHandler struct {
	Svc        Service
	Pagination pagination.Config
}

// ServeHTTP 記事一覧取得（管理画面）
// @Summary      記事一覧取得
// @Description  閲覧権限のある記事をページネーション付きで取得します。admin は全件、user は自分の記事のみ
// @Tags         articles
// @Security     BearerAuth
// @Produce      json
// @Param        page query int false "ページ番号" default(1) minimum(1)
// @Param        limit query int false "1ページあたりの件数" default(20) minimum(1) maximum(100)
// @Param        sort_by query string false "ソート項目" Enums(id, title, status, submitted_at, approved_at, rejected_at, published_at, created_at, updated_at)
// @Param        sort query int false "1: 昇順, -1: 降順" Enums(1, -1)
// @Param        user_id query int false "作成者ID"
// @Param        status query string false "ステータス" Enums(draft, pending, approved, rejected, published)
// @Param        title query string false "タイトル（部分一致）"
// @Param        content query string false "本文（部分一致）"
// @Param        start_created_at query string false "作成日（開始, YYYY-MM-DD）"
// @Param        end_created_at query string false "作成日（終了, YYYY-MM-DD）"
// @Success      200 {object} respond.Envelope{data=pagination.Response[DTO]} "Get list articles successfully"
// @Failure      401 {object} respond.Envelope "Unauthenticated"
// @Failure      403 {object} respond.Envelope "No permission"
// @Failure      422 {object} respond.Envelope "Invalid query parameter"
// @Failure      500 {object} respond.Envelope "Failed get articles"
// @Router       /v1/articles [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	status := http.StatusOK
	page := 0
	defer func() {
		pagination.RecordRequest("articles", status, page)
		pagination.RecordDuration("articles", time.Since(start).Seconds())
	}()

	params, sort, err := request.Listing(r, h.Pagination, repository.ArticleSortFields)
	if err != nil {
		status = respond.StatusOf(err)
		respond.Fail(w, r, err, "Failed get articles")
		return
	}
	page = params.Page

	filter, err := ParseFilter(r.URL.Query())
	if err != nil {
		status = respond.StatusOf(err)
		respond.Fail(w, r, err, "Failed get articles")
		return
	}

	res, err := h.Svc.List(r.Context(), auth.ActorFromContext(r.Context()), filter, params, sort)
	if err != nil {
		status = respond.StatusOf(err)
		respond.Fail(w, r, err, "Failed get articles")
		return
	}

	respond.Success(w, http.StatusOK, "Get list articles successfully",
		pagination.NewResponse(FromViews(res.Items), res.Pagination, res.Sort))
}
