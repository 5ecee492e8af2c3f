package comment

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"news-portal/internal/common/pagination"
	"news-portal/internal/domain/entity"
	"news-portal/internal/handler/http/auth"
	"news-portal/internal/repository"
	cmtUC "news-portal/internal/usecase/comment"
	"news-portal/internal/usecase/reaction"
)

type stubService struct {
	Service

	filter  repository.CommentFilter
	listRes *cmtUC.ListResult
	view    *cmtUC.View
	comment *entity.Comment
	outcome reaction.Outcome
	gotID   int64
	gotText string
	gotKind entity.ReactionKind
	err     error
}

func (s *stubService) Add(_ context.Context, _ entity.Actor, articleID int64, content string) (*entity.Comment, error) {
	s.gotID, s.gotText = articleID, content
	return s.comment, s.err
}

func (s *stubService) Reply(_ context.Context, _ entity.Actor, parentID int64, content string) (*entity.Comment, error) {
	s.gotID, s.gotText = parentID, content
	return s.comment, s.err
}

func (s *stubService) Get(_ context.Context, _ entity.Actor, id int64) (*cmtUC.View, error) {
	s.gotID = id
	return s.view, s.err
}

func (s *stubService) List(_ context.Context, _ entity.Actor, f repository.CommentFilter, _ pagination.Params, _ pagination.Sort) (*cmtUC.ListResult, error) {
	s.filter = f
	return s.listRes, s.err
}

func (s *stubService) Update(_ context.Context, _ entity.Actor, id int64, content string) (*entity.Comment, error) {
	s.gotID, s.gotText = id, content
	return s.comment, s.err
}

func (s *stubService) Delete(_ context.Context, _ entity.Actor, id int64) error {
	s.gotID = id
	return s.err
}

func (s *stubService) ToggleReaction(_ context.Context, _ entity.Actor, id int64, kind entity.ReactionKind) (reaction.Outcome, error) {
	s.gotID, s.gotKind = id, kind
	return s.outcome, s.err
}

func do(t *testing.T, svc Service, method, target string, body io.Reader) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	mux := http.NewServeMux()
	Register(mux, svc, pagination.DefaultConfig())

	req := httptest.NewRequest(method, target, body)
	req = req.WithContext(auth.WithSession(req.Context(), auth.Session{Actor: entity.Actor{UserID: 4, Role: entity.RoleUser}}))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	var env map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

func sampleComment(id int64, parentID *int64) *entity.Comment {
	now := time.Date(2025, 10, 26, 13, 0, 0, 0, time.UTC)
	return &entity.Comment{ID: id, ArticleID: 5, UserID: 4, ParentID: parentID, Content: "hi", CreatedAt: now, UpdatedAt: now}
}

func TestParseFilter(t *testing.T) {
	five := int64(5)
	ten := int64(10)
	tests := []struct {
		name    string
		query   url.Values
		want    repository.CommentFilter
		wantErr bool
	}{
		{name: "empty", query: url.Values{}},
		{name: "article", query: url.Values{"article_id": {"5"}}, want: repository.CommentFilter{ArticleID: &five}},
		{name: "parent", query: url.Values{"parent_id": {"10"}}, want: repository.CommentFilter{ParentID: &ten}},
		{name: "top level", query: url.Values{"parent_id": {"null"}}, want: repository.CommentFilter{TopLevelOnly: true}},
		{name: "content", query: url.Values{"content": {" great "}}, want: repository.CommentFilter{Content: "great"}},
		{name: "bad parent", query: url.Values{"parent_id": {"-1"}}, wantErr: true},
		{name: "bad date", query: url.Values{"end_created_at": {"2025/01/01"}}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFilter(tt.query)
			if tt.wantErr {
				assert.ErrorIs(t, err, entity.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("filter mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestList_RepliesAlwaysArray(t *testing.T) {
	parent := int64(11)
	svc := &stubService{listRes: &cmtUC.ListResult{
		Items: []*cmtUC.View{
			{
				Comment:      sampleComment(11, nil),
				TotalReplies: 1,
				Replies:      []*cmtUC.View{{Comment: sampleComment(12, &parent)}},
			},
			{Comment: sampleComment(13, nil)},
		},
		Pagination: pagination.NewMetadata(pagination.Params{Page: 1, Limit: 20}, 2),
		Sort:       pagination.DefaultSort,
	}}

	rec, env := do(t, svc, http.MethodGet, "/v1/comments?parent_id=null&article_id=5", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Get list comments successfully", env["message"])
	assert.True(t, svc.filter.TopLevelOnly)

	items := env["data"].(map[string]any)["items"].([]any)
	require.Len(t, items, 2)
	first := items[0].(map[string]any)
	replies := first["replies"].([]any)
	require.Len(t, replies, 1)
	assert.Equal(t, float64(11), replies[0].(map[string]any)["parent_id"])
	assert.Equal(t, []any{}, items[1].(map[string]any)["replies"])
}

func TestCreate(t *testing.T) {
	svc := &stubService{comment: sampleComment(20, nil)}
	rec, env := do(t, svc, http.MethodPost, "/v1/comments", strings.NewReader(`{"article_id":5,"content":"hi"}`))
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Comment has been created successfully.", env["message"])
	assert.Equal(t, int64(5), svc.gotID)
	assert.Nil(t, env["data"].(map[string]any)["parent_id"])

	rec, _ = do(t, &stubService{}, http.MethodPost, "/v1/comments", strings.NewReader(`{"content":"hi"}`))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec, env = do(t, &stubService{err: cmtUC.ErrArticleNotFound}, http.MethodPost, "/v1/comments", strings.NewReader(`{"article_id":99,"content":"hi"}`))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Article not found.", env["message"])
}

func TestReply(t *testing.T) {
	parent := int64(11)
	svc := &stubService{comment: sampleComment(21, &parent)}
	rec, env := do(t, svc, http.MethodPost, "/v1/comments/11/reply", strings.NewReader(`{"content":"agreed"}`))
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, int64(11), svc.gotID)
	assert.Equal(t, "agreed", svc.gotText)
	assert.Equal(t, float64(11), env["data"].(map[string]any)["parent_id"])

	rec, env = do(t, &stubService{err: cmtUC.ErrParentNotFound}, http.MethodPost, "/v1/comments/99/reply", strings.NewReader(`{"content":"x"}`))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Parent comment not found.", env["message"])
}

func TestUpdateAndDelete(t *testing.T) {
	svc := &stubService{comment: sampleComment(11, nil)}
	rec, env := do(t, svc, http.MethodPatch, "/v1/comments/11", strings.NewReader(`{"content":"edited"}`))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Comment has been updated successfully.", env["message"])
	assert.Equal(t, "edited", svc.gotText)

	rec, env = do(t, &stubService{}, http.MethodDelete, "/v1/comments/11", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Comment has been deleted successfully.", env["message"])

	rec, env = do(t, &stubService{err: errors.New("tx aborted")}, http.MethodDelete, "/v1/comments/11", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to delete comment.", env["message"])
}

func TestToggleReaction(t *testing.T) {
	svc := &stubService{outcome: reaction.Added}
	rec, env := do(t, svc, http.MethodPost, "/v1/comments/11/toggle-reaction", strings.NewReader(`{"type":"dislike"}`))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Successfully toggle reaction to disliked", env["message"])
	assert.Equal(t, entity.ReactionDislike, svc.gotKind)

	rec, _ = do(t, &stubService{}, http.MethodPost, "/v1/comments/11/toggle-reaction", strings.NewReader(`{}`))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
