package comment_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"news-portal/internal/common/pagination"
	"news-portal/internal/domain/entity"
	"news-portal/internal/repository"
	"news-portal/internal/usecase/activity"
	commentUC "news-portal/internal/usecase/comment"
	"news-portal/internal/usecase/reaction"
)

/* ───────── スタブ実装 ───────── */

type stubComments struct {
	data       map[int64]entity.Comment
	nextID     int64
	lastFilter repository.CommentFilter
}

func newStubComments() *stubComments {
	return &stubComments{data: map[int64]entity.Comment{}, nextID: 1}
}

func (s *stubComments) match(c entity.Comment, f repository.CommentFilter) bool {
	if c.DeletedAt != nil {
		return false
	}
	if f.ArticleID != nil && c.ArticleID != *f.ArticleID {
		return false
	}
	if f.TopLevelOnly && c.ParentID != nil {
		return false
	}
	if !f.TopLevelOnly && f.ParentID != nil && (c.ParentID == nil || *c.ParentID != *f.ParentID) {
		return false
	}
	return true
}

func (s *stubComments) List(_ context.Context, f repository.CommentFilter, _ repository.ListQuery) ([]*entity.Comment, error) {
	s.lastFilter = f
	var out []*entity.Comment
	for id := int64(1); id < s.nextID; id++ {
		if c, ok := s.data[id]; ok && s.match(c, f) {
			out = append(out, &c)
		}
	}
	return out, nil
}

func (s *stubComments) Count(_ context.Context, f repository.CommentFilter) (int64, error) {
	var n int64
	for _, c := range s.data {
		if s.match(c, f) {
			n++
		}
	}
	return n, nil
}

func (s *stubComments) Get(_ context.Context, id int64) (*entity.Comment, error) {
	c, ok := s.data[id]
	if !ok || c.DeletedAt != nil {
		return nil, nil
	}
	return &c, nil
}

func (s *stubComments) Create(_ context.Context, c *entity.Comment) error {
	c.ID = s.nextID
	s.nextID++
	s.data[c.ID] = *c
	return nil
}

func (s *stubComments) Update(_ context.Context, c *entity.Comment) error {
	s.data[c.ID] = *c
	return nil
}

func (s *stubComments) SoftDelete(_ context.Context, id int64, at time.Time) error {
	c := s.data[id]
	c.DeletedAt = &at
	s.data[id] = c
	return nil
}

func (s *stubComments) ListReplies(_ context.Context, parentIDs []int64) ([]*entity.Comment, error) {
	want := map[int64]bool{}
	for _, id := range parentIDs {
		want[id] = true
	}
	var out []*entity.Comment
	for id := int64(1); id < s.nextID; id++ {
		c, ok := s.data[id]
		if ok && c.DeletedAt == nil && c.ParentID != nil && want[*c.ParentID] {
			out = append(out, &c)
		}
	}
	return out, nil
}

func (s *stubComments) CountTopLevelByArticles(context.Context, []int64) (map[int64]int64, error) {
	return nil, nil // テストでは未使用
}

func (s *stubComments) CountRepliesByParents(_ context.Context, ids []int64) (map[int64]int64, error) {
	want := map[int64]bool{}
	for _, id := range ids {
		want[id] = true
	}
	out := map[int64]int64{}
	for _, c := range s.data {
		if c.DeletedAt == nil && c.ParentID != nil && want[*c.ParentID] {
			out[*c.ParentID]++
		}
	}
	return out, nil
}

type stubArticles struct {
	repository.ArticleRepository
	data map[int64]*entity.Article
}

func (s *stubArticles) Get(_ context.Context, id int64) (*entity.Article, error) {
	return s.data[id], nil
}

func (s *stubArticles) GetPublished(_ context.Context, id int64) (*entity.Article, error) {
	if a := s.data[id]; a != nil && a.Status == entity.StatusPublished {
		return a, nil
	}
	return nil, nil
}

type stubUsers struct {
	repository.UserRepository
}

func (stubUsers) GetByIDs(_ context.Context, ids []int64) (map[int64]*entity.User, error) {
	out := map[int64]*entity.User{}
	for _, id := range ids {
		out[id] = &entity.User{ID: id, Name: "user"}
	}
	return out, nil
}

type ledger struct {
	repository.ReactionRepository
	rows map[entity.ReactableRef]map[int64]bool
}

func (l *ledger) Exists(_ context.Context, r entity.ReactableRef, u int64, _ entity.ReactionKind) (bool, error) {
	return l.rows[r][u], nil
}

func (l *ledger) Insert(_ context.Context, r entity.ReactableRef, u int64, _ entity.ReactionKind) error {
	if l.rows[r] == nil {
		l.rows[r] = map[int64]bool{}
	}
	l.rows[r][u] = true
	return nil
}

func (l *ledger) Delete(_ context.Context, r entity.ReactableRef, u int64, _ entity.ReactionKind) (bool, error) {
	had := l.rows[r][u]
	delete(l.rows[r], u)
	return had, nil
}

func (l *ledger) Stats(_ context.Context, refs []entity.ReactableRef, viewer int64) (map[entity.ReactableRef]entity.ReactionStats, error) {
	out := map[entity.ReactableRef]entity.ReactionStats{}
	for _, r := range refs {
		out[r] = entity.ReactionStats{TotalLikes: int64(len(l.rows[r])), IsLiked: l.rows[r][viewer]}
	}
	return out, nil
}

type spyRecorder struct{ entries []activity.Entry }

func (s *spyRecorder) Record(_ context.Context, e activity.Entry) { s.entries = append(s.entries, e) }

/* ───────── フィクスチャ ───────── */

var (
	now   = time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	u1    = entity.Actor{UserID: 1, Role: entity.RoleUser}
	u2    = entity.Actor{UserID: 2, Role: entity.RoleUser}
	admin = entity.Actor{UserID: 9, Role: entity.RoleAdmin}
)

const (
	articleA     int64 = 10 // published, owner u1
	articleB     int64 = 20 // published, owner u2
	draftArticle int64 = 30 // draft, owner u1
)

func newService() (*commentUC.Service, *stubComments, *spyRecorder) {
	comments := newStubComments()
	spy := &spyRecorder{}
	svc := &commentUC.Service{
		Repo: comments,
		Articles: &stubArticles{data: map[int64]*entity.Article{
			articleA:     {ID: articleA, UserID: 1, Status: entity.StatusPublished},
			articleB:     {ID: articleB, UserID: 2, Status: entity.StatusPublished},
			draftArticle: {ID: draftArticle, UserID: 1, Status: entity.StatusDraft},
		}},
		Users:     stubUsers{},
		Reactions: &reaction.Service{Repo: &ledger{rows: map[entity.ReactableRef]map[int64]bool{}}},
		Activity:  spy,
		Now:       func() time.Time { return now },
	}
	return svc, comments, spy
}

/* ───────── 作成 ───────── */

func TestAdd(t *testing.T) {
	svc, repo, spy := newService()
	ctx := context.Background()

	c, err := svc.Add(ctx, u2, articleA, "Nice article")
	require.NoError(t, err)
	assert.Equal(t, articleA, c.ArticleID)
	assert.Nil(t, c.ParentID)
	assert.Equal(t, u2.UserID, c.UserID)
	assert.Contains(t, repo.data, c.ID)
	require.Len(t, spy.entries, 1)
	assert.Equal(t, entity.LogTargetComment, spy.entries[0].Target)

	_, err = svc.Add(ctx, u2, 999, "x")
	assert.EqualError(t, err, "Article not found.")

	// 記事が存在すればステータスは問わない
	onDraft, err := svc.Add(ctx, u2, draftArticle, "x")
	require.NoError(t, err)
	assert.Equal(t, draftArticle, onDraft.ArticleID)

	_, err = svc.Add(ctx, u1, draftArticle, "note to self")
	require.NoError(t, err)

	_, err = svc.Add(ctx, u2, articleA, "   ")
	assert.ErrorIs(t, err, entity.ErrInvalidInput)

	_, err = svc.Add(ctx, entity.Anonymous, articleA, "x")
	assert.ErrorIs(t, err, entity.ErrForbidden)
}

func TestAdd_StoresContentAsWritten(t *testing.T) {
	svc, repo, _ := newService()
	ctx := context.Background()

	body := "Tom's \"news\" & views\n\n> quoted line\n\nif a < b {}"
	c, err := svc.Add(ctx, u2, articleA, "  "+body+"\n")
	require.NoError(t, err)
	assert.Equal(t, body, c.Content)
	assert.Equal(t, body, repo.data[c.ID].Content)

	reply, err := svc.Reply(ctx, u1, c.ID, "a & b > c")
	require.NoError(t, err)
	assert.Equal(t, "a & b > c", reply.Content)

	updated, err := svc.Update(ctx, u2, c.ID, "<b>bold</b> & more")
	require.NoError(t, err)
	assert.Equal(t, "<b>bold</b> & more", updated.Content)

	_, err = svc.Add(ctx, u2, articleA, "<script>alert(1)</script>")
	assert.ErrorIs(t, err, entity.ErrInvalidInput)
}

func TestReply_InheritsParentArticle(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()

	parent, err := svc.Add(ctx, u1, articleA, "parent")
	require.NoError(t, err)

	reply, err := svc.Reply(ctx, u2, parent.ID, "child")
	require.NoError(t, err)
	assert.Equal(t, articleA, reply.ArticleID)
	require.NotNil(t, reply.ParentID)
	assert.Equal(t, parent.ID, *reply.ParentID)

	_, err = svc.Reply(ctx, u2, 999, "child")
	assert.EqualError(t, err, "Parent comment not found.")

	_, err = svc.Reply(ctx, u2, 0, "child")
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

/* ───────── 取得・一覧 ───────── */

func TestGet_WithReplies(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()

	parent, err := svc.Add(ctx, u1, articleA, "parent")
	require.NoError(t, err)
	_, err = svc.Reply(ctx, u2, parent.ID, "r1")
	require.NoError(t, err)
	_, err = svc.Reply(ctx, admin, parent.ID, "r2")
	require.NoError(t, err)
	_, err = svc.ToggleReaction(ctx, u2, parent.ID, entity.ReactionLike)
	require.NoError(t, err)

	v, err := svc.Get(ctx, u2, parent.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(2), v.TotalReplies)
	require.Len(t, v.Replies, 2)
	assert.Equal(t, "r1", v.Replies[0].Content)
	assert.Equal(t, "r2", v.Replies[1].Content)
	assert.Equal(t, int64(1), v.Reactions.TotalLikes)
	assert.True(t, v.Reactions.IsLiked)
	require.NotNil(t, v.Author)
	assert.Equal(t, u1.UserID, v.Author.ID)

	_, err = svc.Get(ctx, u2, 999)
	assert.EqualError(t, err, "Comment not found.")
}

func TestListForPublishedArticle(t *testing.T) {
	svc, repo, _ := newService()
	ctx := context.Background()

	top, err := svc.Add(ctx, u1, articleA, "top")
	require.NoError(t, err)
	_, err = svc.Reply(ctx, u2, top.ID, "reply")
	require.NoError(t, err)
	_, err = svc.Add(ctx, u1, articleB, "other article")
	require.NoError(t, err)

	res, err := svc.ListForPublishedArticle(ctx, entity.Anonymous, articleA,
		pagination.Params{Page: 1, Limit: 20}, pagination.DefaultSort)
	require.NoError(t, err)

	require.Len(t, res.Items, 1)
	assert.Equal(t, "top", res.Items[0].Content)
	require.Len(t, res.Items[0].Replies, 1)
	assert.True(t, repo.lastFilter.TopLevelOnly)
	assert.Equal(t, int64(1), res.Pagination.Total)

	_, err = svc.ListForPublishedArticle(ctx, entity.Anonymous, draftArticle,
		pagination.Params{Page: 1, Limit: 20}, pagination.DefaultSort)
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestList(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()

	_, err := svc.Add(ctx, u1, articleA, "a")
	require.NoError(t, err)
	_, err = svc.Add(ctx, u1, articleB, "b")
	require.NoError(t, err)

	id := articleB
	res, err := svc.List(ctx, u2, repository.CommentFilter{ArticleID: &id},
		pagination.Params{Page: 1, Limit: 20}, pagination.DefaultSort)
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "b", res.Items[0].Content)

	_, err = svc.List(ctx, entity.Anonymous, repository.CommentFilter{},
		pagination.Params{Page: 1, Limit: 20}, pagination.DefaultSort)
	assert.ErrorIs(t, err, entity.ErrForbidden)
}

/* ───────── 更新・削除 ───────── */

func TestUpdate(t *testing.T) {
	svc, repo, spy := newService()
	ctx := context.Background()
	c, err := svc.Add(ctx, u1, articleA, "before")
	require.NoError(t, err)

	_, err = svc.Update(ctx, u2, c.ID, "hijack")
	assert.EqualError(t, err, "You are not authorized to update this comment.")

	got, err := svc.Update(ctx, u1, c.ID, "after")
	require.NoError(t, err)
	assert.Equal(t, "after", got.Content)
	assert.Equal(t, "after", repo.data[c.ID].Content)

	last := spy.entries[len(spy.entries)-1]
	assert.Equal(t, entity.OperationUpdate, last.Operation)
	assert.Equal(t, activity.Changes{"content": {Old: "before", New: "after"}}, last.Payload)

	_, err = svc.Update(ctx, admin, c.ID, "moderated")
	require.NoError(t, err)
}

func TestDelete(t *testing.T) {
	svc, repo, _ := newService()
	ctx := context.Background()
	c, err := svc.Add(ctx, u1, articleA, "bye")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, u2, c.ID), entity.ErrForbidden)
	require.NoError(t, svc.Delete(ctx, admin, c.ID))
	assert.NotNil(t, repo.data[c.ID].DeletedAt)
	assert.ErrorIs(t, svc.Delete(ctx, u1, c.ID), entity.ErrNotFound)
}

/* ───────── リアクション ───────── */

func TestToggleReaction(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()
	c, err := svc.Add(ctx, u1, articleA, "react to me")
	require.NoError(t, err)

	out, err := svc.ToggleReaction(ctx, u2, c.ID, entity.ReactionLike)
	require.NoError(t, err)
	assert.Equal(t, reaction.Added, out)

	out, err = svc.ToggleReaction(ctx, u2, c.ID, entity.ReactionLike)
	require.NoError(t, err)
	assert.Equal(t, reaction.Removed, out)

	_, err = svc.ToggleReaction(ctx, u2, 999, entity.ReactionLike)
	assert.EqualError(t, err, "Comment not found.")

	_, err = svc.ToggleReaction(ctx, u2, c.ID, "meh")
	assert.ErrorIs(t, err, entity.ErrInvalidInput)
}
