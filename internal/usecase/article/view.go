package article

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"news-portal/internal/domain/entity"
	"news-portal/internal/utils/text"
)

// Author is the public part of an article's owner.
type Author struct {
	ID   int64
	Name string
}

// View is an article with its author and engagement aggregates.
type View struct {
	*entity.Article
	Author        *Author // nil when the account no longer exists
	Reactions     entity.ReactionStats
	TotalComments int64
	// ContentHTML is only rendered for single-article responses.
	ContentHTML string
}

func (s *Service) buildView(ctx context.Context, art *entity.Article, viewerID int64) (*View, error) {
	views, err := s.buildViews(ctx, []*entity.Article{art}, viewerID, true)
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

// buildViews loads authors, reaction stats and comment counts for a page of
// articles in three batched queries that run concurrently.
func (s *Service) buildViews(ctx context.Context, articles []*entity.Article, viewerID int64, detail bool) ([]*View, error) {
	views := make([]*View, 0, len(articles))
	if len(articles) == 0 {
		return views, nil
	}

	ids := make([]int64, 0, len(articles))
	refs := make([]entity.ReactableRef, 0, len(articles))
	userIDs := make([]int64, 0, len(articles))
	seen := make(map[int64]struct{}, len(articles))
	for _, a := range articles {
		ids = append(ids, a.ID)
		refs = append(refs, entity.ArticleRef(a.ID))
		if _, ok := seen[a.UserID]; !ok {
			seen[a.UserID] = struct{}{}
			userIDs = append(userIDs, a.UserID)
		}
	}

	var (
		users    map[int64]*entity.User
		stats    map[entity.ReactableRef]entity.ReactionStats
		comments map[int64]int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		users, err = s.Users.GetByIDs(gctx, userIDs)
		if err != nil {
			return fmt.Errorf("load authors: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		stats, err = s.Reactions.Summaries(gctx, refs, viewerID)
		return err
	})
	g.Go(func() error {
		var err error
		comments, err = s.Comments.CountTopLevelByArticles(gctx, ids)
		if err != nil {
			return fmt.Errorf("count comments: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, a := range articles {
		v := &View{
			Article:       a,
			Reactions:     stats[entity.ArticleRef(a.ID)],
			TotalComments: comments[a.ID],
		}
		if u, ok := users[a.UserID]; ok {
			v.Author = &Author{ID: u.ID, Name: u.Name}
		}
		if detail {
			html, err := text.RenderMarkdown(a.Content)
			if err != nil {
				return nil, fmt.Errorf("render content: %w", err)
			}
			v.ContentHTML = html
		}
		views = append(views, v)
	}
	return views, nil
}
