package comment

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"news-portal/internal/domain/entity"
)

// Author is the public part of a comment's owner.
type Author struct {
	ID   int64
	Name string
}

// View is a comment with its author, reactions and reply count.
type View struct {
	*entity.Comment
	Author       *Author
	Reactions    entity.ReactionStats
	TotalReplies int64
	// Replies holds direct replies, oldest first. Replies of replies are not expanded.
	Replies []*View
}

// buildViews assembles views for a page of comments. With withReplies the
// direct replies are loaded too, and both levels share the aggregate queries.
func (s *Service) buildViews(ctx context.Context, comments []*entity.Comment, viewerID int64, withReplies bool) ([]*View, error) {
	views := make([]*View, 0, len(comments))
	if len(comments) == 0 {
		return views, nil
	}

	all := comments
	var replies []*entity.Comment
	if withReplies {
		ids := make([]int64, 0, len(comments))
		for _, c := range comments {
			ids = append(ids, c.ID)
		}
		var err error
		replies, err = s.Repo.ListReplies(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("list replies: %w", err)
		}
		all = append(append(make([]*entity.Comment, 0, len(comments)+len(replies)), comments...), replies...)
	}

	ids := make([]int64, 0, len(all))
	refs := make([]entity.ReactableRef, 0, len(all))
	var userIDs []int64
	seen := map[int64]struct{}{}
	for _, c := range all {
		ids = append(ids, c.ID)
		refs = append(refs, entity.CommentRef(c.ID))
		if _, ok := seen[c.UserID]; !ok {
			seen[c.UserID] = struct{}{}
			userIDs = append(userIDs, c.UserID)
		}
	}

	var (
		users  map[int64]*entity.User
		stats  map[entity.ReactableRef]entity.ReactionStats
		counts map[int64]int64
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
		counts, err = s.Repo.CountRepliesByParents(gctx, ids)
		if err != nil {
			return fmt.Errorf("count replies: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	toView := func(c *entity.Comment) *View {
		v := &View{
			Comment:      c,
			Reactions:    stats[entity.CommentRef(c.ID)],
			TotalReplies: counts[c.ID],
		}
		if u, ok := users[c.UserID]; ok {
			v.Author = &Author{ID: u.ID, Name: u.Name}
		}
		return v
	}

	byParent := map[int64][]*View{}
	for _, r := range replies {
		byParent[*r.ParentID] = append(byParent[*r.ParentID], toView(r))
	}
	for _, c := range comments {
		v := toView(c)
		v.Replies = byParent[c.ID]
		views = append(views, v)
	}
	return views, nil
}
