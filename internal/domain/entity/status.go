package entity

import (
	"fmt"
	"time"
)

// ArticleStatus is the moderation state of an article.
type ArticleStatus string

const (
	StatusDraft     ArticleStatus = "draft"
	StatusPending   ArticleStatus = "pending"
	StatusApproved  ArticleStatus = "approved"
	StatusRejected  ArticleStatus = "rejected"
	StatusPublished ArticleStatus = "published"
)

// AllStatuses lists every status in moderation order.
var AllStatuses = []ArticleStatus{
	StatusDraft, StatusPending, StatusApproved, StatusRejected, StatusPublished,
}

// ParseArticleStatus converts s into an ArticleStatus.
func ParseArticleStatus(s string) (ArticleStatus, error) {
	for _, st := range AllStatuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", &ValidationError{Field: "status", Message: fmt.Sprintf("invalid status %q", s)}
}

// Transition names a moderation step.
type Transition string

const (
	TransitionSubmit    Transition = "submit"
	TransitionApprove   Transition = "approve"
	TransitionReject    Transition = "reject"
	TransitionPublish   Transition = "publish"
	TransitionUnpublish Transition = "unpublish"
)

// transitionRule describes the only legal source and target state of a transition.
type transitionRule struct {
	from ArticleStatus
	to   ArticleStatus
}

var transitionRules = map[Transition]transitionRule{
	TransitionSubmit:    {from: StatusDraft, to: StatusPending},
	TransitionApprove:   {from: StatusPending, to: StatusApproved},
	TransitionReject:    {from: StatusPending, to: StatusRejected},
	TransitionPublish:   {from: StatusApproved, to: StatusPublished},
	TransitionUnpublish: {from: StatusPublished, to: StatusApproved},
}

// Expected returns the status an article must be in before t may run.
func (t Transition) Expected() ArticleStatus {
	return transitionRules[t].from
}

// Target returns the status an article is in after t ran.
func (t Transition) Target() ArticleStatus {
	return transitionRules[t].to
}

// Submit moves a draft into the approval queue.
func (a *Article) Submit(now time.Time) error {
	if err := a.require(TransitionSubmit); err != nil {
		return err
	}
	a.Status = StatusPending
	a.SubmittedAt = &now
	a.UpdatedAt = now
	return nil
}

// Approve accepts a pending article.
func (a *Article) Approve(now time.Time) error {
	if err := a.require(TransitionApprove); err != nil {
		return err
	}
	a.Status = StatusApproved
	a.ApprovedAt = &now
	a.UpdatedAt = now
	return nil
}

// Reject declines a pending article. Rejected is terminal.
func (a *Article) Reject(now time.Time) error {
	if err := a.require(TransitionReject); err != nil {
		return err
	}
	a.Status = StatusRejected
	a.RejectedAt = &now
	a.UpdatedAt = now
	return nil
}

// Publish makes an approved article public.
func (a *Article) Publish(now time.Time) error {
	if err := a.require(TransitionPublish); err != nil {
		return err
	}
	a.Status = StatusPublished
	a.PublishedAt = &now
	a.UpdatedAt = now
	return nil
}

// Unpublish returns a published article to approved and clears published_at.
func (a *Article) Unpublish(now time.Time) error {
	if err := a.require(TransitionUnpublish); err != nil {
		return err
	}
	a.Status = StatusApproved
	a.PublishedAt = nil
	a.UpdatedAt = now
	return nil
}

// Apply runs the transition named by t.
func (a *Article) Apply(t Transition, now time.Time) error {
	switch t {
	case TransitionSubmit:
		return a.Submit(now)
	case TransitionApprove:
		return a.Approve(now)
	case TransitionReject:
		return a.Reject(now)
	case TransitionPublish:
		return a.Publish(now)
	case TransitionUnpublish:
		return a.Unpublish(now)
	default:
		return fmt.Errorf("unknown transition %q", t)
	}
}

func (a *Article) require(t Transition) error {
	if a.Status != t.Expected() {
		return &StatusConflictError{Expected: t.Expected(), Actual: a.Status}
	}
	return nil
}

// ModerationEvent is one committed status transition of an article.
type ModerationEvent struct {
	Transition Transition
	ArticleID  int64
	Title      string
	AuthorID   int64
	ActorID    int64
	From       ArticleStatus
	To         ArticleStatus
	At         time.Time
}
