// Package permission holds the typed capability table that gates every mutating
// operation. Capabilities are granted per role; there are no per-user grants.
package permission

import (
	"slices"

	"news-portal/internal/domain/entity"
)

// Capability is one class of action an actor may be allowed to perform.
type Capability uint8

const (
	ArticleList Capability = iota + 1
	ArticleCreate
	ArticleView
	ArticleUpdate
	ArticleDelete
	ArticleRequestApproval
	ArticleApprove
	ArticleReject
	ArticlePublish
	ArticleUnpublish
	ArticleReact

	CommentList
	CommentCreate
	CommentView
	CommentUpdate
	CommentDelete
	CommentReact

	// ModerateAny lets an actor act on articles and comments it does not own.
	ModerateAny
)

var capabilityNames = map[Capability]string{
	ArticleList:            "article.list",
	ArticleCreate:          "article.create",
	ArticleView:            "article.view",
	ArticleUpdate:          "article.update",
	ArticleDelete:          "article.delete",
	ArticleRequestApproval: "article.request_approval",
	ArticleApprove:         "article.approve",
	ArticleReject:          "article.reject",
	ArticlePublish:         "article.publish",
	ArticleUnpublish:       "article.unpublish",
	ArticleReact:           "article.react",
	CommentList:            "comment.list",
	CommentCreate:          "comment.create",
	CommentView:            "comment.view",
	CommentUpdate:          "comment.update",
	CommentDelete:          "comment.delete",
	CommentReact:           "comment.react",
	ModerateAny:            "moderate.any",
}

func (c Capability) String() string {
	if name, ok := capabilityNames[c]; ok {
		return name
	}
	return "unknown"
}

// Set is a bitset of capabilities.
type Set uint32

// NewSet returns a set holding caps.
func NewSet(caps ...Capability) Set {
	var s Set
	for _, c := range caps {
		s |= 1 << c
	}
	return s
}

// Has reports whether c is in the set.
func (s Set) Has(c Capability) bool {
	return s&(1<<c) != 0
}

var shared = []Capability{
	ArticleList, ArticleCreate, ArticleView, ArticleUpdate, ArticleDelete,
	ArticlePublish, ArticleUnpublish, ArticleReact,
	CommentList, CommentCreate, CommentView, CommentUpdate, CommentDelete, CommentReact,
}

// roleCapabilities is the whole permission model.
// request-approval is user-only; approve and reject are admin-only.
var roleCapabilities = map[entity.Role]Set{
	entity.RoleAdmin: NewSet(slices.Concat(shared, []Capability{ArticleApprove, ArticleReject, ModerateAny})...),
	entity.RoleUser:  NewSet(slices.Concat(shared, []Capability{ArticleRequestApproval})...),
}

// HasCapability reports whether actor's role grants c.
// Anonymous actors and unknown roles have no capabilities.
func HasCapability(actor entity.Actor, c Capability) bool {
	if actor.IsAnonymous() {
		return false
	}
	return roleCapabilities[actor.Role].Has(c)
}

// CanActOn reports whether actor may act on content owned by ownerID:
// either it is the owner or it holds ModerateAny.
func CanActOn(actor entity.Actor, ownerID int64) bool {
	if actor.IsAnonymous() {
		return false
	}
	return actor.UserID == ownerID || HasCapability(actor, ModerateAny)
}
