// Package clientsync implements the optimistic local state kept by a
// client between user actions and server confirmation. Every mutating
// action runs a small state machine: the local delta is applied before
// the request resolves, then either replaced by the server's answer or
// reverted exactly.
//
// All methods are intended for a single goroutine; the package holds no
// locks by contract.
package clientsync

import (
	"github.com/jaehyunkim/engage/internal/commentservice"
	"github.com/jaehyunkim/engage/internal/searchservice"
)

// ActionState tracks one mutating action through its lifecycle.
type ActionState int

const (
	StateIdle ActionState = iota
	StatePending
	StateCommitted
	StateRolledBack
)

func (s ActionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePending:
		return "pending"
	case StateCommitted:
		return "committed"
	case StateRolledBack:
		return "rolledback"
	default:
		return "unknown"
	}
}

// CounterClient is the transport boundary for counter actions.
type CounterClient interface {
	IncrementView(slug, locale string) (int, error)
	ToggleLike(slug, locale string) (liked bool, likeCount int, err error)
	GetLikeStatus(slug string) (likeCount int, isLiked bool, err error)
}

// CommentClient is the transport boundary for comment actions.
type CommentClient interface {
	CreateComment(slug, locale string, form commentservice.CommentFormData, parentID *string) (*commentservice.Comment, error)
}

// SearchClient is the transport boundary for search queries.
type SearchClient interface {
	Search(query, locale string) ([]searchservice.RankedResult, error)
}
