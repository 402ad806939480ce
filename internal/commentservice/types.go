package commentservice

import (
	"context"
	"time"
)

// Comment is one node of a post's comment forest. A soft-deleted comment
// keeps its id, email and place in the tree but loses author and content.
type Comment struct {
	ID     string  `json:"id"`
	Slug   string  `json:"slug"`
	Author *string `json:"author"`
	// Email doubles as the edit/delete credential and the reply
	// notification address. It is never nulled, even on delete, and is
	// never serialized to clients.
	Email          string     `json:"-"`
	Content        *string    `json:"content"`
	CreatedAt      time.Time  `json:"created_at"`
	LastModifiedAt *time.Time `json:"last_modified_at,omitempty"`
	ParentID       *string    `json:"parent_id,omitempty"`
	Replies        []*Comment `json:"replies"`
	IsDeleted      bool       `json:"is_deleted"`
}

type CommentFormData struct {
	Author  string `json:"author"`
	Email   string `json:"email"`
	Content string `json:"content"`
}

// CommentStore is the persistence boundary. The postgres implementation is
// CommentModel; tests inject the in-memory MemStore.
type CommentStore interface {
	Insert(ctx context.Context, c *Comment) error
	GetByID(ctx context.Context, id string) (*Comment, error)
	// GetBySlug returns rows ordered by creation time ascending.
	GetBySlug(ctx context.Context, slug string) ([]*Comment, error)
	Update(ctx context.Context, c *Comment) error
	// SoftDelete nulls author and content, leaving everything else.
	SoftDelete(ctx context.Context, id string) error
}

type CommentService struct {
	store CommentStore
}
