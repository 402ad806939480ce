package commentservice

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jaehyunkim/engage/internal/common"
)

var (
	// ErrNotPermitted covers both a wrong email and a missing comment so
	// callers cannot probe which one it was.
	ErrNotPermitted   = errors.New("not permitted")
	ErrCommentDeleted = errors.New("comment already deleted")
	ErrParentNotFound = errors.New("parent comment not found")
)

func NewCommentService(store CommentStore) *CommentService {
	return &CommentService{store: store}
}

// GetThread returns the comment forest for a post, roots in creation
// order.
func (s *CommentService) GetThread(ctx context.Context, slug string) ([]*Comment, error) {
	v := common.NewValidator()
	validateSlug(v, slug)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	rows, err := s.store.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	return BuildThread(rows), nil
}

// Create validates, sanitizes, and persists a new comment. Notification
// dispatch is the caller's job; a created comment must survive a failed
// notification.
func (s *CommentService) Create(ctx context.Context, slug string, form *CommentFormData, parentID *string) (*Comment, error) {
	v := common.NewValidator()
	validateSlug(v, slug)
	validateAuthor(v, form.Author)
	validateEmail(v, form.Email)
	validateContent(v, form.Content)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	author := sanitizeText(form.Author, 50)
	content := sanitizeText(form.Content, 2000)

	// sanitizing can empty a field that passed validation
	v.Check(author != "", "author", "must be provided")
	v.Check(content != "", "content", "must be provided")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	if parentID != nil {
		parent, err := s.store.GetByID(ctx, *parentID)
		if err != nil {
			if errors.Is(err, common.ErrRecordNotFound) {
				return nil, ErrParentNotFound
			}
			return nil, err
		}
		if parent.Slug != slug {
			return nil, ErrParentNotFound
		}
	}

	comment := &Comment{
		ID:        uuid.NewString(),
		Slug:      slug,
		Author:    &author,
		Email:     normalizeEmail(form.Email),
		Content:   &content,
		CreatedAt: time.Now().UTC(),
		ParentID:  parentID,
		Replies:   []*Comment{},
	}

	if err := s.store.Insert(ctx, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

// GetByID looks up a single comment. The notification boundary uses it to
// find the parent author of a reply.
func (s *CommentService) GetByID(ctx context.Context, id string) (*Comment, error) {
	comment, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	comment.IsDeleted = comment.Author == nil && comment.Content == nil
	return comment, nil
}

// Edit replaces a comment's author and content. Only the original email
// holder may edit, and never a deleted comment.
func (s *CommentService) Edit(ctx context.Context, id, email string, form *CommentFormData) (*Comment, error) {
	v := common.NewValidator()
	validateEmail(v, email)
	validateAuthor(v, form.Author)
	validateContent(v, form.Content)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	comment, err := s.authorize(ctx, id, email)
	if err != nil {
		return nil, err
	}

	author := sanitizeText(form.Author, 50)
	content := sanitizeText(form.Content, 2000)
	now := time.Now().UTC()

	comment.Author = &author
	comment.Content = &content
	comment.LastModifiedAt = &now

	if err := s.store.Update(ctx, comment); err != nil {
		return nil, err
	}

	comment.Replies = []*Comment{}
	return comment, nil
}

// Delete soft-deletes a comment: author and content go null, everything
// else stays so replies keep their anchor. The comment's slug is returned
// so callers can drop any state derived from the thread.
func (s *CommentService) Delete(ctx context.Context, id, email string) (string, error) {
	v := common.NewValidator()
	validateEmail(v, email)
	if !v.Valid() {
		return "", v.ValidationError()
	}

	comment, err := s.authorize(ctx, id, email)
	if err != nil {
		return "", err
	}

	if err := s.store.SoftDelete(ctx, comment.ID); err != nil {
		return "", err
	}

	return comment.Slug, nil
}

func (s *CommentService) authorize(ctx context.Context, id, email string) (*Comment, error) {
	comment, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrRecordNotFound) {
			return nil, ErrNotPermitted
		}
		return nil, err
	}

	if normalizeEmail(comment.Email) != normalizeEmail(email) {
		return nil, ErrNotPermitted
	}

	if comment.Author == nil && comment.Content == nil {
		return nil, ErrCommentDeleted
	}

	return comment, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
