package clientsync

import (
	"strconv"
	"time"

	"github.com/jaehyunkim/engage/internal/commentservice"
)

const placeholderPrefix = "pending_"

// ThreadState mirrors a slug's comment forest. Submitting a comment
// inserts a placeholder node immediately; the placeholder is swapped
// for the server's comment on success or removed on failure.
type ThreadState struct {
	client CommentClient

	state       ActionState
	comments    []*commentservice.Comment
	placeholder int
}

func NewThreadState(client CommentClient, thread []*commentservice.Comment) *ThreadState {
	return &ThreadState{
		client:   client,
		state:    StateIdle,
		comments: thread,
	}
}

func (t *ThreadState) State() ActionState {
	return t.state
}

func (t *ThreadState) Comments() []*commentservice.Comment {
	return t.comments
}

// Submit posts a new root comment. Replies reuse the same flow with a
// parent id; placeholders always render at the root until the server
// confirms, which keeps the revert a single slice operation.
func (t *ThreadState) Submit(slug, locale string, form commentservice.CommentFormData, parentID *string) (*commentservice.Comment, error) {
	if t.state == StatePending {
		return nil, nil
	}

	t.placeholder++
	author := form.Author
	content := form.Content
	pending := &commentservice.Comment{
		ID:        placeholderID(t.placeholder),
		Slug:      slug,
		Author:    &author,
		Email:     form.Email,
		Content:   &content,
		CreatedAt: time.Now().UTC(),
		ParentID:  parentID,
		Replies:   []*commentservice.Comment{},
	}

	t.state = StatePending
	t.comments = append(t.comments, pending)

	comment, err := t.client.CreateComment(slug, locale, form, parentID)
	if err != nil {
		t.comments = t.comments[:len(t.comments)-1]
		t.state = StateRolledBack
		return nil, err
	}

	t.comments[len(t.comments)-1] = comment
	t.state = StateCommitted
	return comment, nil
}

func placeholderID(n int) string {
	return placeholderPrefix + strconv.Itoa(n)
}
