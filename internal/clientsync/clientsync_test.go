package clientsync

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaehyunkim/engage/internal/commentservice"
	"github.com/jaehyunkim/engage/internal/searchservice"
)

var errTransport = errors.New("transport failure")

type fakeCounterClient struct {
	viewCount int
	likeCount int
	isLiked   bool
	fail      bool

	viewCalls int
}

func (c *fakeCounterClient) IncrementView(slug, locale string) (int, error) {
	c.viewCalls++
	if c.fail {
		return 0, errTransport
	}
	c.viewCount++
	return c.viewCount, nil
}

func (c *fakeCounterClient) ToggleLike(slug, locale string) (bool, int, error) {
	if c.fail {
		return false, 0, errTransport
	}
	c.isLiked = !c.isLiked
	if c.isLiked {
		c.likeCount++
	} else {
		c.likeCount--
	}
	return c.isLiked, c.likeCount, nil
}

func (c *fakeCounterClient) GetLikeStatus(slug string) (int, bool, error) {
	if c.fail {
		return 0, false, errTransport
	}
	return c.likeCount, c.isLiked, nil
}

type fakeCommentClient struct {
	fail bool
}

func (c *fakeCommentClient) CreateComment(slug, locale string, form commentservice.CommentFormData, parentID *string) (*commentservice.Comment, error) {
	if c.fail {
		return nil, errTransport
	}
	author := form.Author
	content := form.Content
	return &commentservice.Comment{
		ID:       "server-id",
		Slug:     slug,
		Author:   &author,
		Email:    form.Email,
		Content:  &content,
		ParentID: parentID,
		Replies:  []*commentservice.Comment{},
	}, nil
}

type fakeSearchClient struct {
	results []searchservice.RankedResult
	fail    bool
}

func (c *fakeSearchClient) Search(query, locale string) ([]searchservice.RankedResult, error) {
	if c.fail {
		return nil, errTransport
	}
	return c.results, nil
}

func TestViewTrackerCommit(t *testing.T) {
	client := &fakeCounterClient{viewCount: 5}
	tracker := NewViewTracker(client, 5)

	err := tracker.RecordView("post1", "ko")
	require.NoError(t, err)

	assert.Equal(t, StateCommitted, tracker.State())
	assert.Equal(t, 6, tracker.ViewCount())
}

func TestViewTrackerRollback(t *testing.T) {
	client := &fakeCounterClient{viewCount: 5, fail: true}
	tracker := NewViewTracker(client, 5)

	err := tracker.RecordView("post1", "ko")
	require.Error(t, err)

	assert.Equal(t, StateRolledBack, tracker.State())
	assert.Equal(t, 5, tracker.ViewCount(), "failed increment must revert the displayed count")
}

func TestViewTrackerFiresOnce(t *testing.T) {
	client := &fakeCounterClient{viewCount: 5}
	tracker := NewViewTracker(client, 5)

	require.NoError(t, tracker.RecordView("post1", "ko"))
	require.NoError(t, tracker.RecordView("post1", "ko"))
	require.NoError(t, tracker.RecordView("post1", "ko"))

	assert.Equal(t, 1, client.viewCalls, "the auto view increment fires once per mount")
	assert.Equal(t, 6, tracker.ViewCount())
}

func TestLikeToggleCommit(t *testing.T) {
	client := &fakeCounterClient{likeCount: 2}
	like := NewLikeState(client)
	require.NoError(t, like.Load("post1"))

	err := like.Toggle("post1", "ko")
	require.NoError(t, err)

	assert.Equal(t, StateCommitted, like.State())
	assert.True(t, like.IsLiked())
	assert.Equal(t, 3, like.LikeCount())
}

func TestLikeToggleRollback(t *testing.T) {
	client := &fakeCounterClient{likeCount: 2, isLiked: true}
	like := NewLikeState(client)
	require.NoError(t, like.Load("post1"))

	client.fail = true
	err := like.Toggle("post1", "ko")
	require.Error(t, err)

	assert.Equal(t, StateRolledBack, like.State())
	assert.True(t, like.IsLiked(), "rollback restores the pre-toggle flag")
	assert.Equal(t, 2, like.LikeCount(), "rollback restores the pre-toggle count")
}

func TestLikeDoubleToggleRestores(t *testing.T) {
	client := &fakeCounterClient{likeCount: 2}
	like := NewLikeState(client)
	require.NoError(t, like.Load("post1"))

	require.NoError(t, like.Toggle("post1", "ko"))
	require.NoError(t, like.Toggle("post1", "ko"))

	assert.False(t, like.IsLiked())
	assert.Equal(t, 2, like.LikeCount())
}

func TestThreadSubmitCommit(t *testing.T) {
	client := &fakeCommentClient{}
	thread := NewThreadState(client, nil)

	form := commentservice.CommentFormData{Author: "Kim", Email: "a@x.com", Content: "hello"}
	comment, err := thread.Submit("post1", "ko", form, nil)
	require.NoError(t, err)

	assert.Equal(t, StateCommitted, thread.State())
	require.Len(t, thread.Comments(), 1)
	assert.Equal(t, "server-id", thread.Comments()[0].ID, "placeholder is replaced by the server comment")
	assert.Equal(t, comment, thread.Comments()[0])
}

func TestThreadSubmitRollback(t *testing.T) {
	client := &fakeCommentClient{fail: true}
	thread := NewThreadState(client, nil)

	form := commentservice.CommentFormData{Author: "Kim", Email: "a@x.com", Content: "hello"}
	_, err := thread.Submit("post1", "ko", form, nil)
	require.Error(t, err)

	assert.Equal(t, StateRolledBack, thread.State())
	assert.Empty(t, thread.Comments(), "failed submit removes the placeholder")
}

func TestSearchSessionDiscardsStale(t *testing.T) {
	session := NewSearchSession(&fakeSearchClient{})

	first := session.Begin()
	second := session.Begin()

	fresh := []searchservice.RankedResult{{Slug: "new"}}
	assert.True(t, session.Apply(second, fresh))

	stale := []searchservice.RankedResult{{Slug: "old"}}
	assert.False(t, session.Apply(first, stale), "an older in-flight response must not overwrite a newer one")

	require.Len(t, session.Results(), 1)
	assert.Equal(t, "new", session.Results()[0].Slug)
}

func TestSearchSessionQuery(t *testing.T) {
	client := &fakeSearchClient{results: []searchservice.RankedResult{{Slug: "post1", Score: 10}}}
	session := NewSearchSession(client)

	results, err := session.Query("설계", "ko")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "post1", results[0].Slug)
	assert.Equal(t, results, session.Results())
}
