package counterservice

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaehyunkim/engage/internal/common"
)

func newTestService() (*CounterService, *MemCounterStore, *common.Cache) {
	store := NewMemCounterStore()
	cache := common.NewCache(5*time.Minute, 10*time.Minute)
	return NewCounterService(store, cache), store, cache
}

func TestIncrementView(t *testing.T) {
	s, _, _ := newTestService()
	ctx := context.Background()

	count, err := s.IncrementView(ctx, "ko", "post1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	for i := 2; i <= 5; i++ {
		count, err = s.IncrementView(ctx, "ko", "post1")
		require.NoError(t, err)
		assert.Equal(t, i, count)
	}
}

func TestIncrementViewInvalidSlug(t *testing.T) {
	s, _, _ := newTestService()

	_, err := s.IncrementView(context.Background(), "ko", "post 1")
	assert.ErrorAs(t, err, &common.ValidationError{})
}

func TestIncrementViewInvalidatesPageCache(t *testing.T) {
	s, _, cache := newTestService()

	cache.Set(common.CacheKeyPage("ko", "post1"), "rendered page")

	_, err := s.IncrementView(context.Background(), "ko", "post1")
	require.NoError(t, err)

	_, ok := cache.Get(common.CacheKeyPage("ko", "post1"))
	assert.False(t, ok)
}

func TestToggleLike(t *testing.T) {
	s, _, _ := newTestService()
	ctx := context.Background()

	liked, count, err := s.ToggleLike(ctx, "ko", "post1", "session_a")
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, 1, count)

	liked, count, err = s.ToggleLike(ctx, "ko", "post1", "session_b")
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, 2, count)

	// toggling twice returns flag and count to their prior values
	liked, count, err = s.ToggleLike(ctx, "ko", "post1", "session_a")
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Equal(t, 1, count)
}

func TestLikeCountMatchesLikedSessions(t *testing.T) {
	s, store, _ := newTestService()
	ctx := context.Background()

	sequence := []string{"s1", "s2", "s3", "s1", "s2", "s2", "s3", "s3"}
	for _, session := range sequence {
		_, _, err := s.ToggleLike(ctx, "ko", "post1", session)
		require.NoError(t, err)
	}

	// after any toggle sequence the aggregate equals the live row count
	count, err := store.CountLikes(ctx, "post1")
	require.NoError(t, err)

	counters, err := s.GetCounters(ctx, "post1")
	require.NoError(t, err)
	assert.Equal(t, count, counters.LikeCount)

	// s1 toggled twice (off), s2 three times (on), s3 three times (on)
	assert.Equal(t, 2, count)
}

func TestGetLikeStatus(t *testing.T) {
	s, _, _ := newTestService()
	ctx := context.Background()

	status, err := s.GetLikeStatus(ctx, "post1", "session_a")
	require.NoError(t, err)
	assert.Equal(t, 0, status.LikeCount)
	assert.False(t, status.IsLiked)

	_, _, err = s.ToggleLike(ctx, "ko", "post1", "session_a")
	require.NoError(t, err)

	status, err = s.GetLikeStatus(ctx, "post1", "session_a")
	require.NoError(t, err)
	assert.Equal(t, 1, status.LikeCount)
	assert.True(t, status.IsLiked)

	status, err = s.GetLikeStatus(ctx, "post1", "session_b")
	require.NoError(t, err)
	assert.Equal(t, 1, status.LikeCount)
	assert.False(t, status.IsLiked)
}

func TestGetCountersAbsentSlug(t *testing.T) {
	s, _, _ := newTestService()

	counters, err := s.GetCounters(context.Background(), "never-seen")
	require.NoError(t, err)
	assert.Equal(t, 0, counters.ViewCount)
	assert.Equal(t, 0, counters.LikeCount)
	assert.Equal(t, 0, counters.DownloadCount)
}

func TestIncrementDownload(t *testing.T) {
	s, _, _ := newTestService()
	ctx := context.Background()

	count, err := s.IncrementDownload(ctx, "ko", "post1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = s.GetDownloadCount(ctx, "post1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
