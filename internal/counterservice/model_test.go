package counterservice

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaehyunkim/engage/internal/common"
)

func setupTestModel(t *testing.T) *CounterModel {
	db := common.TestDB("file://../../migrations", t)
	return NewCounterModel(db)
}

func TestCounterModelIncrementView(t *testing.T) {
	m := setupTestModel(t)
	ctx := context.Background()

	count, err := m.IncrementView(ctx, "post1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = m.IncrementView(ctx, "post1")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	counters, err := m.GetCounters(ctx, "post1")
	require.NoError(t, err)
	assert.Equal(t, 2, counters.ViewCount)
	require.NotNil(t, counters.LastViewedAt)
	assert.False(t, counters.LastViewedAt.IsZero())
}

func TestCounterModelIncrementViewConcurrent(t *testing.T) {
	m := setupTestModel(t)
	ctx := context.Background()

	const workers = 20

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := m.IncrementView(ctx, "post1")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// upsert-increment is atomic, no updates are lost
	counters, err := m.GetCounters(ctx, "post1")
	require.NoError(t, err)
	assert.Equal(t, workers, counters.ViewCount)
}

func TestCounterModelGetCountersAbsent(t *testing.T) {
	m := setupTestModel(t)

	counters, err := m.GetCounters(context.Background(), "never-seen")
	require.NoError(t, err)
	assert.Equal(t, 0, counters.ViewCount)
	assert.Equal(t, 0, counters.LikeCount)
}

func TestCounterModelToggleUserLike(t *testing.T) {
	m := setupTestModel(t)
	ctx := context.Background()

	liked, err := m.ToggleUserLike(ctx, "post1", "session_a")
	require.NoError(t, err)
	assert.True(t, liked)

	liked, err = m.ToggleUserLike(ctx, "post1", "session_a")
	require.NoError(t, err)
	assert.False(t, liked)

	liked, err = m.GetUserLikeStatus(ctx, "post1", "session_a")
	require.NoError(t, err)
	assert.False(t, liked)
}

func TestCounterModelCountLikes(t *testing.T) {
	m := setupTestModel(t)
	ctx := context.Background()

	_, err := m.ToggleUserLike(ctx, "post1", "session_a")
	require.NoError(t, err)
	_, err = m.ToggleUserLike(ctx, "post1", "session_b")
	require.NoError(t, err)
	_, err = m.ToggleUserLike(ctx, "post1", "session_b")
	require.NoError(t, err)
	_, err = m.ToggleUserLike(ctx, "other-post", "session_a")
	require.NoError(t, err)

	count, err := m.CountLikes(ctx, "post1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCounterModelSetLikeCount(t *testing.T) {
	m := setupTestModel(t)
	ctx := context.Background()

	err := m.SetLikeCount(ctx, "post1", 3)
	require.NoError(t, err)

	// the row exists without any recorded view, last_viewed_at is NULL
	counters, err := m.GetCounters(ctx, "post1")
	require.NoError(t, err)
	assert.Equal(t, 3, counters.LikeCount)
	assert.Nil(t, counters.LastViewedAt)
}

func TestCounterModelIncrementDownload(t *testing.T) {
	m := setupTestModel(t)
	ctx := context.Background()

	count, err := m.IncrementDownload(ctx, "post1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = m.IncrementDownload(ctx, "post1")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	counters, err := m.GetCounters(ctx, "post1")
	require.NoError(t, err)
	assert.Equal(t, 2, counters.DownloadCount)
	assert.Nil(t, counters.LastViewedAt)
}
