package counterservice

import (
	"context"

	"github.com/jaehyunkim/engage/internal/common"
)

func NewCounterService(store CounterStore, cache *common.Cache) *CounterService {
	return &CounterService{store: store, cache: cache}
}

// IncrementView bumps a post's view counter and returns the new total.
// The store does the add atomically; read-then-write here would lose
// updates under concurrent requests.
func (s *CounterService) IncrementView(ctx context.Context, locale, slug string) (int, error) {
	v := common.NewValidator()
	validateSlug(v, slug)
	if !v.Valid() {
		return 0, v.ValidationError()
	}

	count, err := s.store.IncrementView(ctx, slug)
	if err != nil {
		return 0, err
	}

	s.cache.InvalidateSlug(locale, slug)

	return count, nil
}

// ToggleLike flips the visitor's like flag and returns the new flag with
// the aggregate count. The aggregate is always recomputed from the
// per-session rows, so a failed flip can never leave a drifted total.
func (s *CounterService) ToggleLike(ctx context.Context, locale, slug, session string) (bool, int, error) {
	v := common.NewValidator()
	validateSlug(v, slug)
	validateSession(v, session)
	if !v.Valid() {
		return false, 0, v.ValidationError()
	}

	liked, err := s.store.ToggleUserLike(ctx, slug, session)
	if err != nil {
		return false, 0, err
	}

	count, err := s.store.CountLikes(ctx, slug)
	if err != nil {
		return false, 0, err
	}

	if err := s.store.SetLikeCount(ctx, slug, count); err != nil {
		return false, 0, err
	}

	s.cache.Delete(common.CacheKeyLikeStatus(slug, session))
	s.cache.InvalidateSlug(locale, slug)

	return liked, count, nil
}

// GetLikeStatus is a pure read of the aggregate count and the visitor's
// own flag.
func (s *CounterService) GetLikeStatus(ctx context.Context, slug, session string) (*LikeStatus, error) {
	v := common.NewValidator()
	validateSlug(v, slug)
	validateSession(v, session)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	key := common.CacheKeyLikeStatus(slug, session)
	if cached, ok := s.cache.Get(key); ok {
		if status, ok := cached.(*LikeStatus); ok {
			return status, nil
		}
	}

	count, err := s.store.CountLikes(ctx, slug)
	if err != nil {
		return nil, err
	}

	liked, err := s.store.GetUserLikeStatus(ctx, slug, session)
	if err != nil {
		return nil, err
	}

	status := &LikeStatus{LikeCount: count, IsLiked: liked}
	s.cache.Set(key, status)

	return status, nil
}

// GetCounters returns the aggregate row, zeros when the post has no
// engagement yet.
func (s *CounterService) GetCounters(ctx context.Context, slug string) (*Counters, error) {
	v := common.NewValidator()
	validateSlug(v, slug)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.store.GetCounters(ctx, slug)
}

// IncrementDownload bumps a post's download counter and returns the new
// total.
func (s *CounterService) IncrementDownload(ctx context.Context, locale, slug string) (int, error) {
	v := common.NewValidator()
	validateSlug(v, slug)
	if !v.Valid() {
		return 0, v.ValidationError()
	}

	count, err := s.store.IncrementDownload(ctx, slug)
	if err != nil {
		return 0, err
	}

	s.cache.InvalidateSlug(locale, slug)

	return count, nil
}

// GetDownloadCount is a pure read.
func (s *CounterService) GetDownloadCount(ctx context.Context, slug string) (int, error) {
	counters, err := s.GetCounters(ctx, slug)
	if err != nil {
		return 0, err
	}

	return counters.DownloadCount, nil
}
