package counterservice

import (
	"context"
	"sync"
	"time"
)

// MemCounterStore is an in-memory CounterStore for tests and local
// development.
type MemCounterStore struct {
	mu       sync.Mutex
	counters map[string]*Counters
	likes    map[string]map[string]bool
}

func NewMemCounterStore() *MemCounterStore {
	return &MemCounterStore{
		counters: make(map[string]*Counters),
		likes:    make(map[string]map[string]bool),
	}
}

func (s *MemCounterStore) row(slug string) *Counters {
	c, ok := s.counters[slug]
	if !ok {
		c = &Counters{Slug: slug}
		s.counters[slug] = c
	}
	return c
}

func (s *MemCounterStore) IncrementView(ctx context.Context, slug string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.row(slug)
	c.ViewCount++
	now := time.Now().UTC()
	c.LastViewedAt = &now
	return c.ViewCount, nil
}

func (s *MemCounterStore) IncrementDownload(ctx context.Context, slug string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.row(slug)
	c.DownloadCount++
	return c.DownloadCount, nil
}

func (s *MemCounterStore) GetCounters(ctx context.Context, slug string) (*Counters, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.counters[slug]
	if !ok {
		return &Counters{Slug: slug}, nil
	}

	cp := *c
	return &cp, nil
}

func (s *MemCounterStore) ToggleUserLike(ctx context.Context, slug, session string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions, ok := s.likes[slug]
	if !ok {
		sessions = make(map[string]bool)
		s.likes[slug] = sessions
	}

	liked, ok := sessions[session]
	if !ok {
		sessions[session] = true
		return true, nil
	}

	sessions[session] = !liked
	return !liked, nil
}

func (s *MemCounterStore) CountLikes(ctx context.Context, slug string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, liked := range s.likes[slug] {
		if liked {
			count++
		}
	}
	return count, nil
}

func (s *MemCounterStore) SetLikeCount(ctx context.Context, slug string, count int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.row(slug).LikeCount = count
	return nil
}

func (s *MemCounterStore) GetUserLikeStatus(ctx context.Context, slug, session string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.likes[slug][session], nil
}
