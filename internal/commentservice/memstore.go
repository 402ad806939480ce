package commentservice

import (
	"context"
	"sort"
	"sync"

	"github.com/jaehyunkim/engage/internal/common"
)

// MemStore is an in-memory CommentStore for tests and local development.
type MemStore struct {
	mu       sync.RWMutex
	comments map[string]*Comment
	bySlug   map[string][]string
}

func NewMemStore() *MemStore {
	return &MemStore{
		comments: make(map[string]*Comment),
		bySlug:   make(map[string][]string),
	}
}

func (s *MemStore) Insert(ctx context.Context, c *Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *c
	s.comments[c.ID] = &cp
	s.bySlug[c.Slug] = append(s.bySlug[c.Slug], c.ID)
	return nil
}

func (s *MemStore) GetByID(ctx context.Context, id string) (*Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.comments[id]
	if !ok {
		return nil, common.ErrRecordNotFound
	}

	cp := *c
	return &cp, nil
}

func (s *MemStore) GetBySlug(ctx context.Context, slug string) ([]*Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.bySlug[slug]
	rows := make([]*Comment, 0, len(ids))
	for _, id := range ids {
		if c, ok := s.comments[id]; ok {
			cp := *c
			rows = append(rows, &cp)
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].CreatedAt.Before(rows[j].CreatedAt)
	})

	return rows, nil
}

func (s *MemStore) Update(ctx context.Context, c *Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.comments[c.ID]
	if !ok {
		return common.ErrRecordNotFound
	}

	stored.Author = c.Author
	stored.Content = c.Content
	stored.LastModifiedAt = c.LastModifiedAt
	return nil
}

func (s *MemStore) SoftDelete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.comments[id]
	if !ok {
		return common.ErrRecordNotFound
	}

	stored.Author = nil
	stored.Content = nil
	return nil
}
