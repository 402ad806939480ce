package counterservice

import (
	"context"
	"time"

	"github.com/jaehyunkim/engage/internal/common"
)

// Counters is the per-post aggregate row. A post with no engagement yet
// has no row; readers treat that as all zeros.
type Counters struct {
	Slug          string `json:"slug"`
	ViewCount     int    `json:"view_count"`
	LikeCount     int    `json:"like_count"`
	DownloadCount int    `json:"download_count"`
	// LastViewedAt stays nil until the first view; likes and downloads
	// create the row without touching it.
	LastViewedAt *time.Time `json:"last_viewed_at,omitempty"`
}

type LikeStatus struct {
	LikeCount int  `json:"like_count"`
	IsLiked   bool `json:"is_liked"`
}

// CounterStore is the persistence boundary. Increment operations are
// single-statement upserts so concurrent requests cannot lose updates.
type CounterStore interface {
	IncrementView(ctx context.Context, slug string) (int, error)
	IncrementDownload(ctx context.Context, slug string) (int, error)
	GetCounters(ctx context.Context, slug string) (*Counters, error)
	// ToggleUserLike flips the (slug, session) like flag, inserting it
	// as liked when absent, and returns the new flag.
	ToggleUserLike(ctx context.Context, slug, session string) (bool, error)
	// CountLikes recomputes the aggregate from the per-session rows.
	CountLikes(ctx context.Context, slug string) (int, error)
	SetLikeCount(ctx context.Context, slug string, count int) error
	GetUserLikeStatus(ctx context.Context, slug, session string) (bool, error)
}

type CounterService struct {
	store CounterStore
	cache *common.Cache
}
