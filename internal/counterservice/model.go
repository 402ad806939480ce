package counterservice

import (
	"context"
	"database/sql"
	"errors"
)

// CounterModel is the postgres-backed CounterStore.
type CounterModel struct {
	db *sql.DB
}

func NewCounterModel(db *sql.DB) *CounterModel {
	return &CounterModel{db: db}
}

func (m *CounterModel) IncrementView(ctx context.Context, slug string) (int, error) {
	query := `
		INSERT INTO post_counters (slug, view_count, last_viewed_at)
		VALUES ($1, 1, now())
		ON CONFLICT (slug) DO UPDATE
		SET view_count = post_counters.view_count + 1, last_viewed_at = now()
		RETURNING view_count`

	var count int
	err := m.db.QueryRowContext(ctx, query, slug).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (m *CounterModel) IncrementDownload(ctx context.Context, slug string) (int, error) {
	query := `
		INSERT INTO post_counters (slug, download_count)
		VALUES ($1, 1)
		ON CONFLICT (slug) DO UPDATE
		SET download_count = post_counters.download_count + 1
		RETURNING download_count`

	var count int
	err := m.db.QueryRowContext(ctx, query, slug).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (m *CounterModel) GetCounters(ctx context.Context, slug string) (*Counters, error) {
	query := `
		SELECT slug, view_count, like_count, download_count, last_viewed_at
		FROM post_counters
		WHERE slug = $1`

	var c Counters
	var lastViewedAt sql.NullTime
	err := m.db.QueryRowContext(ctx, query, slug).Scan(&c.Slug, &c.ViewCount, &c.LikeCount, &c.DownloadCount, &lastViewedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return &Counters{Slug: slug}, nil
		default:
			return nil, err
		}
	}

	if lastViewedAt.Valid {
		c.LastViewedAt = &lastViewedAt.Time
	}

	return &c, nil
}

func (m *CounterModel) ToggleUserLike(ctx context.Context, slug, session string) (bool, error) {
	query := `
		INSERT INTO user_likes (slug, user_session, liked, updated_at)
		VALUES ($1, $2, TRUE, now())
		ON CONFLICT (slug, user_session) DO UPDATE
		SET liked = NOT user_likes.liked, updated_at = now()
		RETURNING liked`

	var liked bool
	err := m.db.QueryRowContext(ctx, query, slug, session).Scan(&liked)
	if err != nil {
		return false, err
	}

	return liked, nil
}

func (m *CounterModel) CountLikes(ctx context.Context, slug string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM user_likes
		WHERE slug = $1 AND liked = TRUE`

	var count int
	err := m.db.QueryRowContext(ctx, query, slug).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (m *CounterModel) SetLikeCount(ctx context.Context, slug string, count int) error {
	query := `
		INSERT INTO post_counters (slug, like_count)
		VALUES ($1, $2)
		ON CONFLICT (slug) DO UPDATE
		SET like_count = $2`

	_, err := m.db.ExecContext(ctx, query, slug, count)
	return err
}

func (m *CounterModel) GetUserLikeStatus(ctx context.Context, slug, session string) (bool, error) {
	query := `
		SELECT liked
		FROM user_likes
		WHERE slug = $1 AND user_session = $2`

	var liked bool
	err := m.db.QueryRowContext(ctx, query, slug, session).Scan(&liked)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return false, nil
		default:
			return false, err
		}
	}

	return liked, nil
}
