package commentservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jaehyunkim/engage/internal/common"
)

// CommentModel is the postgres-backed CommentStore.
type CommentModel struct {
	db *sql.DB
}

func NewCommentModel(db *sql.DB) *CommentModel {
	return &CommentModel{db: db}
}

func (m *CommentModel) Insert(ctx context.Context, c *Comment) error {
	query := `
		INSERT INTO comments (id, slug, author, email, content, parent_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := m.db.ExecContext(ctx, query, c.ID, c.Slug, c.Author, c.Email, c.Content, c.ParentID, c.CreatedAt)
	return err
}

func (m *CommentModel) GetByID(ctx context.Context, id string) (*Comment, error) {
	query := `
		SELECT id, slug, author, email, content, parent_id, created_at, updated_at
		FROM comments
		WHERE id = $1`

	var c Comment
	err := m.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Slug, &c.Author, &c.Email, &c.Content, &c.ParentID, &c.CreatedAt, &c.LastModifiedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, common.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &c, nil
}

func (m *CommentModel) GetBySlug(ctx context.Context, slug string) ([]*Comment, error) {
	query := `
		SELECT id, slug, author, email, content, parent_id, created_at, updated_at
		FROM comments
		WHERE slug = $1
		ORDER BY created_at ASC`

	rows, err := m.db.QueryContext(ctx, query, slug)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []*Comment
	for rows.Next() {
		var c Comment
		err := rows.Scan(&c.ID, &c.Slug, &c.Author, &c.Email, &c.Content, &c.ParentID, &c.CreatedAt, &c.LastModifiedAt)
		if err != nil {
			return nil, err
		}
		comments = append(comments, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return comments, nil
}

func (m *CommentModel) Update(ctx context.Context, c *Comment) error {
	query := `
		UPDATE comments
		SET author = $1, content = $2, updated_at = $3
		WHERE id = $4`

	return m.execOne(ctx, query, c.Author, c.Content, c.LastModifiedAt, c.ID)
}

func (m *CommentModel) SoftDelete(ctx context.Context, id string) error {
	query := `
		UPDATE comments
		SET author = NULL, content = NULL
		WHERE id = $1`

	return m.execOne(ctx, query, id)
}

func (m *CommentModel) execOne(ctx context.Context, query string, args ...any) error {
	res, err := m.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rows != 1 {
		switch {
		case rows == 0:
			return common.ErrRecordNotFound
		default:
			return fmt.Errorf("expected 1 row to be affected, got %d", rows)
		}
	}

	return nil
}
