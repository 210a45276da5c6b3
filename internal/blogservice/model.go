package blogservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrUserForeignKey = errors.New("user_id does not exist")
)

func newBlogModel(db *sql.DB) *BlogModel {
	return &BlogModel{db: db}
}

// ForeignKeyError is a helper function to check if the error is a foreign key constraint error.
func ForeignKeyError(err error, name string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code == "23503" && pqErr.Constraint == name {
			return true
		}
	}

	return false
}

func (m *BlogModel) insert(ctx context.Context, blog *Blog) error {
	query := `
		INSERT INTO blogs (title, url, author, likes, user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at, version`

	args := []any{blog.Title, blog.URL, blog.Author, blog.Likes, blog.User.ID}

	err := m.db.QueryRowContext(ctx, query, args...).Scan(&blog.ID, &blog.CreatedAt, &blog.UpdatedAt, &blog.Version)
	if err != nil {
		switch {
		case ForeignKeyError(err, "blogs_user_id_fkey"):
			return ErrUserForeignKey
		default:
			return err
		}
	}

	return nil
}

func (m *BlogModel) getBlogById(ctx context.Context, id int) (*Blog, error) {
	query := `
		SELECT id, title, url, author, likes, user_id, created_at, updated_at, version
		FROM blogs
		WHERE id = $1`

	row := m.db.QueryRowContext(ctx, query, id)

	var blog Blog
	err := row.Scan(&blog.ID, &blog.Title, &blog.URL, &blog.Author, &blog.Likes, &blog.User.ID, &blog.CreatedAt, &blog.UpdatedAt, &blog.Version)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &blog, nil
}

func (m *BlogModel) updateBlog(ctx context.Context, blog *Blog) error {
	query := `
		UPDATE blogs
		SET title = $1, url = $2, author = $3, likes = $4, updated_at = now(), version = version + 1
		WHERE id = $5 AND version = $6
		RETURNING version, created_at, updated_at`

	args := []any{blog.Title, blog.URL, blog.Author, blog.Likes, blog.ID, blog.Version}

	err := m.db.QueryRowContext(ctx, query, args...).Scan(&blog.Version, &blog.CreatedAt, &blog.UpdatedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return ErrRecordNotFound
		default:
			return err
		}
	}

	return nil
}

func (m *BlogModel) deleteBlog(ctx context.Context, id int) error {
	query := `
		DELETE FROM blogs
		WHERE id = $1`

	res, err := m.db.ExecContext(ctx, query, id)
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
			return ErrRecordNotFound
		default:
			return fmt.Errorf("expected 1 row to be affected, got %d", rows)
		}
	}

	return nil
}

// getBlogs returns every blog in insertion order.
func (m *BlogModel) getBlogs(ctx context.Context) ([]Blog, error) {
	query := `
		SELECT id, title, url, author, likes, user_id, created_at, updated_at, version
		FROM blogs
		ORDER BY id`

	rows, err := m.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var blogs []Blog
	for rows.Next() {
		var blog Blog
		err := rows.Scan(&blog.ID, &blog.Title, &blog.URL, &blog.Author, &blog.Likes, &blog.User.ID, &blog.CreatedAt, &blog.UpdatedAt, &blog.Version)
		if err != nil {
			return nil, err
		}
		blogs = append(blogs, blog)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return blogs, nil
}

// getBlogsByUserId derives a user's blog list from the ownership
// column. There is no stored per-user id list to keep in sync.
func (m *BlogModel) getBlogsByUserId(ctx context.Context, userID int) (*[]Blog, error) {
	query := `
		SELECT id, title, url, author, likes, user_id, created_at, updated_at, version
		FROM blogs
		WHERE user_id = $1
		ORDER BY id`

	rows, err := m.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	found := false

	var blogs []Blog
	for rows.Next() {
		var blog Blog
		err := rows.Scan(&blog.ID, &blog.Title, &blog.URL, &blog.Author, &blog.Likes, &blog.User.ID, &blog.CreatedAt, &blog.UpdatedAt, &blog.Version)
		if err != nil {
			return nil, err
		}
		blogs = append(blogs, blog)
		found = true
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if !found {
		return nil, ErrRecordNotFound
	}

	return &blogs, nil
}
