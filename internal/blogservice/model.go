package blogservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

var (
	ErrRecordNotFound   = errors.New("record not found")
	ErrAuthorForeignKey = errors.New("author does not exist")
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
		INSERT INTO blogs (id, title, content, genre, image_url, author_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	args := []any{blog.ID, blog.Title, blog.Content, blog.Genre, blog.ImageURL, blog.AuthorID}

	err := m.db.QueryRowContext(ctx, query, args...).Scan(&blog.CreatedAt)
	if err != nil {
		switch {
		case ForeignKeyError(err, "blogs_author_id_fkey"):
			return ErrAuthorForeignKey
		default:
			return err
		}
	}

	return nil
}

// getByID joins the users table to embed the author projection.
func (m *BlogModel) getByID(ctx context.Context, id uuid.UUID) (*Blog, error) {
	query := `
		SELECT b.id, b.title, b.content, b.genre, b.image_url, b.author_id, b.created_at, u.name, u.email
		FROM blogs b
		JOIN users u ON b.author_id = u.id
		WHERE b.id = $1`

	row := m.db.QueryRowContext(ctx, query, id)

	var blog Blog
	var author AuthorInfo
	err := row.Scan(&blog.ID, &blog.Title, &blog.Content, &blog.Genre, &blog.ImageURL, &blog.AuthorID, &blog.CreatedAt, &author.Name, &author.Email)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	blog.Author = &author

	return &blog, nil
}

// getAll returns every blog with the author projection. No ORDER BY: callers
// must not rely on any ordering.
func (m *BlogModel) getAll(ctx context.Context) ([]Blog, error) {
	query := `
		SELECT b.id, b.title, b.content, b.genre, b.image_url, b.author_id, b.created_at, u.name, u.email
		FROM blogs b
		JOIN users u ON b.author_id = u.id`

	rows, err := m.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	blogs := []Blog{}
	for rows.Next() {
		var blog Blog
		var author AuthorInfo
		err := rows.Scan(&blog.ID, &blog.Title, &blog.Content, &blog.Genre, &blog.ImageURL, &blog.AuthorID, &blog.CreatedAt, &author.Name, &author.Email)
		if err != nil {
			return nil, err
		}
		blog.Author = &author
		blogs = append(blogs, blog)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return blogs, nil
}

func (m *BlogModel) getByAuthor(ctx context.Context, authorID uuid.UUID) ([]Blog, error) {
	query := `
		SELECT id, title, content, genre, image_url, author_id, created_at
		FROM blogs
		WHERE author_id = $1`

	rows, err := m.db.QueryContext(ctx, query, authorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	blogs := []Blog{}
	for rows.Next() {
		var blog Blog
		err := rows.Scan(&blog.ID, &blog.Title, &blog.Content, &blog.Genre, &blog.ImageURL, &blog.AuthorID, &blog.CreatedAt)
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

// update is a single atomic statement scoped to both id and author_id, so
// there is no window between an ownership check and the write. A COALESCE
// keeps any field that was not provided.
func (m *BlogModel) update(ctx context.Context, id, authorID uuid.UUID, req *UpdateBlogRequest) (*Blog, error) {
	query := `
		UPDATE blogs
		SET title = COALESCE($1, title),
			content = COALESCE($2, content),
			genre = COALESCE($3, genre),
			image_url = COALESCE($4, image_url)
		WHERE id = $5 AND author_id = $6
		RETURNING id, title, content, genre, image_url, author_id, created_at`

	args := []any{req.Title, req.Content, req.Genre, req.ImageURL, id, authorID}

	var blog Blog
	err := m.db.QueryRowContext(ctx, query, args...).Scan(&blog.ID, &blog.Title, &blog.Content, &blog.Genre, &blog.ImageURL, &blog.AuthorID, &blog.CreatedAt)
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

// delete is scoped to both id and author_id for the same reason as update.
func (m *BlogModel) delete(ctx context.Context, id, authorID uuid.UUID) error {
	query := `
		DELETE FROM blogs
		WHERE id = $1 AND author_id = $2`

	res, err := m.db.ExecContext(ctx, query, id, authorID)
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
