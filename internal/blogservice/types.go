package blogservice

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type Blog struct {
	ID        uuid.UUID   `json:"id"`
	Title     string      `json:"title"`
	Content   string      `json:"content"`
	Genre     string      `json:"genre"`
	ImageURL  *string     `json:"imageUrl,omitempty"`
	AuthorID  uuid.UUID   `json:"authorId"`
	Author    *AuthorInfo `json:"author,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
}

// AuthorInfo is the minimal view of the owning user embedded in public blog
// responses.
type AuthorInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type BlogModel struct {
	db *sql.DB
}

type BlogService struct {
	m *BlogModel
}
