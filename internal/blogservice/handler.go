package blogservice

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/mayleng/inkpost/internal/common"
)

func NewBlogService(db *sql.DB) *BlogService {
	return &BlogService{m: newBlogModel(db)}
}

type CreateBlogRequest struct {
	Title    string  `json:"title"`
	Content  string  `json:"content"`
	Genre    string  `json:"genre"`
	ImageURL *string `json:"imageUrl"`
	AuthorID uuid.UUID
}

// CreateBlog creates a new blog post owned by the authenticated author. The
// author ID always comes from the verified caller, never from the request
// body.
func (s *BlogService) CreateBlog(ctx context.Context, req *CreateBlogRequest) (*Blog, error) {
	v := common.NewValidator()
	validateTitle(v, req.Title)
	validateContent(v, req.Content)
	validateGenre(v, req.Genre)
	validateAuthorID(v, req.AuthorID)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	blog := &Blog{
		ID:       uuid.New(),
		Title:    req.Title,
		Content:  req.Content,
		Genre:    req.Genre,
		ImageURL: req.ImageURL,
		AuthorID: req.AuthorID,
	}

	err := s.m.insert(ctx, blog)
	if err != nil {
		return nil, err
	}

	return blog, nil
}

// GetBlogs returns every stored blog post with the author projection applied.
// No ordering is guaranteed.
func (s *BlogService) GetBlogs(ctx context.Context) ([]Blog, error) {
	return s.m.getAll(ctx)
}

// GetBlogByID returns a single blog post with the author projection applied.
func (s *BlogService) GetBlogByID(ctx context.Context, id uuid.UUID) (*Blog, error) {
	return s.m.getByID(ctx, id)
}

// GetBlogsByAuthor returns the caller's own blog posts without the author
// projection. An author with no posts gets an empty slice, not an error.
func (s *BlogService) GetBlogsByAuthor(ctx context.Context, authorID uuid.UUID) ([]Blog, error) {
	v := common.NewValidator()
	validateAuthorID(v, authorID)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getByAuthor(ctx, authorID)
}

// UpdateBlogRequest carries the allow-listed mutable fields of a blog post.
// A nil field is left untouched, which means an existing image can be
// replaced but never cleared back to null through an update.
type UpdateBlogRequest struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	Genre    *string `json:"genre"`
	ImageURL *string `json:"imageUrl"`
}

// UpdateBlog applies a partial update to the blog post matching both id and
// callerID in a single atomic statement. A provided field must be non-empty.
// ErrRecordNotFound covers both a missing blog and one owned by someone
// else, so a caller cannot probe for other users' posts.
func (s *BlogService) UpdateBlog(ctx context.Context, id, callerID uuid.UUID, req *UpdateBlogRequest) (*Blog, error) {
	v := common.NewValidator()
	if req.Title != nil {
		validateTitle(v, *req.Title)
	}
	if req.Content != nil {
		validateContent(v, *req.Content)
	}
	if req.Genre != nil {
		validateGenre(v, *req.Genre)
	}
	validateAuthorID(v, callerID)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.update(ctx, id, callerID, req)
}

// DeleteBlog removes the blog post matching both id and callerID. The same
// ErrRecordNotFound conflation as UpdateBlog applies.
func (s *BlogService) DeleteBlog(ctx context.Context, id, callerID uuid.UUID) error {
	v := common.NewValidator()
	validateAuthorID(v, callerID)
	if !v.Valid() {
		return v.ValidationError()
	}

	return s.m.delete(ctx, id, callerID)
}
