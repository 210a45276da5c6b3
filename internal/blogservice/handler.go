package blogservice

import (
	"context"
	"database/sql"
	"errors"

	"github.com/ossilind/bloglist/internal/common"
)

// ErrNotOwner is returned when an authenticated user tries to delete a
// blog owned by somebody else.
var ErrNotOwner = errors.New("user does not own this blog")

func NewBlogService(db *sql.DB, c *common.Cache) *BlogService {
	return &BlogService{m: newBlogModel(db), c: c}
}

type CreateBlogRequest struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
	Likes  *int   `json:"likes"`
	UserID int    `json:"user_id"`
}

// CreateBlog validates the request and persists a new blog owned by
// the given user. A missing likes field defaults to zero.
func (s *BlogService) CreateBlog(ctx context.Context, req *CreateBlogRequest) (*Blog, error) {
	likes := 0
	if req.Likes != nil {
		likes = *req.Likes
	}

	blog := Blog{
		Title:  req.Title,
		Author: req.Author,
		URL:    req.URL,
		Likes:  likes,
		User:   Owner{ID: req.UserID},
	}

	v := common.NewValidator()
	validateBlog(v, &blog)
	validateInt(v, req.UserID, "user_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	if err := s.m.insert(ctx, &blog); err != nil {
		return nil, err
	}

	s.invalidate(&blog)

	return &blog, nil
}

// GetBlogByID returns a blog post by its ID.
func (s *BlogService) GetBlogByID(ctx context.Context, id int) (*Blog, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	if cached, ok := s.c.Get(common.CacheKeyBlog(id)); ok {
		if blog, ok := cached.(*Blog); ok {
			return blog, nil
		}
	}

	blog, err := s.m.getBlogById(ctx, id)
	if err != nil {
		return nil, err
	}

	s.c.Set(common.CacheKeyBlog(id), blog)

	return blog, nil
}

type UpdateBlogRequest struct {
	Title  *string `json:"title"`
	Author *string `json:"author"`
	URL    *string `json:"url"`
	Likes  *int    `json:"likes"`
}

// UpdateBlog applies a field-level merge of the request onto the
// stored blog, re-validates the merged result, and persists it. The
// owner is not a mergeable field.
func (s *BlogService) UpdateBlog(ctx context.Context, id int, req *UpdateBlogRequest) (*Blog, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	blog, err := s.m.getBlogById(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		blog.Title = *req.Title
	}
	if req.Author != nil {
		blog.Author = *req.Author
	}
	if req.URL != nil {
		blog.URL = *req.URL
	}
	if req.Likes != nil {
		blog.Likes = *req.Likes
	}

	validateBlog(v, blog)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	if err := s.m.updateBlog(ctx, blog); err != nil {
		return nil, err
	}

	s.invalidate(blog)

	return blog, nil
}

// DeleteBlog removes a blog post. Only the owning user may delete it;
// any other identity gets ErrNotOwner.
func (s *BlogService) DeleteBlog(ctx context.Context, blogId, userId int) error {
	v := common.NewValidator()
	validateInt(v, blogId, "id")
	validateInt(v, userId, "user_id")
	if !v.Valid() {
		return v.ValidationError()
	}

	blog, err := s.m.getBlogById(ctx, blogId)
	if err != nil {
		return err
	}

	if blog.User.ID != userId {
		return ErrNotOwner
	}

	if err := s.m.deleteBlog(ctx, blogId); err != nil {
		return err
	}

	s.invalidate(blog)

	return nil
}

// GetBlogs returns all blog posts in insertion order.
func (s *BlogService) GetBlogs(ctx context.Context) ([]Blog, error) {
	if cached, ok := s.c.Get(common.CacheKeyBlogs()); ok {
		if blogs, ok := cached.([]Blog); ok {
			return blogs, nil
		}
	}

	blogs, err := s.m.getBlogs(ctx)
	if err != nil {
		return nil, err
	}

	s.c.Set(common.CacheKeyBlogs(), blogs)

	return blogs, nil
}

// GetBlogsByUserId returns all blog posts owned by a user.
func (s *BlogService) GetBlogsByUserId(ctx context.Context, userID int) (*[]Blog, error) {
	v := common.NewValidator()
	validateInt(v, userID, "user_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	if cached, ok := s.c.Get(common.CacheKeyBlogsByUserId(userID)); ok {
		if blogs, ok := cached.(*[]Blog); ok {
			return blogs, nil
		}
	}

	blogs, err := s.m.getBlogsByUserId(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.c.Set(common.CacheKeyBlogsByUserId(userID), blogs)

	return blogs, nil
}

// invalidate drops the cache entries a mutation of this blog touches.
func (s *BlogService) invalidate(blog *Blog) {
	s.c.Delete(common.CacheKeyBlog(blog.ID))
	s.c.Delete(common.CacheKeyBlogs())
	s.c.Delete(common.CacheKeyBlogsByUserId(blog.User.ID))
}
