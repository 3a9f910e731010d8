package repository

import (
	"context"
	"errors"

	"blogsapi/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostRepository interface {
	Create(ctx context.Context, post *entity.Post) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Post, error)
	FindOwned(ctx context.Context, id uuid.UUID, authorID uuid.UUID) (*entity.Post, error)
	ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]entity.Post, error)
	Update(ctx context.Context, post *entity.Post) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *entity.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Post, error) {
	return firstPost(r.activeBlogs(ctx).Where("posts.id = ?", id))
}

func (r *postRepository) FindOwned(ctx context.Context, id uuid.UUID, authorID uuid.UUID) (*entity.Post, error) {
	return firstPost(r.activeBlogs(ctx).Where("posts.id = ? AND blogs.author_id = ?", id, authorID))
}

func (r *postRepository) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]entity.Post, error) {
	var posts []entity.Post
	err := r.activeBlogs(ctx).
		Where("blogs.author_id = ?", authorID).
		Order("posts.created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) Update(ctx context.Context, post *entity.Post) error {
	return r.db.WithContext(ctx).
		Model(&entity.Post{}).
		Where("id = ?", post.ID).
		Updates(map[string]any{"title": post.Title, "body": post.Body}).
		Error
}

func (r *postRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&entity.Post{}).
		Error
}

// activeBlogs restricts posts to those whose blog is itself active.
func (r *postRepository) activeBlogs(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&entity.Post{}).
		Select("posts.*").
		Joins("JOIN blogs ON blogs.id = posts.blog_id AND blogs.deleted_at IS NULL")
}

func firstPost(query *gorm.DB) (*entity.Post, error) {
	var post entity.Post
	err := query.First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}
