package repository

import (
	"context"
	"errors"

	"blogsapi/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BlogRepository interface {
	Create(ctx context.Context, blog *entity.Blog) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Blog, error)
	FindOwned(ctx context.Context, id uuid.UUID, authorID uuid.UUID) (*entity.Blog, error)
	FindDeletedOwned(ctx context.Context, id uuid.UUID, authorID uuid.UUID) (*entity.Blog, error)
	ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]entity.Blog, error)
	Update(ctx context.Context, blog *entity.Blog) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) error
}

type blogRepository struct {
	db *gorm.DB
}

func NewBlogRepository(db *gorm.DB) BlogRepository {
	return &blogRepository{db: db}
}

func (r *blogRepository) Create(ctx context.Context, blog *entity.Blog) error {
	return r.db.WithContext(ctx).Create(blog).Error
}

func (r *blogRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Blog, error) {
	return firstBlog(r.db.WithContext(ctx).
		Preload("Author").
		Preload("Posts").
		Where("id = ?", id))
}

func (r *blogRepository) FindOwned(ctx context.Context, id uuid.UUID, authorID uuid.UUID) (*entity.Blog, error) {
	return firstBlog(r.db.WithContext(ctx).Where("id = ? AND author_id = ?", id, authorID))
}

// FindDeletedOwned is the only blog lookup that looks past the soft-delete
// scope.
func (r *blogRepository) FindDeletedOwned(ctx context.Context, id uuid.UUID, authorID uuid.UUID) (*entity.Blog, error) {
	return firstBlog(r.db.WithContext(ctx).
		Unscoped().
		Where("id = ? AND author_id = ? AND deleted_at IS NOT NULL", id, authorID))
}

func (r *blogRepository) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]entity.Blog, error) {
	var blogs []entity.Blog
	err := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Find(&blogs).Error
	if err != nil {
		return nil, err
	}
	return blogs, nil
}

func (r *blogRepository) Update(ctx context.Context, blog *entity.Blog) error {
	return r.db.WithContext(ctx).
		Model(&entity.Blog{}).
		Where("id = ?", blog.ID).
		Updates(map[string]any{"title": blog.Title, "description": blog.Description}).
		Error
}

func (r *blogRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&entity.Blog{}).
		Error
}

func (r *blogRepository) Restore(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Unscoped().
		Model(&entity.Blog{}).
		Where("id = ?", id).
		Update("deleted_at", nil).
		Error
}

func firstBlog(query *gorm.DB) (*entity.Blog, error) {
	var blog entity.Blog
	err := query.First(&blog).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &blog, nil
}
