package repository

import (
	"context"
	"errors"

	"blogsapi/internal/entity"
	"blogsapi/internal/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRepository only sees active users; soft-deleted rows are filtered by
// gorm's DeletedAt scope on every query.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByIDWithBlogs(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByLogin(ctx context.Context, email string, nickname string) (*entity.User, error)
	EmailTaken(ctx context.Context, email string, except uuid.UUID) (bool, error)
	NicknameTaken(ctx context.Context, nickname string, except uuid.UUID) (bool, error)
	Update(ctx context.Context, user *entity.User) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]entity.User, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return r.first(r.db.WithContext(ctx).Where("id = ?", id))
}

func (r *userRepository) FindByIDWithBlogs(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return r.first(r.db.WithContext(ctx).
		Preload("Blogs", func(db *gorm.DB) *gorm.DB { return db.Order("created_at DESC") }).
		Where("id = ?", id))
}

// FindByLogin resolves an exact email match before trying nicknames, so a
// nickname can never shadow another account's email.
func (r *userRepository) FindByLogin(ctx context.Context, email string, nickname string) (*entity.User, error) {
	user, err := r.first(r.db.WithContext(ctx).Where("email = ?", email))
	if err != nil || user != nil {
		return user, err
	}
	return r.first(r.db.WithContext(ctx).Where("nickname = ?", nickname))
}

// EmailTaken and NicknameTaken check both namespaces: both values are
// accepted as a login identifier.
func (r *userRepository) EmailTaken(ctx context.Context, email string, except uuid.UUID) (bool, error) {
	return r.exists(ctx, "(email = ? OR LOWER(nickname) = ?) AND id <> ?", email, utils.NormalizeEmail(email), except)
}

func (r *userRepository) NicknameTaken(ctx context.Context, nickname string, except uuid.UUID) (bool, error) {
	return r.exists(ctx, "(nickname = ? OR email = ?) AND id <> ?", nickname, utils.NormalizeEmail(nickname), except)
}

func (r *userRepository) Update(ctx context.Context, user *entity.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&entity.User{}).
		Error
}

func (r *userRepository) List(ctx context.Context, limit, offset int) ([]entity.User, error) {
	var users []entity.User
	query := r.db.WithContext(ctx).Preload("Blogs").Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	if err := query.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) first(query *gorm.DB) (*entity.User, error) {
	var user entity.User
	err := query.First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) exists(ctx context.Context, where string, args ...any) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.User{}).
		Where(where, args...).
		Count(&count).Error
	return count > 0, err
}
