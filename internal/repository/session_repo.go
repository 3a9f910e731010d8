package repository

import (
	"context"
	"errors"

	"blogsapi/internal/entity"

	"gorm.io/gorm"
)

// SessionRepository is append-only: sessions are inserted and read, never
// updated or deleted.
type SessionRepository interface {
	Create(ctx context.Context, session *entity.Session) error
	// FindLatestByRefreshHash returns the most recently created session for
	// the refresh token digest, or (nil, nil) when none exists.
	FindLatestByRefreshHash(ctx context.Context, hash string) (*entity.Session, error)
	// HasSuccessor reports whether a later session was rotated away from the
	// given refresh token digest.
	HasSuccessor(ctx context.Context, hash string) (bool, error)
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, s *entity.Session) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *sessionRepository) FindLatestByRefreshHash(ctx context.Context, hash string) (*entity.Session, error) {
	var session entity.Session
	err := r.db.WithContext(ctx).
		Where("refresh_token_hash = ?", hash).
		Order("created_at DESC").
		First(&session).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) HasSuccessor(ctx context.Context, hash string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Session{}).
		Where("rotated_from_hash = ?", hash).
		Count(&count).Error
	return count > 0, err
}
