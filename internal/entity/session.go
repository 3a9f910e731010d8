package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Session is one issued token pair. Rows are never updated: a refresh
// inserts a new row carrying the refresh token forward.
type Session struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index"`
	User   *User     `gorm:"constraint:OnDelete:CASCADE"`

	TokenHash        string  `gorm:"type:text;not null"`
	RefreshTokenHash string  `gorm:"type:text;not null;index:idx_sessions_refresh_created,priority:1"`
	RotatedFromHash  *string `gorm:"type:text;index"`

	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null;index:idx_sessions_refresh_created,priority:2"`
}

func (s *Session) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// RefreshDeadline is the last instant at which the session's refresh token
// is still honored.
func (s *Session) RefreshDeadline(window time.Duration) time.Time {
	return s.ExpiresAt.Add(window)
}
