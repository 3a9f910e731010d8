package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Blog struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	AuthorID uuid.UUID `gorm:"type:uuid;not null;index"`
	Author   *User     `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`

	Title       string `gorm:"type:varchar(50);not null"`
	Description string `gorm:"type:varchar(500);not null"`

	CreatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	Posts []Post
}

func (b *Blog) BeforeCreate(*gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
