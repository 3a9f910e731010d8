package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Comment struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	PostID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Post     *Post     `gorm:"constraint:OnDelete:CASCADE"`
	AuthorID uuid.UUID `gorm:"type:uuid;not null;index"`
	Author   *User     `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`

	Title string `gorm:"type:varchar(50);not null"`
	Body  string `gorm:"type:text;not null"`

	CreatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (c *Comment) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
