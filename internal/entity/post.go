package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Post struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	BlogID uuid.UUID `gorm:"type:uuid;not null;index"`
	Blog   *Blog     `gorm:"constraint:OnDelete:CASCADE"`

	Title string `gorm:"type:varchar(50);not null"`
	Body  string `gorm:"type:text;not null"`

	CreatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	Comments []Comment
}

func (p *Post) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
