package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/tinysteps/tutor-scheduler/internal/slug"
)

// Goal is a learning objective shown in the site navigation. Teachers refer
// to goals by tag value inside Teacher.Goals, not by foreign key.
type Goal struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name    string `gorm:"size:200;not null" json:"name"`
	Picture string `gorm:"size:200" json:"picture"`

	SeoTitle       string `gorm:"size:200" json:"seo_title"`
	SeoDescription string `gorm:"size:200" json:"seo_description"`
	SeoKeyword     string `gorm:"size:200" json:"seo_keyword"`

	Slug string `gorm:"size:200;uniqueIndex;not null" json:"slug"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (g *Goal) BeforeCreate(tx *gorm.DB) error {
	if g.Slug == "" && g.Name != "" {
		g.Slug = slug.Make(g.Name)
	}
	if g.SeoTitle == "" {
		g.SeoTitle = g.Name
	}
	return nil
}
