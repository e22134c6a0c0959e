package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/tinysteps/tutor-scheduler/internal/slug"
)

// GoalSeparator joins the goal tags stored on Teacher.Goals. The column is
// deliberately denormalized; goal pages match on exact tag membership.
const GoalSeparator = "//"

type Teacher struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name    string  `gorm:"size:200;not null" json:"name"`
	About   string  `gorm:"type:text" json:"about"`
	Picture string  `gorm:"size:200" json:"picture"`
	Price   int     `gorm:"not null" json:"price"`
	Rating  float64 `json:"rating"`

	Goals string `gorm:"size:200" json:"goals"`

	SeoTitle       string `gorm:"size:200" json:"seo_title"`
	SeoDescription string `gorm:"size:200" json:"seo_description"`
	SeoKeyword     string `gorm:"size:200" json:"seo_keyword"`

	Slug string `gorm:"size:200;uniqueIndex;not null" json:"slug"`

	Bookings []Booking `json:"bookings,omitempty"`
	Orders   []Order   `json:"orders,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate derives the slug and SEO fields from the name exactly once.
// Renaming a teacher later does not recompute them.
func (t *Teacher) BeforeCreate(tx *gorm.DB) error {
	if t.Slug == "" && t.Name != "" {
		t.Slug = slug.Make(t.Name)
	}
	if t.SeoTitle == "" {
		t.SeoTitle = t.Name
	}
	if t.SeoDescription == "" {
		t.SeoDescription = t.About
	}
	if t.SeoKeyword == "" {
		t.SeoKeyword = t.Name
	}
	return nil
}
