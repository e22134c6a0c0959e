package models

import "time"

// Message is a contact-form submission. TeacherID is a plain id on purpose,
// not a managed association.
type Message struct {
	ID uint `gorm:"primaryKey" json:"id"`

	TeacherID uint `gorm:"not null" json:"teacher_id"`

	Name  string `gorm:"size:200;not null" json:"name"`
	Phone string `gorm:"size:200;not null" json:"phone"`
	Text  string `gorm:"type:text;not null" json:"text"`

	CreatedAt time.Time `json:"created_at"`
}
