package models

import (
	"time"

	"gorm.io/datatypes"
)

// Booking holds the weekly availability document for one teacher:
// weekday code -> hour label -> free flag. Version backs the
// compare-and-swap on the reserve path.
type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	TeacherID uint `gorm:"uniqueIndex;not null" json:"teacher_id"`

	Schedule datatypes.JSON `json:"schedule"`
	Version  uint           `gorm:"not null;default:1" json:"version"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
