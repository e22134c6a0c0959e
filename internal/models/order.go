package models

import "time"

const (
	OrderKindLead    = "lead"
	OrderKindBooking = "booking"
)

// Order is an append-only record of a lead or a confirmed slot booking.
// Lead orders carry Goal/TimePerWeek; booking orders carry Day/Hour and a
// teacher reference. Rows are never updated after creation.
type Order struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Reference string `gorm:"size:36;uniqueIndex;not null" json:"reference"`
	Kind      string `gorm:"size:20;not null" json:"kind"`

	TeacherID *uint    `json:"teacher_id"`
	Teacher   *Teacher `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"teacher,omitempty"`

	Name  string `gorm:"size:200;not null" json:"name"`
	Phone string `gorm:"size:200;not null" json:"phone"`

	Goal        string `gorm:"size:200" json:"goal"`
	TimePerWeek string `gorm:"size:200" json:"time_per_week"`

	Day  string `gorm:"size:20" json:"day"`
	Hour string `gorm:"size:20" json:"hour"`

	CreatedAt time.Time `json:"created_at"`
}
