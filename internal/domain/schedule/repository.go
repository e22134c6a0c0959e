package schedule

import (
	"context"

	"github.com/tinysteps/tutor-scheduler/internal/models"
)

// Repository is the persistence surface of the reserve path. InTx runs fn
// against a transaction-scoped repository; the booking row stays locked
// until the transaction ends.
type Repository interface {
	InTx(
		ctx context.Context,
		fn func(r Repository) error,
	) error

	GetBookingForUpdate(
		ctx context.Context,
		teacherID uint,
	) (*models.Booking, error)

	// UpdateSchedule overwrites the document iff the stored version still
	// matches, bumping the version. A stale version is a conflict.
	UpdateSchedule(
		ctx context.Context,
		bookingID uint,
		doc []byte,
		version uint,
	) error

	CreateOrder(
		ctx context.Context,
		order *models.Order,
	) error
}
