package repository

import (
	"context"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/tinysteps/tutor-scheduler/internal/domain/schedule"
	"github.com/tinysteps/tutor-scheduler/internal/httperr"
	"github.com/tinysteps/tutor-scheduler/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

func (r *BookingGormRepository) InTx(
	ctx context.Context,
	fn func(tr domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&BookingGormRepository{db: tx})
	})
}

// GetBookingForUpdate locks the teacher's booking row for the rest of the
// transaction so concurrent reserves serialize on it.
func (r *BookingGormRepository) GetBookingForUpdate(
	ctx context.Context,
	teacherID uint,
) (*models.Booking, error) {

	var booking models.Booking
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("teacher_id = ?", teacherID).
		First(&booking).Error; err != nil {
		return nil, err
	}

	return &booking, nil
}

func (r *BookingGormRepository) UpdateSchedule(
	ctx context.Context,
	bookingID uint,
	doc []byte,
	version uint,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ? AND version = ?", bookingID, version).
		Updates(map[string]interface{}{
			"schedule": datatypes.JSON(doc),
			"version":  version + 1,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness("booking_conflict")
	}
	return nil
}

func (r *BookingGormRepository) CreateOrder(
	ctx context.Context,
	order *models.Order,
) error {
	return r.db.WithContext(ctx).Create(order).Error
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
