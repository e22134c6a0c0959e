package repository

import (
	"context"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tinysteps/tutor-scheduler/internal/httperr"
	"github.com/tinysteps/tutor-scheduler/internal/models"
	ucbooking "github.com/tinysteps/tutor-scheduler/internal/usecase/booking"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, func()) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock, func() { sqlDB.Close() }
}

func TestGetBookingForUpdateLocksRow(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewBookingGormRepository(db)

	rows := sqlmock.NewRows([]string{"id", "teacher_id", "schedule", "version"}).
		AddRow(1, 7, []byte(`{"mon":{"18:00":true}}`), 1)
	mock.ExpectQuery(`SELECT \* FROM "bookings" WHERE teacher_id = \$1 (.+)FOR UPDATE`).
		WithArgs(7, 1).
		WillReturnRows(rows)

	booking, err := repo.GetBookingForUpdate(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, uint(7), booking.TeacherID)
	assert.Equal(t, uint(1), booking.Version)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateScheduleStaleVersionConflicts(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewBookingGormRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "bookings" SET`).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), 3, 1, 2).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.UpdateSchedule(context.Background(), 1, []byte(`{}`), 2)
	assert.True(t, httperr.IsBusiness(err, "booking_conflict"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// End-to-end reserve path against the mocked store: lock, versioned update
// and order insert share one transaction.
func TestReserveSlotTransaction(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	uc := ucbooking.NewReserveSlot(NewBookingGormRepository(db), nil)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "bookings" WHERE teacher_id = \$1 (.+)FOR UPDATE`).
		WithArgs(7, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "teacher_id", "schedule", "version"}).
			AddRow(1, 7, []byte(`{"mon":{"18:00":true}}`), 1))
	mock.ExpectExec(`UPDATE "bookings" SET`).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), 2, 1, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "orders"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))
	mock.ExpectCommit()

	order, err := uc.Execute(context.Background(), ucbooking.ReserveSlotInput{
		TeacherID: 7,
		Day:       "mon",
		Hour:      "18:00",
		Name:      "Anna",
		Phone:     "+79000000000",
	})
	require.NoError(t, err)
	assert.Equal(t, uint(42), order.ID)
	assert.Equal(t, models.OrderKindBooking, order.Kind)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A taken slot aborts the transaction before any write.
func TestReserveSlotTakenRollsBack(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	uc := ucbooking.NewReserveSlot(NewBookingGormRepository(db), nil)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "bookings" WHERE teacher_id = \$1 (.+)FOR UPDATE`).
		WithArgs(7, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "teacher_id", "schedule", "version"}).
			AddRow(1, 7, []byte(`{"mon":{"18:00":false}}`), 1))
	mock.ExpectRollback()

	_, err := uc.Execute(context.Background(), ucbooking.ReserveSlotInput{
		TeacherID: 7,
		Day:       "mon",
		Hour:      "18:00",
	})
	assert.True(t, httperr.IsBusiness(err, "slot_unavailable"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
