package booking

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/tinysteps/tutor-scheduler/internal/audit"
	domain "github.com/tinysteps/tutor-scheduler/internal/domain/schedule"
	"github.com/tinysteps/tutor-scheduler/internal/httperr"
	"github.com/tinysteps/tutor-scheduler/internal/models"
)

type ReserveSlotInput struct {
	TeacherID uint

	Day  string
	Hour string

	Name  string
	Phone string
}

// ReserveSlot marks one availability cell unavailable and records the
// order, in a single transaction. A slot that is already taken is rejected
// with no Order row; the same request twice produces one state change and
// one order, not two.
type ReserveSlot struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewReserveSlot(repo domain.Repository, audit *audit.Dispatcher) *ReserveSlot {
	return &ReserveSlot{
		repo:  repo,
		audit: audit,
	}
}

func (uc *ReserveSlot) Execute(
	ctx context.Context,
	in ReserveSlotInput,
) (*models.Order, error) {

	var order *models.Order

	err := uc.repo.InTx(ctx, func(tr domain.Repository) error {

		booking, err := tr.GetBookingForUpdate(ctx, in.TeacherID)
		if err != nil {
			return err
		}

		doc, err := domain.Decode(booking.Schedule)
		if err != nil {
			return err
		}

		if err := doc.Reserve(in.Day, in.Hour); err != nil {
			if errors.Is(err, domain.ErrSlotTaken) {
				return httperr.ErrBusiness("slot_unavailable")
			}
			return err
		}

		raw, err := doc.Encode()
		if err != nil {
			return err
		}

		if err := tr.UpdateSchedule(ctx, booking.ID, raw, booking.Version); err != nil {
			return err
		}

		teacherID := in.TeacherID
		order = &models.Order{
			Reference: uuid.NewString(),
			Kind:      models.OrderKindBooking,
			TeacherID: &teacherID,
			Name:      in.Name,
			Phone:     in.Phone,
			Day:       in.Day,
			Hour:      in.Hour,
		}

		return tr.CreateOrder(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "slot_booked",
		Entity:   "order",
		EntityID: &order.ID,
		Metadata: map[string]string{"day": in.Day, "hour": in.Hour},
	})

	return order, nil
}
