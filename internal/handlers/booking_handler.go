package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tinysteps/tutor-scheduler/internal/cache"
	"github.com/tinysteps/tutor-scheduler/internal/domain/schedule"
	"github.com/tinysteps/tutor-scheduler/internal/httperr"
	ucbooking "github.com/tinysteps/tutor-scheduler/internal/usecase/booking"
)

type BookingHandler struct {
	db      *gorm.DB
	goals   *cache.Goals
	reserve *ucbooking.ReserveSlot
	log     *zap.Logger
}

func NewBookingHandler(db *gorm.DB, goals *cache.Goals, reserve *ucbooking.ReserveSlot, log *zap.Logger) *BookingHandler {
	return &BookingHandler{db: db, goals: goals, reserve: reserve, log: log}
}

type BookingForm struct {
	Name  string `form:"username" binding:"required"`
	Phone string `form:"phone" binding:"required,phone"`
	Day   string `form:"booking_day" binding:"required"`
	Hour  string `form:"booking_time" binding:"required"`
}

// Show renders the confirmation page for the slot picked on the profile
// page; day and hour arrive as query params.
func (h *BookingHandler) Show(c *gin.Context) {
	base := baseView(c, h.goals, h.log, nil)

	teacher, ok := teacherBySlug(c, h.db, base, false)
	if !ok {
		return
	}

	day := c.Query("day")
	base["Teacher"] = teacher
	base["Day"] = day
	base["DayName"] = schedule.DayNames[day]
	base["Hour"] = c.Query("hour")
	base["Form"] = BookingForm{}
	c.HTML(http.StatusOK, "booking.html", base)
}

func (h *BookingHandler) Confirm(c *gin.Context) {
	base := baseView(c, h.goals, h.log, nil)

	teacher, ok := teacherBySlug(c, h.db, base, false)
	if !ok {
		return
	}
	base["Teacher"] = teacher

	var form BookingForm
	if err := c.ShouldBind(&form); err != nil {
		base["Form"] = form
		base["Day"] = form.Day
		base["DayName"] = schedule.DayNames[form.Day]
		base["Hour"] = form.Hour
		base["Errors"] = formErrors(err)
		c.HTML(http.StatusUnprocessableEntity, "booking.html", base)
		return
	}

	base["Day"] = form.Day
	base["DayName"] = schedule.DayNames[form.Day]
	base["Hour"] = form.Hour

	order, err := h.reserve.Execute(c.Request.Context(), ucbooking.ReserveSlotInput{
		TeacherID: teacher.ID,
		Day:       form.Day,
		Hour:      form.Hour,
		Name:      form.Name,
		Phone:     form.Phone,
	})
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound),
			errors.Is(err, schedule.ErrUnknownDay),
			errors.Is(err, schedule.ErrUnknownHour):
			c.HTML(http.StatusNotFound, "404.html", base)
		case httperr.IsBusiness(err, "slot_unavailable"):
			base["Form"] = form
			base["SlotError"] = "That slot has just been taken. Please pick another one."
			c.HTML(http.StatusConflict, "booking.html", base)
		case httperr.IsBusiness(err, "booking_conflict"):
			base["Form"] = form
			base["SlotError"] = "The schedule changed while booking. Please try again."
			c.HTML(http.StatusConflict, "booking.html", base)
		default:
			h.log.Error("reserve slot failed",
				zap.Uint("teacher_id", teacher.ID),
				zap.String("day", form.Day),
				zap.String("hour", form.Hour),
				zap.Error(err))
			c.HTML(http.StatusInternalServerError, "error.html", base)
		}
		return
	}

	base["Form"] = BookingForm{}
	base["Sent"] = true
	base["Reference"] = order.Reference
	c.HTML(http.StatusOK, "booking.html", base)
}
