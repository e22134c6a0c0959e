package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tinysteps/tutor-scheduler/internal/audit"
	"github.com/tinysteps/tutor-scheduler/internal/cache"
	"github.com/tinysteps/tutor-scheduler/internal/models"
)

type MessageHandler struct {
	db    *gorm.DB
	goals *cache.Goals
	audit *audit.Dispatcher
	log   *zap.Logger
}

func NewMessageHandler(db *gorm.DB, goals *cache.Goals, audit *audit.Dispatcher, log *zap.Logger) *MessageHandler {
	return &MessageHandler{db: db, goals: goals, audit: audit, log: log}
}

type MessageForm struct {
	Name  string `form:"username" binding:"required"`
	Phone string `form:"phone" binding:"required,phone"`
	Text  string `form:"message" binding:"required"`
}

func (h *MessageHandler) Show(c *gin.Context) {
	base := baseView(c, h.goals, h.log, nil)

	teacher, ok := teacherBySlug(c, h.db, base, false)
	if !ok {
		return
	}

	base["Teacher"] = teacher
	base["Form"] = MessageForm{}
	c.HTML(http.StatusOK, "message.html", base)
}

func (h *MessageHandler) Send(c *gin.Context) {
	base := baseView(c, h.goals, h.log, nil)

	teacher, ok := teacherBySlug(c, h.db, base, false)
	if !ok {
		return
	}
	base["Teacher"] = teacher

	var form MessageForm
	if err := c.ShouldBind(&form); err != nil {
		base["Form"] = form
		base["Errors"] = formErrors(err)
		c.HTML(http.StatusUnprocessableEntity, "message.html", base)
		return
	}

	msg := models.Message{
		TeacherID: teacher.ID,
		Name:      form.Name,
		Phone:     form.Phone,
		Text:      form.Text,
	}
	if err := h.db.Create(&msg).Error; err != nil {
		h.log.Error("save message failed", zap.Error(err))
		c.HTML(http.StatusInternalServerError, "error.html", base)
		return
	}

	h.audit.Dispatch(audit.Event{
		Action:   "message_sent",
		Entity:   "message",
		EntityID: &msg.ID,
	})

	base["Form"] = MessageForm{}
	base["Sent"] = true
	c.HTML(http.StatusOK, "message.html", base)
}
