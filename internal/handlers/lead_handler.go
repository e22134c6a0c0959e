package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tinysteps/tutor-scheduler/internal/audit"
	"github.com/tinysteps/tutor-scheduler/internal/cache"
	"github.com/tinysteps/tutor-scheduler/internal/models"
)

type LeadHandler struct {
	db    *gorm.DB
	goals *cache.Goals
	audit *audit.Dispatcher
	log   *zap.Logger
}

func NewLeadHandler(db *gorm.DB, goals *cache.Goals, audit *audit.Dispatcher, log *zap.Logger) *LeadHandler {
	return &LeadHandler{db: db, goals: goals, audit: audit, log: log}
}

type LeadForm struct {
	Name        string `form:"username" binding:"required"`
	Phone       string `form:"phone" binding:"required,phone"`
	Goal        string `form:"goal" binding:"required"`
	TimePerWeek string `form:"time" binding:"required"`
}

type timeChoice struct {
	Value string
	Label string
}

var timeChoices = []timeChoice{
	{"1-2", "1-2 hours a week"},
	{"3-5", "3-5 hours a week"},
	{"5-7", "5-7 hours a week"},
	{"7-10", "7-10 hours a week"},
}

func (h *LeadHandler) Show(c *gin.Context) {
	base := baseView(c, h.goals, h.log, gin.H{
		"TimeChoices": timeChoices,
		"Form":        LeadForm{},
	})
	c.HTML(http.StatusOK, "request.html", base)
}

func (h *LeadHandler) Send(c *gin.Context) {
	base := baseView(c, h.goals, h.log, gin.H{"TimeChoices": timeChoices})

	var form LeadForm
	if err := c.ShouldBind(&form); err != nil {
		base["Form"] = form
		base["Errors"] = formErrors(err)
		c.HTML(http.StatusUnprocessableEntity, "request.html", base)
		return
	}

	lead := models.Order{
		Reference:   uuid.NewString(),
		Kind:        models.OrderKindLead,
		Name:        form.Name,
		Phone:       form.Phone,
		Goal:        form.Goal,
		TimePerWeek: form.TimePerWeek,
	}
	if err := h.db.Create(&lead).Error; err != nil {
		h.log.Error("save lead failed", zap.Error(err))
		c.HTML(http.StatusInternalServerError, "error.html", base)
		return
	}

	h.audit.Dispatch(audit.Event{
		Action:   "lead_submitted",
		Entity:   "order",
		EntityID: &lead.ID,
		Metadata: map[string]string{"goal": form.Goal},
	})

	base["Form"] = LeadForm{}
	base["Sent"] = true
	base["Reference"] = lead.Reference
	c.HTML(http.StatusOK, "request.html", base)
}
