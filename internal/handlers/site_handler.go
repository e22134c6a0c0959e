package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tinysteps/tutor-scheduler/internal/cache"
	"github.com/tinysteps/tutor-scheduler/internal/domain/catalog"
	"github.com/tinysteps/tutor-scheduler/internal/domain/schedule"
	"github.com/tinysteps/tutor-scheduler/internal/models"
)

type SiteHandler struct {
	db    *gorm.DB
	goals *cache.Goals
	log   *zap.Logger
}

func NewSiteHandler(db *gorm.DB, goals *cache.Goals, log *zap.Logger) *SiteHandler {
	return &SiteHandler{db: db, goals: goals, log: log}
}

// Index lists the catalog: a random sample of 6 by default, everyone with
// ?teachers_count=all. A catalog too small to sample is a hard error.
func (h *SiteHandler) Index(c *gin.Context) {
	base := baseView(c, h.goals, h.log, nil)

	var teachers []models.Teacher
	if err := h.db.Find(&teachers).Error; err != nil {
		h.log.Error("list teachers failed", zap.Error(err))
		c.HTML(http.StatusInternalServerError, "error.html", base)
		return
	}

	if c.Query("teachers_count") != "all" {
		sampled, err := catalog.Sample(teachers, catalog.FrontPageSize)
		if err != nil {
			h.log.Error("front page sample failed", zap.Error(err))
			c.HTML(http.StatusInternalServerError, "error.html", base)
			return
		}
		teachers = sampled
	}

	base["Teachers"] = teachers
	c.HTML(http.StatusOK, "index.html", base)
}

// Profile renders a teacher page with the weekly availability grid.
func (h *SiteHandler) Profile(c *gin.Context) {
	base := baseView(c, h.goals, h.log, nil)

	teacher, ok := teacherBySlug(c, h.db, base, true)
	if !ok {
		return
	}

	doc := schedule.Document{}
	if len(teacher.Bookings) > 0 {
		var err error
		doc, err = schedule.Decode(teacher.Bookings[0].Schedule)
		if err != nil {
			h.log.Error("stored schedule unreadable",
				zap.Uint("teacher_id", teacher.ID), zap.Error(err))
			c.HTML(http.StatusInternalServerError, "error.html", base)
			return
		}
	}

	base["Teacher"] = teacher
	base["Schedule"] = scheduleView(doc)
	c.HTML(http.StatusOK, "profile.html", base)
}

// GoalTeachers lists teachers carrying a goal tag, cheapest first.
// Matching is exact tag membership against the denormalized goals column.
func (h *SiteHandler) GoalTeachers(c *gin.Context) {
	base := baseView(c, h.goals, h.log, nil)
	goalSlug := c.Param("goal")

	var goal models.Goal
	if err := h.db.Where("slug = ?", goalSlug).First(&goal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.HTML(http.StatusNotFound, "404.html", base)
		} else {
			h.log.Error("goal lookup failed", zap.Error(err))
			c.HTML(http.StatusInternalServerError, "error.html", base)
		}
		return
	}

	var teachers []models.Teacher
	if err := h.db.
		Where("? = ANY(string_to_array(goals, ?))", goalSlug, models.GoalSeparator).
		Order("price ASC").
		Find(&teachers).Error; err != nil {
		h.log.Error("goal filter failed", zap.Error(err))
		c.HTML(http.StatusInternalServerError, "error.html", base)
		return
	}

	if len(teachers) == 0 {
		c.HTML(http.StatusNotFound, "404.html", base)
		return
	}

	base["Goal"] = goal
	base["Teachers"] = teachers
	c.HTML(http.StatusOK, "goal.html", base)
}

// Search echoes the query into the view; there is no server-side filtering
// on this page.
func (h *SiteHandler) Search(c *gin.Context) {
	base := baseView(c, h.goals, h.log, gin.H{"Query": c.Query("s")})
	c.HTML(http.StatusOK, "search.html", base)
}

func (h *SiteHandler) NotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "404.html", baseView(c, h.goals, h.log, nil))
}
