package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tinysteps/tutor-scheduler/internal/httperr"
	"github.com/tinysteps/tutor-scheduler/internal/httpresp"
	"github.com/tinysteps/tutor-scheduler/internal/models"
)

const adminListLimit = 200

// AdminHandler exposes the append-only tables (orders, messages, audit
// trail) to the ops account, newest first.
type AdminHandler struct {
	db *gorm.DB
}

func NewAdminHandler(db *gorm.DB) *AdminHandler {
	return &AdminHandler{db: db}
}

func (h *AdminHandler) Orders(c *gin.Context) {
	var orders []models.Order
	if err := h.db.
		Preload("Teacher").
		Order("created_at DESC").
		Limit(adminListLimit).
		Find(&orders).Error; err != nil {
		httperr.Internal(c, "failed_to_list_orders", "Could not list orders.")
		return
	}

	httpresp.List(c, orders)
}

func (h *AdminHandler) Messages(c *gin.Context) {
	var messages []models.Message
	if err := h.db.
		Order("created_at DESC").
		Limit(adminListLimit).
		Find(&messages).Error; err != nil {
		httperr.Internal(c, "failed_to_list_messages", "Could not list messages.")
		return
	}

	httpresp.List(c, messages)
}

func (h *AdminHandler) AuditLogs(c *gin.Context) {
	var logs []models.AuditLog
	if err := h.db.
		Order("created_at DESC").
		Limit(adminListLimit).
		Find(&logs).Error; err != nil {
		httperr.Internal(c, "failed_to_list_audit_logs", "Could not list audit logs.")
		return
	}

	httpresp.List(c, logs)
}
