package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tinysteps/tutor-scheduler/internal/audit"
	"github.com/tinysteps/tutor-scheduler/internal/cache"
	"github.com/tinysteps/tutor-scheduler/internal/config"
	"github.com/tinysteps/tutor-scheduler/internal/handlers"
	infraRepo "github.com/tinysteps/tutor-scheduler/internal/infra/repository"
	"github.com/tinysteps/tutor-scheduler/internal/middleware"
	ucBooking "github.com/tinysteps/tutor-scheduler/internal/usecase/booking"
)

const goalsCacheTTL = 5 * time.Minute

func RegisterRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, cfg *config.Config, log *zap.Logger) {

	// ------------------------------
	// Infra singletons
	// ------------------------------
	goalsCache := cache.NewGoals(db, rdb, goalsCacheTTL)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	bookingRepo := infraRepo.NewBookingGormRepository(db)

	// ------------------------------
	// Use cases
	// ------------------------------
	reserveSlotUC := ucBooking.NewReserveSlot(bookingRepo, auditDispatcher)

	// ------------------------------
	// Handlers
	// ------------------------------
	siteHandler := handlers.NewSiteHandler(db, goalsCache, log)
	messageHandler := handlers.NewMessageHandler(db, goalsCache, auditDispatcher, log)
	leadHandler := handlers.NewLeadHandler(db, goalsCache, auditDispatcher, log)
	bookingHandler := handlers.NewBookingHandler(db, goalsCache, reserveSlotUC, log)

	authHandler := handlers.NewAuthHandler(db, cfg)
	adminHandler := handlers.NewAdminHandler(db)

	// ------------------------------
	// Site (HTML)
	// ------------------------------
	r.GET("/", siteHandler.Index)
	r.GET("/profile/:slug", siteHandler.Profile)
	r.GET("/goals/:goal", siteHandler.GoalTeachers)
	r.GET("/search", siteHandler.Search)

	r.GET("/message/:slug", messageHandler.Show)
	r.POST("/message/:slug", messageHandler.Send)

	r.GET("/request", leadHandler.Show)
	r.POST("/request", leadHandler.Send)

	r.GET("/booking/:slug", bookingHandler.Show)
	r.POST("/booking/:slug", bookingHandler.Confirm)

	r.NoRoute(siteHandler.NotFound)

	// ------------------------------
	// Admin API (JSON)
	// ------------------------------
	api := r.Group("/api")
	{
		api.POST("/auth/login", authHandler.Login)

		secured := api.Group("/admin")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/orders", adminHandler.Orders)
			secured.GET("/messages", adminHandler.Messages)
			secured.GET("/audit-logs", adminHandler.AuditLogs)
		}
	}
}
