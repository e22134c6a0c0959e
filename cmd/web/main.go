package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/tinysteps/tutor-scheduler/internal/config"
	dbpkg "github.com/tinysteps/tutor-scheduler/internal/db"
	"github.com/tinysteps/tutor-scheduler/internal/logger"
	"github.com/tinysteps/tutor-scheduler/internal/middleware"
	"github.com/tinysteps/tutor-scheduler/internal/routes"
	"github.com/tinysteps/tutor-scheduler/internal/seed"
	"github.com/tinysteps/tutor-scheduler/internal/validators"
)

func main() {

	cfg := config.Load()

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := dbpkg.New(cfg)
	if err != nil {
		logr.Fatal("failed to connect database", zap.Error(err))
	}

	if err := dbpkg.EnsureAdmin(db, cfg); err != nil {
		logr.Fatal("failed to bootstrap admin user", zap.Error(err))
	}

	if err := seed.Run(db, cfg.SeedFile, logr); err != nil {
		logr.Fatal("failed to seed catalog", zap.Error(err))
	}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	}

	validators.Register()

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.GinMiddleware(logr))
	r.Use(middleware.CORSMiddleware())

	r.LoadHTMLGlob("web/templates/*.html")

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, rdb, cfg, logr)

	logr.Info("server starting", zap.String("addr", cfg.Addr()), zap.String("env", cfg.Env))
	if err := r.Run(cfg.Addr()); err != nil {
		logr.Fatal("server failed", zap.Error(err))
	}
}
