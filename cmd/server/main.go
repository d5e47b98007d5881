package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/classworks/assessment-service/internal/cache"
	"github.com/classworks/assessment-service/internal/config"
	"github.com/classworks/assessment-service/internal/handlers"
	"github.com/classworks/assessment-service/internal/models"
	"github.com/classworks/assessment-service/internal/repositories/postgres"
	"github.com/classworks/assessment-service/internal/services"
	"github.com/classworks/assessment-service/internal/utils"
	"github.com/classworks/assessment-service/internal/validator"
	"github.com/classworks/assessment-service/pkg"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger := utils.NewLogger(cfg.Environment)

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := db.AutoMigrate(
		&models.Assessment{},
		&models.Question{},
		&models.Assignment{},
		&models.Response{},
		&models.Grade{},
	); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	var cacheSvc cache.CacheService = cache.NoopCache{}
	if redisClient, err := pkg.NewRedisClient(cfg); err != nil {
		logger.Warn("redis unavailable, caching disabled", "error", err)
	} else {
		cacheSvc = cache.NewRedisCache(redisClient, logger)
		defer redisClient.Close()
	}

	publisher, err := cfg.Events.CreateEventPublisher(logger)
	if err != nil {
		logger.Error("failed to create event publisher", "error", err)
		os.Exit(1)
	}
	defer publisher.Close()

	repo := postgres.NewRepository(db)
	v := validator.New()
	serviceManager := services.NewServiceManager(repo, cacheSvc, publisher, logger, v)
	handlerManager := handlers.NewHandlerManager(serviceManager, logger)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.RequestLogger(logger))
	router.Use(utils.ContextLogger(logger))

	handlerManager.SetupRoutes(router)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("starting server", "port", cfg.Port, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", "error", err)
	}
	logger.Info("server stopped")
}
