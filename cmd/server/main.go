package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/elimu-cbc/quiz-service/internal/cache"
	"github.com/elimu-cbc/quiz-service/internal/config"
	"github.com/elimu-cbc/quiz-service/internal/engine"
	"github.com/elimu-cbc/quiz-service/internal/generator"
	"github.com/elimu-cbc/quiz-service/internal/handlers"
	"github.com/elimu-cbc/quiz-service/internal/repositories/memory"
	"github.com/elimu-cbc/quiz-service/internal/repositories/postgres"
	"github.com/elimu-cbc/quiz-service/internal/services"
	"github.com/elimu-cbc/quiz-service/internal/utils"
	"github.com/elimu-cbc/quiz-service/pkg"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	var logger utils.Logger
	if cfg.Environment == "production" {
		logger = utils.NewDefaultLogger()
	} else {
		logger = utils.NewDevelopmentLogger()
	}
	slogLogger := utils.ToSlogLogger(logger)

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}

	redisClient, err := pkg.NewRedisClient(cfg)
	if err != nil {
		logger.Error("Failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	// Storage and cache
	quizRepo := postgres.NewQuizPostgreSQL(db)
	archive := postgres.NewAttemptPostgreSQL(db)
	cacheService := cache.NewRedisCache(redisClient, logger)
	quizCache := cache.NewQuizCache(quizRepo, cacheService, logger)

	// Core engine
	registry := generator.NewRegistry()
	analyzer := generator.NewPerformanceAnalyzer()
	quizGenerator := generator.NewAIQuizGenerator(registry, analyzer, logger)
	attemptStore := memory.NewAttemptMemoryStore()
	quizEngine := engine.NewAdaptiveQuizEngine(quizCache, attemptStore, logger)

	// Events
	publisher, err := cfg.Events.CreateEventPublisher(slogLogger)
	if err != nil {
		logger.Error("Failed to create event publisher", "error", err)
		os.Exit(1)
	}
	defer publisher.Close()

	validator := utils.NewValidator()

	serviceManager := services.NewServiceManager(services.Dependencies{
		Generator:    quizGenerator,
		Analyzer:     analyzer,
		Engine:       quizEngine,
		AttemptStore: attemptStore,
		QuizRepo:     quizRepo,
		QuizCache:    quizCache,
		Archive:      archive,
		Publisher:    publisher,
		Logger:       slogLogger,
		Validator:    validator,
	})

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.LoggerMiddleware(logger))
	router.Use(utils.ContextLogger(logger))

	handlerManager := handlers.NewHandlerManager(serviceManager, validator, logger)
	handlerManager.SetupRoutes(router)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("Quiz service listening", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server stopped unexpectedly", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down quiz service")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown", "error", err)
	}
}
