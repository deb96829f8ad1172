package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/AnjaBuckley/GermanTube-Learning/internal/adapter/quizgen"
	"github.com/AnjaBuckley/GermanTube-Learning/internal/adapter/transcript"
	"github.com/AnjaBuckley/GermanTube-Learning/internal/config"
	"github.com/AnjaBuckley/GermanTube-Learning/internal/database"
	"github.com/AnjaBuckley/GermanTube-Learning/internal/handler"
	"github.com/AnjaBuckley/GermanTube-Learning/internal/logger"
	"github.com/AnjaBuckley/GermanTube-Learning/internal/middleware"
	"github.com/AnjaBuckley/GermanTube-Learning/internal/repository"
	"github.com/AnjaBuckley/GermanTube-Learning/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
			zap.String("ip", c.IP()),
		)

		return err
	}
}

func main() {
	// A local .env is convenient in development; absence is fine.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	db, err := database.NewSQLiteDB(cfg.Database.Path)
	if err != nil {
		appLogger.Fatal("Failed to open database", zap.Error(err))
	}
	if err := repository.InitSchema(db); err != nil {
		appLogger.Fatal("Failed to initialize database schema", zap.Error(err))
	}
	historyRepository := repository.NewSQLXHistoryRepository(db)

	transcriptClient := transcript.NewYouTubeClient(cfg.Transcript.Language, cfg.Transcript.Timeout)

	generator, err := quizgen.NewOpenAIQuizGenerator(cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.OpenAI.Temperature, cfg.OpenAI.Timeout)
	if err != nil {
		appLogger.Fatal("Failed to create quiz generator", zap.Error(err))
	}

	quizService := service.NewQuizService(transcriptClient, generator, historyRepository)
	quizHandler := handler.NewQuizHandler(quizService)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept"}))
	app.Use(recover.New())

	apiGroup := app.Group("/api")
	apiGroup.Post("/quiz/generate", quizHandler.GenerateQuiz)
	apiGroup.Post("/quiz/submit", quizHandler.SubmitQuiz)
	apiGroup.Get("/history", quizHandler.GetHistory)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	if err := db.Close(); err != nil {
		appLogger.Error("Failed to close database", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
