package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/murtezataher/AgenticAIFYP/internal/config"
	"github.com/murtezataher/AgenticAIFYP/internal/handlers"
	"github.com/murtezataher/AgenticAIFYP/internal/logger"
	"github.com/murtezataher/AgenticAIFYP/internal/recruiter"
	"github.com/murtezataher/AgenticAIFYP/internal/services"
	"github.com/murtezataher/AgenticAIFYP/internal/workflow"
)

func main() {
	cfg := config.Load()

	zlog, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		log.Fatalf("❌ Failed to create logger: %v", err)
	}
	defer zlog.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rec, err := recruiter.FromConfig(ctx, cfg, zlog)
	if err != nil {
		zlog.Fatal("failed to configure recruiter", zap.Error(err))
	}

	storageService := services.NewStorageService(cfg.Storage.UploadPath, cfg.Storage.MaxFileSize)
	if cfg.Storage.KeepUploads {
		if err := storageService.EnsureUploadDir(); err != nil {
			zlog.Fatal("failed to create upload directory", zap.Error(err))
		}
	}

	registry := workflow.NewRegistry(rec.NewState, zlog.Named("sessions"))

	sweeper := services.NewSessionSweeper(registry, cfg.Session.TTL, cfg.Session.SweepInterval, zlog.Named("sweeper"))
	sweeper.Start(ctx)

	app := fiber.New(fiber.Config{
		AppName:      "Agentic Recruiter API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize) * 4,
		ErrorHandler: customErrorHandler,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	api := app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":   "healthy",
			"sessions": registry.Len(),
			"time":     time.Now(),
		})
	})

	handlers.RegisterRoutes(api, handlers.RouteConfig{
		Registry:    registry,
		Recruiter:   rec,
		Storage:     storageService,
		KeepUploads: cfg.Storage.KeepUploads,
		Logger:      zlog.Named("api"),
	})

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Agentic Recruiter API",
			"version": "1.0.0",
			"endpoints": []string{
				"GET /api/v1/jobs",
				"POST /api/v1/sessions",
				"DELETE /api/v1/sessions/:sid",
				"POST /api/v1/sessions/:sid/applications",
				"GET /api/v1/sessions/:sid/applications?job=",
				"GET /api/v1/sessions/:sid/applications/pending",
				"POST /api/v1/sessions/:sid/interview",
				"GET /api/v1/sessions/:sid/interview",
				"POST /api/v1/sessions/:sid/interview/answers",
				"DELETE /api/v1/sessions/:sid/interview",
				"GET /api/v1/sessions/:sid/shortlist?job=&limit=",
				"GET /api/v1/archive/shortlist?job=&limit=",
			},
		})
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		zlog.Info("shutting down server")
		sweeper.Stop()
		cancel()
		if err := app.Shutdown(); err != nil {
			zlog.Error("server forced to shutdown", zap.Error(err))
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	zlog.Info("server starting", zap.String("addr", addr), zap.String("scorer", cfg.Scoring.Scorer))

	if err := app.Listen(addr); err != nil {
		zlog.Fatal("failed to start server", zap.Error(err))
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
