package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"alfredoptarigan/resume-analyzer/internal/config"
	"alfredoptarigan/resume-analyzer/internal/handlers"
	"alfredoptarigan/resume-analyzer/internal/logger"
	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	defer log.Sync()
	log.Info("✅ Config loaded successfully", zap.String("env", cfg.Server.Env))

	// Initialize services
	extractor := services.NewTextExtractor(
		services.NewPDFParserService(),
		services.NewWordParserService(),
		log.Named("extractor"),
	)
	uploadService := services.NewUploadService(cfg.Storage.MaxFileSize)

	backend := services.NewBackendClient(cfg.Backend.URL, cfg.Backend.RequestTimeout, log.Named("backend"))
	log.Info("✅ Backend client initialized", zap.String("url", cfg.Backend.URL))

	readiness := services.NewReadinessService(backend, cfg.Backend.HealthCheckInterval, log.Named("readiness"))
	readiness.Subscribe(func(ready bool) {
		if ready {
			services.BackendReady.Set(1)
		} else {
			services.BackendReady.Set(0)
		}
	})

	orchestrator := services.NewOrchestrator(
		extractor,
		backend,
		readiness,
		cfg.Analysis.MinTextLength,
		log.Named("orchestrator"),
	)
	log.Info("✅ Services initialized successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	readiness.Start(ctx)

	// Initialize handlers
	uploadHandler := handlers.NewUploadHandler(orchestrator, uploadService, log.Named("upload"))
	sessionHandler := handlers.NewSessionHandler(orchestrator, readiness)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Resume Analyzer API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.Backend.RequestTimeout + 30*time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize) + 1<<20,
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api/v1")

	api.Get("/health", sessionHandler.HandleHealth)
	api.Get("/session", sessionHandler.HandleGetSession)
	api.Post("/upload", uploadHandler.HandleUpload)
	api.Post("/reset", sessionHandler.HandleReset)

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Resume Analyzer API",
			"version": "1.0.0",
			"endpoints": []string{
				"GET /api/v1/health",
				"GET /api/v1/session",
				"POST /api/v1/upload",
				"POST /api/v1/reset",
				"GET /metrics",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Info("🛑 Shutting down server...")
		readiness.Stop()
		if err := app.Shutdown(); err != nil {
			log.Error("❌ Server forced to shutdown", zap.Error(err))
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Info("🚀 Server starting", zap.String("addr", addr))

	if err := app.Listen(addr); err != nil {
		log.Fatal("❌ Failed to start server", zap.Error(err))
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}

	return c.Status(code).JSON(models.ErrorResponse{
		Error: err.Error(),
		Code:  code,
	})
}
