package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"

	elevatepath "github.com/elevatepath/elevatepath"
	"github.com/elevatepath/elevatepath/internal/auth"
	"github.com/elevatepath/elevatepath/internal/config"
	"github.com/elevatepath/elevatepath/internal/handler"
	"github.com/elevatepath/elevatepath/internal/middleware"
	"github.com/elevatepath/elevatepath/internal/repository"
	"github.com/elevatepath/elevatepath/internal/repository/postgres"
	"github.com/elevatepath/elevatepath/internal/service"
)

func main() {
	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Setup context with graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Run migrations
	migrationsFS, err := fs.Sub(elevatepath.MigrationsFS, "migrations")
	if err != nil {
		slog.Error("failed to load embedded migrations", "error", err)
		os.Exit(1)
	}
	if err := repository.RunMigrations(cfg.DatabaseURL, migrationsFS); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Initialize store and services
	store := postgres.NewStore(pool)
	gemini := service.NewGeminiService(cfg.GeminiAPIKey, cfg.GeminiModel)
	userService := service.NewUserService(store)
	interviewService := service.NewInterviewService(store, gemini)
	quizService := service.NewQuizService(store, gemini, gemini)
	insightService := service.NewInsightService(store, gemini)

	resolver := auth.NewHTTPResolver(cfg.AuthBaseURL)

	// Initialize handler
	h := handler.New(handler.Deps{
		UserService:      userService,
		InterviewService: interviewService,
		QuizService:      quizService,
		InsightService:   insightService,
	})

	// HTTP server
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover(), middleware.Logging())

	v1 := e.Group("/v1", middleware.Authenticate(resolver, userService))
	h.Register(v1)

	e.GET("/healthz", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	go func() {
		addr := fmt.Sprintf(":%d", cfg.Port)
		slog.Info("starting server", "addr", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown failed", "error", err)
	}
	slog.Info("server stopped gracefully")
}
