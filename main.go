package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/vladimiradmaev/health-advisor/internal/bot"
	"github.com/vladimiradmaev/health-advisor/internal/bot/handlers"
	"github.com/vladimiradmaev/health-advisor/internal/bot/state"
	"github.com/vladimiradmaev/health-advisor/internal/config"
	apperrors "github.com/vladimiradmaev/health-advisor/internal/errors"
	"github.com/vladimiradmaev/health-advisor/internal/logger"
	"github.com/vladimiradmaev/health-advisor/internal/services"
	"github.com/vladimiradmaev/health-advisor/internal/web"
)

func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		_ = logger.Init()
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			logger.Fatal("Failed to load config", appErr.LogFields()...)
		}
		logger.Fatal("Failed to load config", "error", err)
	}

	if err := logger.InitWithConfig(cfg.Logger); err != nil {
		_ = logger.Init()
		logger.Fatal("Failed to initialize logger", "error", err)
	}
	if envErr != nil {
		logger.Warn(".env file not found, using process environment")
	}
	logger.Info("Starting Personalized Health Advisor", "model", cfg.Gemini.Model, "analysis_timeout", cfg.Gemini.Timeout)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	analyzer, err := services.NewGeminiAnalyzer(ctx, cfg.Gemini)
	if err != nil {
		logger.Fatal("Failed to create analysis client", "error", err)
	}
	defer analyzer.Close()

	advisor := services.NewAdvisorService(analyzer)

	var wg sync.WaitGroup

	if cfg.BotEnabled() {
		stateManager, closeState := newStateManager(ctx, cfg.Redis)
		defer closeState()

		telegramBot, err := bot.NewBot(cfg.TelegramToken, handlers.Dependencies{Advisor: advisor}, stateManager)
		if err != nil {
			logger.Fatal("Failed to create bot", "error", err)
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := telegramBot.Start(ctx); err != nil {
				logger.Error("Bot stopped with error", "error", err)
			}
		}()
	}

	server := web.NewServer(cfg.HTTPAddr, advisor, cfg.Gemini.Timeout)
	wg.Add(1)
	go func() {
		defer wg.Done()
		<-ctx.Done()
		logger.Info("Shutting down gracefully, press Ctrl+C again to force")
		stop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server forced to shutdown", "error", err)
		}
	}()

	logger.Info("HTTP server listening", "addr", cfg.HTTPAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("HTTP server error", "error", err)
	}

	wg.Wait()
	logger.Info("Graceful shutdown complete")
}

// newStateManager prefers Redis when configured and falls back to memory.
func newStateManager(ctx context.Context, cfg config.RedisConfig) (state.StateManager, func()) {
	if !cfg.Enabled() {
		return state.NewManager(), func() {}
	}

	rm, err := state.NewRedisManager(ctx, cfg)
	if err != nil {
		logger.Warn("Redis unavailable, keeping bot sessions in memory", "addr", cfg.Addr(), "error", err)
		return state.NewManager(), func() {}
	}
	logger.Info("Bot sessions stored in Redis", "addr", cfg.Addr())
	return rm, func() { rm.Close() }
}
