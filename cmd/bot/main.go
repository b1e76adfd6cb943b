package main

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	astrocalc "github.com/set-night/astrocalc"
	"github.com/set-night/astrocalc/internal/config"
	"github.com/set-night/astrocalc/internal/handler"
	"github.com/set-night/astrocalc/internal/httpapi"
	"github.com/set-night/astrocalc/internal/kvstore"
	"github.com/set-night/astrocalc/internal/middleware"
	"github.com/set-night/astrocalc/internal/repository"
	"github.com/set-night/astrocalc/internal/scheduler"
	"github.com/set-night/astrocalc/internal/service"
	"github.com/set-night/astrocalc/internal/telegram"
	"github.com/set-night/astrocalc/internal/webhook"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

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
	migrationsFS, err := fs.Sub(astrocalc.MigrationsFS, "migrations")
	if err != nil {
		slog.Error("failed to load embedded migrations", "error", err)
		os.Exit(1)
	}
	if err := repository.RunMigrations(cfg.DatabaseURL, migrationsFS); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Open the local key-value store
	store, closeStore, err := openLocalStore(cfg.LocalStorePath)
	if err != nil {
		slog.Error("failed to open local store", "error", err, "path", cfg.LocalStorePath)
		os.Exit(1)
	}
	defer closeStore()

	queries := repository.New(pool)
	webhookClient := webhook.NewClient(cfg.WebhookToken, cfg.WebhookSource)

	// Initialize services
	profileService := service.NewProfileService(queries)
	historyService := service.NewChatHistoryService(store)
	cacheService := service.NewHoroscopeCacheService(store)
	chatService := service.NewAIChatService(historyService, webhookClient, cfg.ChatWebhookURL, cfg.WebhookSource)
	birthChartService := service.NewBirthChartService(queries, profileService, webhookClient, cfg.BirthChartWebhookURL, cfg.WebhookSource)
	horoscopeService := service.NewHoroscopeService(cacheService, queries, webhookClient, cfg.ChatWebhookURL, cfg.WebhookSource)
	diagnosticsService := service.NewDiagnosticsService(cfg, pool, store)

	// The logger gets its bot once the bot exists; calls before that are dropped.
	tgLogger := telegram.NewTelegramLogger(nil, cfg)

	limiter := middleware.NewLimiterStore(cfg.RateLimitPerMinute, config.RateLimitBurst)
	defer limiter.Stop()

	// Handler pointer for use in default handler closure
	var h *handler.Handler

	// Create bot
	opts := []bot.Option{
		bot.WithMiddlewares(
			middleware.Recover(tgLogger),
			middleware.Logging(),
			middleware.RateLimit(limiter),
			middleware.UserLoader(profileService, cfg, tgLogger),
		),
		bot.WithDefaultHandler(func(ctx context.Context, b *bot.Bot, update *models.Update) {
			if h == nil {
				return
			}
			h.HandleDefault(ctx, b, update)
		}),
	}

	b, err := bot.New(cfg.BotToken, opts...)
	if err != nil {
		slog.Error("failed to create bot", "error", err)
		os.Exit(1)
	}
	tgLogger.Attach(b)

	// Get bot info
	me, err := b.GetMe(ctx)
	if err != nil {
		slog.Error("failed to get bot info", "error", err)
		os.Exit(1)
	}
	slog.Info("bot info retrieved", "id", me.ID, "username", me.Username)

	if cfg.DropPendingUpdates {
		if _, err := b.DeleteWebhook(ctx, &bot.DeleteWebhookParams{DropPendingUpdates: true}); err != nil {
			slog.Warn("failed to drop pending updates", "error", err)
		}
	}

	// Initialize handler
	h = handler.New(handler.Deps{
		Bot:            b,
		Cfg:            cfg,
		Profiles:       profileService,
		Chat:           chatService,
		History:        historyService,
		BirthCharts:    birthChartService,
		Horoscopes:     horoscopeService,
		HoroscopeCache: cacheService,
		Diagnostics:    diagnosticsService,
		TgLogger:       tgLogger,
	})

	// Register all handlers
	h.Register()

	// Start local store cleanup
	cleanup := &scheduler.Service{
		Chats:    historyService,
		Cache:    cacheService,
		Timeout:  config.CleanupTimeout,
		Schedule: cfg.CleanupSchedule,
	}
	cron, err := cleanup.Start(ctx)
	if err != nil {
		slog.Error("failed to start cleanup scheduler", "error", err)
		os.Exit(1)
	}
	defer cron.Stop()

	// Start HTTP API
	if cfg.HTTPEnabled {
		srv := httpapi.NewServer(fmt.Sprintf(":%d", cfg.Port), httpapi.NewRouter(diagnosticsService))
		go func() {
			slog.Info("http api listening", "addr", srv.Addr)
			if err := httpapi.Run(ctx, srv); err != nil {
				slog.Error("http api stopped", "error", err)
			}
		}()
	}

	// Start bot
	slog.Info("starting bot", "username", me.Username, "id", me.ID)
	b.Start(ctx)

	// Graceful shutdown
	slog.Info("bot stopped gracefully")
}

// openLocalStore opens the SQLite store at path, or an in-memory store when path is empty.
func openLocalStore(path string) (kvstore.Store, func(), error) {
	if path == "" {
		slog.Warn("LOCAL_STORE_PATH is empty, chat history will not survive restarts")
		return kvstore.NewMemoryStore(), func() {}, nil
	}

	s, err := kvstore.NewSQLiteStore(path)
	if err != nil {
		return nil, nil, err
	}
	return s, func() {
		if err := s.Close(); err != nil {
			slog.Error("close local store", "error", err)
		}
	}, nil
}
