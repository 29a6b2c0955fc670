package main

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	teaguard "github.com/SD-18/TeaGuard"
	"github.com/SD-18/TeaGuard/internal/catalog"
	"github.com/SD-18/TeaGuard/internal/config"
	"github.com/SD-18/TeaGuard/internal/diagnose"
	"github.com/SD-18/TeaGuard/internal/guide"
	"github.com/SD-18/TeaGuard/internal/handler"
	"github.com/SD-18/TeaGuard/internal/interpret"
	"github.com/SD-18/TeaGuard/internal/middleware"
	"github.com/SD-18/TeaGuard/internal/predict"
	"github.com/SD-18/TeaGuard/internal/repository"
	"github.com/SD-18/TeaGuard/internal/service"
	"github.com/SD-18/TeaGuard/internal/telegram"
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
	migrationsFS, err := fs.Sub(teaguard.MigrationsFS, "migrations")
	if err != nil {
		slog.Error("failed to load embedded migrations", "error", err)
		os.Exit(1)
	}
	if err := repository.RunMigrations(cfg.DatabaseURL, migrationsFS); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Initialize repositories
	growers := repository.NewGrowers(pool)
	diagnoses := repository.NewDiagnoses(pool)
	chats := repository.NewChats(pool)
	usage := repository.NewUsage(pool)
	rateLimits := repository.NewRateLimits(pool)

	// Initialize clients and services
	classifier := predict.NewClient(cfg.PredictAPIURL, config.PredictTimeout)
	llm := interpret.NewClient(cfg.PredictAPIURL, cfg.OpenRouterURL, cfg.OpenRouterKey, cfg.ChatModel, config.InterpretTimeout)
	guides := guide.NewService(config.GuideTimeout, config.GuideCacheDuration)

	policy := diagnose.SeverityPolicy{
		MildBelow:  config.SeverityMildBelow,
		SevereFrom: config.SeveritySevereFrom,
	}
	analyzer := service.NewAnalyzer(classifier, llm, catalog.Default(), policy, config.MaxImageBytes, diagnoses)
	assistant := service.NewAssistant(llm, chats, usage)

	// Filled in after the bot is created; used inside middleware closures.
	var h *handler.Handler
	var evLog *telegram.EventLogger

	opts := []bot.Option{
		bot.WithMiddlewares(
			middleware.Recover(),
			middleware.Logging(),
			middleware.RateLimit(rateLimits),
			middleware.GrowerLoader(growers, cfg.DefaultLanguage, cfg.IsAdmin, func(telegramID int64, name, username string) {
				if evLog != nil {
					evLog.LogRegistration(telegramID, name, username)
				}
			}),
		),
		bot.WithDefaultHandler(func(ctx context.Context, b *bot.Bot, update *models.Update) {
			if h == nil || update.Message == nil {
				return
			}
			if len(update.Message.Photo) > 0 {
				h.HandlePhoto(ctx, b, update)
				return
			}
			if update.Message.Text != "" {
				h.HandleText(ctx, b, update)
			}
		}),
	}

	b, err := bot.New(cfg.BotToken, opts...)
	if err != nil {
		slog.Error("failed to create bot", "error", err)
		os.Exit(1)
	}

	if cfg.DropPendingUpdates {
		b.DeleteWebhook(ctx, &bot.DeleteWebhookParams{DropPendingUpdates: true})
	}

	me, err := b.GetMe(ctx)
	if err != nil {
		slog.Error("failed to get bot info", "error", err)
		os.Exit(1)
	}

	evLog = telegram.NewEventLogger(b, cfg)

	h = handler.New(handler.Deps{
		Bot:       b,
		Cfg:       cfg,
		Analyzer:  analyzer,
		Assistant: assistant,
		Guides:    guides,
		Growers:   growers,
		Diagnoses: diagnoses,
		EvLog:     evLog,
	})

	h.Register()

	slog.Info("starting bot", "username", me.Username, "id", me.ID)
	b.Start(ctx)

	slog.Info("bot stopped gracefully")
}
