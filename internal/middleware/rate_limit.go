package middleware

import (
	"context"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/SD-18/TeaGuard/internal/config"
	"github.com/SD-18/TeaGuard/internal/i18n"
	"github.com/SD-18/TeaGuard/internal/repository"
)

// RateLimit returns middleware that enforces per-minute rate limits.
func RateLimit(limits *repository.RateLimits) bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			// Only rate limit messages, not callbacks
			if update.Message == nil {
				next(ctx, b, update)
				return
			}

			chatID := update.Message.Chat.ID

			count, err := limits.CheckAndIncrement(ctx, chatID)
			if err != nil {
				slog.Error("rate limit check failed", "error", err, "chat_id", chatID)
				next(ctx, b, update)
				return
			}

			if count > config.RateLimitPerMinute {
				slog.Debug("rate limited", "chat_id", chatID, "count", count)
				lang := i18n.English
				if g := GetGrower(ctx); g != nil {
					lang = g.Language
				}
				b.SendMessage(ctx, &bot.SendMessageParams{
					ChatID: chatID,
					Text:   i18n.T(lang).RateLimited,
				})
				return
			}

			next(ctx, b, update)
		}
	}
}
