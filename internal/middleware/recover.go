package middleware

import (
	"context"
	"log/slog"
	"runtime/debug"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Recover returns middleware that recovers from handler panics, logging the
// panic with the offending update's coordinates so the crash can be traced
// back to a chat.
func Recover() bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			defer func() {
				if r := recover(); r != nil {
					updateType, chatID, userID := updateInfo(update)
					slog.Error("panic recovered in handler",
						"panic", r,
						"type", updateType,
						"chat_id", chatID,
						"user_id", userID,
						"stack", string(debug.Stack()),
					)
				}
			}()
			next(ctx, b, update)
		}
	}
}
