package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// updateInfo classifies an update and pulls out the chat and user IDs for
// log lines. Zero IDs mean the update carried none.
func updateInfo(update *models.Update) (updateType string, chatID, userID int64) {
	updateType = "unknown"
	switch {
	case update.Message != nil:
		updateType = "message"
		if len(update.Message.Photo) > 0 {
			updateType = "photo"
		}
		chatID = update.Message.Chat.ID
		if update.Message.From != nil {
			userID = update.Message.From.ID
		}
	case update.CallbackQuery != nil:
		updateType = "callback_query"
		if update.CallbackQuery.Message.Message != nil {
			chatID = update.CallbackQuery.Message.Message.Chat.ID
		}
		userID = update.CallbackQuery.From.ID
	}
	return updateType, chatID, userID
}

// Logging returns middleware that logs update processing time.
func Logging() bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			start := time.Now()
			updateType, chatID, userID := updateInfo(update)

			next(ctx, b, update)

			slog.Debug("update processed",
				"type", updateType,
				"chat_id", chatID,
				"user_id", userID,
				"duration", time.Since(start),
			)
		}
	}
}
