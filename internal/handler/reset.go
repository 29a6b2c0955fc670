package handler

import (
	"context"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/SD-18/TeaGuard/internal/i18n"
	"github.com/SD-18/TeaGuard/internal/middleware"
)

// handleReset discards the diagnostic session and starts a fresh chat
// conversation. Any analysis still in flight is abandoned on completion.
func (h *Handler) handleReset(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	grower := middleware.GetGrower(ctx)
	if grower == nil {
		return
	}

	chatID := update.Message.Chat.ID

	h.analyzer.Reset(chatID)
	if err := h.assistant.Reset(ctx, grower); err != nil {
		slog.Error("chat reset failed", "error", err, "grower_id", grower.ID)
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   i18n.T(grower.Language).ResetDone,
	})
}
