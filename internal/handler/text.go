package handler

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/SD-18/TeaGuard/internal/domain"
	"github.com/SD-18/TeaGuard/internal/i18n"
	"github.com/SD-18/TeaGuard/internal/middleware"
	tg "github.com/SD-18/TeaGuard/internal/telegram"
)

// HandleText routes free-form private messages to the chat assistant.
func (h *Handler) HandleText(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Chat.Type != "private" {
		return
	}
	if strings.HasPrefix(update.Message.Text, "/") {
		return
	}

	grower := middleware.GetGrower(ctx)
	if grower == nil {
		return
	}

	chatID := update.Message.Chat.ID
	t := i18n.T(grower.Language)

	stopTyping := tg.StartTyping(ctx, b, chatID)
	defer stopTyping()

	reply, err := h.assistant.Send(ctx, grower, update.Message.Text)
	switch {
	case errors.Is(err, domain.ErrEmptyMessage):
		return
	case errors.Is(err, domain.ErrBusy):
		b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: t.WaitPrevious})
		return
	case err != nil:
		// The assistant already substituted fallback text; log and keep going.
		slog.Warn("chat turn degraded", "error", err, "chat_id", chatID)
	}

	stopTyping()

	msgID := update.Message.ID
	if err := tg.SendLongMessage(ctx, b, chatID, reply, &msgID); err != nil {
		slog.Error("send chat reply failed", "error", err, "chat_id", chatID)
	}
}
