package handler

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/SD-18/TeaGuard/internal/config"
	"github.com/SD-18/TeaGuard/internal/i18n"
	"github.com/SD-18/TeaGuard/internal/middleware"
)

func (h *Handler) handleHistory(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	grower := middleware.GetGrower(ctx)
	if grower == nil {
		return
	}

	chatID := update.Message.Chat.ID
	t := i18n.T(grower.Language)

	items, err := h.diagnoses.ListRecent(ctx, grower.ID, config.HistoryPageSize)
	if err != nil {
		slog.Error("history load failed", "error", err, "grower_id", grower.ID)
		return
	}

	if len(items) == 0 {
		b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: t.HistoryEmpty})
		return
	}

	var sb strings.Builder
	sb.WriteString(t.HistoryTitle)
	sb.WriteString("\n\n")
	for _, d := range items {
		sb.WriteString(fmt.Sprintf("• %s — %s %.1f%% (%s)\n",
			d.CreatedAt.Format("02 Jan 2006"),
			prettyLabel(d.Disease),
			d.Confidence,
			t.Severity(d.Severity),
		))
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      sb.String(),
		ParseMode: models.ParseModeMarkdownV1,
	})
}
