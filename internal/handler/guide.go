package handler

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/SD-18/TeaGuard/internal/guide"
	"github.com/SD-18/TeaGuard/internal/i18n"
	"github.com/SD-18/TeaGuard/internal/middleware"
	tg "github.com/SD-18/TeaGuard/internal/telegram"
)

func (h *Handler) handleGuide(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	grower := middleware.GetGrower(ctx)
	if grower == nil {
		return
	}

	rows := make([][]models.InlineKeyboardButton, 0, len(guide.Topics))
	for _, topic := range guide.Topics {
		rows = append(rows, tg.ButtonRow(tg.InlineButton(topic.Title, "guide_"+topic.ID)))
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      update.Message.Chat.ID,
		Text:        i18n.T(grower.Language).GuideTitle,
		ParseMode:   models.ParseModeMarkdownV1,
		ReplyMarkup: tg.InlineKeyboard(rows...),
	})
}

func (h *Handler) handleGuideSelect(ctx context.Context, b *bot.Bot, update *models.Update) {
	answerCallback(ctx, b, update)

	grower := middleware.GetGrower(ctx)
	if grower == nil || update.CallbackQuery.Message.Message == nil {
		return
	}

	chatID := update.CallbackQuery.Message.Message.Chat.ID
	t := i18n.T(grower.Language)

	topicID := strings.TrimPrefix(update.CallbackQuery.Data, "guide_")
	topic, ok := guide.TopicByID(topicID)
	if !ok {
		return
	}

	stopTyping := tg.StartTyping(ctx, b, chatID)
	defer stopTyping()

	article, err := h.guides.Fetch(ctx, topic)
	if err != nil {
		slog.Error("guide fetch failed", "error", err, "topic", topic.ID)
		b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: t.GuideFailed})
		return
	}

	stopTyping()

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📖 *%s*\n\n", article.Title))
	for _, p := range article.Paragraphs {
		sb.WriteString(p)
		sb.WriteString("\n\n")
	}
	sb.WriteString(article.URL)

	if err := tg.SendLongMessage(ctx, b, chatID, sb.String(), nil); err != nil {
		slog.Error("send guide failed", "error", err, "chat_id", chatID)
	}
}
