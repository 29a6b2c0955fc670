package handler

import (
	"context"
	"log/slog"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/SD-18/TeaGuard/internal/i18n"
	"github.com/SD-18/TeaGuard/internal/middleware"
	tg "github.com/SD-18/TeaGuard/internal/telegram"
)

func (h *Handler) handleLanguage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	grower := middleware.GetGrower(ctx)
	if grower == nil {
		return
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   i18n.T(grower.Language).LanguagePrompt,
		ReplyMarkup: tg.InlineKeyboard(
			tg.ButtonRow(
				tg.InlineButton("English", "lang_en"),
				tg.InlineButton("অসমীয়া", "lang_as"),
			),
		),
	})
}

func (h *Handler) handleLanguageSelect(ctx context.Context, b *bot.Bot, update *models.Update) {
	answerCallback(ctx, b, update)

	grower := middleware.GetGrower(ctx)
	if grower == nil || update.CallbackQuery.Message.Message == nil {
		return
	}

	lang := strings.TrimPrefix(update.CallbackQuery.Data, "lang_")
	if !i18n.Valid(lang) {
		return
	}

	if err := h.growers.SetLanguage(ctx, grower.ID, lang); err != nil {
		slog.Error("set language failed", "error", err, "grower_id", grower.ID)
		return
	}
	grower.Language = lang

	chatID := update.CallbackQuery.Message.Message.Chat.ID
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   i18n.T(lang).LanguageSet,
	})
}
