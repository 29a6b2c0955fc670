package handler

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Register registers all command and callback handlers on the bot instance.
func (h *Handler) Register() {
	// Commands
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypePrefix, h.handleStart)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/reset", bot.MatchTypePrefix, h.handleReset)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/language", bot.MatchTypePrefix, h.handleLanguage)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/guide", bot.MatchTypePrefix, h.handleGuide)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/history", bot.MatchTypePrefix, h.handleHistory)

	// Callbacks
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "lang_", bot.MatchTypePrefix, h.handleLanguageSelect)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "guide_", bot.MatchTypePrefix, h.handleGuideSelect)

	// Photos and free text go through the default handler in main.
}

// answerCallback acknowledges a callback query so the client stops the
// spinner even when we send no visible response.
func answerCallback(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: update.CallbackQuery.ID,
	})
}
