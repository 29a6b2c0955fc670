package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/SD-18/TeaGuard/internal/config"
	"github.com/SD-18/TeaGuard/internal/domain"
	"github.com/SD-18/TeaGuard/internal/i18n"
	"github.com/SD-18/TeaGuard/internal/middleware"
	tg "github.com/SD-18/TeaGuard/internal/telegram"
)

// HandlePhoto runs the full diagnostic pipeline for an incoming leaf photo.
func (h *Handler) HandlePhoto(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || len(update.Message.Photo) == 0 {
		return
	}
	if update.Message.Chat.Type != "private" {
		return
	}

	grower := middleware.GetGrower(ctx)
	if grower == nil {
		return
	}

	chatID := update.Message.Chat.ID
	t := i18n.T(grower.Language)

	// Telegram orders photo sizes ascending; take the largest.
	photo := update.Message.Photo[len(update.Message.Photo)-1]

	stopTyping := tg.StartTyping(ctx, b, chatID)
	defer stopTyping()

	data, mediaType, fileName, err := tg.DownloadFile(ctx, b, photo.FileID)
	if err != nil {
		slog.Error("photo download failed", "error", err, "chat_id", chatID)
		b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: t.NetworkFailed})
		return
	}

	asset := domain.ImageAsset{Data: data, MediaType: mediaType, FileName: fileName}
	if err := h.analyzer.SelectImage(chatID, grower.Language, asset); err != nil {
		if asset.Size() > config.MaxImageBytes {
			b.SendMessage(ctx, &bot.SendMessageParams{
				ChatID: chatID,
				Text:   fmt.Sprintf(t.ImageTooLarge, config.MaxImageMB),
			})
		} else {
			b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: t.InvalidImageType})
		}
		return
	}

	rep, err := h.analyzer.Analyze(ctx, grower, chatID)
	if err != nil {
		h.sendAnalysisError(ctx, b, chatID, t, err)
		return
	}

	stopTyping()

	msgID := update.Message.ID
	if err := tg.SendLongMessage(ctx, b, chatID, formatReport(t, rep), &msgID); err != nil {
		slog.Error("send report failed", "error", err, "chat_id", chatID)
		return
	}

	if ref := rep.Derived.Result.AnnotatedImageRef; ref != "" {
		url := ref
		if !strings.HasPrefix(url, "http") {
			url = strings.TrimSuffix(h.cfg.PredictAPIURL, "/") + "/" + strings.TrimPrefix(ref, "/")
		}
		if err := tg.SendPhotoURL(ctx, b, chatID, url, ""); err != nil {
			slog.Warn("annotated image send failed", "error", err, "chat_id", chatID)
		}
	}

	// Seed the chat history so follow-up questions can reference the result.
	h.assistant.RecordInterpretation(ctx, grower, rep.Interpretation)

	h.evLog.LogDiagnosis(grower.TelegramID, rep.Derived.Result.DiseaseLabel, rep.Derived.Result.ConfidencePercent)
}

func (h *Handler) sendAnalysisError(ctx context.Context, b *bot.Bot, chatID int64, t *i18n.Set, err error) {
	switch {
	case errors.Is(err, domain.ErrStale):
		// Session was reset mid-flight; say nothing.
		return
	case errors.Is(err, domain.ErrBusy):
		b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: t.WaitPrevious})
	case errors.Is(err, domain.ErrNoImage):
		b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: t.NoImage})
	case errors.Is(err, domain.ErrNetwork):
		b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: t.NetworkFailed})
	default:
		slog.Error("analysis failed", "error", err, "chat_id", chatID)
		h.evLog.LogError(err, "analysis")
		b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: t.AnalysisFailed})
	}
}
