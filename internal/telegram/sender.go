package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

const MaxMessageLen = 4096

// SendLongMessage sends a message that may exceed the Telegram limit,
// splitting it into parts. Falls back to plain text if Markdown parsing fails.
func SendLongMessage(ctx context.Context, b *bot.Bot, chatID int64, text string, replyToID *int) error {
	text = FixMarkdown(text)
	parts := SplitMessage(text, MaxMessageLen)

	for _, part := range parts {
		params := &bot.SendMessageParams{
			ChatID:    chatID,
			Text:      part,
			ParseMode: models.ParseModeMarkdownV1,
		}
		if replyToID != nil {
			params.ReplyParameters = &models.ReplyParameters{
				MessageID: *replyToID,
			}
			replyToID = nil // only reply to first part
		}

		_, err := b.SendMessage(ctx, params)
		if err != nil {
			// Fallback to plain text
			slog.Warn("markdown send failed, falling back to plain text", "error", err)
			params.ParseMode = ""
			_, err = b.SendMessage(ctx, params)
			if err != nil {
				return fmt.Errorf("send message: %w", err)
			}
		}
	}

	return nil
}

// StartTyping sends the "typing..." action every 4 seconds until the
// returned cancel function is called.
func StartTyping(ctx context.Context, b *bot.Bot, chatID int64) context.CancelFunc {
	ctx, cancel := context.WithCancel(ctx)
	go func() {
		ticker := time.NewTicker(4 * time.Second)
		defer ticker.Stop()
		// Send immediately
		b.SendChatAction(ctx, &bot.SendChatActionParams{
			ChatID: chatID,
			Action: models.ChatActionTyping,
		})
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				b.SendChatAction(ctx, &bot.SendChatActionParams{
					ChatID: chatID,
					Action: models.ChatActionTyping,
				})
			}
		}
	}()
	return cancel
}

// SendPhotoURL sends a photo the Telegram servers fetch themselves from a
// public URL, used for annotated result images returned by the classifier.
func SendPhotoURL(ctx context.Context, b *bot.Bot, chatID int64, url, caption string) error {
	_, err := b.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID:  chatID,
		Photo:   &models.InputFileString{Data: url},
		Caption: caption,
	})
	if err != nil {
		return fmt.Errorf("send photo: %w", err)
	}
	return nil
}
