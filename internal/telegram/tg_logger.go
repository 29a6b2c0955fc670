package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-telegram/bot"

	"github.com/SD-18/TeaGuard/internal/config"
)

// EventLogger mirrors notable bot events into an admin Telegram chat.
// It is a no-op when LogTelegramChatID is not configured.
type EventLogger struct {
	bot *bot.Bot
	cfg *config.Config
}

func NewEventLogger(b *bot.Bot, cfg *config.Config) *EventLogger {
	return &EventLogger{bot: b, cfg: cfg}
}

func (l *EventLogger) send(message string) {
	if l.cfg.LogTelegramChatID == 0 {
		return
	}

	if len([]rune(message)) > MaxMessageLen {
		message = string([]rune(message)[:MaxMessageLen-20]) + "\n\n... (truncated)"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := l.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    l.cfg.LogTelegramChatID,
		Text:      message,
		ParseMode: "Markdown",
	})
	if err != nil {
		slog.Error("failed to send telegram log", "error", err)
	}
}

func (l *EventLogger) LogError(err error, where string) {
	l.send(fmt.Sprintf("❌ *Error*\n\n*Context:* %s\n*Error:* `%s`\n*Time:* %s",
		where, err.Error(), time.Now().Format("2006-01-02 15:04:05")))
}

func (l *EventLogger) LogRegistration(telegramID int64, name, username string) {
	l.send(fmt.Sprintf("👤 *New Grower*\n\n*ID:* `%d`\n*Name:* %s\n*Username:* @%s",
		telegramID, name, username))
}

func (l *EventLogger) LogDiagnosis(telegramID int64, disease string, confidence float64) {
	l.send(fmt.Sprintf("🍃 *Diagnosis*\n\n*User:* `%d`\n*Disease:* %s\n*Confidence:* %.1f%%",
		telegramID, disease, confidence))
}
