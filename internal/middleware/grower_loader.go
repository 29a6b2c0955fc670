package middleware

import (
	"context"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/SD-18/TeaGuard/internal/domain"
	"github.com/SD-18/TeaGuard/internal/repository"
)

type ctxKey string

const growerKey ctxKey = "grower"

// GetGrower extracts the grower from context.
func GetGrower(ctx context.Context) *domain.Grower {
	g, ok := ctx.Value(growerKey).(*domain.Grower)
	if !ok {
		return nil
	}
	return g
}

// GrowerLoader returns middleware that loads the grower into context,
// creating the record on first contact.
func GrowerLoader(growers *repository.Growers, defaultLanguage string, isAdmin func(int64) bool, onRegister func(telegramID int64, name, username string)) bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			var from *models.User

			if update.Message != nil {
				from = update.Message.From
			} else if update.CallbackQuery != nil {
				from = &update.CallbackQuery.From
			}

			if from == nil {
				next(ctx, b, update)
				return
			}

			grower, created, err := growers.FindOrCreate(ctx, from.ID, from.FirstName, from.Username, defaultLanguage, isAdmin(from.ID))
			if err != nil {
				slog.Error("grower load failed", "error", err, "telegram_id", from.ID)
				next(ctx, b, update)
				return
			}

			if created && onRegister != nil {
				onRegister(from.ID, from.FirstName, from.Username)
			}

			if err := growers.TouchLastSeen(ctx, grower.ID); err != nil {
				slog.Warn("touch last seen failed", "error", err, "grower_id", grower.ID)
			}

			ctx = context.WithValue(ctx, growerKey, grower)
			next(ctx, b, update)
		}
	}
}
