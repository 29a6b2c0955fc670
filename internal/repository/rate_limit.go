package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type RateLimits struct {
	db *pgxpool.Pool
}

func NewRateLimits(db *pgxpool.Pool) *RateLimits {
	return &RateLimits{db: db}
}

// CheckAndIncrement bumps the chat's counter within the current one-minute
// window and returns the new count. The window resets lazily on the first
// message after it expires.
func (r *RateLimits) CheckAndIncrement(ctx context.Context, chatID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
		INSERT INTO rate_limits (chat_id, window_start, count)
		VALUES ($1, now(), 1)
		ON CONFLICT (chat_id) DO UPDATE SET
			count = CASE WHEN rate_limits.window_start < now() - interval '1 minute' THEN 1 ELSE rate_limits.count + 1 END,
			window_start = CASE WHEN rate_limits.window_start < now() - interval '1 minute' THEN now() ELSE rate_limits.window_start END
		RETURNING count`, chatID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("rate limit increment: %w", err)
	}
	return count, nil
}
