package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// Usage is the audit ledger of remote text-generation calls: token counts
// and cost per grower. There is no billing — the ledger exists so operators
// can see where the spend goes.
type Usage struct {
	db *pgxpool.Pool
}

func NewUsage(db *pgxpool.Pool) *Usage {
	return &Usage{db: db}
}

func (r *Usage) Record(ctx context.Context, growerID int64, kind string, promptTokens, completionTokens int, cost decimal.Decimal) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO usage_records (grower_id, kind, prompt_tokens, completion_tokens, cost)
		VALUES ($1, $2, $3, $4, $5)`,
		growerID, kind, promptTokens, completionTokens, cost)
	if err != nil {
		return fmt.Errorf("record usage: %w", err)
	}
	return nil
}

// TotalCost sums a grower's spend across all recorded calls.
func (r *Usage) TotalCost(ctx context.Context, growerID int64) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.QueryRow(ctx,
		"SELECT COALESCE(sum(cost), 0) FROM usage_records WHERE grower_id = $1", growerID).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("total cost: %w", err)
	}
	return total, nil
}
