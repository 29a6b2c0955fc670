package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/SD-18/TeaGuard/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Growers struct {
	db *pgxpool.Pool
}

func NewGrowers(db *pgxpool.Pool) *Growers {
	return &Growers{db: db}
}

func scanGrower(row pgx.Row) (*domain.Grower, error) {
	var g domain.Grower
	err := row.Scan(&g.ID, &g.TelegramID, &g.FirstName, &g.Username, &g.Language, &g.IsAdmin, &g.LastSeen, &g.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

const growerColumns = "id, telegram_id, first_name, username, language, is_admin, last_seen, created_at"

// FindOrCreate returns the grower for a Telegram account, registering it on
// first contact. The second return reports whether the grower is new.
func (r *Growers) FindOrCreate(ctx context.Context, telegramID int64, firstName, username, language string, isAdmin bool) (*domain.Grower, bool, error) {
	g, err := scanGrower(r.db.QueryRow(ctx,
		"SELECT "+growerColumns+" FROM growers WHERE telegram_id = $1", telegramID))
	if err == nil {
		return g, false, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, fmt.Errorf("get grower: %w", err)
	}

	g, err = scanGrower(r.db.QueryRow(ctx, `
		INSERT INTO growers (telegram_id, first_name, username, language, is_admin)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+growerColumns,
		telegramID, firstName, username, language, isAdmin))
	if err != nil {
		return nil, false, fmt.Errorf("create grower: %w", err)
	}
	return g, true, nil
}

func (r *Growers) GetByTelegramID(ctx context.Context, telegramID int64) (*domain.Grower, error) {
	g, err := scanGrower(r.db.QueryRow(ctx,
		"SELECT "+growerColumns+" FROM growers WHERE telegram_id = $1", telegramID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrGrowerNotFound
		}
		return nil, fmt.Errorf("get grower: %w", err)
	}
	return g, nil
}

func (r *Growers) SetLanguage(ctx context.Context, growerID int64, language string) error {
	_, err := r.db.Exec(ctx, "UPDATE growers SET language = $2 WHERE id = $1", growerID, language)
	if err != nil {
		return fmt.Errorf("set language: %w", err)
	}
	return nil
}

func (r *Growers) TouchLastSeen(ctx context.Context, growerID int64) error {
	_, err := r.db.Exec(ctx, "UPDATE growers SET last_seen = now() WHERE id = $1", growerID)
	if err != nil {
		return fmt.Errorf("touch last seen: %w", err)
	}
	return nil
}
