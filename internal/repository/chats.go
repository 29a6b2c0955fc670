package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/SD-18/TeaGuard/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Chats persists the append-only conversation log so a conversation
// survives process restarts. The in-memory chat manager stays authoritative
// within one process; this store is its durable mirror.
type Chats struct {
	db *pgxpool.Pool
}

func NewChats(db *pgxpool.Pool) *Chats {
	return &Chats{db: db}
}

// ActiveSession returns the grower's active session ID, creating one if
// none exists.
func (r *Chats) ActiveSession(ctx context.Context, growerID int64) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		"SELECT id FROM chat_sessions WHERE grower_id = $1 AND active ORDER BY created_at DESC LIMIT 1",
		growerID).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("get active session: %w", err)
	}

	err = r.db.QueryRow(ctx,
		"INSERT INTO chat_sessions (grower_id) VALUES ($1) RETURNING id", growerID).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create session: %w", err)
	}
	return id, nil
}

// StartNewSession deactivates the current session and opens a fresh one.
func (r *Chats) StartNewSession(ctx context.Context, growerID int64) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		"UPDATE chat_sessions SET active = FALSE WHERE grower_id = $1 AND active", growerID); err != nil {
		return 0, fmt.Errorf("deactivate sessions: %w", err)
	}

	var id int64
	if err := tx.QueryRow(ctx,
		"INSERT INTO chat_sessions (grower_id) VALUES ($1) RETURNING id", growerID).Scan(&id); err != nil {
		return 0, fmt.Errorf("create session: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return id, nil
}

// AppendMessage stores one message at the end of a session's log.
func (r *Chats) AppendMessage(ctx context.Context, sessionID int64, msg domain.ChatMessage) error {
	_, err := r.db.Exec(ctx,
		"INSERT INTO chat_messages (session_id, role, text) VALUES ($1, $2, $3)",
		sessionID, string(msg.Role), msg.Text)
	if err != nil {
		return fmt.Errorf("append message: %w", err)
	}
	return nil
}

// Messages returns a session's log in insertion order.
func (r *Chats) Messages(ctx context.Context, sessionID int64) ([]domain.ChatMessage, error) {
	rows, err := r.db.Query(ctx,
		"SELECT role, text FROM chat_messages WHERE session_id = $1 ORDER BY id", sessionID)
	if err != nil {
		return nil, fmt.Errorf("get messages: %w", err)
	}
	defer rows.Close()

	var out []domain.ChatMessage
	for rows.Next() {
		var role, text string
		if err := rows.Scan(&role, &text); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		out = append(out, domain.ChatMessage{Role: domain.ChatRole(role), Text: text})
	}
	return out, rows.Err()
}
