package service

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/SD-18/TeaGuard/internal/chat"
	"github.com/SD-18/TeaGuard/internal/domain"
	"github.com/SD-18/TeaGuard/internal/interpret"
	"github.com/shopspring/decimal"
)

// ChatStore persists chat sessions and their append-only message logs.
// *repository.Chats satisfies it.
type ChatStore interface {
	ActiveSession(ctx context.Context, growerID int64) (int64, error)
	StartNewSession(ctx context.Context, growerID int64) (int64, error)
	AppendMessage(ctx context.Context, sessionID int64, msg domain.ChatMessage) error
	Messages(ctx context.Context, sessionID int64) ([]domain.ChatMessage, error)
}

// UsageStore records token usage per completion call. *repository.Usage
// satisfies it.
type UsageStore interface {
	Record(ctx context.Context, growerID int64, kind string, promptTokens, completionTokens int, cost decimal.Decimal) error
}

// Completer produces chat completions. *interpret.Client satisfies it.
type Completer interface {
	Converse(ctx context.Context, history []domain.ChatMessage, userText, lang string) (string, interpret.Usage, error)
}

// Assistant owns the per-grower chat managers, persists their append-only
// logs, and keeps the usage ledger for completion calls.
type Assistant struct {
	mu       sync.Mutex
	managers map[int64]*chat.Manager

	llm   Completer
	chats ChatStore
	usage UsageStore
}

func NewAssistant(llm Completer, chats ChatStore, usage UsageStore) *Assistant {
	return &Assistant{
		managers: make(map[int64]*chat.Manager),
		llm:      llm,
		chats:    chats,
		usage:    usage,
	}
}

// growerConverse adapts the completion client for one grower so each call's
// token usage lands in the ledger.
type growerConverse struct {
	s        *Assistant
	growerID int64
}

func (g growerConverse) Converse(ctx context.Context, history []domain.ChatMessage, userText, lang string) (string, error) {
	reply, usage, err := g.s.llm.Converse(ctx, history, userText, lang)
	if err == nil {
		cost := decimal.NewFromFloat(usage.TotalCost)
		if rerr := g.s.usage.Record(ctx, g.growerID, domain.UsageKindChat,
			usage.PromptTokens, usage.CompletionTokens, cost); rerr != nil {
			slog.Error("record chat usage", "error", rerr, "grower_id", g.growerID)
		}
	}
	return reply, err
}

func (s *Assistant) manager(ctx context.Context, grower *domain.Grower) (*chat.Manager, int64, error) {
	sessionID, err := s.chats.ActiveSession(ctx, grower.ID)
	if err != nil {
		return nil, 0, err
	}

	s.mu.Lock()
	m, ok := s.managers[grower.ID]
	s.mu.Unlock()
	if ok {
		m.SetLanguage(grower.Language)
		return m, sessionID, nil
	}

	// First contact since startup: rehydrate the persisted log before the
	// manager becomes visible. A manager must never be reachable while its
	// history is still loading, or a concurrent append would be wiped by
	// the restore. A store failure here leaves the map untouched so the
	// next call retries the load.
	history, err := s.chats.Messages(ctx, sessionID)
	if err != nil {
		return nil, 0, err
	}
	m = chat.NewManager(growerConverse{s: s, growerID: grower.ID}, grower.Language)
	m.Restore(history)

	s.mu.Lock()
	if existing, ok := s.managers[grower.ID]; ok {
		// Lost the race to another first-contact call; its manager holds
		// the same persisted history.
		m = existing
	} else {
		s.managers[grower.ID] = m
	}
	s.mu.Unlock()

	m.SetLanguage(grower.Language)
	return m, sessionID, nil
}

// Send runs the single-flight chat pipeline for a grower and persists both
// sides of the exchange. No-op signals (domain.ErrBusy, ErrEmptyMessage)
// pass through untouched so the handler can react; classified remote
// failures come back alongside the fallback reply that was already logged.
func (s *Assistant) Send(ctx context.Context, grower *domain.Grower, text string) (string, error) {
	m, sessionID, err := s.manager(ctx, grower)
	if err != nil {
		return "", err
	}

	reply, sendErr := m.Send(ctx, text)
	if sendErr == domain.ErrBusy || sendErr == domain.ErrEmptyMessage {
		return "", sendErr
	}

	if err := s.chats.AppendMessage(ctx, sessionID, domain.ChatMessage{Role: domain.RoleUser, Text: strings.TrimSpace(text)}); err != nil {
		slog.Error("persist user message", "error", err, "grower_id", grower.ID)
	}
	if err := s.chats.AppendMessage(ctx, sessionID, domain.ChatMessage{Role: domain.RoleAssistant, Text: reply}); err != nil {
		slog.Error("persist assistant message", "error", err, "grower_id", grower.ID)
	}

	return reply, sendErr
}

// RecordInterpretation appends an analysis interpretation to the
// conversation so follow-up questions see it as context.
func (s *Assistant) RecordInterpretation(ctx context.Context, grower *domain.Grower, text string) {
	m, sessionID, err := s.manager(ctx, grower)
	if err != nil {
		slog.Error("load chat manager", "error", err, "grower_id", grower.ID)
		return
	}
	m.Append(domain.ChatMessage{Role: domain.RoleAssistant, Text: text})
	if err := s.chats.AppendMessage(ctx, sessionID, domain.ChatMessage{Role: domain.RoleAssistant, Text: text}); err != nil {
		slog.Error("persist interpretation", "error", err, "grower_id", grower.ID)
	}
}

// Reset replaces the grower's conversation with a fresh greeting backed by
// a new persisted session.
func (s *Assistant) Reset(ctx context.Context, grower *domain.Grower) error {
	if _, err := s.chats.StartNewSession(ctx, grower.ID); err != nil {
		return err
	}

	s.mu.Lock()
	m, ok := s.managers[grower.ID]
	s.mu.Unlock()
	if ok {
		m.SetLanguage(grower.Language)
		m.Reset()
	}
	return nil
}

// Pending reports whether the grower's chat pipeline is busy.
func (s *Assistant) Pending(growerID int64) bool {
	s.mu.Lock()
	m, ok := s.managers[growerID]
	s.mu.Unlock()
	return ok && m.Pending()
}
