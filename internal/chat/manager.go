// Package chat implements the assistant conversation core: an append-only
// message log with a single-flight send pipeline.
package chat

import (
	"context"
	"strings"
	"sync"

	"github.com/SD-18/TeaGuard/internal/domain"
	"github.com/SD-18/TeaGuard/internal/i18n"
)

// Conversationalist produces the next assistant message given the full
// conversation so far. One request per call, no retries.
type Conversationalist interface {
	Converse(ctx context.Context, history []domain.ChatMessage, userText, lang string) (string, error)
}

// Manager holds the ordered conversation log for one chat. History is
// append-only: no message is ever edited, reordered or removed within a
// session. At most one send is in flight at a time; a second Send while
// pending is rejected as a no-op, never queued, so the rejected text is
// simply discarded and the user is told to wait.
type Manager struct {
	mu       sync.Mutex
	messages []domain.ChatMessage
	pending  bool

	client Conversationalist
	lang   string
}

func NewManager(client Conversationalist, lang string) *Manager {
	m := &Manager{client: client, lang: lang}
	m.messages = []domain.ChatMessage{greeting(lang)}
	return m
}

func greeting(lang string) domain.ChatMessage {
	return domain.ChatMessage{Role: domain.RoleAssistant, Text: i18n.T(lang).Greeting}
}

// Restore replaces the log with previously persisted history. Used to pick a
// conversation back up after a restart; an empty history reseeds the
// greeting.
func (m *Manager) Restore(history []domain.ChatMessage) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(history) == 0 {
		m.messages = []domain.ChatMessage{greeting(m.lang)}
		return
	}
	m.messages = make([]domain.ChatMessage, len(history))
	copy(m.messages, history)
}

// Send appends the user message, runs one converse call and appends the
// assistant reply. On a classified remote failure the localized fallback
// text is appended instead and the failure is returned for logging — the
// assistant slot is never left empty. Blank input reports
// domain.ErrEmptyMessage and a send while one is pending reports
// domain.ErrBusy; both leave the log and the pending flag untouched.
func (m *Manager) Send(ctx context.Context, text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", domain.ErrEmptyMessage
	}

	m.mu.Lock()
	if m.pending {
		m.mu.Unlock()
		return "", domain.ErrBusy
	}
	m.pending = true
	history := make([]domain.ChatMessage, len(m.messages))
	copy(history, m.messages)
	m.messages = append(m.messages, domain.ChatMessage{Role: domain.RoleUser, Text: trimmed})
	lang := m.lang
	m.mu.Unlock()

	reply, err := m.client.Converse(ctx, history, trimmed, lang)
	if err != nil || strings.TrimSpace(reply) == "" {
		reply = i18n.T(lang).ChatFallback
	}

	m.mu.Lock()
	m.messages = append(m.messages, domain.ChatMessage{Role: domain.RoleAssistant, Text: reply})
	m.pending = false
	m.mu.Unlock()

	return reply, err
}

// Append adds a message to the log without going through the send pipeline.
// Used to record assistant-initiated messages such as analysis
// interpretations, so follow-up questions see them as context.
func (m *Manager) Append(msg domain.ChatMessage) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, msg)
}

// History returns a copy of the conversation log.
func (m *Manager) History() []domain.ChatMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.ChatMessage, len(m.messages))
	copy(out, m.messages)
	return out
}

// Pending reports whether a send is currently in flight.
func (m *Manager) Pending() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pending
}

// SetLanguage changes the language used for fallback texts and greetings.
func (m *Manager) SetLanguage(lang string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lang = lang
}

// Reset replaces the entire log with a fresh localized greeting.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = []domain.ChatMessage{greeting(m.lang)}
	m.pending = false
}
