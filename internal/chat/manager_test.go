package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/SD-18/TeaGuard/internal/domain"
	"github.com/SD-18/TeaGuard/internal/i18n"
)

type stubConverse struct {
	reply   string
	err     error
	started chan struct{}
	release chan struct{}

	gotHistory []domain.ChatMessage
	gotText    string
}

func (s *stubConverse) Converse(ctx context.Context, history []domain.ChatMessage, userText, lang string) (string, error) {
	s.gotHistory = history
	s.gotText = userText
	if s.started != nil {
		s.started <- struct{}{}
	}
	if s.release != nil {
		<-s.release
	}
	return s.reply, s.err
}

func TestNewManagerSeedsGreeting(t *testing.T) {
	m := NewManager(&stubConverse{}, i18n.Assamese)

	history := m.History()
	if len(history) != 1 {
		t.Fatalf("got %d messages, want 1", len(history))
	}
	if history[0].Role != domain.RoleAssistant {
		t.Errorf("greeting role = %q, want assistant", history[0].Role)
	}
	if history[0].Text != i18n.T(i18n.Assamese).Greeting {
		t.Errorf("greeting = %q, want localized greeting", history[0].Text)
	}
}

func TestSendEmptyMessageIsNoOp(t *testing.T) {
	m := NewManager(&stubConverse{reply: "hi"}, i18n.English)

	if _, err := m.Send(context.Background(), "   \n\t"); !errors.Is(err, domain.ErrEmptyMessage) {
		t.Fatalf("got %v, want ErrEmptyMessage", err)
	}
	if got := len(m.History()); got != 1 {
		t.Errorf("history grew to %d on empty send, want 1", got)
	}
}

func TestSendAppendsUserAndAssistant(t *testing.T) {
	stub := &stubConverse{reply: "Blister blight spreads in cool wet weather."}
	m := NewManager(stub, i18n.English)

	reply, err := m.Send(context.Background(), "  why does blister blight spread?  ")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if reply != stub.reply {
		t.Errorf("reply = %q, want stub reply", reply)
	}

	history := m.History()
	if len(history) != 3 {
		t.Fatalf("got %d messages, want greeting+user+assistant", len(history))
	}
	if history[1].Role != domain.RoleUser || history[1].Text != "why does blister blight spread?" {
		t.Errorf("user message = %+v, want trimmed input", history[1])
	}
	if history[2].Role != domain.RoleAssistant || history[2].Text != stub.reply {
		t.Errorf("assistant message = %+v", history[2])
	}
	if stub.gotText != "why does blister blight spread?" {
		t.Errorf("converse got text %q", stub.gotText)
	}
}

func TestSendWhilePendingIsRejected(t *testing.T) {
	stub := &stubConverse{
		reply:   "ok",
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	m := NewManager(stub, i18n.English)

	done := make(chan struct{})
	go func() {
		m.Send(context.Background(), "first")
		close(done)
	}()

	<-stub.started
	if !m.Pending() {
		t.Error("Pending() false while send in flight")
	}
	if _, err := m.Send(context.Background(), "second"); !errors.Is(err, domain.ErrBusy) {
		t.Fatalf("got %v, want ErrBusy", err)
	}

	close(stub.release)
	<-done

	// The rejected message must not appear in the log.
	for _, msg := range m.History() {
		if msg.Text == "second" {
			t.Fatal("rejected message was queued")
		}
	}
	if m.Pending() {
		t.Error("pending flag stuck after completion")
	}
}

func TestSendFallbackOnRemoteFailure(t *testing.T) {
	stub := &stubConverse{err: domain.ErrNetwork}
	m := NewManager(stub, i18n.English)

	reply, err := m.Send(context.Background(), "hello")
	if !errors.Is(err, domain.ErrNetwork) {
		t.Fatalf("got %v, want the remote failure surfaced", err)
	}
	if reply != i18n.T(i18n.English).ChatFallback {
		t.Errorf("reply = %q, want fallback text", reply)
	}

	history := m.History()
	last := history[len(history)-1]
	if last.Role != domain.RoleAssistant || last.Text != reply {
		t.Errorf("assistant slot = %+v, want fallback appended", last)
	}
}

func TestSendFallbackOnBlankReply(t *testing.T) {
	m := NewManager(&stubConverse{reply: "   "}, i18n.English)

	reply, err := m.Send(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if reply != i18n.T(i18n.English).ChatFallback {
		t.Errorf("reply = %q, want fallback for blank completion", reply)
	}
}

func TestConverseSeesHistoryWithoutCurrentMessage(t *testing.T) {
	stub := &stubConverse{reply: "ok"}
	m := NewManager(stub, i18n.English)

	if _, err := m.Send(context.Background(), "question"); err != nil {
		t.Fatalf("Send: %v", err)
	}

	// History passed to the client is the snapshot before the user turn;
	// the user text travels separately.
	if len(stub.gotHistory) != 1 {
		t.Fatalf("converse saw %d history messages, want 1", len(stub.gotHistory))
	}
}

func TestResetReseedsLocalizedGreeting(t *testing.T) {
	m := NewManager(&stubConverse{reply: "ok"}, i18n.English)
	m.Send(context.Background(), "hello")

	m.SetLanguage(i18n.Assamese)
	m.Reset()

	history := m.History()
	if len(history) != 1 {
		t.Fatalf("got %d messages after reset, want 1", len(history))
	}
	if history[0].Text != i18n.T(i18n.Assamese).Greeting {
		t.Errorf("greeting = %q, want Assamese greeting", history[0].Text)
	}
}

func TestRestoreEmptyHistoryReseedsGreeting(t *testing.T) {
	m := NewManager(&stubConverse{}, i18n.English)
	m.Append(domain.ChatMessage{Role: domain.RoleUser, Text: "old"})

	m.Restore(nil)

	history := m.History()
	if len(history) != 1 || history[0].Text != i18n.T(i18n.English).Greeting {
		t.Fatalf("restore(nil) history = %+v, want single greeting", history)
	}
}
