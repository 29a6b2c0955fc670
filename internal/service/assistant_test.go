package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/SD-18/TeaGuard/internal/domain"
	"github.com/SD-18/TeaGuard/internal/interpret"
	"github.com/shopspring/decimal"
)

type stubChatStore struct {
	mu        sync.Mutex
	persisted []domain.ChatMessage
	appended  []domain.ChatMessage
	loadErr   error
	loads     int

	// When set, Messages signals loadStarted on entry and then blocks
	// until loadRelease is closed.
	loadStarted chan struct{}
	loadRelease chan struct{}
}

func (st *stubChatStore) ActiveSession(ctx context.Context, growerID int64) (int64, error) {
	return 1, nil
}

func (st *stubChatStore) StartNewSession(ctx context.Context, growerID int64) (int64, error) {
	return 2, nil
}

func (st *stubChatStore) AppendMessage(ctx context.Context, sessionID int64, msg domain.ChatMessage) error {
	st.mu.Lock()
	st.appended = append(st.appended, msg)
	st.mu.Unlock()
	return nil
}

func (st *stubChatStore) Messages(ctx context.Context, sessionID int64) ([]domain.ChatMessage, error) {
	if st.loadStarted != nil {
		st.loadStarted <- struct{}{}
	}
	if st.loadRelease != nil {
		<-st.loadRelease
	}
	st.mu.Lock()
	st.loads++
	err := st.loadErr
	persisted := append([]domain.ChatMessage(nil), st.persisted...)
	st.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return persisted, nil
}

type stubUsageStore struct {
	mu    sync.Mutex
	calls int
}

func (u *stubUsageStore) Record(ctx context.Context, growerID int64, kind string, promptTokens, completionTokens int, cost decimal.Decimal) error {
	u.mu.Lock()
	u.calls++
	u.mu.Unlock()
	return nil
}

type stubCompleter struct {
	mu        sync.Mutex
	histories [][]domain.ChatMessage
	reply     string
	err       error
}

func (c *stubCompleter) Converse(ctx context.Context, history []domain.ChatMessage, userText, lang string) (string, interpret.Usage, error) {
	c.mu.Lock()
	c.histories = append(c.histories, append([]domain.ChatMessage(nil), history...))
	c.mu.Unlock()
	if c.err != nil {
		return "", interpret.Usage{}, c.err
	}
	return c.reply, interpret.Usage{PromptTokens: 12, CompletionTokens: 8, TotalCost: 0.00004}, nil
}

func containsText(history []domain.ChatMessage, text string) bool {
	for _, msg := range history {
		if msg.Text == text {
			return true
		}
	}
	return false
}

// Two first-contact callers race: one is mid-rehydration when the other
// appends to the conversation. Nothing may be lost — not the persisted
// history, not the racing append.
func TestFirstContactRehydrationSurvivesConcurrentAppend(t *testing.T) {
	store := &stubChatStore{
		persisted: []domain.ChatMessage{
			{Role: domain.RoleUser, Text: "my leaves have spots"},
			{Role: domain.RoleAssistant, Text: "that can be blister blight"},
		},
		loadStarted: make(chan struct{}, 2),
		loadRelease: make(chan struct{}),
	}
	completer := &stubCompleter{reply: "apply a copper fungicide"}
	a := NewAssistant(completer, store, &stubUsageStore{})
	grower := &domain.Grower{ID: 7, Language: "en"}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		if _, err := a.Send(context.Background(), grower, "what should I spray?"); err != nil {
			t.Errorf("Send: %v", err)
		}
	}()
	<-store.loadStarted // first caller is inside the history load

	go func() {
		defer wg.Done()
		a.RecordInterpretation(context.Background(), grower, "Diagnosis: blister blight, severe.")
	}()
	<-store.loadStarted // second caller missed the map and loads too

	close(store.loadRelease)
	wg.Wait()

	m, _, err := a.manager(context.Background(), grower)
	if err != nil {
		t.Fatalf("manager: %v", err)
	}
	history := m.History()
	for _, want := range []string{
		"my leaves have spots",
		"that can be blister blight",
		"what should I spray?",
		"apply a copper fungicide",
		"Diagnosis: blister blight, severe.",
	} {
		if !containsText(history, want) {
			t.Errorf("history lost %q; have %+v", want, history)
		}
	}
}

// A failed history load must not leave a half-initialized manager behind;
// once the store recovers, the persisted conversation comes back.
func TestFirstContactLoadFailureDoesNotRegisterManager(t *testing.T) {
	store := &stubChatStore{
		persisted: []domain.ChatMessage{
			{Role: domain.RoleAssistant, Text: "prune the affected branches"},
		},
		loadErr: errors.New("connection refused"),
	}
	a := NewAssistant(&stubCompleter{reply: "ok"}, store, &stubUsageStore{})
	grower := &domain.Grower{ID: 9, Language: "en"}

	if _, err := a.Send(context.Background(), grower, "hello"); err == nil {
		t.Fatal("Send succeeded while the history load was failing")
	}

	store.mu.Lock()
	store.loadErr = nil
	store.mu.Unlock()

	if _, err := a.Send(context.Background(), grower, "hello again"); err != nil {
		t.Fatalf("Send after store recovery: %v", err)
	}

	m, _, err := a.manager(context.Background(), grower)
	if err != nil {
		t.Fatalf("manager: %v", err)
	}
	if !containsText(m.History(), "prune the affected branches") {
		t.Errorf("persisted history not restored after retry; have %+v", m.History())
	}

	store.mu.Lock()
	loads := store.loads
	store.mu.Unlock()
	if loads != 2 {
		t.Errorf("loads = %d, want 2 (failed load, then retry)", loads)
	}
}

// The completion adapter records token usage for every successful reply.
func TestSendRecordsUsage(t *testing.T) {
	store := &stubChatStore{}
	usage := &stubUsageStore{}
	a := NewAssistant(&stubCompleter{reply: "water in the morning"}, store, usage)
	grower := &domain.Grower{ID: 3, Language: "en"}

	reply, err := a.Send(context.Background(), grower, "when should I water?")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if reply != "water in the morning" {
		t.Fatalf("reply = %q", reply)
	}
	if usage.calls != 1 {
		t.Errorf("usage records = %d, want 1", usage.calls)
	}

	store.mu.Lock()
	appended := len(store.appended)
	store.mu.Unlock()
	if appended != 2 {
		t.Errorf("persisted messages = %d, want user + assistant", appended)
	}
}
