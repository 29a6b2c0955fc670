package guide

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/SD-18/TeaGuard/internal/domain"
)

const longPara = "Blister blight is a leaf disease of tea caused by the fungus Exobasidium vexans, first recorded in Assam in the nineteenth century."

const fixtureHTML = `<!DOCTYPE html>
<html>
<body>
<h1>Blister blight</h1>
<p>Short caption.</p>
<p>` + longPara + ` Paragraph one.</p>
<p>` + longPara + ` Paragraph two.</p>
<p>` + longPara + ` Paragraph three.</p>
<p>` + longPara + ` Paragraph four.</p>
<p>` + longPara + ` Paragraph five.</p>
</body>
</html>`

func TestExtract(t *testing.T) {
	topic := Topic{ID: "blister_blight", Title: "Fallback Title", URL: "https://example.org/blister"}

	article, err := extract([]byte(fixtureHTML), topic)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}

	if article.Title != "Blister blight" {
		t.Errorf("title = %q, want page h1", article.Title)
	}
	if len(article.Paragraphs) != maxParagraphs {
		t.Fatalf("got %d paragraphs, want %d", len(article.Paragraphs), maxParagraphs)
	}
	for _, p := range article.Paragraphs {
		if strings.Contains(p, "Short caption") {
			t.Error("short fragment was not filtered out")
		}
	}
	if !strings.HasSuffix(article.Paragraphs[0], "Paragraph one.") {
		t.Errorf("paragraph order broken: %q", article.Paragraphs[0])
	}
	if article.URL != topic.URL {
		t.Errorf("url = %q", article.URL)
	}
}

func TestExtractFallsBackToTopicTitle(t *testing.T) {
	html := "<html><body><p>" + longPara + "</p></body></html>"

	article, err := extract([]byte(html), Topic{Title: "Curated Title"})
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if article.Title != "Curated Title" {
		t.Errorf("title = %q, want curated fallback", article.Title)
	}
}

func TestExtractNoReadableContent(t *testing.T) {
	_, err := extract([]byte("<html><body><p>tiny</p></body></html>"), Topic{})
	if !errors.Is(err, domain.ErrParse) {
		t.Fatalf("got %v, want ErrParse", err)
	}
}

func TestFetchCachesArticles(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(fixtureHTML))
	}))
	defer srv.Close()

	s := NewService(5*time.Second, time.Hour)
	topic := Topic{ID: "blister_blight", Title: "Blister Blight", URL: srv.URL}

	if _, err := s.Fetch(context.Background(), topic); err != nil {
		t.Fatalf("first fetch: %v", err)
	}
	if _, err := s.Fetch(context.Background(), topic); err != nil {
		t.Fatalf("second fetch: %v", err)
	}
	if got := hits.Load(); got != 1 {
		t.Errorf("origin hit %d times, want 1", got)
	}
}

func TestFetchServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	s := NewService(5*time.Second, time.Hour)
	_, err := s.Fetch(context.Background(), Topic{ID: "x", URL: srv.URL})
	if !errors.Is(err, domain.ErrService) {
		t.Fatalf("got %v, want ErrService", err)
	}
}

func TestTopicByID(t *testing.T) {
	if _, ok := TopicByID("blister_blight"); !ok {
		t.Error("known topic not found")
	}
	if _, ok := TopicByID("nope"); ok {
		t.Error("unknown topic reported as found")
	}
}
