// Package guide fetches curated field-guide articles and extracts readable
// text for the /guide command.
package guide

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/SD-18/TeaGuard/internal/domain"
)

// Topic is one curated guide entry offered to the user.
type Topic struct {
	ID    string
	Title string
	URL   string
}

// Topics is the curated knowledge-base list. Static, read-only.
var Topics = []Topic{
	{ID: "blister_blight", Title: "Recognizing Blister Blight", URL: "https://en.wikipedia.org/wiki/Blister_blight"},
	{ID: "red_spider_mite", Title: "Red Spider Mite Detection", URL: "https://en.wikipedia.org/wiki/Oligonychus_coffeae"},
	{ID: "tea_mosquito", Title: "Tea Mosquito Bug", URL: "https://en.wikipedia.org/wiki/Helopeltis_theivora"},
	{ID: "soil_ph", Title: "Soil pH Management", URL: "https://en.wikipedia.org/wiki/Soil_pH"},
}

// maxParagraphs caps how much of an article is relayed to the chat.
const maxParagraphs = 4

// Article is the extracted readable content of one guide page.
type Article struct {
	Title      string
	Paragraphs []string
	URL        string
}

type Service struct {
	httpClient *http.Client
	cache      *articleCache
}

func NewService(timeout, cacheTTL time.Duration) *Service {
	return &Service{
		httpClient: &http.Client{Timeout: timeout},
		cache:      newArticleCache(cacheTTL),
	}
}

// TopicByID finds a curated topic.
func TopicByID(id string) (Topic, bool) {
	for _, t := range Topics {
		if t.ID == id {
			return t, true
		}
	}
	return Topic{}, false
}

// Fetch downloads a topic's page and extracts title plus the leading
// paragraphs. Results are cached; the classified failure taxonomy matches
// the other remote clients.
func (s *Service) Fetch(ctx context.Context, topic Topic) (*Article, error) {
	if cached := s.cache.Get(topic.ID); cached != nil {
		return cached, nil
	}

	req, err := http.NewRequestWithContext(ctx, "GET", topic.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "TeaGuardBot/1.0")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", domain.ErrService, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", domain.ErrNetwork, err)
	}

	article, err := extract(body, topic)
	if err != nil {
		return nil, err
	}

	s.cache.Set(topic.ID, article)
	return article, nil
}

func extract(html []byte, topic Topic) (*Article, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(html)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrParse, err)
	}

	title := strings.TrimSpace(doc.Find("h1").First().Text())
	if title == "" {
		title = topic.Title
	}

	var paragraphs []string
	doc.Find("p").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := strings.TrimSpace(sel.Text())
		if len(text) < 80 {
			// Skip captions, notices and other short fragments.
			return true
		}
		paragraphs = append(paragraphs, text)
		return len(paragraphs) < maxParagraphs
	})

	if len(paragraphs) == 0 {
		return nil, fmt.Errorf("%w: no readable paragraphs", domain.ErrParse)
	}

	return &Article{Title: title, Paragraphs: paragraphs, URL: topic.URL}, nil
}
