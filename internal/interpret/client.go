// Package interpret wraps the remote text-generation services: the one-shot
// interpretation endpoint and the conversational completion API. Both call
// shapes share one contract: build a bounded prompt from structured inputs,
// issue exactly one request, return text or a classified failure.
package interpret

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/SD-18/TeaGuard/internal/domain"
	"github.com/SD-18/TeaGuard/internal/i18n"
)

// historyWindow bounds how much conversation context is carried into one
// completion request.
const historyWindow = 20

type Client struct {
	interpretBase string
	chatBase      string
	apiKey        string
	model         string
	httpClient    *http.Client
}

// NewClient builds the interpretation/chat client. interpretBase is the
// backend that hosts POST /api/ai/interpret; chatBase is an
// OpenRouter-compatible completions API.
func NewClient(interpretBase, chatBase, apiKey, model string, timeout time.Duration) *Client {
	return &Client{
		interpretBase: strings.TrimRight(interpretBase, "/"),
		chatBase:      strings.TrimRight(chatBase, "/"),
		apiKey:        apiKey,
		model:         model,
		httpClient:    &http.Client{Timeout: timeout},
	}
}

// Usage reports the token accounting of one completion call.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalCost        float64
}

type interpretRequest struct {
	Prediction predictionWire `json:"prediction"`
	Language   string         `json:"language"`
}

type predictionWire struct {
	Success    bool  `json:"success"`
	LatencyMS  int64 `json:"latency_ms"`
	Prediction struct {
		Disease          string             `json:"disease"`
		Confidence       float64            `json:"confidence"`
		AllProbabilities map[string]float64 `json:"all_probabilities"`
	} `json:"prediction"`
}

// Interpret asks the backend for a single explanatory text for a completed
// prediction. Failure classes match the prediction client's.
func (c *Client) Interpret(ctx context.Context, result domain.PredictionResult, lang string) (string, error) {
	var wire interpretRequest
	wire.Language = lang
	wire.Prediction.Success = true
	wire.Prediction.LatencyMS = result.LatencyMS
	wire.Prediction.Prediction.Disease = result.DiseaseLabel
	wire.Prediction.Prediction.Confidence = result.ConfidencePercent
	wire.Prediction.Prediction.AllProbabilities = make(map[string]float64, len(result.Probabilities))
	for _, p := range result.Probabilities {
		wire.Prediction.Prediction.AllProbabilities[p.Label] = p.Value
	}

	payload, err := json.Marshal(wire)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.interpretBase+"/api/ai/interpret", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read body: %v", domain.ErrNetwork, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: status %d", domain.ErrService, resp.StatusCode)
	}

	var out struct {
		Interpretation string `json:"interpretation"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrParse, err)
	}
	if strings.TrimSpace(out.Interpretation) == "" {
		return "", fmt.Errorf("%w: empty interpretation", domain.ErrParse)
	}
	return out.Interpretation, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int     `json:"prompt_tokens"`
		CompletionTokens int     `json:"completion_tokens"`
		TotalCost        float64 `json:"total_cost"`
	} `json:"usage"`
}

// Converse produces the next assistant message given the conversation so
// far. The prompt is bounded: only the last messages inside the history
// window are carried, prefixed by the expert persona system prompt.
func (c *Client) Converse(ctx context.Context, history []domain.ChatMessage, userText, lang string) (string, Usage, error) {
	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}

	messages := make([]chatMessage, 0, len(history)+2)
	messages = append(messages, chatMessage{Role: "system", Content: systemPrompt(lang)})
	for _, m := range history {
		messages = append(messages, chatMessage{Role: string(m.Role), Content: m.Text})
	}
	messages = append(messages, chatMessage{Role: string(domain.RoleUser), Content: userText})

	payload, err := json.Marshal(chatRequest{Model: c.model, Messages: messages})
	if err != nil {
		return "", Usage{}, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.chatBase+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", Usage{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", Usage{}, fmt.Errorf("%w: %v", domain.ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", Usage{}, fmt.Errorf("%w: read body: %v", domain.ErrNetwork, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", Usage{}, fmt.Errorf("%w: status %d", domain.ErrService, resp.StatusCode)
	}

	var cr chatResponse
	if err := json.Unmarshal(body, &cr); err != nil {
		return "", Usage{}, fmt.Errorf("%w: %v", domain.ErrParse, err)
	}
	if len(cr.Choices) == 0 {
		return "", Usage{}, fmt.Errorf("%w: no choices in response", domain.ErrParse)
	}

	usage := Usage{
		PromptTokens:     cr.Usage.PromptTokens,
		CompletionTokens: cr.Usage.CompletionTokens,
		TotalCost:        cr.Usage.TotalCost,
	}
	return cr.Choices[0].Message.Content, usage, nil
}

func systemPrompt(lang string) string {
	directive := "Respond in English."
	if lang == i18n.Assamese {
		directive = "Respond ONLY in the Assamese language."
	}
	return fmt.Sprintf(
		"You are an expert agricultural scientist specializing in tea cultivation in Assam, India. "+
			"Answer the grower's questions about tea leaf health, pests and treatment in simple, supportive terms. "+
			"Keep answers helpful, concise, and related to tea farming. %s", directive)
}
