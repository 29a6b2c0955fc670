// Package predict wraps the remote leaf classification endpoint.
package predict

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/SD-18/TeaGuard/internal/domain"
)

// Client issues single classification requests. It is stateless per call:
// single-flight is the session controller's responsibility, not the
// client's. No automatic retries — a failed call is surfaced classified and
// the caller decides whether to re-invoke.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type predictResponse struct {
	Success    bool  `json:"success"`
	LatencyMS  int64 `json:"latency_ms"`
	Prediction struct {
		Disease          string          `json:"disease"`
		Confidence       float64         `json:"confidence"`
		AllProbabilities json.RawMessage `json:"all_probabilities"`
		Severity         *string         `json:"severity"`
		SeverityPercent  *float64        `json:"severity_percent"`
	} `json:"prediction"`
	Images struct {
		PredictedImage string `json:"predicted_image"`
	} `json:"images"`
}

// Classify uploads the image as a multipart body and returns the raw
// prediction payload. Failures are classified: domain.ErrNetwork when no
// response was received (including timeouts), domain.ErrService on a
// non-2xx status or a body reporting success=false, domain.ErrParse when
// the body does not match the schema.
func (c *Client) Classify(ctx context.Context, asset domain.ImageAsset) (domain.RawPrediction, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	filename := asset.FileName
	if filename == "" {
		filename = "leaf.jpg"
	}
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, filename))
	header.Set("Content-Type", asset.MediaType)
	part, err := w.CreatePart(header)
	if err != nil {
		return domain.RawPrediction{}, fmt.Errorf("create multipart field: %w", err)
	}
	if _, err := part.Write(asset.Data); err != nil {
		return domain.RawPrediction{}, fmt.Errorf("write image field: %w", err)
	}
	if err := w.Close(); err != nil {
		return domain.RawPrediction{}, fmt.Errorf("close multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/api/predict", &body)
	if err != nil {
		return domain.RawPrediction{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.RawPrediction{}, fmt.Errorf("%w: %v", domain.ErrNetwork, err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.RawPrediction{}, fmt.Errorf("%w: read body: %v", domain.ErrNetwork, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.RawPrediction{}, fmt.Errorf("%w: status %d", domain.ErrService, resp.StatusCode)
	}

	var pr predictResponse
	if err := json.Unmarshal(respBytes, &pr); err != nil {
		return domain.RawPrediction{}, fmt.Errorf("%w: %v", domain.ErrParse, err)
	}
	if !pr.Success {
		return domain.RawPrediction{}, fmt.Errorf("%w: service reported failure", domain.ErrService)
	}
	if pr.Prediction.Disease == "" {
		return domain.RawPrediction{}, fmt.Errorf("%w: missing prediction.disease", domain.ErrParse)
	}

	probs, err := parseOrderedProbabilities(pr.Prediction.AllProbabilities)
	if err != nil {
		return domain.RawPrediction{}, fmt.Errorf("%w: all_probabilities: %v", domain.ErrParse, err)
	}

	raw := domain.RawPrediction{
		Disease:           pr.Prediction.Disease,
		Confidence:        pr.Prediction.Confidence,
		Probabilities:     probs,
		AnnotatedImageRef: pr.Images.PredictedImage,
		LatencyMS:         pr.LatencyMS,
	}
	if pr.Prediction.Severity != nil && pr.Prediction.SeverityPercent != nil {
		raw.Severity = *pr.Prediction.Severity
		raw.SeverityPercent = *pr.Prediction.SeverityPercent
		raw.HasSeverity = true
	}
	return raw, nil
}

// parseOrderedProbabilities decodes a JSON object into a slice preserving
// the key order of the wire payload. A Go map would randomize iteration
// order, which would break the chart's stable tie-breaking.
func parseOrderedProbabilities(raw json.RawMessage) ([]domain.Probability, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("missing object")
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected object, got %v", tok)
	}

	var probs []domain.Probability
	seen := make(map[string]bool)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("expected string key, got %v", keyTok)
		}
		if seen[key] {
			return nil, fmt.Errorf("duplicate label %q", key)
		}
		seen[key] = true

		var value float64
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("value for %q: %w", key, err)
		}
		probs = append(probs, domain.Probability{Label: key, Value: value})
	}
	if len(probs) == 0 {
		return nil, fmt.Errorf("empty object")
	}
	return probs, nil
}
