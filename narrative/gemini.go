// Package narrative continues the story for free-form player input. The
// engine treats whatever a narrator returns as opaque scene text.
package narrative

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-1.5-flash-latest"

const defaultEndpoint = "https://generativelanguage.googleapis.com/v1beta/models"

var (
	// ErrNoAPIKey is returned when the Gemini narrator has no credentials.
	ErrNoAPIKey = errors.New("GEMINI_API_KEY is not set")
	// ErrBlocked is returned when the API refuses the prompt or the reply.
	ErrBlocked = errors.New("gemini blocked the request")
	// ErrEmptyResponse is returned when the API answers without text.
	ErrEmptyResponse = errors.New("gemini response missing expected content")
)

// Gemini narrates through the Gemini generateContent REST endpoint.
type Gemini struct {
	apiKey      string
	modelName   string
	apiEndpoint string
	httpClient  *http.Client
}

// Option configures a Gemini narrator.
type Option func(*Gemini)

// WithEndpoint overrides the API base URL.
func WithEndpoint(endpoint string) Option {
	return func(g *Gemini) { g.apiEndpoint = strings.TrimRight(endpoint, "/") }
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(g *Gemini) { g.httpClient = c }
}

// WithTimeout sets the per-request timeout of the default client.
func WithTimeout(d time.Duration) Option {
	return func(g *Gemini) { g.httpClient = &http.Client{Timeout: d} }
}

// NewGemini creates a Gemini narrator.
func NewGemini(apiKey, modelName string, opts ...Option) *Gemini {
	if modelName == "" {
		modelName = DefaultModel
	}
	g := &Gemini{
		apiKey:      apiKey,
		modelName:   modelName,
		apiEndpoint: defaultEndpoint,
		httpClient:  &http.Client{Timeout: 90 * time.Second},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
	Role  string       `json:"role,omitempty"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiCandidate struct {
	Content      geminiContent `json:"content"`
	FinishReason string        `json:"finishReason,omitempty"`
}

type geminiPromptFeedback struct {
	BlockReason string `json:"blockReason,omitempty"`
}

type geminiResponse struct {
	Candidates     []geminiCandidate     `json:"candidates"`
	PromptFeedback *geminiPromptFeedback `json:"promptFeedback,omitempty"`
}

type geminiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Prompt builds the text sent to the model.
func Prompt(scene, input string) string {
	return fmt.Sprintf("%s\nPlayer chooses: %s. What happens next?", scene, input)
}

// Narrate asks the model what happens next.
func (g *Gemini) Narrate(ctx context.Context, scene, input string) (string, error) {
	if g.apiKey == "" {
		return "", ErrNoAPIKey
	}

	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{
			Role:  "user",
			Parts: []geminiPart{{Text: Prompt(scene, input)}},
		}},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request body: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s:generateContent", g.apiEndpoint, url.PathEscape(g.modelName))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr geminiError
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error.Message != "" {
			return "", fmt.Errorf("gemini API request failed: status %d, message: %s", resp.StatusCode, apiErr.Error.Message)
		}
		return "", fmt.Errorf("gemini API request failed: status %s", resp.Status)
	}

	var apiResp geminiResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return "", fmt.Errorf("unmarshal gemini response: %w", err)
	}
	if apiResp.PromptFeedback != nil && apiResp.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("%w: %s", ErrBlocked, apiResp.PromptFeedback.BlockReason)
	}
	if len(apiResp.Candidates) == 0 {
		return "", ErrEmptyResponse
	}
	cand := apiResp.Candidates[0]
	if cand.FinishReason == "SAFETY" {
		return "", fmt.Errorf("%w: safety stop", ErrBlocked)
	}

	var sb strings.Builder
	for _, p := range cand.Content.Parts {
		sb.WriteString(p.Text)
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
