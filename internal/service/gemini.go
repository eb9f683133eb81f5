package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/elevatepath/elevatepath/internal/config"
	"github.com/elevatepath/elevatepath/internal/domain"
)

// Completer turns a JSON-requesting prompt into a parsed JSON value. It is
// stateless and safe for concurrent use. Implementations have no availability
// guarantee, so every caller must carry its own fallback content.
type Completer interface {
	Complete(ctx context.Context, prompt string) (json.RawMessage, error)
}

// TextGenerator is the raw-text counterpart of Completer, for the few prompts
// that want prose instead of JSON.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

type GeminiService struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

func NewGeminiService(apiKey, model string) *GeminiService {
	return &GeminiService{
		apiKey:     apiKey,
		model:      model,
		baseURL:    "https://generativelanguage.googleapis.com/v1beta",
		httpClient: &http.Client{Timeout: config.RequestTimeout},
	}
}

type generateRequest struct {
	Contents []generateContent `json:"contents"`
}

type generateContent struct {
	Parts []generatePart `json:"parts"`
}

type generatePart struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []generatePart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Models wrap JSON answers in markdown fences more often than not.
var codeFenceRe = regexp.MustCompile("(?i)```(?:json)?\n?")

// GenerateText sends the prompt and returns the raw concatenated model output.
func (s *GeminiService) GenerateText(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(generateRequest{
		Contents: []generateContent{{Parts: []generatePart{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", s.baseURL, s.model)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("generate request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var genResp generateResponse
	if err := json.Unmarshal(body, &genResp); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}
	if genResp.Error != nil {
		return "", fmt.Errorf("gemini error %d: %s", genResp.Error.Code, genResp.Error.Message)
	}
	if len(genResp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	var sb strings.Builder
	for _, part := range genResp.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	return sb.String(), nil
}

// Complete sends the prompt, strips any markdown code fences from the output
// and returns the remaining text as validated JSON. All failure modes surface
// as *domain.CompletionError.
func (s *GeminiService) Complete(ctx context.Context, prompt string) (json.RawMessage, error) {
	text, err := s.GenerateText(ctx, prompt)
	if err != nil {
		return nil, &domain.CompletionError{RawText: text, Err: err}
	}
	return CleanJSON(text)
}

// CleanJSON strips ``` and ```json fence markers wherever they occur, trims
// whitespace and validates the remainder as JSON.
func CleanJSON(text string) (json.RawMessage, error) {
	cleaned := strings.TrimSpace(codeFenceRe.ReplaceAllString(text, ""))
	if cleaned == "" {
		return nil, &domain.CompletionError{RawText: text, Err: fmt.Errorf("empty response")}
	}
	if !json.Valid([]byte(cleaned)) {
		return nil, &domain.CompletionError{RawText: text, Err: fmt.Errorf("response is not valid JSON")}
	}
	return json.RawMessage(cleaned), nil
}
