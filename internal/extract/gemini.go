package extract

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultGeminiEndpoint = "https://generativelanguage.googleapis.com/v1beta"
	DefaultGeminiModel    = "gemini-3-flash-preview"

	schedulePrompt = "Extract the basketball game schedule from this image. Provide a list of " +
		"games including date, opponent, and time if available. Return only valid JSON."

	maxResponseBytes = 1_048_576
)

// Gemini extracts schedules with the Generative Language generateContent endpoint, asking for a
// JSON response that matches Result.
type Gemini struct {
	endpoint string
	model    string
	apiKey   string
	client   *http.Client
}

func NewGemini(endpoint, model, apiKey string, timeout time.Duration) *Gemini {
	if endpoint == "" {
		endpoint = DefaultGeminiEndpoint
	}
	if model == "" {
		model = DefaultGeminiModel
	}

	return &Gemini{
		endpoint: strings.TrimSuffix(endpoint, "/"),
		model:    model,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: timeout},
	}
}

type geminiPart struct {
	InlineData *geminiInlineData `json:"inlineData,omitempty"`
	Text       string            `json:"text,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig struct {
		ResponseMimeType string         `json:"responseMimeType"`
		ResponseSchema   map[string]any `json:"responseSchema"`
	} `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

var scheduleSchema = map[string]any{
	"type": "OBJECT",
	"properties": map[string]any{
		"games": map[string]any{
			"type": "ARRAY",
			"items": map[string]any{
				"type": "OBJECT",
				"properties": map[string]any{
					"date":     map[string]any{"type": "STRING"},
					"opponent": map[string]any{"type": "STRING"},
					"time":     map[string]any{"type": "STRING"},
				},
				"required": []string{"date", "opponent"},
			},
		},
	},
}

func (g *Gemini) Extract(ctx context.Context, document []byte, mediaType string) ([]Entry, error) {
	if len(document) == 0 {
		return nil, ErrEmptyDocument
	}

	var reqBody geminiRequest
	reqBody.Contents = []geminiContent{{
		Parts: []geminiPart{
			{InlineData: &geminiInlineData{
				MimeType: mediaType,
				Data:     base64.StdEncoding.EncodeToString(document),
			}},
			{Text: schedulePrompt},
		},
	}}
	reqBody.GenerationConfig.ResponseMimeType = "application/json"
	reqBody.GenerationConfig.ResponseSchema = scheduleSchema

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling extraction request: %w", err)
	}

	u := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.endpoint, url.PathEscape(g.model),
		url.QueryEscape(g.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating extraction request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling extraction service: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("reading extraction response: %w", err)
	}

	var parsed geminiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if resp.StatusCode != http.StatusOK {
		if parsed.Error != nil {
			return nil, fmt.Errorf("extraction service returned %d: %s", resp.StatusCode,
				parsed.Error.Message)
		}
		return nil, fmt.Errorf("extraction service returned %d", resp.StatusCode)
	}

	return decodeResult(parsed)
}

func decodeResult(resp geminiResponse) ([]Entry, error) {
	if len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("%w: no candidates", ErrMalformedResponse)
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}

	var result Result
	if err := json.Unmarshal([]byte(text.String()), &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	entries := make([]Entry, 0, len(result.Games))
	for _, e := range result.Games {
		entries = append(entries, Entry{
			Date:     strings.TrimSpace(e.Date),
			Opponent: strings.TrimSpace(e.Opponent),
			Time:     strings.TrimSpace(e.Time),
		})
	}

	return entries, nil
}
