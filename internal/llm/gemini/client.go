package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/VinayakPunj/Invoice-Data-Extractor/internal/llm"
)

// Config for the Google Generative Language client.
type Config struct {
	APIKey  string
	BaseURL string // default https://generativelanguage.googleapis.com
	Model   string // e.g. "gemini-2.0-flash-exp"
	Timeout time.Duration
}

// Client implements llm.Generator against the generateContent REST endpoint.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://generativelanguage.googleapis.com"
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-2.0-flash-exp"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
}

func (c *Client) Generate(ctx context.Context, req llm.GenerateRequest) (string, error) {
	body := map[string]any{
		"system_instruction": map[string]any{
			"parts": []map[string]any{{"text": req.System}},
		},
		"contents": []map[string]any{
			{"role": "user", "parts": []map[string]any{{"text": req.Prompt}}},
		},
		"generationConfig": map[string]any{
			"temperature":     req.Params.Temperature,
			"topP":            req.Params.TopP,
			"topK":            req.Params.TopK,
			"maxOutputTokens": req.Params.MaxOutputTokens,
		},
		"safetySettings": []map[string]any{
			{"category": "HARM_CATEGORY_HATE_SPEECH", "threshold": "BLOCK_LOW_AND_ABOVE"},
			{"category": "HARM_CATEGORY_HARASSMENT", "threshold": "BLOCK_LOW_AND_ABOVE"},
		},
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent",
		strings.TrimRight(c.cfg.BaseURL, "/"), c.cfg.Model)
	headers := map[string]string{"x-goog-api-key": c.cfg.APIKey}

	raw, _, err := llm.SendJSON(ctx, c.httpClient, url, body, headers, c.logger)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}

	var resp generateResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", fmt.Errorf("decode gemini response: %w", err)
	}

	if resp.PromptFeedback.BlockReason != "" {
		c.logger.Warn("llm.gemini.blocked", "reason", resp.PromptFeedback.BlockReason)
		return "", llm.ErrBlocked
	}
	if len(resp.Candidates) == 0 {
		return "", llm.ErrEmptyReply
	}
	cand := resp.Candidates[0]
	if cand.FinishReason == "SAFETY" {
		c.logger.Warn("llm.gemini.blocked", "reason", cand.FinishReason)
		return "", llm.ErrBlocked
	}

	var b strings.Builder
	for _, p := range cand.Content.Parts {
		b.WriteString(p.Text)
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", llm.ErrEmptyReply
	}
	return b.String(), nil
}
