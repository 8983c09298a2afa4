package openai

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

// Config for the OpenAI-compatible client.
type Config struct {
	APIKey  string
	BaseURL string // default https://api.openai.com/v1
	Model   string // e.g. "gpt-4o-mini"
	Timeout time.Duration
}

// Client implements llm.Generator over chat/completions. Any
// OpenAI-compatible endpoint works through BaseURL.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
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

func (c *Client) Generate(ctx context.Context, req llm.GenerateRequest) (string, error) {
	body := map[string]any{
		"model":       c.cfg.Model,
		"temperature": req.Params.Temperature,
		"top_p":       req.Params.TopP,
		"messages": []map[string]any{
			{"role": "system", "content": req.System},
			{"role": "user", "content": req.Prompt},
		},
	}
	if req.Params.MaxOutputTokens > 0 {
		body["max_tokens"] = req.Params.MaxOutputTokens
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	headers := map[string]string{"Authorization": "Bearer " + c.cfg.APIKey}

	raw, _, err := llm.SendJSON(ctx, c.httpClient, endpoint, body, headers, c.logger)
	if err != nil {
		return "", fmt.Errorf("openai generate: %w", err)
	}

	var cc struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
			FinishReason string `json:"finish_reason"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &cc); err != nil {
		return "", fmt.Errorf("decode openai response: %w", err)
	}
	if len(cc.Choices) == 0 {
		return "", llm.ErrEmptyReply
	}
	choice := cc.Choices[0]
	if choice.FinishReason == "content_filter" {
		c.logger.Warn("llm.openai.blocked", "finish_reason", choice.FinishReason)
		return "", llm.ErrBlocked
	}
	if strings.TrimSpace(choice.Message.Content) == "" {
		return "", llm.ErrEmptyReply
	}
	return choice.Message.Content, nil
}
