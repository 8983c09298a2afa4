package ollama

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

// Config for a local Ollama instance.
type Config struct {
	BaseURL string // default http://localhost:11434
	Model   string
	Timeout time.Duration
}

// Client implements llm.Generator against Ollama's generate endpoint.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:11434"
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
		"model":  c.cfg.Model,
		"prompt": req.Prompt,
		"system": req.System,
		"stream": false,
		"options": map[string]any{
			"temperature": req.Params.Temperature,
			"top_p":       req.Params.TopP,
			"top_k":       req.Params.TopK,
			"num_predict": req.Params.MaxOutputTokens,
		},
	}

	url := strings.TrimRight(c.cfg.BaseURL, "/") + "/api/generate"
	raw, _, err := llm.SendJSON(ctx, c.httpClient, url, body, nil, c.logger)
	if err != nil {
		return "", fmt.Errorf("ollama generate: %w", err)
	}

	var resp struct {
		Response string `json:"response"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", fmt.Errorf("decode ollama response: %w", err)
	}
	if strings.TrimSpace(resp.Response) == "" {
		return "", llm.ErrEmptyReply
	}
	return resp.Response, nil
}

// IsAvailable reports whether the Ollama service answers on its tags
// endpoint.
func (c *Client) IsAvailable(ctx context.Context) bool {
	url := strings.TrimRight(c.cfg.BaseURL, "/") + "/api/tags"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer func() { _ = resp.Body.Close() }()
	return resp.StatusCode == http.StatusOK
}
