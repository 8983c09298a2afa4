// Package providers wires configuration to a concrete LLM backend.
package providers

import (
	"fmt"

	"github.com/VinayakPunj/Invoice-Data-Extractor/internal/common"
	"github.com/VinayakPunj/Invoice-Data-Extractor/internal/llm"
	"github.com/VinayakPunj/Invoice-Data-Extractor/internal/llm/gemini"
	"github.com/VinayakPunj/Invoice-Data-Extractor/internal/llm/ollama"
	"github.com/VinayakPunj/Invoice-Data-Extractor/internal/llm/openai"
	"log/slog"
)

// New returns the Generator selected by cfg.Provider.
func New(cfg common.LLMConfig, logger *slog.Logger) (llm.Generator, error) {
	switch cfg.Provider {
	case "gemini":
		return gemini.NewClient(gemini.Config{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
			Timeout: cfg.Timeout,
		}, logger), nil
	case "openai":
		return openai.NewClient(openai.Config{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
			Timeout: cfg.Timeout,
		}, logger), nil
	case "ollama":
		return ollama.NewClient(ollama.Config{
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
			Timeout: cfg.Timeout,
		}, logger), nil
	default:
		return nil, fmt.Errorf("%w: unknown LLM provider %q", common.ErrInvalidInput, cfg.Provider)
	}
}

// Params extracts the generation parameters from config.
func Params(cfg common.LLMConfig) llm.GenerationParams {
	return llm.GenerationParams{
		Temperature:     cfg.Temperature,
		TopP:            cfg.TopP,
		TopK:            cfg.TopK,
		MaxOutputTokens: cfg.MaxOutputTokens,
	}
}
