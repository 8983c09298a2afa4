package llm

import (
	"context"
	"errors"

	"github.com/VinayakPunj/Invoice-Data-Extractor/internal/entity"
)

// GenerationParams are the sampling knobs forwarded to the provider.
type GenerationParams struct {
	Temperature     float32
	TopP            float32
	TopK            int
	MaxOutputTokens int
}

// GenerateRequest is one text-generation call: a system instruction, a user
// prompt, and sampling parameters.
type GenerateRequest struct {
	System string
	Prompt string
	Params GenerationParams
}

// Generator is a text-generation backend. Output is non-deterministic across
// calls even for identical input; that is part of the contract, not a defect —
// downstream validation catches malformed results.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

// FieldExtractor turns raw OCR text into a candidate record. The pipeline
// depends on this interface, not on any provider.
type FieldExtractor interface {
	ExtractFields(ctx context.Context, ocrText string) (entity.CandidateRecord, error)
}

// Provider failure modes the adapter folds into a default-filled candidate.
var (
	// ErrBlocked means the provider refused generation on content-safety
	// grounds.
	ErrBlocked = errors.New("generation blocked by safety filter")
	// ErrEmptyReply means the provider returned no usable text.
	ErrEmptyReply = errors.New("no usable text in reply")
)
