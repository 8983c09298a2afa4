package llm

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/VinayakPunj/Invoice-Data-Extractor/internal/entity"
)

// Adapter implements FieldExtractor on top of any Generator. Provider
// failures (unreachable backend, safety block, empty reply) yield the
// default-filled candidate together with the error, so the flow can continue
// to human review while callers that want to fail hard still can.
type Adapter struct {
	gen    Generator
	params GenerationParams
	logger *slog.Logger
}

func NewAdapter(gen Generator, params GenerationParams, logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Adapter{gen: gen, params: params, logger: logger}
}

func (a *Adapter) ExtractFields(ctx context.Context, ocrText string) (entity.CandidateRecord, error) {
	rid := uuid.New().String()
	start := time.Now()

	a.logger.Info("llm.extract.start", "req_id", rid, "text_len", len(ocrText))

	reply, err := a.gen.Generate(ctx, GenerateRequest{
		System: SystemInstruction,
		Prompt: BuildPrompt(ocrText),
		Params: a.params,
	})
	if err != nil {
		a.logger.Error("llm.extract.generate_failed", "req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds())
		return entity.DefaultCandidate(), err
	}
	if strings.TrimSpace(reply) == "" {
		a.logger.Warn("llm.extract.empty_reply", "req_id", rid,
			"elapsed_ms", time.Since(start).Milliseconds())
		return entity.DefaultCandidate(), ErrEmptyReply
	}

	out := ParseReply(reply)
	a.logger.Info("llm.extract.ok",
		"req_id", rid,
		"company", out.CompanyName,
		"date", out.InvoiceDate,
		"amount", out.TotalAmount,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return out, nil
}
