// Package pipeline chains OCR, field extraction, normalization and storage
// into the end-to-end invoice flow.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/VinayakPunj/Invoice-Data-Extractor/internal/common"
	"github.com/VinayakPunj/Invoice-Data-Extractor/internal/entity"
	"github.com/VinayakPunj/Invoice-Data-Extractor/internal/llm"
	"github.com/VinayakPunj/Invoice-Data-Extractor/internal/normalize"
	"github.com/VinayakPunj/Invoice-Data-Extractor/internal/ocr"
	"github.com/VinayakPunj/Invoice-Data-Extractor/internal/repository"
)

// OCRExtractor is the slice of the OCR engine the pipeline needs.
type OCRExtractor interface {
	Extract(ctx context.Context, path string) (ocr.ExtractionResult, error)
	ExtractBytes(ctx context.Context, data []byte, filename string) (ocr.ExtractionResult, error)
}

// Extraction is everything the pipeline learned about one document. The
// candidate always carries a value for every field, Unknown where the model
// had nothing, so callers can show the draft to a user even when validation
// failed.
type Extraction struct {
	JobID      string
	OCRText    string
	Pages      int
	Truncated  bool
	Candidate  entity.CandidateRecord
	Normalized normalize.Normalized
	Validation normalize.Result
	LLMErr     error
	Duration   time.Duration
}

type Processor struct {
	ocr    OCRExtractor
	fields llm.FieldExtractor
	repo   repository.InvoiceRepository
	logger *slog.Logger
}

func NewProcessor(ocrx OCRExtractor, fields llm.FieldExtractor, repo repository.InvoiceRepository, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{ocr: ocrx, fields: fields, repo: repo, logger: logger}
}

// ProcessFile runs a document on disk through OCR and field extraction.
// OCR failure aborts; an LLM failure does not, the extraction continues with
// a default-filled candidate and the error recorded in LLMErr.
func (p *Processor) ProcessFile(ctx context.Context, path string) (Extraction, error) {
	jobID := uuid.NewString()
	start := time.Now()
	p.logger.Info("pipeline.start", "job_id", jobID, "path", path)

	res, err := p.ocr.Extract(ctx, path)
	if err != nil {
		p.logger.Error("pipeline.ocr_failed", "job_id", jobID, "path", path, "error", err)
		return Extraction{JobID: jobID}, err
	}
	return p.finish(ctx, jobID, start, res)
}

// ProcessBytes is ProcessFile for in-memory uploads.
func (p *Processor) ProcessBytes(ctx context.Context, data []byte, filename string) (Extraction, error) {
	jobID := uuid.NewString()
	start := time.Now()
	p.logger.Info("pipeline.start", "job_id", jobID, "filename", filename, "bytes", len(data))

	res, err := p.ocr.ExtractBytes(ctx, data, filename)
	if err != nil {
		p.logger.Error("pipeline.ocr_failed", "job_id", jobID, "filename", filename, "error", err)
		return Extraction{JobID: jobID}, err
	}
	return p.finish(ctx, jobID, start, res)
}

func (p *Processor) finish(ctx context.Context, jobID string, start time.Time, res ocr.ExtractionResult) (Extraction, error) {
	ext := Extraction{
		JobID:     jobID,
		OCRText:   res.Text,
		Pages:     res.Pages,
		Truncated: res.Truncated,
	}

	candidate, llmErr := p.fields.ExtractFields(ctx, res.Text)
	if llmErr != nil {
		p.logger.Warn("pipeline.llm_failed", "job_id", jobID, "error", llmErr)
	}
	ext.Candidate = candidate
	ext.LLMErr = llmErr

	ext.Normalized, ext.Validation = normalize.NormalizeCandidate(candidate)
	ext.Duration = time.Since(start)

	p.logger.Info("pipeline.done",
		"job_id", jobID,
		"pages", ext.Pages,
		"valid", ext.Validation.Valid,
		"duration_ms", ext.Duration.Milliseconds())
	return ext, nil
}

// Save persists an extraction. The candidate is re-validated here so an
// invalid record can never reach the store regardless of what the caller did
// with the Extraction.
func (p *Processor) Save(ctx context.Context, ext Extraction) (int64, error) {
	n, res := normalize.NormalizeCandidate(ext.Candidate)
	if !res.Valid {
		p.logger.Warn("pipeline.save_rejected", "job_id", ext.JobID, "reasons", res.Reasons)
		return 0, fmt.Errorf("%w: %s", common.ErrValidation, strings.Join(res.Reasons, "; "))
	}

	id, err := p.repo.Insert(ctx, n.CompanyName, n.InvoiceDate, n.TotalAmount)
	if err != nil {
		return 0, err
	}
	p.logger.Info("pipeline.saved", "job_id", ext.JobID, "id", id)
	return id, nil
}
