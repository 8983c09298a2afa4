package ocr

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/VinayakPunj/Invoice-Data-Extractor/constants"
	"github.com/VinayakPunj/Invoice-Data-Extractor/internal/common"
)

type Config struct {
	Tesseract string // binary name or absolute path; if empty -> "tesseract"
	Pdftoppm  string // binary name or absolute path; if empty -> "pdftoppm"

	TesseractLang string // default "eng"
	DPI           int    // rasterization DPI for scanned PDFs, default 300
	MaxPages      int    // pages beyond this cap are skipped; 0 = no limit

	Preprocess bool // grayscale/upscale images before OCR
}

type ExtractionResult struct {
	Text       string
	Pages      int
	SourceType string // constants.PDF | constants.IMAGE
	Method     string // "pdf-ocr" | "image-ocr"
	Language   string
	Duration   time.Duration
	Truncated  bool // pages beyond MaxPages were skipped
}

// Extractor converts an invoice file into plain text by shelling out to
// pdftoppm and tesseract. External commands run through Runner so tests can
// stub them.
type Extractor struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.TesseractLang == "" {
		cfg.TesseractLang = "eng"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 300
	}
	return &Extractor{cfg: cfg, runner: &execRunner{logger: logger}, logger: logger}
}

// Extract picks a strategy based on file extension.
func (e *Extractor) Extract(ctx context.Context, path string) (ExtractionResult, error) {
	start := time.Now()

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			e.logger.Error("ocr.file_missing", "path", path)
			return ExtractionResult{}, fmt.Errorf("%w: %s", common.ErrNotFound, path)
		}
		e.logger.Error("ocr.file_unreadable", "path", path, "error", err)
		return ExtractionResult{}, fmt.Errorf("stat %s: %w", path, err)
	}

	ext := constants.NormalizeExt(filepath.Ext(path))
	e.logger.Debug("ocr.extract.start", "path", path, "ext", ext)
	switch constants.MapExtToFormat(ext) {
	case constants.PDF:
		res, err := e.extractPDF(ctx, path)
		res.Duration = time.Since(start)
		return res, err
	case constants.IMAGE:
		res, err := e.extractImage(ctx, path)
		res.Duration = time.Since(start)
		return res, err
	default:
		e.logger.Error("ocr.unsupported_extension", "path", path, "extension", ext)
		return ExtractionResult{}, fmt.Errorf("%w: unsupported extension %q", common.ErrInvalidInput, ext)
	}
}

// ExtractBytes spills uploaded file bytes to a temp file carrying the declared
// filename's extension, then runs Extract on it.
func (e *Extractor) ExtractBytes(ctx context.Context, data []byte, filename string) (ExtractionResult, error) {
	ext := constants.NormalizeExt(filepath.Ext(filename))
	if !constants.IsAllowedExt(ext) {
		return ExtractionResult{}, fmt.Errorf("%w: unsupported extension %q", common.ErrInvalidInput, ext)
	}

	tmp, err := os.CreateTemp("", "invoice-upload-*."+ext)
	if err != nil {
		return ExtractionResult{}, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if rerr := os.Remove(tmpPath); rerr != nil {
			e.logger.Warn("ocr.tempfile_cleanup_failed", "path", tmpPath, "error", rerr)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return ExtractionResult{}, fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return ExtractionResult{}, fmt.Errorf("close temp file: %w", err)
	}

	return e.Extract(ctx, tmpPath)
}
