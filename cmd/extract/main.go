// Command extract runs an invoice document through the full pipeline:
// OCR, LLM field extraction, normalization, and optionally storage.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/VinayakPunj/Invoice-Data-Extractor/internal/common"
	"github.com/VinayakPunj/Invoice-Data-Extractor/internal/llm"
	"github.com/VinayakPunj/Invoice-Data-Extractor/internal/llm/providers"
	"github.com/VinayakPunj/Invoice-Data-Extractor/internal/normalize"
	"github.com/VinayakPunj/Invoice-Data-Extractor/internal/ocr"
	"github.com/VinayakPunj/Invoice-Data-Extractor/internal/pipeline"
	"github.com/VinayakPunj/Invoice-Data-Extractor/internal/repository"
)

func main() {
	save := flag.Bool("save", false, "store the record when it validates")
	asJSON := flag.Bool("json", false, "print the extraction as JSON")
	flag.Parse()

	cfg := common.LoadConfig()
	logger := common.NewLogger(cfg.Log)

	if flag.NArg() != 1 {
		logger.Error("usage", "cmd", "extract [-save] [-json] <file>")
		os.Exit(2)
	}
	path := flag.Arg(0)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	db, dialect, err := repository.Open(ctx, repository.Config{
		DSN:         cfg.Database.DSN,
		DialTimeout: cfg.Database.DialTimeout,
	}, logger)
	if err != nil {
		logger.Error("open db", "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			logger.Error("close db", "error", cerr)
		}
	}()

	gen, err := providers.New(cfg.LLM, logger)
	if err != nil {
		logger.Error("build llm provider", "error", err)
		os.Exit(1)
	}

	ocrx := ocr.NewExtractor(ocr.Config{
		Tesseract:     cfg.OCR.Tesseract,
		Pdftoppm:      cfg.OCR.Pdftoppm,
		TesseractLang: cfg.OCR.TesseractLang,
		DPI:           cfg.OCR.DPI,
		MaxPages:      cfg.OCR.MaxPages,
		Preprocess:    cfg.OCR.Preprocess,
	}, logger)
	fields := llm.NewAdapter(gen, providers.Params(cfg.LLM), logger)
	repo := repository.NewInvoiceRepository(db, dialect, logger)
	p := pipeline.NewProcessor(ocrx, fields, repo, logger)

	ext, err := p.ProcessFile(ctx, path)
	if err != nil {
		logger.Error("extraction failed", "path", path, "error", err)
		os.Exit(1)
	}

	if *asJSON {
		out := map[string]any{
			"candidate":  ext.Candidate,
			"valid":      ext.Validation.Valid,
			"reasons":    ext.Validation.Reasons,
			"pages":      ext.Pages,
			"truncated":  ext.Truncated,
			"normalized": ext.Normalized,
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(out)
	} else if ext.Validation.Valid {
		fmt.Printf("Company: %s\nDate:    %s\nAmount:  %s\n",
			ext.Normalized.CompanyName,
			normalize.FormatDateForDisplay(ext.Normalized.InvoiceDate),
			normalize.FormatAmount(ext.Normalized.TotalAmount, "$"))
	} else {
		fmt.Printf("Company: %s\nDate:    %s\nAmount:  %s\n",
			ext.Candidate.CompanyName, ext.Candidate.InvoiceDate, ext.Candidate.TotalAmount)
		fmt.Printf("Invalid: %v\n", ext.Validation.Reasons)
	}

	if *save {
		id, err := p.Save(ctx, ext)
		if err != nil {
			logger.Error("save failed", "job_id", ext.JobID, "error", err)
			os.Exit(1)
		}
		logger.Info("record saved", "job_id", ext.JobID, "id", id)
	}
}
