// Command runocr extracts text from a single invoice file and prints it.
// Useful for checking tesseract/pdftoppm setup before wiring the LLM.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/VinayakPunj/Invoice-Data-Extractor/internal/common"
	"github.com/VinayakPunj/Invoice-Data-Extractor/internal/ocr"
)

func main() {
	cfg := common.LoadConfig()
	logger := common.NewLogger(cfg.Log)

	if len(os.Args) != 2 {
		logger.Error("usage", "cmd", "runocr <file>")
		os.Exit(2)
	}
	path := os.Args[1]

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	ocrx := ocr.NewExtractor(ocr.Config{
		Tesseract:     cfg.OCR.Tesseract,
		Pdftoppm:      cfg.OCR.Pdftoppm,
		TesseractLang: cfg.OCR.TesseractLang,
		DPI:           cfg.OCR.DPI,
		MaxPages:      cfg.OCR.MaxPages,
		Preprocess:    cfg.OCR.Preprocess,
	}, logger)

	start := time.Now()
	res, err := ocrx.Extract(ctx, path)
	if err != nil {
		logger.Error("ocr failed", "path", path, "error", err,
			"duration_ms", time.Since(start).Milliseconds())
		os.Exit(1)
	}

	logger.Info("ocr OK",
		"method", res.Method,
		"pages", res.Pages,
		"truncated", res.Truncated,
		"bytes", len(res.Text),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	fmt.Print(res.Text)
}
