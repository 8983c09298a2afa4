package ocr

import (
	"context"
	"fmt"
	"strings"

	"github.com/VinayakPunj/Invoice-Data-Extractor/constants"
	"github.com/VinayakPunj/Invoice-Data-Extractor/internal/common"
)

func (e *Extractor) extractImage(ctx context.Context, path string) (ExtractionResult, error) {
	res := ExtractionResult{SourceType: constants.IMAGE, Method: "image-ocr", Language: e.cfg.TesseractLang}

	if e.cfg.Preprocess {
		out, cleanup, err := preprocessImage(path)
		if err != nil {
			// Preprocessing is best-effort; fall back to the original file.
			e.logger.Warn("ocr.preprocess_failed", "path", path, "error", err)
		} else {
			defer cleanup()
			path = out
		}
	}

	txt, err := e.tesseractOCR(ctx, path)
	if err != nil {
		return res, fmt.Errorf("%w: image %s: %v", common.ErrExtraction, path, err)
	}

	res.Text = normalizeText(txt)
	res.Pages = 1
	return res, nil
}

func (e *Extractor) tesseractOCR(ctx context.Context, path string) (string, error) {
	// tesseract <file> stdout -l <lang>
	out, errb, err := e.runner.Run(ctx, e.cfg.Tesseract, path, "stdout", "-l", e.cfg.TesseractLang)
	if err != nil {
		return "", fmt.Errorf("tesseract: %v: %s", err, truncate(string(errb), 2<<10))
	}
	return string(out), nil
}

// normalizeText squeezes OCR line noise: CRLF endings and runs of blank lines.
func normalizeText(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	for strings.Contains(s, "\n\n\n") {
		s = strings.ReplaceAll(s, "\n\n\n", "\n\n")
	}
	return strings.TrimSpace(s) + "\n"
}
