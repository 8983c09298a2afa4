package ocr

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/VinayakPunj/Invoice-Data-Extractor/constants"
	"github.com/VinayakPunj/Invoice-Data-Extractor/internal/common"
)

// extractPDF rasterizes the document page by page and OCRs each page. Pages
// beyond the configured cap are skipped (documented truncation, not a
// failure). A single OCR failure on any page aborts extraction for the
// document.
func (e *Extractor) extractPDF(ctx context.Context, path string) (ExtractionResult, error) {
	res := ExtractionResult{SourceType: constants.PDF, Method: "pdf-ocr", Language: e.cfg.TesseractLang}

	tmpDir, err := os.MkdirTemp("", "invoice-pp-*")
	if err != nil {
		return res, fmt.Errorf("create temp dir: %w", err)
	}
	defer func() {
		if rerr := os.RemoveAll(tmpDir); rerr != nil {
			e.logger.Warn("ocr.tempdir_cleanup_failed", "path", tmpDir, "error", rerr)
		}
	}()

	prefix := filepath.Join(tmpDir, "page")
	// pdftoppm -r <dpi> -png <in.pdf> <tmp/page>
	_, errb, err := e.runner.Run(ctx, e.cfg.Pdftoppm, "-r", strconv.Itoa(e.cfg.DPI), "-png", path, prefix)
	if err != nil {
		e.logger.Error("ocr.pdftoppm_failed", "path", path, "stderr", truncate(string(errb), 2<<10))
		return res, fmt.Errorf("%w: rasterize %s: %v", common.ErrExtraction, path, err)
	}

	// collect generated pngs (prefix-1.png, prefix-2.png, ...)
	matches, _ := filepath.Glob(prefix + "-*.png")
	if len(matches) == 0 {
		e.logger.Error("ocr.no_pages_rendered", "path", path)
		return res, fmt.Errorf("%w: no pages rendered from %s", common.ErrExtraction, path)
	}
	sortPagesNumeric(matches)

	if e.cfg.MaxPages > 0 && len(matches) > e.cfg.MaxPages {
		e.logger.Info("ocr.page_cap_applied",
			"path", path, "total_pages", len(matches), "max_pages", e.cfg.MaxPages)
		matches = matches[:e.cfg.MaxPages]
		res.Truncated = true
	}

	var b strings.Builder
	for i, img := range matches {
		txt, err := e.tesseractOCR(ctx, img)
		if err != nil {
			e.logger.Error("ocr.page_failed", "path", path, "page", i+1, "error", err)
			return res, fmt.Errorf("%w: page %d of %s: %v", common.ErrExtraction, i+1, path, err)
		}
		b.WriteString(txt)
		b.WriteString("\n")
	}

	res.Text = normalizeText(b.String())
	res.Pages = len(matches)
	return res, nil
}

// sortPagesNumeric orders rasterized page files by their trailing page number
// so page-10 sorts after page-9, not after page-1.
func sortPagesNumeric(paths []string) {
	pageNum := func(p string) int {
		base := strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))
		idx := strings.LastIndexByte(base, '-')
		if idx < 0 {
			return 0
		}
		n, _ := strconv.Atoi(base[idx+1:])
		return n
	}
	sort.Slice(paths, func(i, j int) bool { return pageNum(paths[i]) < pageNum(paths[j]) })
}
