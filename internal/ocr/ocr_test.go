package ocr

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/VinayakPunj/Invoice-Data-Extractor/internal/common"
)

// fakeRunner simulates pdftoppm (by creating page files) and tesseract (by
// echoing a marker for the page it was given).
type fakeRunner struct {
	pdfPages    int
	failOnPage  string
	tessCalls   []string
	pdftoppmErr error
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	switch {
	case strings.Contains(name, "pdftoppm"):
		if f.pdftoppmErr != nil {
			return nil, []byte("boom"), f.pdftoppmErr
		}
		prefix := args[len(args)-1]
		for i := 1; i <= f.pdfPages; i++ {
			if err := os.WriteFile(fmt.Sprintf("%s-%d.png", prefix, i), []byte("png"), 0o644); err != nil {
				return nil, nil, err
			}
		}
		return nil, nil, nil
	case strings.Contains(name, "tesseract"):
		page := args[0]
		f.tessCalls = append(f.tessCalls, page)
		if f.failOnPage != "" && strings.HasSuffix(page, f.failOnPage) {
			return nil, []byte("engine error"), errors.New("exit status 1")
		}
		return []byte("text:" + filepath.Base(page)), nil, nil
	}
	return nil, nil, fmt.Errorf("unexpected command %q", name)
}

func newTestExtractor(t *testing.T, cfg Config, r Runner) *Extractor {
	t.Helper()
	e := NewExtractor(cfg, slog.New(slog.NewTextHandler(os.Stderr, nil)))
	e.runner = r
	return e
}

func writeTempPDF(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "invoice.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExtractPDFPageOrderAndConcatenation(t *testing.T) {
	r := &fakeRunner{pdfPages: 11}
	e := newTestExtractor(t, Config{}, r)

	res, err := e.Extract(context.Background(), writeTempPDF(t))
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if res.Pages != 11 || res.Truncated {
		t.Fatalf("pages=%d truncated=%v", res.Pages, res.Truncated)
	}
	// page-10 must come after page-9, i.e. numeric order, not lexicographic.
	idx9 := strings.Index(res.Text, "page-9.png")
	idx10 := strings.Index(res.Text, "page-10.png")
	if idx9 < 0 || idx10 < 0 || idx10 < idx9 {
		t.Fatalf("pages out of order: idx9=%d idx10=%d\n%s", idx9, idx10, res.Text)
	}
}

func TestExtractPDFAppliesPageCap(t *testing.T) {
	r := &fakeRunner{pdfPages: 5}
	e := newTestExtractor(t, Config{MaxPages: 3}, r)

	res, err := e.Extract(context.Background(), writeTempPDF(t))
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if res.Pages != 3 || !res.Truncated {
		t.Fatalf("pages=%d truncated=%v, want capped to 3", res.Pages, res.Truncated)
	}
	if len(r.tessCalls) != 3 {
		t.Fatalf("tesseract ran %d times, want 3", len(r.tessCalls))
	}
}

func TestExtractPDFPageFailureAborts(t *testing.T) {
	r := &fakeRunner{pdfPages: 3, failOnPage: "page-2.png"}
	e := newTestExtractor(t, Config{}, r)

	_, err := e.Extract(context.Background(), writeTempPDF(t))
	if !errors.Is(err, common.ErrExtraction) {
		t.Fatalf("expected extraction error, got %v", err)
	}
}

func TestExtractMissingFile(t *testing.T) {
	e := newTestExtractor(t, Config{}, &fakeRunner{})
	_, err := e.Extract(context.Background(), filepath.Join(t.TempDir(), "nope.pdf"))
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestExtractUnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invoice.docx")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	e := newTestExtractor(t, Config{}, &fakeRunner{})
	_, err := e.Extract(context.Background(), path)
	if !errors.Is(err, common.ErrInvalidInput) {
		t.Fatalf("expected invalid-input error, got %v", err)
	}
}

func TestExtractImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scan.png")
	if err := os.WriteFile(path, []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}
	e := newTestExtractor(t, Config{}, &fakeRunner{})
	res, err := e.Extract(context.Background(), path)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if res.Pages != 1 || !strings.Contains(res.Text, "scan.png") {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestExtractBytesSpillsTempFile(t *testing.T) {
	e := newTestExtractor(t, Config{}, &fakeRunner{})
	res, err := e.ExtractBytes(context.Background(), []byte("png"), "upload.png")
	if err != nil {
		t.Fatalf("extract bytes: %v", err)
	}
	if res.SourceType != "IMAGE" || res.Pages != 1 {
		t.Fatalf("unexpected result %+v", res)
	}

	_, err = e.ExtractBytes(context.Background(), []byte("x"), "upload.exe")
	if !errors.Is(err, common.ErrInvalidInput) {
		t.Fatalf("expected invalid-input for .exe, got %v", err)
	}
}
