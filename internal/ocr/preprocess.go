package ocr

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// minOCRWidth is the width below which scans tend to OCR poorly; narrower
// images are upscaled before tesseract sees them.
const minOCRWidth = 1200

// preprocessImage converts an image to grayscale and upscales small scans,
// writing the result to a temporary PNG. Call cleanup() to remove it.
func preprocessImage(path string) (string, func(), error) {
	img, err := imaging.Open(path)
	if err != nil {
		return "", nil, fmt.Errorf("open image: %w", err)
	}

	img = imaging.Grayscale(img)
	if w := img.Bounds().Dx(); w > 0 && w < minOCRWidth {
		img = imaging.Resize(img, w*2, 0, imaging.Lanczos)
	}

	tmpDir, err := os.MkdirTemp("", "invoice-prep-*")
	if err != nil {
		return "", nil, err
	}
	cleanup := func() { _ = os.RemoveAll(tmpDir) }

	out := filepath.Join(tmpDir, "page.png")
	if err := imaging.Save(img, out); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("save preprocessed image: %w", err)
	}
	return out, cleanup, nil
}
