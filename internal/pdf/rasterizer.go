package pdf

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gen2brain/go-fitz"
)

// DefaultDPI renders pages at 300/72 of the PDF user space on both axes.
const DefaultDPI = 300

// Rasterizer renders PDF pages to PNG files using MuPDF.
type Rasterizer struct {
	DPI float64
}

// NewRasterizer returns a Rasterizer at DefaultDPI.
func NewRasterizer() *Rasterizer {
	return &Rasterizer{DPI: DefaultDPI}
}

// Rasterize writes page_<n>.png (1-indexed) into outDir for every page of
// the document and returns the image paths in page order.
func (r *Rasterizer) Rasterize(pdfPath, outDir string) ([]string, error) {
	dpi := r.DPI
	if dpi <= 0 {
		dpi = DefaultDPI
	}

	doc, err := fitz.New(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer doc.Close()

	n := doc.NumPage()
	images := make([]string, 0, n)
	for i := 0; i < n; i++ {
		data, err := doc.ImagePNG(i, dpi)
		if err != nil {
			return nil, fmt.Errorf("render page %d: %w", i+1, err)
		}
		path := filepath.Join(outDir, fmt.Sprintf("page_%d.png", i+1))
		if err := os.WriteFile(path, data, 0o600); err != nil {
			return nil, fmt.Errorf("write page %d: %w", i+1, err)
		}
		images = append(images, path)
	}
	return images, nil
}
