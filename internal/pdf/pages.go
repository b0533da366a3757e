package pdf

import (
	"errors"
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// ErrTooManyPages is returned by PageGuard.Check for documents over the limit.
var ErrTooManyPages = errors.New("pdf has too many pages")

// PageCount reads the number of pages using relaxed validation.
func PageCount(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	n, err := api.PageCount(f, conf)
	if err != nil {
		return 0, fmt.Errorf("count pages: %w", err)
	}
	return n, nil
}

// PageGuard rejects documents with more than Max pages. A zero Max
// disables the check.
type PageGuard struct {
	Max int
}

// Check returns the page count when it was read, or 0 when the guard is off.
func (g PageGuard) Check(path string) (int, error) {
	if g.Max <= 0 {
		return 0, nil
	}
	n, err := PageCount(path)
	if err != nil {
		return 0, err
	}
	if n > g.Max {
		return n, fmt.Errorf("%w: %d pages, limit %d", ErrTooManyPages, n, g.Max)
	}
	return n, nil
}
