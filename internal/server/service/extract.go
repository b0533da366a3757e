package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alfredjoe/Online-Quiz/internal/logging"
	"github.com/alfredjoe/Online-Quiz/internal/question"
	"github.com/alfredjoe/Online-Quiz/internal/workspace"
)

// ErrNoText means no page produced any recognized text.
var ErrNoText = errors.New("no text extracted")

// Rasterizer renders a PDF into one image per page.
type Rasterizer interface {
	Rasterize(pdfPath, outDir string) ([]string, error)
}

// Recognizer turns one page image into text.
type Recognizer interface {
	Recognize(ctx context.Context, imagePath string) (string, error)
}

// PageGuard may reject a staged PDF before it is rendered.
type PageGuard interface {
	Check(pdfPath string) (int, error)
}

// Result is the outcome of a successful extraction.
type Result struct {
	Text      string
	Records   []question.Record
	Questions []string
}

// ExtractService runs upload -> pages -> OCR -> questions.
type ExtractService struct {
	rasterizer Rasterizer
	recognizer Recognizer
	parser     question.Parser
	guard      PageGuard
}

// Option customizes an ExtractService.
type Option func(*ExtractService)

// WithParser sets the question parser.
func WithParser(p question.Parser) Option {
	return func(s *ExtractService) { s.parser = p }
}

// WithPageGuard installs a check that runs before rasterization.
func WithPageGuard(g PageGuard) Option {
	return func(s *ExtractService) { s.guard = g }
}

// NewExtractService creates ExtractService.
func NewExtractService(r Rasterizer, ocr Recognizer, opts ...Option) *ExtractService {
	s := &ExtractService{rasterizer: r, recognizer: ocr}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Process stages the upload in a private workspace, OCRs every page in
// order and parses the joined text. The workspace is removed on return.
func (s *ExtractService) Process(ctx context.Context, file io.Reader, filename string) (*Result, error) {
	log := logging.FromContext(ctx).With("filename", filename)

	ws, err := workspace.New("extract-")
	if err != nil {
		return nil, err
	}
	root := ws.Path()
	defer func() {
		if err := ws.Close(); err != nil {
			log.Warn("workspace cleanup failed", "path", root, "error", err)
		}
	}()

	pdfPath, err := ws.Save("upload.pdf", file)
	if err != nil {
		return nil, fmt.Errorf("persist upload (%s): %w", filename, err)
	}

	if s.guard != nil {
		if _, err := s.guard.Check(pdfPath); err != nil {
			return nil, err
		}
	}

	images, err := s.rasterizer.Rasterize(pdfPath, root)
	if err != nil {
		return nil, fmt.Errorf("rasterize: %w", err)
	}
	log.Info("pdf rasterized", "pages", len(images))

	texts := make([]string, 0, len(images))
	for i, img := range images {
		text, err := s.recognizer.Recognize(ctx, img)
		if err != nil {
			log.Warn("page skipped", "page", i+1, "error", err)
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" {
			log.Warn("page skipped", "page", i+1, "error", "empty text")
			continue
		}
		texts = append(texts, text)
	}
	if len(texts) == 0 {
		return nil, ErrNoText
	}

	joined := strings.Join(texts, "\n")
	records := s.parser.Parse(joined)
	log.Info("questions parsed", "pages_with_text", len(texts), "questions", len(records))

	return &Result{
		Text:      joined,
		Records:   records,
		Questions: question.FormatAll(records),
	}, nil
}
