package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/alfredjoe/Online-Quiz/internal/ocr"
	"github.com/alfredjoe/Online-Quiz/internal/question"
)

// fakeRasterizer writes empty page files so cleanup can be observed.
type fakeRasterizer struct {
	pages   int
	err     error
	lastPDF string
	lastDir string
}

func (f *fakeRasterizer) Rasterize(pdfPath, outDir string) ([]string, error) {
	f.lastPDF = pdfPath
	f.lastDir = outDir
	if f.err != nil {
		return nil, f.err
	}
	var images []string
	for i := 1; i <= f.pages; i++ {
		path := filepath.Join(outDir, fmt.Sprintf("page_%d.png", i))
		if err := os.WriteFile(path, nil, 0o600); err != nil {
			return nil, err
		}
		images = append(images, path)
	}
	return images, nil
}

// fakeRecognizer answers by page file name; missing entries fail.
type fakeRecognizer struct {
	texts map[string]string
	calls []string
}

func (f *fakeRecognizer) Recognize(ctx context.Context, imagePath string) (string, error) {
	name := filepath.Base(imagePath)
	f.calls = append(f.calls, name)
	text, ok := f.texts[name]
	if !ok {
		return "", &ocr.APIError{StatusCode: 500, Body: "boom"}
	}
	return text, nil
}

type fakeGuard struct{ err error }

func (g fakeGuard) Check(string) (int, error) { return 0, g.err }

func TestExtractService_Process_Success(t *testing.T) {
	raster := &fakeRasterizer{pages: 3}
	rec := &fakeRecognizer{texts: map[string]string{
		"page_1.png": "  1. What is 2+2? (A) 3 (B) 4\n",
		"page_3.png": "2. Capital of France? (A) Paris (B) Rome",
	}}
	svc := NewExtractService(raster, rec)

	res, err := svc.Process(context.Background(), strings.NewReader("%PDF-1.4"), "quiz.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantText := "1. What is 2+2? (A) 3 (B) 4\n2. Capital of France? (A) Paris (B) Rome"
	if res.Text != wantText {
		t.Fatalf("unexpected text %q", res.Text)
	}
	wantCalls := []string{"page_1.png", "page_2.png", "page_3.png"}
	if !reflect.DeepEqual(rec.calls, wantCalls) {
		t.Fatalf("expected pages in order %v, got %v", wantCalls, rec.calls)
	}
	wantQuestions := []string{
		"<p>What is 2+2?</p><p>3</p><p>4</p>",
		"<p>Capital of France?</p><p>Paris</p><p>Rome</p>",
	}
	if !reflect.DeepEqual(res.Questions, wantQuestions) {
		t.Fatalf("unexpected questions %q", res.Questions)
	}
	if len(res.Records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(res.Records))
	}

	if filepath.Base(raster.lastPDF) != "upload.pdf" || filepath.Dir(raster.lastPDF) != raster.lastDir {
		t.Fatalf("expected upload staged in workspace, got %s (dir %s)", raster.lastPDF, raster.lastDir)
	}
	if _, err := os.Stat(raster.lastDir); !os.IsNotExist(err) {
		t.Fatalf("expected workspace cleanup, got err=%v", err)
	}
}

func TestExtractService_Process_NoTextWhenEveryPageFails(t *testing.T) {
	raster := &fakeRasterizer{pages: 2}
	rec := &fakeRecognizer{texts: map[string]string{"page_2.png": "   "}}
	svc := NewExtractService(raster, rec)

	_, err := svc.Process(context.Background(), strings.NewReader("%PDF"), "a.pdf")
	if !errors.Is(err, ErrNoText) {
		t.Fatalf("expected ErrNoText, got %v", err)
	}
	if _, err := os.Stat(raster.lastDir); !os.IsNotExist(err) {
		t.Fatalf("expected workspace cleanup, got err=%v", err)
	}
}

func TestExtractService_Process_NoProvider(t *testing.T) {
	raster := &fakeRasterizer{pages: 2}
	svc := NewExtractService(raster, ocr.NewClient(ocr.Credentials{}))

	_, err := svc.Process(context.Background(), strings.NewReader("%PDF"), "a.pdf")
	if !errors.Is(err, ErrNoText) {
		t.Fatalf("expected ErrNoText, got %v", err)
	}
}

func TestExtractService_Process_PropagatesRasterizeError(t *testing.T) {
	wantErr := errors.New("cannot open document")
	raster := &fakeRasterizer{err: wantErr}
	svc := NewExtractService(raster, &fakeRecognizer{})

	_, err := svc.Process(context.Background(), strings.NewReader("junk"), "a.pdf")
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected %v, got %v", wantErr, err)
	}
	if _, err := os.Stat(raster.lastDir); !os.IsNotExist(err) {
		t.Fatalf("expected workspace cleanup, got err=%v", err)
	}
}

func TestExtractService_Process_PageGuard(t *testing.T) {
	wantErr := errors.New("too many pages")
	raster := &fakeRasterizer{pages: 1}
	svc := NewExtractService(raster, &fakeRecognizer{}, WithPageGuard(fakeGuard{err: wantErr}))

	_, err := svc.Process(context.Background(), strings.NewReader("%PDF"), "a.pdf")
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected %v, got %v", wantErr, err)
	}
	if raster.lastPDF != "" {
		t.Fatal("rasterizer should not run when the guard rejects")
	}
}

func TestExtractService_Process_ParserMode(t *testing.T) {
	raster := &fakeRasterizer{pages: 1}
	rec := &fakeRecognizer{texts: map[string]string{
		"page_1.png": "1. g is about (A) 9.8 (B) 10",
	}}
	svc := NewExtractService(raster, rec, WithParser(question.Parser{Boundary: question.BoundaryLineStart}))

	res, err := svc.Process(context.Background(), strings.NewReader("%PDF"), "a.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []question.Record{{Text: "g is about", Options: []string{"9.8", "10"}}}
	if !reflect.DeepEqual(res.Records, want) {
		t.Fatalf("unexpected records %#v", res.Records)
	}
}

func TestExtractService_Process_NoQuestionsStillSucceeds(t *testing.T) {
	raster := &fakeRasterizer{pages: 1}
	rec := &fakeRecognizer{texts: map[string]string{"page_1.png": "Instructions only"}}
	svc := NewExtractService(raster, rec)

	res, err := svc.Process(context.Background(), strings.NewReader("%PDF"), "a.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Questions == nil || len(res.Questions) != 0 {
		t.Fatalf("expected empty non-nil questions, got %#v", res.Questions)
	}
}
