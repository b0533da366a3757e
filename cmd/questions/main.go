// Command questions runs the question parser over OCR text from a file or
// stdin and prints the records as JSON.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/alfredjoe/Online-Quiz/internal/question"
	"github.com/alfredjoe/Online-Quiz/pkg"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "questions:", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("questions", flag.ContinueOnError)
	file := fs.String("file", "", "OCR text file (default stdin)")
	boundary := fs.String("boundary", "anywhere", "question boundary mode: anywhere or line")
	markup := fs.Bool("markup", false, "print formatted markup instead of records")
	if err := fs.Parse(args); err != nil {
		return err
	}

	mode, err := question.ParseBoundary(*boundary)
	if err != nil {
		return err
	}

	in := stdin
	if *file != "" {
		f, err := os.Open(*file)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}
	text, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	records := question.Parser{Boundary: mode}.Parse(string(text))
	if *markup {
		return pkg.Print(stdout, question.FormatAll(records))
	}
	if records == nil {
		records = []question.Record{}
	}
	return pkg.Print(stdout, records)
}
