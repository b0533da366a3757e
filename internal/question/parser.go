package question

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Record is one multiple-choice question recovered from OCR text.
type Record struct {
	Text    string   `json:"text"`
	Options []string `json:"options"`
}

// Boundary selects where a question-number marker starts a new block.
type Boundary int

const (
	// BoundaryAnywhere treats every "digits." run as a question start,
	// including decimals such as "3.5" inside option text.
	BoundaryAnywhere Boundary = iota
	// BoundaryLineStart only accepts markers preceded by spaces or tabs
	// since the start of the text or the last newline.
	BoundaryLineStart
)

// ParseBoundary maps a config value to a Boundary.
func ParseBoundary(s string) (Boundary, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "anywhere":
		return BoundaryAnywhere, nil
	case "line":
		return BoundaryLineStart, nil
	}
	return BoundaryAnywhere, fmt.Errorf("unknown question boundary %q", s)
}

func (b Boundary) String() string {
	if b == BoundaryLineStart {
		return "line"
	}
	return "anywhere"
}

// Parser splits OCR text into question records.
type Parser struct {
	Boundary Boundary
}

// Parse runs the default parser.
func Parse(text string) []Record {
	return Parser{}.Parse(text)
}

// Parse scans text in two passes: question-number boundaries first, then
// option markers inside each block. Blocks without a leading "digits."
// marker, without question text or without options are dropped.
func (p Parser) Parse(text string) []Record {
	var records []Record
	for _, block := range splitBlocks(text, p.Boundary) {
		if strings.TrimSpace(block) == "" {
			continue
		}
		rec, ok := parseBlock(block)
		if !ok {
			continue
		}
		records = append(records, rec)
	}
	return records
}

// splitBlocks cuts text at the start of every digit run that is directly
// followed by a period. The markers stay with the block they open.
func splitBlocks(text string, mode Boundary) []string {
	var cuts []int
	runStart := -1
	for i, r := range text {
		switch {
		case unicode.IsDigit(r):
			if runStart < 0 {
				runStart = i
			}
			continue
		case r == '.' && runStart >= 0:
			if mode == BoundaryAnywhere || atLineStart(text, runStart) {
				cuts = append(cuts, runStart)
			}
		}
		runStart = -1
	}

	blocks := make([]string, 0, len(cuts)+1)
	prev := 0
	for _, c := range cuts {
		blocks = append(blocks, text[prev:c])
		prev = c
	}
	return append(blocks, text[prev:])
}

func atLineStart(text string, pos int) bool {
	for i := pos; i > 0; {
		r, size := utf8.DecodeLastRuneInString(text[:i])
		switch r {
		case '\n':
			return true
		case ' ', '\t', '\r':
			i -= size
		default:
			return false
		}
	}
	return true
}

func parseBlock(block string) (Record, bool) {
	bodyStart, ok := skipNumber(block)
	if !ok {
		return Record{}, false
	}

	markers := findMarkers(block)
	stemEnd := len(block)
	if len(markers) > 0 {
		stemEnd = markers[0]
	}
	stem := strings.TrimSpace(block[bodyStart:stemEnd])

	var options []string
	for i, start := range markers {
		end := len(block)
		if i+1 < len(markers) {
			end = markers[i+1]
		}
		opt := strings.TrimSpace(block[start+markerLen : end])
		if opt != "" {
			options = append(options, opt)
		}
	}

	if stem == "" || len(options) == 0 {
		return Record{}, false
	}
	return Record{Text: stem, Options: options}, true
}

// skipNumber returns the offset just past the leading "digits." marker.
func skipNumber(block string) (int, bool) {
	i := 0
	for i < len(block) {
		r, size := utf8.DecodeRuneInString(block[i:])
		if !unicode.IsDigit(r) {
			break
		}
		i += size
	}
	if i == 0 || i >= len(block) || block[i] != '.' {
		return 0, false
	}
	return i + 1, true
}

const markerLen = len("(A)")

// findMarkers returns the byte offsets of every "(A)".."(E)" in s.
func findMarkers(s string) []int {
	var offsets []int
	for i := 0; i+markerLen <= len(s); {
		j := strings.IndexByte(s[i:], '(')
		if j < 0 {
			break
		}
		at := i + j
		if at+markerLen <= len(s) && isOptionLabel(s[at+1]) && s[at+2] == ')' {
			offsets = append(offsets, at)
			i = at + markerLen
			continue
		}
		i = at + 1
	}
	return offsets
}

func isOptionLabel(b byte) bool {
	return b >= 'A' && b <= 'E'
}
