package question

import "strings"

// Format renders a record as paragraph markup: the question text first,
// then one paragraph per option, with no separator.
func Format(r Record) string {
	var b strings.Builder
	writeParagraph(&b, r.Text)
	for _, opt := range r.Options {
		writeParagraph(&b, opt)
	}
	return b.String()
}

// FormatAll formats every record. The result is never nil.
func FormatAll(records []Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, Format(r))
	}
	return out
}

func writeParagraph(b *strings.Builder, s string) {
	b.WriteString("<p>")
	b.WriteString(s)
	b.WriteString("</p>")
}
