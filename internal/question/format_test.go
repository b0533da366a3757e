package question

import (
	"reflect"
	"strings"
	"testing"
)

func TestFormat(t *testing.T) {
	got := Format(Record{Text: "What is 2+2?", Options: []string{"3", "4"}})
	want := "<p>What is 2+2?</p><p>3</p><p>4</p>"
	if got != want {
		t.Fatalf("Format() = %q, want %q", got, want)
	}
}

func TestFormat_RecoversParsedStrings(t *testing.T) {
	records := Parse("1. Speed of light?\n(A)  3x10^8 m/s \n(B) 340 m/s\n2. Next (A) yes (B) no")
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	for _, rec := range records {
		markup := Format(rec)
		parts := strings.Split(strings.TrimSuffix(markup, "</p>"), "</p>")
		for i := range parts {
			parts[i] = strings.TrimPrefix(parts[i], "<p>")
		}
		got := Record{Text: parts[0], Options: parts[1:]}
		if !reflect.DeepEqual(got, rec) {
			t.Fatalf("markup %q recovered %#v, want %#v", markup, got, rec)
		}
	}
}

func TestFormatAll_NeverNil(t *testing.T) {
	out := FormatAll(nil)
	if out == nil {
		t.Fatal("expected empty non-nil slice")
	}
	if len(out) != 0 {
		t.Fatalf("expected no entries, got %d", len(out))
	}
}
