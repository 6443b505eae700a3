package main

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncWriterClipsLongLines(t *testing.T) {
	var sb strings.Builder
	w := &truncWriter{w: &sb, width: 10}

	if _, err := w.Write([]byte("0123456789abcdef\n")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if got, want := sb.String(), "012345678…\n"; got != want {
		t.Errorf("clipped line = %q, want %q", got, want)
	}
}

func TestTruncWriterKeepsShortLines(t *testing.T) {
	var sb strings.Builder
	w := &truncWriter{w: &sb, width: 20}

	if _, err := w.Write([]byte("short\n")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if got, want := sb.String(), "short\n"; got != want {
		t.Errorf("line = %q, want %q", got, want)
	}
}

func TestTruncWriterClipsOnRuneBoundary(t *testing.T) {
	// A width that lands inside the three-byte "世" must back up to
	// the rune start instead of emitting a partial encoding.
	line := "value: 世界世界世界\n"
	for width := 8; width < len(line); width++ {
		var sb strings.Builder
		w := &truncWriter{w: &sb, width: width}
		if _, err := w.Write([]byte(line)); err != nil {
			t.Fatalf("width %d: Write() error = %v", width, err)
		}
		got := strings.TrimRight(sb.String(), "\n")
		if !utf8.ValidString(got) {
			t.Errorf("width %d: clipped line %q is not valid UTF-8", width, got)
		}
		if !strings.HasSuffix(got, "…") {
			t.Errorf("width %d: clipped line %q lacks the ellipsis", width, got)
		}
	}
}
