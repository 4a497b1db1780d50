package pagemeta

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTitle(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "simple title",
			input: "<html><head><title>Example Page</title></head><body></body></html>",
			want:  "Example Page",
		},
		{
			name:  "whitespace collapsed",
			input: "<title>  Example \n  Page  </title>",
			want:  "Example Page",
		},
		{
			name:  "no title",
			input: "<html><body><p>content</p></body></html>",
			want:  "",
		},
		{
			name:  "empty document",
			input: "",
			want:  "",
		},
		{
			name:  "entities decoded",
			input: "<title>Tom &amp; Jerry</title>",
			want:  "Tom & Jerry",
		},
		{
			name:  "markup inside title stripped",
			input: "<title>hello <b>world</b></title>",
			want:  "hello world",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Title(tt.input)
			if got != tt.want {
				t.Errorf("Title() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTitle_Truncated(t *testing.T) {
	long := strings.Repeat("x", 1000)
	got := Title("<title>" + long + "</title>")
	if len(got) > maxTitleLen {
		t.Errorf("Title() length = %d, want at most %d", len(got), maxTitleLen)
	}
}

func TestTitle_TruncatesOnRuneBoundary(t *testing.T) {
	// Three-byte runes that do not divide the byte limit evenly, so a
	// naive byte cut would land mid-rune.
	long := strings.Repeat("日", 400)
	got := Title("<title>" + long + "</title>")
	if len(got) > maxTitleLen {
		t.Errorf("Title() length = %d, want at most %d", len(got), maxTitleLen)
	}
	if !utf8.ValidString(got) {
		t.Errorf("Title() returned invalid UTF-8: %q", got)
	}
	if !strings.HasSuffix(got, "日") {
		t.Errorf("Title() should end on a whole rune, got %q", got[len(got)-4:])
	}
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text", "hello world", "hello world"},
		{"tags stripped", "<b>bold</b> rest", "bold rest"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanText(tt.input); got != tt.want {
				t.Errorf("CleanText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
