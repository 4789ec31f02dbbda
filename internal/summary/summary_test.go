package summary

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClean_StripsMarkdownArtifacts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{"heading", "## Results\nAll good", "Results All good"},
		{"blockquote", "> quoted line\nafter", "quoted line after"},
		{"bullet list", "- first\n- second", "first second"},
		{"ordered list", "1. first\n2. second", "first second"},
		{"bold", "this is **important** stuff", "this is important stuff"},
		{"italic", "this is *subtle* stuff", "this is subtle stuff"},
		{"underscore bold", "very __loud__ words", "very loud words"},
		{"inline code", "run `go vet` locally", "run go vet locally"},
		{"fenced code", "before\n```go\nfunc main() {}\n```\nafter", "before after"},
		{"link keeps label", "see [the docs](https://example.com) here", "see the docs here"},
		{"image keeps alt", "shot: ![screenshot](img.png) done", "shot: screenshot done"},
		{"whitespace collapse", "a\n\n\nb\t\tc", "a b c"},
		{"plain text untouched", "nothing fancy here", "nothing fancy here"},
		{"snake_case survives", "renamed max_retry_count field", "renamed max_retry_count field"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expect, Clean(tt.input))
		})
	}
}

func TestClean_StripsLinksBeforeEmphasis(t *testing.T) {
	t.Parallel()

	// The link pass must run first or the emphasis pass mangles the
	// nested label and leaves bracket debris behind.
	assert.Equal(t, "read the guide now", Clean("read [**the guide**](https://example.com/g) now"))
}

func TestClean_WhenOnlyMarkup_ReturnsEmpty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, Clean("```\ncode only\n```"))
	assert.Empty(t, Clean("   \n\t "))
}

func TestTruncate_CapsAtThresholdWithEllipsis(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		max    int
		expect string
	}{
		{"short string", "hello", 10, "hello"},
		{"exact length", "hello", 5, "hello"},
		{"too long", "hello world", 5, "hello..."},
		{"empty", "", 5, ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expect, Truncate(tt.input, tt.max))
		})
	}
}

func TestTruncate_ResultIsPrefixPlusEllipsis(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("abc ", 300)
	out := Truncate(long, MaxSummary)

	assert.Len(t, []rune(out), MaxSummary+3)
	assert.True(t, strings.HasSuffix(out, "..."))
	assert.True(t, strings.HasPrefix(long, strings.TrimSuffix(out, "...")))
}

func TestTruncate_IsRuneSafe(t *testing.T) {
	t.Parallel()

	out := Truncate("héllo wörld with accénts", 10)
	assert.Equal(t, "héllo wörl...", out)
}
