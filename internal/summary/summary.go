// Package summary turns raw assistant output into a short plain-text string
// suitable for a notification card or toast body.
package summary

import (
	"regexp"
	"strings"
)

// Display limits per rendering surface.
const (
	MaxSummary    = 500
	MaxToastTitle = 100
	MaxToastBody  = 200
)

// Fixed fallbacks when no usable message can be extracted.
const (
	FallbackClaude = "Claude Code session completed"
	FallbackCodex  = "Codex CLI session completed"
)

// rule is one ordered text substitution.
type rule struct {
	re   *regexp.Regexp
	repl string
}

// rules run in order. The order is not commutative: link syntax must strip
// before emphasis so that [**label**](url) reduces to its label before the
// emphasis pass sees the asterisks.
var rules = []rule{
	{regexp.MustCompile("(?s)```.*?```"), " "},            // fenced code blocks
	{regexp.MustCompile("`([^`\n]*)`"), "$1"},             // inline code
	{regexp.MustCompile(`!\[([^\]]*)\]\([^)]*\)`), "$1"},  // images, keep alt text
	{regexp.MustCompile(`\[([^\]]+)\]\([^)]*\)`), "$1"},   // links, keep label
	{regexp.MustCompile(`(?m)^#{1,6}\s+`), ""},            // ATX headings
	{regexp.MustCompile(`(?m)^>\s?`), ""},                 // blockquotes
	{regexp.MustCompile(`(?m)^\s*[-*+]\s+`), ""},          // bullet markers
	{regexp.MustCompile(`(?m)^\s*\d+\.\s+`), ""},          // ordered-list markers
	{regexp.MustCompile(`\*{1,3}([^*\n]+)\*{1,3}`), "$1"}, // asterisk emphasis
	{regexp.MustCompile(`__([^_\n]+)__`), "$1"},           // underscore bold
}

var whitespace = regexp.MustCompile(`\s+`)

// Clean strips markdown artifacts and collapses whitespace. Single
// underscores are left alone: in coding-assistant output they are almost
// always identifiers, not emphasis.
func Clean(s string) string {
	out := s
	for _, r := range rules {
		out = r.re.ReplaceAllString(out, r.repl)
	}
	out = whitespace.ReplaceAllString(out, " ")
	return strings.TrimSpace(out)
}

// Truncate caps s at max runes, appending an ellipsis marker when cut.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
