// Package transcript reads the newline-delimited JSON session transcripts
// written by Claude Code and extracts the final assistant message.
package transcript

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

const (
	// tailRecords is how many trailing records are scanned when looking
	// for the final assistant message.
	tailRecords = 10

	// minTextLen filters out trivial assistant records (tool chatter,
	// one-word acknowledgements) during the backwards scan.
	minTextLen = 10

	maxLineSize = 10 * 1024 * 1024 // 10MB max line
)

// Record is one transcript line.
type Record struct {
	Type    string   `json:"type"`
	Message *Message `json:"message,omitempty"`
}

// Message is the nested message object within a record.
type Message struct {
	Role    string         `json:"role"`
	Content []ContentBlock `json:"content"`
}

// ContentBlock is a single content element within a message.
type ContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// ParseRecord parses a single transcript line. Empty lines yield (nil, nil).
func ParseRecord(line []byte) (*Record, error) {
	trimmed := strings.TrimSpace(string(line))
	if trimmed == "" {
		return nil, nil
	}

	var rec Record
	if err := json.Unmarshal([]byte(trimmed), &rec); err != nil {
		return nil, fmt.Errorf("parsing transcript record: %w", err)
	}
	return &rec, nil
}

// Text concatenates the text blocks of a record's message.
func Text(rec *Record) string {
	if rec == nil || rec.Message == nil {
		return ""
	}

	var sb strings.Builder
	for _, block := range rec.Message.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return sb.String()
}

// LastAssistantMessage returns the text of the newest assistant record in
// the transcript at path whose content is long enough to display. It reports
// ok=false when the file is unreadable or no such record exists within the
// trailing window; the caller is expected to fall back, never to fail.
func LastAssistantMessage(path string) (string, bool) {
	f, err := os.Open(path) //nolint:gosec // path comes from the front end's own hook payload
	if err != nil {
		return "", false
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 1024*1024), maxLineSize)

	var tail []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		tail = append(tail, line)
		if len(tail) > tailRecords {
			tail = tail[1:]
		}
	}
	if scanner.Err() != nil {
		return "", false
	}

	for i := len(tail) - 1; i >= 0; i-- {
		rec, err := ParseRecord([]byte(tail[i]))
		if err != nil || rec == nil {
			continue
		}
		if rec.Type != "assistant" {
			continue
		}
		if text := Text(rec); len(text) > minTextLen {
			return text, true
		}
	}

	return "", false
}
