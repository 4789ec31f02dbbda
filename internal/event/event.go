// Package event parses the payloads the upstream front ends deliver when an
// agent turn completes and normalizes them into a single record.
package event

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
)

// Source identifies which front end produced the event.
type Source string

const (
	// SourceClaude is Claude Code: a hook JSON document piped on stdin.
	SourceClaude Source = "claude"
	// SourceCodex is Codex CLI: a JSON string passed as the first
	// positional argument.
	SourceCodex Source = "codex"
)

// completionType is the only Codex event type chime acts on.
const completionType = "agent-turn-complete"

// StdinWait bounds how long chime waits for Claude Code to deliver its
// payload before proceeding with defaults.
const StdinWait = 3 * time.Second

// Event is the normalized completion record, built once per invocation and
// immutable afterwards.
type Event struct {
	Source         Source
	Summary        string
	WorkingDir     string
	TranscriptPath string
}

// codexPayload mirrors the JSON Codex CLI passes in argv.
type codexPayload struct {
	Type                 string `json:"type"`
	LastAssistantMessage string `json:"last-assistant-message"`
	Cwd                  string `json:"cwd"`
}

// claudePayload mirrors the hook JSON Claude Code pipes on stdin.
type claudePayload struct {
	HookEventName  string `json:"hook_event_name"`
	Message        string `json:"message"`
	Cwd            string `json:"cwd"`
	TranscriptPath string `json:"transcript_path"`
}

// ParseArg parses a Codex argv payload. A malformed argument is fatal to the
// caller. An event type other than agent-turn-complete returns (nil, nil):
// the invocation is filtered out and must be ignored silently.
func ParseArg(raw string) (*Event, error) {
	var p codexPayload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, fmt.Errorf("parsing event argument: %w", err)
	}

	if p.Type != completionType {
		return nil, nil
	}

	return &Event{
		Source:     SourceCodex,
		Summary:    p.LastAssistantMessage,
		WorkingDir: p.Cwd,
	}, nil
}

// ReadStdin reads r until EOF or until the wait elapses, whichever comes
// first. Claude Code may invoke chime without piping anything, so an empty
// or late payload reports ok=false rather than an error.
func ReadStdin(ctx context.Context, r io.Reader, wait time.Duration) (data []byte, ok bool) {
	type readResult struct {
		data []byte
		err  error
	}

	done := make(chan readResult, 1)
	go func() {
		b, err := io.ReadAll(r)
		done <- readResult{data: b, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil || len(res.data) == 0 {
			return nil, false
		}
		return res.data, true
	case <-time.After(wait):
		return nil, false
	case <-ctx.Done():
		return nil, false
	}
}

// ParseStdin decodes a Claude Code hook payload. Malformed or empty input is
// a recoverable gap: the result is a bare Claude event and the caller falls
// back to defaults downstream.
func ParseStdin(data []byte) *Event {
	ev := &Event{Source: SourceClaude}

	if strings.TrimSpace(string(data)) == "" {
		return ev
	}

	var p claudePayload
	if err := json.Unmarshal(data, &p); err != nil {
		return ev
	}

	ev.Summary = p.Message
	ev.WorkingDir = p.Cwd
	ev.TranscriptPath = p.TranscriptPath
	return ev
}
