package transcript

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTranscript(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644))
	return path
}

func assistantLine(text string) string {
	return `{"type":"assistant","message":{"role":"assistant","content":[{"type":"text","text":"` + text + `"}]}}`
}

func TestParseRecord_WhenAssistantText_ExtractsContent(t *testing.T) {
	t.Parallel()

	line := `{"type":"assistant","message":{"role":"assistant","content":[{"type":"text","text":"I fixed the race condition."}]}}`

	rec, err := ParseRecord([]byte(line))
	require.NoError(t, err)
	assert.Equal(t, "assistant", rec.Type)
	require.NotNil(t, rec.Message)
	require.Len(t, rec.Message.Content, 1)
	assert.Equal(t, "I fixed the race condition.", rec.Message.Content[0].Text)
}

func TestParseRecord_WhenEmptyLine_ReturnsNil(t *testing.T) {
	t.Parallel()

	rec, err := ParseRecord([]byte("   "))
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestParseRecord_WhenMalformedJSON_ReturnsError(t *testing.T) {
	t.Parallel()

	rec, err := ParseRecord([]byte(`{broken`))
	require.Error(t, err)
	assert.Nil(t, rec)
	assert.Contains(t, err.Error(), "parsing transcript record")
}

func TestText_ConcatenatesTextBlocksOnly(t *testing.T) {
	t.Parallel()

	rec := &Record{
		Type: "assistant",
		Message: &Message{
			Role: "assistant",
			Content: []ContentBlock{
				{Type: "text", Text: "Part 1. "},
				{Type: "tool_use"},
				{Type: "text", Text: "Part 2."},
			},
		},
	}

	assert.Equal(t, "Part 1. Part 2.", Text(rec))
}

func TestText_WhenNoMessage_ReturnsEmpty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, Text(&Record{Type: "summary"}))
	assert.Empty(t, Text(nil))
}

func TestLastAssistantMessage_ReturnsNewestLongRecord(t *testing.T) {
	t.Parallel()

	path := writeTranscript(t,
		assistantLine("An earlier assistant message that should lose."),
		`{"type":"user","message":{"role":"user","content":[{"type":"text","text":"please continue with the plan"}]}}`,
		assistantLine("The final summary of everything I changed."),
		`{"type":"user","message":{"role":"user","content":[{"type":"text","text":"thanks"}]}}`,
	)

	text, ok := LastAssistantMessage(path)
	require.True(t, ok)
	assert.Equal(t, "The final summary of everything I changed.", text)
}

func TestLastAssistantMessage_SkipsShortAssistantRecords(t *testing.T) {
	t.Parallel()

	path := writeTranscript(t,
		assistantLine("This longer record is the one that counts."),
		assistantLine("Done."),
	)

	text, ok := LastAssistantMessage(path)
	require.True(t, ok)
	assert.Equal(t, "This longer record is the one that counts.", text)
}

func TestLastAssistantMessage_SkipsMalformedLines(t *testing.T) {
	t.Parallel()

	path := writeTranscript(t,
		assistantLine("A perfectly usable assistant message."),
		`{broken json here}`,
		`not even json`,
	)

	text, ok := LastAssistantMessage(path)
	require.True(t, ok)
	assert.Equal(t, "A perfectly usable assistant message.", text)
}

func TestLastAssistantMessage_OnlyScansTrailingWindow(t *testing.T) {
	t.Parallel()

	lines := []string{assistantLine("This message is ancient history by now.")}
	for i := 0; i < 12; i++ {
		lines = append(lines, `{"type":"user","message":{"role":"user","content":[{"type":"text","text":"noise"}]}}`)
	}
	path := writeTranscript(t, lines...)

	_, ok := LastAssistantMessage(path)
	assert.False(t, ok)
}

func TestLastAssistantMessage_WhenFileMissing_ReportsNotOK(t *testing.T) {
	t.Parallel()

	text, ok := LastAssistantMessage(filepath.Join(t.TempDir(), "absent.jsonl"))
	assert.False(t, ok)
	assert.Empty(t, text)
}

func TestLastAssistantMessage_WhenNoAssistantRecords_ReportsNotOK(t *testing.T) {
	t.Parallel()

	path := writeTranscript(t,
		`{"type":"user","message":{"role":"user","content":[{"type":"text","text":"do the thing"}]}}`,
		`{"type":"system","subtype":"init"}`,
	)

	_, ok := LastAssistantMessage(path)
	assert.False(t, ok)
}

func TestLastAssistantMessage_WhenEmptyFile_ReportsNotOK(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "empty.jsonl")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	_, ok := LastAssistantMessage(path)
	assert.False(t, ok)
}
