package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mberteau/chime/internal/event"
)

// urlPlaceholder is the marker left in sample configs. Posting to it would
// send the notification nowhere, so it fails locally without a network call.
const urlPlaceholder = "YOUR_WEBHOOK_ID"

// feishuTimeout bounds a single webhook POST.
const feishuTimeout = 10 * time.Second

const maxResponseSize = 64 * 1024

// FeishuDispatcher posts an interactive card to a Feishu group webhook.
type FeishuDispatcher struct {
	WebhookURL string

	// Client overrides the HTTP client, mainly for tests. Nil means
	// http.DefaultClient; the POST deadline comes from the request
	// context either way.
	Client *http.Client
}

type cardText struct {
	Tag     string `json:"tag"`
	Content string `json:"content"`
}

type cardElement struct {
	Tag      string     `json:"tag"`
	Text     *cardText  `json:"text,omitempty"`
	Elements []cardText `json:"elements,omitempty"`
}

// feishuResponse is the vendor acknowledgement body. A non-zero code means
// the webhook accepted the HTTP request but rejected the card.
type feishuResponse struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

// Name implements Dispatcher.
func (d *FeishuDispatcher) Name() string { return "feishu" }

// Send implements Dispatcher. HTTP-level failures, timeouts and
// application-level rejections all come back as errors, never panics.
func (d *FeishuDispatcher) Send(ctx context.Context, n Notification) error {
	if d.WebhookURL == "" || strings.Contains(d.WebhookURL, urlPlaceholder) {
		return fmt.Errorf("webhook URL not configured")
	}

	payload, err := json.Marshal(d.card(n))
	if err != nil {
		return fmt.Errorf("encoding card: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, feishuTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.WebhookURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := d.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("posting card: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook returned HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	var ack feishuResponse
	if err := json.Unmarshal(body, &ack); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	if ack.Code != 0 {
		return fmt.Errorf("feishu rejected card: code %d: %s", ack.Code, ack.Msg)
	}

	slog.Debug("feishu card delivered", "source", string(n.Source))
	return nil
}

// card builds the interactive card payload, themed by source.
func (d *FeishuDispatcher) card(n Notification) map[string]any {
	elements := []cardElement{
		{Tag: "div", Text: &cardText{Tag: "lark_md", Content: "📝 **Summary**\n" + n.Summary}},
	}

	if n.WorkingDir != "" {
		elements = append(elements, cardElement{
			Tag:  "div",
			Text: &cardText{Tag: "lark_md", Content: fmt.Sprintf("📁 **Working Dir**:  `%s`", n.WorkingDir)},
		})
	}

	if n.TranscriptPath != "" {
		elements = append(elements, cardElement{
			Tag:  "div",
			Text: &cardText{Tag: "lark_md", Content: fmt.Sprintf("📄 **Transcript**:  `%s`", n.TranscriptPath)},
		})
	}

	elements = append(elements,
		cardElement{Tag: "hr"},
		cardElement{Tag: "note", Elements: []cardText{
			{Tag: "plain_text", Content: "🕐 " + n.Time.Format("2006-01-02 15:04:05")},
		}},
	)

	template := "blue"
	if n.Source == event.SourceClaude {
		template = "turquoise"
	}

	return map[string]any{
		"msg_type": "interactive",
		"card": map[string]any{
			"config": map[string]any{"wide_screen_mode": true},
			"header": map[string]any{
				"title":    map[string]any{"tag": "plain_text", "content": n.Title},
				"template": template,
			},
			"elements": elements,
		},
	}
}
