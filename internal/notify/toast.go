package notify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/mberteau/chime/internal/summary"
)

// toastTimeout bounds the toast child process. CommandContext kills the
// process when the deadline expires so nothing dangles.
const toastTimeout = 10 * time.Second

// toastScript is the PowerShell program that raises the toast. The
// placeholders receive text already escaped for both the XML and the
// PowerShell here-string contexts.
const toastScript = `
[Windows.UI.Notifications.ToastNotificationManager, Windows.UI.Notifications, ContentType = WindowsRuntime] | Out-Null
[Windows.Data.Xml.Dom.XmlDocument, Windows.Data.Xml.Dom.XmlDocument, ContentType = WindowsRuntime] | Out-Null

$template = @"
<toast duration="short">
  <visual>
    <binding template="ToastText02">
      <text id="1">%s</text>
      <text id="2">%s</text>
    </binding>
  </visual>
  <audio silent="true"/>
</toast>
"@

$xml = New-Object Windows.Data.Xml.Dom.XmlDocument
$xml.LoadXml($template)
$toast = [Windows.UI.Notifications.ToastNotification]::new($xml)
$notifier = [Windows.UI.Notifications.ToastNotificationManager]::CreateToastNotifier("%s")
$notifier.Show($toast)
`

// ToastDispatcher raises a desktop toast by spawning an external command,
// powershell.exe by default.
type ToastDispatcher struct {
	Command string
	AppName string
}

// Name implements Dispatcher.
func (d *ToastDispatcher) Name() string { return "toast" }

// Send implements Dispatcher. Spawn errors, non-zero exits and timeouts all
// map to an error result.
func (d *ToastDispatcher) Send(ctx context.Context, n Notification) error {
	title := EscapePowerShell(EscapeXML(summary.Truncate(n.Title, summary.MaxToastTitle)))
	body := EscapePowerShell(EscapeXML(summary.Truncate(n.Summary, summary.MaxToastBody)))
	app := EscapePowerShell(EscapeXML(d.AppName))

	script := fmt.Sprintf(toastScript, title, body, app)

	command := d.Command
	if command == "" {
		command = "powershell.exe"
	}

	ctx, cancel := context.WithTimeout(ctx, toastTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, command, "-NoProfile", "-NonInteractive", "-Command", script)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("toast command timed out after %s", toastTimeout)
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("toast command failed: %w: %s", err, summary.Truncate(msg, 200))
		}
		return fmt.Errorf("toast command failed: %w", err)
	}

	slog.Debug("toast raised", "command", command)
	return nil
}
