// chime is a single-shot notification hook for AI coding assistants.
//
// Claude Code invokes it with a hook JSON document on stdin; Codex CLI
// invokes it with a JSON string as the first positional argument. Either
// way, chime extracts a short summary of the completed turn and fans it out
// to the channels enabled in its config file.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/mberteau/chime/internal/config"
	"github.com/mberteau/chime/internal/event"
	"github.com/mberteau/chime/internal/notify"
	"github.com/mberteau/chime/internal/summary"
	"github.com/mberteau/chime/internal/transcript"
)

var version = "dev"

func main() {
	// A Codex payload always begins with '{', so the two subcommand words
	// cannot collide with the argv calling convention.
	switch {
	case len(os.Args) >= 2 && os.Args[1] == "version":
		fmt.Printf("chime %s\n", version)
	case len(os.Args) >= 2 && os.Args[1] == "check":
		cmdCheck(os.Args[2:])
	default:
		os.Exit(cmdNotify(os.Args[1:]))
	}
}

func cmdCheck(args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	configPath := fs.String("config", "", "path to config file")
	_ = fs.Parse(args) // ExitOnError handles errors

	if _, err := loadConfig(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("configuration is valid")
}

func cmdNotify(args []string) int {
	fs := flag.NewFlagSet("chime", flag.ExitOnError)
	configPath := fs.String("config", "", "path to config file")
	_ = fs.Parse(args) // ExitOnError handles errors

	// An argv payload is parsed before anything else: a malformed argument
	// is the single fatal input error, and a non-completion event must be
	// ignored silently.
	var ev *event.Event
	if fs.NArg() > 0 {
		parsed, err := event.ParseArg(fs.Arg(0))
		if err != nil {
			fmt.Fprintf(os.Stderr, "chime: %v\n", err)
			return 1
		}
		if parsed == nil {
			return 0
		}
		ev = parsed
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "chime: %v\n", err)
		return 1
	}

	setupLogging(cfg)

	ctx := context.Background()

	if ev == nil {
		data, ok := event.ReadStdin(ctx, os.Stdin, event.StdinWait)
		if !ok {
			slog.Debug("no stdin payload, proceeding with defaults")
		}
		ev = event.ParseStdin(data)
	}

	dispatchers := buildDispatchers(cfg)
	if len(dispatchers) == 0 {
		fmt.Println("no notification channels enabled")
		return 0
	}

	n := buildNotification(ev)

	slog.Info("dispatching notification",
		"source", string(ev.Source),
		"channels", len(dispatchers))

	results := notify.Dispatch(ctx, n, dispatchers...)
	for _, res := range results {
		if res.OK() {
			fmt.Printf("%s: ok\n", res.Channel)
			continue
		}
		fmt.Printf("%s: failed: %v\n", res.Channel, res.Err)
		slog.Error("channel delivery failed", "channel", res.Channel, "error", res.Err)
	}

	// Delivery failures are per-channel results, never the exit code.
	return 0
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}

func setupLogging(cfg *config.Config) {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	// Diagnostics go to stderr; stdout carries only the per-channel
	// outcome lines the front ends may surface to the user.
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler).With("invocation_id", uuid.NewString()))
}

func buildDispatchers(cfg *config.Config) []notify.Dispatcher {
	var ds []notify.Dispatcher
	if cfg.Feishu.Enabled {
		ds = append(ds, &notify.FeishuDispatcher{WebhookURL: cfg.Feishu.WebhookURL})
	}
	if cfg.Toast.Enabled {
		ds = append(ds, &notify.ToastDispatcher{
			Command: cfg.Toast.Command,
			AppName: cfg.Toast.AppName,
		})
	}
	return ds
}

// buildNotification renders the event into a channel-agnostic payload. For
// Claude events the transcript file wins over the inline message when it
// yields a usable assistant record.
func buildNotification(ev *event.Event) notify.Notification {
	title := "Codex CLI Task Completed"
	fallback := summary.FallbackCodex
	if ev.Source == event.SourceClaude {
		title = "Claude Code Task Completed"
		fallback = summary.FallbackClaude
	}

	raw := ev.Summary
	if ev.Source == event.SourceClaude && ev.TranscriptPath != "" {
		if text, ok := transcript.LastAssistantMessage(ev.TranscriptPath); ok {
			raw = text
		} else {
			slog.Debug("no usable transcript record", "path", ev.TranscriptPath)
		}
	}

	text := summary.Clean(raw)
	if text == "" {
		text = fallback
	}

	return notify.Notification{
		Source:         ev.Source,
		Title:          title,
		Summary:        summary.Truncate(text, summary.MaxSummary),
		WorkingDir:     ev.WorkingDir,
		TranscriptPath: ev.TranscriptPath,
		Time:           time.Now(),
	}
}
