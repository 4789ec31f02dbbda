// Package notify fans a completion notification out to the configured
// channels and collects one result per attempt.
package notify

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mberteau/chime/internal/event"
)

// Notification is the rendered, channel-agnostic payload.
type Notification struct {
	Source         event.Source
	Title          string
	Summary        string
	WorkingDir     string
	TranscriptPath string
	Time           time.Time
}

// Dispatcher delivers a notification on one channel.
type Dispatcher interface {
	// Name identifies the channel in logs and result lines.
	Name() string
	// Send makes a single delivery attempt. It must honor ctx and never
	// panic; any failure is returned, not escalated.
	Send(ctx context.Context, n Notification) error
}

// Result is the outcome of one channel attempt.
type Result struct {
	Channel string
	Err     error
}

// OK reports whether the attempt succeeded.
func (r Result) OK() bool { return r.Err == nil }

// Dispatch invokes every dispatcher concurrently and waits for all of them
// to settle. Each attempt writes its own result slot and the group never
// carries an error, so one channel's failure can neither cancel nor mask a
// sibling's outcome. Results come back in dispatcher order.
func Dispatch(ctx context.Context, n Notification, dispatchers ...Dispatcher) []Result {
	results := make([]Result, len(dispatchers))

	var g errgroup.Group
	for i, d := range dispatchers {
		i, d := i, d
		g.Go(func() error {
			results[i] = Result{Channel: d.Name(), Err: d.Send(ctx, n)}
			return nil
		})
	}
	_ = g.Wait()

	return results
}
