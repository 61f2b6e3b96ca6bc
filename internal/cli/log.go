package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg at debug level along with the elapsed time since progress was created.
// Example output: "Resolved react@18.2.0 (1ms)"
func (p *progress) done(msg string) {
	p.logger.Debugf("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// logHooks forwards resolve and request events to a logger at debug level.
// Registered by the serve command.
type logHooks struct {
	logger *log.Logger
}

func (h logHooks) OnResolve(_ context.Context, pkg, version string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("resolve failed", "package", pkg, "version", version, "err", err)
		return
	}
	h.logger.Debug("resolved", "package", pkg, "version", version, "duration", d)
}

func (h logHooks) OnRequest(_ context.Context, method, path string) {
	h.logger.Debug("incoming request", "method", method, "path", path)
}

func (h logHooks) OnResponse(context.Context, string, string, int, time.Duration) {}
