package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a logger with "HH:MM:SS.ms" timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs the elapsed time of an operation when it completes.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time, e.g. "Rendered gallery (12ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the attached logger, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if ctx == nil {
		return log.Default()
	}
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// logHooks reports resolver and controller activity at debug level.
type logHooks struct {
	logger *log.Logger
}

func newLogHooks(l *log.Logger) logHooks {
	return logHooks{logger: l.WithPrefix("hooks")}
}

func (h logHooks) OnResolve(requested, resolved string, flipped bool) {
	h.logger.Debug("resolve", "requested", requested, "resolved", resolved, "flipped", flipped)
}

func (h logHooks) OnUnmeasured(what string) {
	h.logger.Debug("unmeasured", "what", what)
}

func (h logHooks) OnTransition(mode string, visible, controlled bool) {
	h.logger.Debug("transition", "mode", mode, "visible", visible, "controlled", controlled)
}

func (h logHooks) OnListenerAttach(mode string) {
	h.logger.Debug("click-outside listener attached", "mode", mode)
}

func (h logHooks) OnListenerRelease(mode string) {
	h.logger.Debug("click-outside listener released", "mode", mode)
}
