package mount

import (
	"context"
	"log/slog"

	"github.com/louisbranch/festival/internal/platform/ctxlog"
)

// Severity classifies a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeveritySuccess
	SeverityWarning
	SeverityError
)

// Symbol returns the human-readable prefix for the severity.
func (s Severity) Symbol() string {
	switch s {
	case SeveritySuccess:
		return "✅"
	case SeverityWarning:
		return "⚠️"
	case SeverityError:
		return "❌"
	default:
		return "ℹ️"
	}
}

func (s Severity) String() string {
	switch s {
	case SeveritySuccess:
		return "success"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "info"
	}
}

// Event identifies the dispatcher step that produced a diagnostic.
type Event string

const (
	EventNoHostSlot     Event = "no_host_slot"
	EventRequested      Event = "mount_requested"
	EventUnknownUnit    Event = "unknown_unit"
	EventAlreadyMounted Event = "already_mounted"
	EventMounted        Event = "mounted"
	EventLoadFailed     Event = "load_failed"
	EventStrict         Event = "strict_mode"
)

// Diagnostic is one non-fatal progress or failure report.
type Diagnostic struct {
	Severity Severity
	Event    Event
	Unit     string
	Message  string
	Err      error
}

// Reporter receives dispatcher diagnostics.
type Reporter interface {
	Report(ctx context.Context, d Diagnostic)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(ctx context.Context, d Diagnostic)

// Report calls f.
func (f ReporterFunc) Report(ctx context.Context, d Diagnostic) {
	f(ctx, d)
}

// SlogReporter writes diagnostics through log/slog, preferring the logger
// carried by the context so request ids follow the message.
type SlogReporter struct {
	logger *slog.Logger
}

// NewSlogReporter builds a reporter; a nil logger means slog.Default.
func NewSlogReporter(logger *slog.Logger) SlogReporter {
	return SlogReporter{logger: logger}
}

// Report logs d with a severity symbol prefix.
func (r SlogReporter) Report(ctx context.Context, d Diagnostic) {
	logger := ctxlog.FromContext(ctx, r.logger)
	attrs := []slog.Attr{
		slog.String("event", string(d.Event)),
		slog.String("severity", d.Severity.String()),
	}
	if d.Unit != "" {
		attrs = append(attrs, slog.String("unit", d.Unit))
	}
	if d.Err != nil {
		attrs = append(attrs, slog.String("error", d.Err.Error()))
	}
	if ctx == nil {
		ctx = context.Background()
	}
	logger.LogAttrs(ctx, slogLevel(d.Severity), d.Severity.Symbol()+" "+d.Message, attrs...)
}

func slogLevel(s Severity) slog.Level {
	switch s {
	case SeverityWarning:
		return slog.LevelWarn
	case SeverityError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
