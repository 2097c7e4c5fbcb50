package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// Severity of a build log record.
type Level string

const (
	LevelInfo  Level = "info"
	LevelError Level = "error"
	LevelDebug Level = "debug"
)

// Keys of the fixed part of every record.
const (
	TimestampKey = "timestamp"
	LevelKey     = "level"
	MessageKey   = "message"
)

// Returns the slog level used to encode the record.
func (l Level) slogLevel() slog.Level {
	switch l {
	case LevelError:
		return slog.LevelError
	case LevelDebug:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// Writes structured build log records to a shared sink.
type Logger struct {
	sink  *sink            // Sink shared with every derived logger.
	attrs []slog.Attr      // Attributes added to every record.
	now   func() time.Time // Clock for record timestamps.
}

// Creates a logger writing records to w and fallback lines to diag.
//
// A nil w defaults to stdout and a nil diag to stderr.
func New(w, diag io.Writer) *Logger {
	if w == nil {
		w = os.Stdout
	}
	if diag == nil {
		diag = os.Stderr
	}
	return &Logger{
		sink: newSink(w, diag),
		now:  time.Now,
	}
}

// Returns a logger that adds the given key/value pairs to every record.
//
// The derived logger shares the sink, and therefore the write ordering, of
// its parent.
func (l *Logger) With(args ...any) *Logger {
	r := slog.NewRecord(time.Time{}, 0, "", 0)
	r.Add(args...)

	attrs := make([]slog.Attr, 0, len(l.attrs)+r.NumAttrs())
	attrs = append(attrs, l.attrs...)
	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, a)
		return true
	})

	return &Logger{sink: l.sink, attrs: attrs, now: l.now}
}

// Writes one record and waits for the sink to accept it.
//
// args are slog-style alternating keys and values, or [slog.Attr] values.
// Failures are reported on the diagnostic writer, never to the caller.
func (l *Logger) Emit(ctx context.Context, level Level, msg string, args ...any) {
	r := slog.NewRecord(l.now(), level.slogLevel(), msg, 0)
	r.AddAttrs(l.attrs...)
	r.Add(args...)
	l.sink.write(ctx, r)
}

// Emits an info record.
func (l *Logger) Info(ctx context.Context, msg string, args ...any) {
	l.Emit(ctx, LevelInfo, msg, args...)
}

// Emits an error record.
func (l *Logger) Error(ctx context.Context, msg string, args ...any) {
	l.Emit(ctx, LevelError, msg, args...)
}

// Emits a debug record.
func (l *Logger) Debug(ctx context.Context, msg string, args ...any) {
	l.Emit(ctx, LevelDebug, msg, args...)
}

// Renames the built-in slog attributes to the record schema.
//
// Only top-level attributes of the expected kind are rewritten, so caller
// attributes that happen to share a built-in key pass through untouched.
func replaceAttr(groups []string, a slog.Attr) slog.Attr {
	if len(groups) > 0 {
		return a
	}

	switch a.Key {
	case slog.TimeKey:
		if a.Value.Kind() == slog.KindTime {
			return slog.String(TimestampKey, a.Value.Time().UTC().Format(time.RFC3339Nano))
		}
	case slog.LevelKey:
		if lvl, ok := a.Value.Any().(slog.Level); ok {
			return slog.String(LevelKey, strings.ToLower(lvl.String()))
		}
	case slog.MessageKey:
		return slog.String(MessageKey, a.Value.String())
	}

	return a
}
