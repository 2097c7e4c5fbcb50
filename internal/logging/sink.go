package logging

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"strings"
	"sync"
	"syscall"
)

// Labels of fallback lines.
const (
	labelExpected   = "LOGGING"
	labelUnexpected = "UNEXPECTED LOGGING"
)

// Implemented by buffered sinks such as [bufio.Writer].
type flusher interface {
	Flush() error
}

// The single serialized destination shared by a logger family.
//
// The JSON encoder renders into buf, which is then handed to w in one Write
// call. Everything below mu is owned by whoever holds it.
type sink struct {
	mu       sync.Mutex
	w        io.Writer    // Primary sink for JSON records.
	diag     io.Writer    // Diagnostic writer for fallback lines.
	buf      bytes.Buffer // Encoded JSON record.
	textBuf  bytes.Buffer // Text rendering of a record for fallback lines.
	encoder  slog.Handler // JSON encoder writing into buf.
	renderer slog.Handler // Text encoder writing into textBuf.
}

// Creates a sink and its encoders.
func newSink(w, diag io.Writer) *sink {
	s := &sink{w: w, diag: diag}
	opts := &slog.HandlerOptions{
		Level:       slog.LevelDebug,
		ReplaceAttr: replaceAttr,
	}
	s.encoder = slog.NewJSONHandler(&s.buf, opts)
	s.renderer = slog.NewTextHandler(&s.textBuf, opts)
	return s
}

// Encodes and writes a record, falling back on any failure.
func (s *sink) write(ctx context.Context, r slog.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.buf.Reset()
	if err := s.encoder.Handle(ctx, r); err != nil {
		s.fallback(ctx, err, r)
		return
	}

	if err := s.commit(); err != nil {
		s.fallback(ctx, err, r)
	}
}

// Writes the encoded record to the primary sink and flushes it.
func (s *sink) commit() (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: %v", ErrSinkPanic, p)
		}
	}()

	n, err := s.w.Write(s.buf.Bytes())
	if err != nil {
		return err
	}
	if n < s.buf.Len() {
		return io.ErrShortWrite
	}

	if f, ok := s.w.(flusher); ok {
		return f.Flush()
	}
	return nil
}

// Writes one fallback line describing the failure and the lost record.
func (s *sink) fallback(ctx context.Context, cause error, r slog.Record) {
	s.textBuf.Reset()
	original := "(unrenderable)"
	if err := s.renderer.Handle(ctx, r); err == nil {
		original = strings.TrimSuffix(s.textBuf.String(), "\n")
	}

	fmt.Fprintf(s.diag, "%s ERROR: %v | Original: %s\n", label(cause), cause, original)
}

// Classifies a sink failure.
func label(err error) string {
	switch {
	case errors.Is(err, syscall.EPIPE),
		errors.Is(err, syscall.ECONNRESET),
		errors.Is(err, os.ErrClosed),
		errors.Is(err, net.ErrClosed),
		errors.Is(err, io.ErrClosedPipe),
		errors.Is(err, io.ErrShortWrite):
		return labelExpected
	default:
		return labelUnexpected
	}
}
