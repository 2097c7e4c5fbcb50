// Package logging writes the build log.
//
// Every record is one JSON object per line with the keys "timestamp" (UTC,
// RFC 3339), "level" ("info", "error" or "debug") and "message", plus the
// caller's key/value pairs flattened into the same object. Records are
// encoded with [log/slog]'s JSON handler and written to a caller-supplied
// sink.
//
// A [Logger] and all loggers derived from it with [Logger.With] share one
// sink. Writes to the sink are serialized, so records from concurrent
// goroutines never interleave and appear in a single total order. [Logger.Emit]
// returns only after the write (and, for sinks with a Flush method, the flush)
// has completed.
//
// Logging never fails the caller. When encoding, writing or flushing fails,
// the logger writes one human-readable line to a secondary diagnostic writer
// and returns normally:
//
//	LOGGING ERROR: write |1: broken pipe | Original: timestamp=... level=info message=...
//
// Expected I/O failures (broken pipe, connection reset, closed sink, short
// write) are labelled "LOGGING"; anything else is labelled "UNEXPECTED
// LOGGING".
//
// Example usage:
//
//	log := logging.New(os.Stdout, os.Stderr).With("run", runID)
//	log.Info(ctx, "Configuring build", "arch", "x86")
//	log.Error(ctx, "Build failed", "arch", "arm", "error", err.Error())
package logging
