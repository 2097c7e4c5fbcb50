package internal

import (
	"log/slog"
	"strings"
	"sync/atomic"
)

// Output verbosity of the process diagnostics.
type Verbosity int32

const (
	Quiet   Verbosity = iota - 1 // Warnings and errors only.
	Normal                       // Informational output.
	Verbose                      // Informational output with extra detail.
	Debug                        // Everything.
)

var verbosity atomic.Int32

// Seeds the verbosity from the rawVerbosity linker flag.
func init() {
	verbosity.Store(int32(parseVerbosity(rawVerbosity)))
}

func parseVerbosity(s string) Verbosity {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "quiet":
		return Quiet
	case "verbose":
		return Verbose
	case "debug":
		return Debug
	default:
		return Normal
	}
}

// Sets the process verbosity.
func SetVerbosity(v Verbosity) {
	verbosity.Store(int32(v))
}

// Returns the process verbosity.
func CurrentVerbosity() Verbosity {
	return Verbosity(verbosity.Load())
}

// Returns the slog level matching the verbosity.
//
// Verbose and Normal share the info level; verbose only adds source locations
// to diagnostic records.
func (v Verbosity) Level() slog.Level {
	switch {
	case v >= Debug:
		return slog.LevelDebug
	case v <= Quiet:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}
