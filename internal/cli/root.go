package cli

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/cruciblehq/xbuild/internal"
	"github.com/cruciblehq/xbuild/internal/paths"
)

// Level of the process diagnostics logger, shared by every handler created
// with [NewLogger].
var LogLevel = new(slog.LevelVar)

// Represents the root command for xbuild.
var RootCmd struct {
	Quiet   bool       `short:"q" help:"Suppress informational output."`
	Verbose bool       `short:"v" help:"Enable verbose output."`
	Debug   bool       `short:"d" help:"Enable debug output."`
	Socket  string     `short:"s" help:"Override the default Unix socket path." placeholder:"PATH"`
	Build   BuildCmd   `cmd:"" help:"Build every configured target."`
	Config  ConfigCmd  `cmd:"" help:"Print the effective configuration."`
	Start   StartCmd   `cmd:"" help:"Start the build daemon."`
	Version VersionCmd `cmd:"" help:"Show version information."`
}

// Parses arguments, configures logging, and runs the selected subcommand.
func Execute() error {

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	kongCtx := kong.Parse(&RootCmd,
		kong.Name(internal.Name),
		kong.Description("Multi-architecture build orchestrator.\n\nBuilds every configured target concurrently and writes a structured build log."),
		kong.UsageOnError(),
		kong.Vars{
			"version":   internal.VersionString(),
			"artifacts": paths.Artifacts(),
		},
		kong.BindTo(ctx, (*context.Context)(nil)),
	)

	configureLogger()

	return kongCtx.Run()
}

// Creates a diagnostics logger writing text records to w.
//
// The level follows [LogLevel]; verbose mode adds source locations.
func NewLogger(w io.Writer, v internal.Verbosity) *slog.Logger {
	LogLevel.Set(v.Level())
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:     LogLevel,
		AddSource: v >= internal.Verbose,
	}))
}

// Reconfigures the global logger based on CLI flags.
func configureLogger() {
	v := verbosityFromFlags(internal.CurrentVerbosity(), RootCmd.Quiet, RootCmd.Verbose, RootCmd.Debug)
	internal.SetVerbosity(v)
	slog.SetDefault(NewLogger(os.Stderr, v))
}

// Returns the verbosity selected by the flags, or fallback when none is set.
//
// Debug wins over quiet, which wins over verbose.
func verbosityFromFlags(fallback internal.Verbosity, quiet, verbose, debug bool) internal.Verbosity {
	switch {
	case debug:
		return internal.Debug
	case quiet:
		return internal.Quiet
	case verbose:
		return internal.Verbose
	default:
		return fallback
	}
}
