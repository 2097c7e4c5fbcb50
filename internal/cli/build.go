package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/cruciblehq/xbuild/internal/build"
	"github.com/cruciblehq/xbuild/internal/logging"
	"github.com/cruciblehq/xbuild/internal/metrics"
	"github.com/cruciblehq/xbuild/internal/paths"
)

// Represents the 'xbuild build' command.
type BuildCmd struct {
	ConfigFlags `embed:""`

	Artifacts   string        `help:"Directory under which artifact paths are computed." default:"${artifacts}" placeholder:"DIR"`
	LogFile     string        `help:"Append the build log to a file instead of stdout." type:"path" placeholder:"PATH"`
	Timeout     time.Duration `help:"Deadline for the whole run, e.g. 30s. Zero means none."`
	MetricsFile string        `help:"Write build metrics in Prometheus text format after the run." type:"path" placeholder:"PATH"`
}

// Executes the build command.
//
// Every target is built even when some fail; the command reports failure
// afterwards so the exit status reflects the run as a whole.
func (c *BuildCmd) Run(ctx context.Context) error {
	override, err := c.Override()
	if err != nil {
		return err
	}

	out, closeLog, err := c.openLog()
	if err != nil {
		return err
	}
	defer closeLog()

	var recorder *metrics.Recorder
	if c.MetricsFile != "" {
		recorder = metrics.New()
	}

	summary, err := build.Run(ctx, build.Options{
		Override:  override,
		Artifacts: c.Artifacts,
		Logger:    logging.New(out, os.Stderr),
		Metrics:   recorder,
		Timeout:   c.Timeout,
	})
	if err != nil {
		return err
	}

	slog.Debug("build finished", "run", summary.RunID, "succeeded", summary.Succeeded(), "failed", summary.Failed())

	if recorder != nil {
		if err := recorder.WriteTextfile(c.MetricsFile); err != nil {
			return err
		}
	}

	if n := summary.Failed(); n > 0 {
		return fmt.Errorf("%w: %d of %d", ErrTargetsFailed, n, len(summary.Outcomes))
	}
	return nil
}

// Returns the build log sink and a function releasing it.
func (c *BuildCmd) openLog() (io.Writer, func(), error) {
	if c.LogFile == "" {
		return os.Stdout, func() {}, nil
	}

	f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, paths.DefaultFileMode)
	if err != nil {
		return nil, nil, err
	}

	// The logger flushes after every record.
	return bufio.NewWriter(f), func() { f.Close() }, nil
}
