package build

import (
	"context"
	"errors"

	"github.com/cruciblehq/xbuild/internal/config"
	"github.com/cruciblehq/xbuild/internal/logging"
	"github.com/cruciblehq/xbuild/internal/metrics"
)

// Failure reasons for targets cut short by the run's context.
const (
	reasonTimeout   = "timeout"
	reasonCancelled = "cancelled"
)

// Holds what every target's pipeline of a run shares.
//
// All fields are read-only once the run starts.
type pipeline struct {
	cfg       config.Config     // Configuration snapshot for the run.
	exec      Executor          // Runs steps and passes.
	log       *logging.Logger   // Build log, already tagged with the run ID.
	metrics   *metrics.Recorder // Optional metrics recorder.
	artifacts string            // Directory under which artifact paths are computed.
}

// Builds a single target end to end.
//
// Configures the target, runs the compile steps, applies optimization passes
// when opt_level is above 1, and computes the artifact. A step or pass
// failure ends the pipeline with a failure outcome; it is logged here and
// never returned as an error.
func (p *pipeline) run(ctx context.Context, target string) Outcome {
	log := p.log.With("arch", target)

	log.Info(ctx, "Configuring build")
	bc := newContext(target, p.cfg)

	log.Info(ctx, "Compiling", "config", bc)
	if err := p.executeSteps(ctx, log, bc); err != nil {
		return p.fail(ctx, log, target, err)
	}

	var passes []string
	if optLevel := p.cfg.OptLevel(); optLevel > 1 {
		log.Info(ctx, "Optimizing", "opt_level", optLevel)
		passes = optimizationPasses(target, optLevel)
		log.Debug(ctx, "Selected optimization passes", "passes", passes)

		if err := p.applyPasses(ctx, log, bc, passes); err != nil {
			return p.fail(ctx, log, target, err)
		}
	}

	artifact := artifactPath(p.artifacts, target)
	desc := describe(bc, passes, p.cfg.OptLevel())

	log.Info(ctx, "Build successful", "artifact", artifact, "digest", desc.Digest.String())
	return Success(target, artifact, desc)
}

// Logs a failed target and returns its outcome.
func (p *pipeline) fail(ctx context.Context, log *logging.Logger, target string, err error) Outcome {
	reason := failureReason(err)

	args := []any{"error", reason}
	var se *StageError
	if errors.As(err, &se) {
		args = append(args, "stage", se.Kind, "name", se.Name)
	}

	log.Error(ctx, "Build failed: "+reason, args...)
	return Failure(target, reason, err)
}

// Returns the human-readable reason for a failure.
//
// Step and pass errors are reported verbatim; context expiry is reported as
// "timeout" or "cancelled".
func failureReason(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return reasonTimeout
	case errors.Is(err, context.Canceled):
		return reasonCancelled
	}

	var se *StageError
	if errors.As(err, &se) {
		return se.Err.Error()
	}
	return err.Error()
}
