package build

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/cruciblehq/xbuild/internal/config"
	"github.com/cruciblehq/xbuild/internal/logging"
	"github.com/cruciblehq/xbuild/internal/metrics"
)

// Controls a build run.
type Options struct {
	Override  config.Config     // Merged over the built-in defaults; nil builds the defaults.
	Artifacts string            // Directory under which artifact paths are computed. Not validated.
	Logger    *logging.Logger   // Build log. Defaults to stdout with fallback to stderr.
	Executor  Executor          // Runs steps and passes. Defaults to a [Simulator].
	Metrics   *metrics.Recorder // Optional metrics recorder.
	Timeout   time.Duration     // Deadline for the whole run; zero means none.
	RunID     string            // Attached to every record. Generated when empty.
}

// Fans a run out to one pipeline per target and collects the outcomes.
type orchestrator struct {
	pipeline *pipeline         // Shared per-target pipeline settings.
	log      *logging.Logger   // Build log tagged with the run ID.
	metrics  *metrics.Recorder // Optional metrics recorder.
	timeout  time.Duration     // Deadline for the whole run; zero means none.
	runID    string            // Identifier of this run.
}

// Builds every configured target concurrently.
//
// The effective configuration is the defaults with opts.Override merged over
// them. One pipeline per target runs concurrently; all of them are awaited
// even when some fail. Outcomes are returned in configuration order. An error
// is returned only when the configuration is invalid and nothing was built;
// per-target failures are reported in the summary.
func Run(ctx context.Context, opts Options) (*Summary, error) {
	cfg := config.Merge(config.Defaults(), opts.Override)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuild, err)
	}

	return newOrchestrator(cfg, opts).run(ctx, cfg.Targets()), nil
}

// Creates an [orchestrator], filling in defaults for unset options.
func newOrchestrator(cfg config.Config, opts Options) *orchestrator {
	runID := opts.RunID
	if runID == "" {
		runID = uuid.NewString()
	}

	log := opts.Logger
	if log == nil {
		log = logging.New(nil, nil)
	}
	log = log.With("run", runID)

	exec := opts.Executor
	if exec == nil {
		exec = NewSimulator(cfg, DefaultStepLatency, DefaultPassLatency)
	}

	return &orchestrator{
		pipeline: &pipeline{
			cfg:       cfg,
			exec:      exec,
			log:       log,
			metrics:   opts.Metrics,
			artifacts: opts.Artifacts,
		},
		log:     log,
		metrics: opts.Metrics,
		timeout: opts.Timeout,
		runID:   runID,
	}
}

// Runs all pipelines and processes their outcomes in target order.
func (o *orchestrator) run(ctx context.Context, targets []string) *Summary {
	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	o.metrics.ObserveRun()
	o.log.Info(ctx, "Starting concurrent builds", "targets", targets)

	outcomes := make([]Outcome, len(targets))
	aborted := make([]error, len(targets))

	var g errgroup.Group
	for i, target := range targets {
		g.Go(func() error {
			outcomes[i], aborted[i] = o.buildTarget(ctx, target)
			return nil
		})
	}
	_ = g.Wait() // failures are captured per target

	for i, target := range targets {
		switch {
		case aborted[i] != nil:
			o.log.Error(ctx, fmt.Sprintf("Build for %s failed during gather", target),
				"error", aborted[i].Error(),
				"arch", target,
			)
			outcomes[i] = Failure(target, aborted[i].Error(), aborted[i])
		case outcomes[i].OK():
			o.packageArtifact(ctx, outcomes[i])
		}
		o.metrics.ObserveTarget(target, string(outcomes[i].Status))
	}

	summary := &Summary{RunID: o.runID, Outcomes: outcomes}
	o.log.Info(ctx, "Build summary",
		"count", len(outcomes),
		"succeeded", summary.Succeeded(),
		"failed", summary.Failed(),
	)

	return summary
}

// Runs one target's pipeline, converting a panic into an error.
func (o *orchestrator) buildTarget(ctx context.Context, target string) (out Outcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrPipelineAborted, r)
		}
	}()

	return o.pipeline.run(ctx, target), nil
}
