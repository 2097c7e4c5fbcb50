package build

import (
	"context"
	"fmt"
	"time"

	"github.com/cruciblehq/xbuild/internal/logging"
	"github.com/cruciblehq/xbuild/internal/metrics"
)

// Compile step names.
const (
	StepPre     = "pre"
	StepCompile = "compile"
	StepLink    = "link"
)

// Optimization pass names.
const (
	PassInline    = "inline"
	PassDCE       = "dce"
	PassVectorize = "vectorize"
)

// Compile steps in execution order.
var compileSteps = []string{StepPre, StepCompile, StepLink}

// Failure of a single step or pass.
type StageError struct {
	Kind string // Either [metrics.KindStep] or [metrics.KindPass].
	Name string // Step or pass name.
	Err  error  // Underlying failure.
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Kind, e.Name, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Returns the optimization passes for a target, in application order.
//
// Every target gets inline and dce; arm additionally gets vectorize above
// opt_level 2.
func optimizationPasses(target string, optLevel int) []string {
	passes := []string{PassInline, PassDCE}
	if target == targetARM && optLevel > 2 {
		passes = append(passes, PassVectorize)
	}
	return passes
}

// Runs the compile steps in order, stopping at the first failure.
func (p *pipeline) executeSteps(ctx context.Context, log *logging.Logger, bc *Context) error {
	for _, step := range compileSteps {
		log.Info(ctx, "Running step: "+step, "step", step)

		start := time.Now()
		err := p.exec.Step(ctx, step, bc)
		p.metrics.ObserveStage(metrics.KindStep, step, time.Since(start))
		if err != nil {
			return &StageError{Kind: metrics.KindStep, Name: step, Err: err}
		}

		log.Info(ctx, "Finished step: "+step, "step", step)
	}
	return nil
}

// Applies the given passes in order, stopping at the first failure.
func (p *pipeline) applyPasses(ctx context.Context, log *logging.Logger, bc *Context, passes []string) error {
	for _, pass := range passes {
		log.Info(ctx, "Applying pass: "+pass, "pass_name", pass)

		start := time.Now()
		err := p.exec.Pass(ctx, pass, bc)
		p.metrics.ObserveStage(metrics.KindPass, pass, time.Since(start))
		if err != nil {
			return &StageError{Kind: metrics.KindPass, Name: pass, Err: err}
		}

		log.Info(ctx, "Finished pass: "+pass, "pass_name", pass)
	}
	return nil
}
