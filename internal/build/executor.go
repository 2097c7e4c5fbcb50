package build

import (
	"context"
	"time"

	"github.com/cruciblehq/xbuild/internal/config"
)

// Default simulated latencies.
const (
	DefaultStepLatency = 50 * time.Millisecond
	DefaultPassLatency = 20 * time.Millisecond
)

// Runs named compile steps and optimization passes for a target.
//
// Implementations must honour ctx and return its error when it is done. A
// returned error fails the target; it does not affect other targets.
type Executor interface {
	Step(ctx context.Context, name string, bc *Context) error
	Pass(ctx context.Context, name string, bc *Context) error
}

// Simulates steps and passes with fixed latency and name-based failures.
//
// The link step fails when the context carries the flag "opencl". Derived
// contexts only ever carry SIMD flags, so this never fires for a real
// configuration; it is kept as a guard. The vectorize pass fails when the
// simd feature is off.
type Simulator struct {
	simd        bool          // Value of the simd feature switch.
	stepLatency time.Duration // Time each step takes.
	passLatency time.Duration // Time each pass takes.
}

// Creates a simulator for the given configuration and latencies.
func NewSimulator(cfg config.Config, stepLatency, passLatency time.Duration) *Simulator {
	return &Simulator{
		simd:        cfg.Feature(config.FeatureSIMD),
		stepLatency: stepLatency,
		passLatency: passLatency,
	}
}

// Runs a compile step.
func (s *Simulator) Step(ctx context.Context, name string, bc *Context) error {
	if err := sleep(ctx, s.stepLatency); err != nil {
		return err
	}
	if name == StepLink && bc.hasFlag(config.FeatureOpenCL) {
		return ErrOpenCLLink
	}
	return nil
}

// Applies an optimization pass.
func (s *Simulator) Pass(ctx context.Context, name string, bc *Context) error {
	if err := sleep(ctx, s.passLatency); err != nil {
		return err
	}
	if name == PassVectorize && !s.simd {
		return ErrSIMDRequired
	}
	return nil
}

// Waits for d or until ctx is done, whichever comes first.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
