package build

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/containerd/errdefs"
	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/cruciblehq/xbuild/internal/config"
	"github.com/cruciblehq/xbuild/internal/logging"
	"github.com/cruciblehq/xbuild/internal/metrics"
)

// Returns the options of a zero-latency run over the defaults merged with
// override, writing the build log to the returned buffer.
func testOptions(override config.Config) (Options, *bytes.Buffer) {
	var out bytes.Buffer
	return Options{
		Override:  override,
		Artifacts: testArtifacts,
		Logger:    logging.New(&out, &bytes.Buffer{}),
		Executor:  NewSimulator(config.Merge(config.Defaults(), override), 0, 0),
		RunID:     "run-1",
	}, &out
}

// Panics in the given step for one target.
type panickingExecutor struct {
	Executor
	target string
	step   string
}

func (e panickingExecutor) Step(ctx context.Context, name string, bc *Context) error {
	if bc.Target == e.target && name == e.step {
		panic("toolchain crashed")
	}
	return e.Executor.Step(ctx, name, bc)
}

// Blocks every step of one target until ctx is done.
type blockingExecutor struct {
	Executor
	target string
}

func (e blockingExecutor) Step(ctx context.Context, name string, bc *Context) error {
	if bc.Target == e.target {
		<-ctx.Done()
		return ctx.Err()
	}
	return e.Executor.Step(ctx, name, bc)
}

// Holds every target at the first step until all of them have reached it.
type barrierExecutor struct {
	Executor
	arrived sync.WaitGroup
	release chan struct{}
}

func newBarrierExecutor(inner Executor, n int) *barrierExecutor {
	e := &barrierExecutor{Executor: inner, release: make(chan struct{})}
	e.arrived.Add(n)
	go func() {
		e.arrived.Wait()
		close(e.release)
	}()
	return e
}

func (e *barrierExecutor) Step(ctx context.Context, name string, bc *Context) error {
	if name == StepPre {
		e.arrived.Done()
		select {
		case <-e.release:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return e.Executor.Step(ctx, name, bc)
}

func TestRunIsolatesTargetFailures(t *testing.T) {
	opts, out := testOptions(config.Config{
		config.KeyTargets:  []any{"x86", "arm", "riscv"},
		config.KeyOptLevel: 3,
		config.KeyFeatures: map[string]any{config.FeatureSIMD: false},
	})

	summary, err := Run(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}

	type result struct {
		Target   string
		Status   Status
		Artifact string
		Reason   string
	}
	var got []result
	for _, o := range summary.Outcomes {
		got = append(got, result{o.Target, o.Status, o.Artifact, o.Reason})
	}
	want := []result{
		{"x86", StatusSuccess, testArtifacts + "/x86/libmega.a", ""},
		{"arm", StatusFailure, "", "SIMD required for vectorization"},
		{"riscv", StatusSuccess, testArtifacts + "/riscv/libmega.a", ""},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("outcomes mismatch (-want +got):\n%s", diff)
	}
	if summary.RunID != "run-1" || summary.Succeeded() != 2 || summary.Failed() != 1 {
		t.Errorf("summary = %s %d/%d", summary.RunID, summary.Succeeded(), summary.Failed())
	}

	records := decodeRecords(t, out)
	for _, rec := range records {
		for _, key := range []string{logging.TimestampKey, logging.LevelKey, logging.MessageKey} {
			if _, ok := rec[key]; !ok {
				t.Errorf("record %v lacks %q", rec, key)
			}
		}
		if rec["run"] != "run-1" {
			t.Errorf("record %q has run %v", rec[logging.MessageKey], rec["run"])
		}
	}

	if first := records[0]; first[logging.MessageKey] != "Starting concurrent builds" {
		t.Errorf("first record = %v", first[logging.MessageKey])
	}

	var packaged []string
	for _, msg := range messagesWhere(records, "", "") {
		if strings.HasPrefix(msg, "Packaging successful build for ") {
			packaged = append(packaged, strings.TrimPrefix(msg, "Packaging successful build for "))
		}
	}
	if diff := cmp.Diff([]string{"x86", "riscv"}, packaged); diff != "" {
		t.Errorf("packaged targets mismatch (-want +got):\n%s", diff)
	}

	last := records[len(records)-1]
	if last[logging.MessageKey] != "Build summary" || last["count"] != float64(3) ||
		last["succeeded"] != float64(2) || last["failed"] != float64(1) {
		t.Errorf("summary record = %v", last)
	}
}

func TestRunDefaults(t *testing.T) {
	opts, _ := testOptions(nil)

	summary, err := Run(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if len(summary.Outcomes) != 2 || summary.Failed() != 0 {
		t.Fatalf("outcomes = %+v", summary.Outcomes)
	}
	if summary.Outcomes[0].Target != "x86" || summary.Outcomes[1].Target != "arm" {
		t.Errorf("outcome order = %s, %s", summary.Outcomes[0].Target, summary.Outcomes[1].Target)
	}
}

func TestRunGeneratesRunID(t *testing.T) {
	opts, _ := testOptions(nil)
	opts.RunID = ""

	a, err := Run(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Run(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if a.RunID == "" || a.RunID == b.RunID {
		t.Fatalf("run IDs %q and %q are not unique", a.RunID, b.RunID)
	}
}

func TestRunBuildsTargetsConcurrently(t *testing.T) {
	targets := []any{"x86", "arm", "riscv", "mips"}
	opts, _ := testOptions(config.Config{config.KeyTargets: targets})
	opts.Executor = newBarrierExecutor(opts.Executor, len(targets))
	opts.Timeout = 5 * time.Second

	summary, err := Run(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	for _, o := range summary.Outcomes {
		if !o.OK() {
			t.Errorf("%s failed: %s", o.Target, o.Reason)
		}
	}
}

func TestRunRecoversPipelinePanic(t *testing.T) {
	opts, out := testOptions(nil)
	opts.Executor = panickingExecutor{Executor: opts.Executor, target: "arm", step: StepCompile}

	summary, err := Run(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}

	x86, arm := summary.Outcomes[0], summary.Outcomes[1]
	if !x86.OK() {
		t.Errorf("x86 failed: %s", x86.Reason)
	}
	if arm.OK() || !errors.Is(arm.Err, ErrPipelineAborted) || !strings.Contains(arm.Reason, "toolchain crashed") {
		t.Errorf("arm outcome = %+v", arm)
	}

	found := false
	for _, rec := range decodeRecords(t, out) {
		if rec[logging.MessageKey] == "Build for arm failed during gather" {
			found = true
			if rec[logging.LevelKey] != string(logging.LevelError) {
				t.Errorf("gather failure level = %v", rec[logging.LevelKey])
			}
		}
	}
	if !found {
		t.Error("missing gather failure record")
	}
}

func TestRunTimeout(t *testing.T) {
	opts, out := testOptions(config.Config{config.KeyTargets: []any{"x86", "slow"}})
	opts.Executor = blockingExecutor{Executor: opts.Executor, target: "slow"}
	opts.Timeout = 50 * time.Millisecond

	summary, err := Run(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}

	if !summary.Outcomes[0].OK() {
		t.Errorf("x86 failed: %s", summary.Outcomes[0].Reason)
	}
	slow := summary.Outcomes[1]
	if slow.OK() || slow.Reason != "timeout" || !errors.Is(slow.Err, context.DeadlineExceeded) {
		t.Errorf("slow outcome = %+v", slow)
	}

	msgs := messagesWhere(decodeRecords(t, out), "arch", "slow")
	if len(msgs) == 0 || msgs[len(msgs)-1] != "Build failed: timeout" {
		t.Errorf("slow records = %v", msgs)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opts, _ := testOptions(nil)
	summary, err := Run(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	for _, o := range summary.Outcomes {
		if o.OK() || o.Reason != "cancelled" {
			t.Errorf("%s outcome = %+v, want cancelled", o.Target, o)
		}
	}
}

func TestRunInvalidConfig(t *testing.T) {
	opts, out := testOptions(nil)
	opts.Override = config.Config{config.KeyOptLevel: -1}

	summary, err := Run(context.Background(), opts)
	if summary != nil {
		t.Fatalf("summary = %+v, want nil", summary)
	}
	if !errors.Is(err, ErrBuild) || !errdefs.IsInvalidArgument(err) {
		t.Fatalf("err = %v, want an invalid argument build error", err)
	}
	if out.Len() != 0 {
		t.Errorf("invalid run wrote records: %s", out.String())
	}
}

func TestRunMetrics(t *testing.T) {
	opts, _ := testOptions(config.Config{
		config.KeyTargets:  []any{"x86", "arm", "riscv"},
		config.KeyOptLevel: 3,
		config.KeyFeatures: map[string]any{config.FeatureSIMD: false},
	})
	opts.Metrics = metrics.New()

	if _, err := Run(context.Background(), opts); err != nil {
		t.Fatal(err)
	}

	n, err := testutil.GatherAndCount(opts.Metrics.Gatherer(), "xbuild_build_targets_total")
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("targets_total series = %d, want 3", n)
	}

	n, err = testutil.GatherAndCount(opts.Metrics.Gatherer(), "xbuild_build_runs_total")
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("runs_total series = %d, want 1", n)
	}
}
