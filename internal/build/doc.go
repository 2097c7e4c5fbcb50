// Package build runs one build pipeline per target architecture and
// aggregates the results.
//
// A pipeline derives a [Context] (the target and its compiler flags) from the
// configuration, runs the compile steps "pre", "compile" and "link" in order,
// applies optimization passes when opt_level is above 1, and computes the
// artifact path "{artifacts}/{target}/libmega.a" together with an OCI content
// descriptor. Steps and passes are executed by an [Executor]; the default
// [Simulator] models them as named operations with latency.
//
// [Run] starts one pipeline per configured target, all concurrently, and
// waits for every one of them. A failing target never aborts its siblings:
// step and pass failures become [Outcome] values with a human-readable
// reason, and a pipeline that panics is reported as an orchestration error
// for its target only. Outcomes are processed and returned in configuration
// order regardless of completion order. Every stage is written to the build
// log.
//
// Example usage:
//
//	summary, err := build.Run(ctx, build.Options{
//	    Override:  config.Config{"targets": []any{"x86", "arm", "riscv"}},
//	    Artifacts: "/tmp/artifacts",
//	    Logger:    logging.New(os.Stdout, os.Stderr),
//	})
//	if err != nil {
//	    return err
//	}
//	for _, o := range summary.Outcomes {
//	    fmt.Println(o.Target, o.Status, o.Artifact, o.Reason)
//	}
package build
