package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"os"
	"time"

	"github.com/cruciblehq/xbuild/internal"
	"github.com/cruciblehq/xbuild/internal/build"
	"github.com/cruciblehq/xbuild/internal/config"
	"github.com/cruciblehq/xbuild/internal/logging"
	"github.com/cruciblehq/xbuild/internal/protocol"
)

// Handles a build command.
//
// The build log is written straight to the connection; the per-target results
// follow as a single ok envelope once every target has finished.
func (s *Server) handleBuild(ctx context.Context, conn net.Conn, payload json.RawMessage) {
	req, err := protocol.DecodePayload[protocol.BuildRequest](payload)
	if err != nil {
		s.respond(conn, protocol.CmdError, &protocol.ErrorResult{Message: err.Error()})
		return
	}

	opts, err := s.buildOptions(req)
	if err != nil {
		s.respond(conn, protocol.CmdError, &protocol.ErrorResult{Message: err.Error()})
		return
	}
	opts.Logger = logging.New(conn, s.diag)

	summary, err := build.Run(ctx, opts)
	if err != nil {
		s.respond(conn, protocol.CmdError, &protocol.ErrorResult{Message: err.Error()})
		return
	}

	s.mu.Lock()
	s.builds++
	s.mu.Unlock()

	slog.Info("build finished", "run", summary.RunID, "succeeded", summary.Succeeded(), "failed", summary.Failed())

	s.respond(conn, protocol.CmdOK, buildResult(summary))
}

// Translates a build request into run options, without the logger.
func (s *Server) buildOptions(req *protocol.BuildRequest) (build.Options, error) {
	opts := build.Options{
		Override:  config.Config(req.Config),
		Artifacts: req.Artifacts,
	}

	if opts.Artifacts == "" {
		opts.Artifacts = s.artifacts
	}

	if req.Timeout != "" {
		d, err := time.ParseDuration(req.Timeout)
		if err != nil {
			return opts, err
		}
		opts.Timeout = d
	}

	if s.executor != nil {
		opts.Executor = s.executor(config.Merge(config.Defaults(), opts.Override))
	}

	return opts, nil
}

// Converts a run summary into the response payload.
func buildResult(summary *build.Summary) *protocol.BuildResult {
	result := &protocol.BuildResult{
		Run:     summary.RunID,
		Targets: make([]protocol.TargetResult, 0, len(summary.Outcomes)),
	}

	for _, o := range summary.Outcomes {
		tr := protocol.TargetResult{
			Target:   o.Target,
			Status:   string(o.Status),
			Artifact: o.Artifact,
			Reason:   o.Reason,
		}
		if o.Descriptor != nil {
			tr.Digest = o.Descriptor.Digest.String()
		}
		result.Targets = append(result.Targets, tr)
	}

	return result
}

// Handles a status command.
func (s *Server) handleStatus(conn net.Conn) {
	s.mu.Lock()
	builds := s.builds
	s.mu.Unlock()

	uptime := time.Since(s.startedAt).Truncate(time.Second)

	s.respond(conn, protocol.CmdOK, &protocol.StatusResult{
		Running: true,
		Version: internal.VersionString(),
		Pid:     os.Getpid(),
		Uptime:  uptime.String(),
		Builds:  builds,
	})
}

// Handles a shutdown command.
func (s *Server) handleShutdown(conn net.Conn) {
	s.respond(conn, protocol.CmdOK, nil)
	slog.Info("shutdown requested")

	go func() {
		s.Stop()
	}()
}
