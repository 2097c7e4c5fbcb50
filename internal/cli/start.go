package cli

import (
	"context"
	"log/slog"

	"github.com/cruciblehq/xbuild/internal"
	"github.com/cruciblehq/xbuild/internal/server"
)

// Represents the 'xbuild start' command.
type StartCmd struct {
	Artifacts string `help:"Artifact directory for requests that name none." default:"${artifacts}" placeholder:"DIR"`
}

// Executes the start command.
//
// Starts the daemon on a Unix domain socket and blocks until the context is
// cancelled (e.g. via SIGINT or SIGTERM) or a client requests shutdown.
func (c *StartCmd) Run(ctx context.Context) error {
	srv := server.New(server.Config{
		SocketPath: RootCmd.Socket,
		Artifacts:  c.Artifacts,
	})

	if err := srv.Start(); err != nil {
		return err
	}

	slog.Info(internal.Name + " is running")

	select {
	case <-ctx.Done():
	case <-srv.Done():
	}

	slog.Info("shutting down")
	return srv.Stop()
}
