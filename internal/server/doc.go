// Package server implements the xbuild daemon.
//
// The daemon listens on a Unix domain socket for JSON-encoded commands.
// Each connection carries a single request: the client sends a
// newline-delimited JSON envelope, the server dispatches the command, and
// writes the result back before closing the connection.
//
// Build requests are run by the build package with the connection itself as
// the build log sink, so the client sees every record as it is written,
// followed by one response envelope listing the per-target results. Closing
// the connection early cancels the run.
//
// Example usage:
//
//	srv := server.New(server.Config{
//	    SocketPath: "/run/user/1000/xbuild/xbuild.sock",
//	})
//
//	if err := srv.Start(); err != nil {
//	    return err
//	}
//	defer srv.Stop()
//
//	srv.Wait()
package server
