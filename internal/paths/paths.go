package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (

	// Name used for directory and file naming.
	programName = "xbuild"

	// Default permission mode for directories.
	DefaultDirMode os.FileMode = 0755

	// Default permission mode for files.
	DefaultFileMode os.FileMode = 0644
)

// Path to the user configuration file merged over the built-in defaults.
//
//	Linux:   $XDG_CONFIG_HOME/xbuild/config.yaml
//	macOS:   ~/Library/Application Support/xbuild/config.yaml
func ConfigFile() string {
	return filepath.Join(xdg.ConfigHome, programName, "config.yaml")
}

// Default directory under which per-target artifacts are placed.
//
//	Linux:   $XDG_DATA_HOME/xbuild/artifacts
//	macOS:   ~/Library/Application Support/xbuild/artifacts
func Artifacts() string {
	return filepath.Join(xdg.DataHome, programName, "artifacts")
}

// Path to the directory for runtime files (sockets, PIDs).
//
//	Linux:   $XDG_RUNTIME_DIR/xbuild or /run/user/<uid>/xbuild
//	macOS:   ~/Library/Caches/xbuild/run
func Runtime() string {
	if xdg.RuntimeDir != "" {
		return filepath.Join(xdg.RuntimeDir, programName)
	}
	return filepath.Join(xdg.CacheHome, programName, "run")
}

// Default path to the Unix domain socket served by the daemon.
func Socket() string {
	return filepath.Join(Runtime(), "xbuild.sock")
}

// Default path to the daemon PID file.
func PIDFile() string {
	return filepath.Join(Runtime(), "xbuild.pid")
}

// Returns true if path names an existing regular file.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
