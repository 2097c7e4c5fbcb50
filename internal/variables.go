package internal

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

const (

	// Program name, used for the CLI, XDG subdirectories and the log group.
	Name = "xbuild"

	// String to indicate an undefined variable
	defaultUndefined = "(undefined)"

	// String to indicate a local (non-pipeline) build
	defaultLocalBuild = "(local)"

	// Main branch name used in version strings
	mainBranch = "main"
)

var (
	version   = "" // Version number (e.g., "1.2.3")
	stage     = "" // Development stage or git branch (e.g., "staging", "main")
	gitCommit = "" // Git commit hash (e.g., "a1b2c3d4")

	rawVerbosity = "" // One of "quiet", "verbose" or "debug"; empty means normal.
)

// Returns the version without a leading "v", or "(undefined)".
func Version() string {
	return orUndefined(strings.TrimPrefix(strings.ToLower(strings.TrimSpace(version)), "v"))
}

// Returns the lower-cased development stage, or "(undefined)".
func Stage() string {
	return orUndefined(strings.ToLower(strings.TrimSpace(stage)))
}

// Returns the git commit hash.
//
// Falls back to the VCS revision recorded by the Go toolchain when the linker
// flag is unset, then to "(undefined)".
func GitCommit() string {
	if c := strings.TrimSpace(gitCommit); c != "" {
		return c
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" && s.Value != "" {
				return s.Value
			}
		}
	}
	return defaultUndefined
}

// Returns true if this is a local (non-pipeline) build.
//
// Pipeline builds set version, commit and stage via linker flags; a build
// missing any of them is local.
func IsLocal() bool {
	return strings.TrimSpace(version) == "" ||
		strings.TrimSpace(gitCommit) == "" ||
		strings.TrimSpace(stage) == ""
}

// Returns a detailed version string.
//
// Local builds report "(local)". Pipeline builds report
// "<version>[+<stage>] <commit> [<os>/<arch>]", omitting the stage on main.
func VersionString() string {
	if IsLocal() {
		return defaultLocalBuild
	}

	s := ""
	if st := Stage(); st != mainBranch {
		s = "+" + st
	}

	return fmt.Sprintf("%s%s %s [%s/%s]", Version(), s, GitCommit(), runtime.GOOS, runtime.GOARCH)
}

func orUndefined(s string) string {
	if s == "" {
		return defaultUndefined
	}
	return s
}
