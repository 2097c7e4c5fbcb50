// Parses flags, configures logging and runs the xbuild commands.
//
// The root command accepts the following global flags:
//
//	-q, --quiet     Suppress informational output.
//	-v, --verbose   Enable verbose output.
//	-d, --debug     Enable debug output.
//	-s, --socket    Unix socket path for the daemon.
//
// Flags override build-time defaults set via linker flags. After parsing, the
// global logger is reconfigured to reflect the final verbosity before the
// selected command runs. Process diagnostics always go to stderr; the build
// log written by "xbuild build" goes to stdout or to --log-file.
//
// Configuration is layered: the built-in defaults, then a YAML file (--config,
// or the user configuration file when present), then individual flags.
package cli
