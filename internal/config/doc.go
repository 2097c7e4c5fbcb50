// Package config holds the layered build configuration.
//
// A [Config] is a string-keyed tree of mappings, sequences and scalars. The
// effective configuration of a run is the built-in [Defaults] with one or
// more overrides applied by [Merge]: nested mappings merge key by key at any
// depth, every other value (including sequences such as "targets") replaces
// the base value wholesale. Merge never mutates its inputs and never shares
// mutable state with them.
//
// Overrides come from YAML files ([Load]), from dotted command-line
// assignments ([Set]) or from JSON payloads sent to the daemon. Typed
// accessors read the three keys the build consumes, and [Validate] rejects
// values the build cannot interpret.
//
// Example usage:
//
//	override, err := config.Load("xbuild.yaml")
//	if err != nil {
//	    return err
//	}
//	if err := config.Set(override, "features.simd", "false"); err != nil {
//	    return err
//	}
//
//	cfg := config.Merge(config.Defaults(), override)
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
package config
