package build

import (
	"slices"

	"github.com/cruciblehq/xbuild/internal/config"
)

const (
	targetX86 = "x86"
	targetARM = "arm"
)

// Per-target settings derived from the configuration.
//
// A Context is created once at the start of a pipeline and never modified.
type Context struct {
	Target string   `json:"arch"`  // Target architecture.
	Flags  []string `json:"flags"` // Compiler flags, never nil.
}

// Derives the build context for a target.
//
// Targets fall into exactly two buckets: "x86" gets -mavx2 with SIMD and
// -msse2 without; every other target gets -mfpu=neon with SIMD and no flags
// without.
func newContext(target string, cfg config.Config) *Context {
	simd := cfg.Feature(config.FeatureSIMD)
	c := &Context{Target: target, Flags: []string{}}

	if target == targetX86 {
		if simd {
			c.Flags = append(c.Flags, "-mavx2")
		} else {
			c.Flags = append(c.Flags, "-msse2")
		}
	} else if simd {
		c.Flags = append(c.Flags, "-mfpu=neon")
	}

	return c
}

// Whether the context carries the given flag verbatim.
func (c *Context) hasFlag(flag string) bool {
	return slices.Contains(c.Flags, flag)
}
