package config

import (
	"math"
	"slices"
)

// Keys read by the build.
const (
	KeyOptLevel = "opt_level"
	KeyTargets  = "targets"
	KeyFeatures = "features"
)

// Feature switches known to the build.
const (
	FeatureSIMD   = "simd"
	FeatureOpenCL = "opencl"
)

// A configuration tree.
//
// Values are scalars, sequences ([]any) or nested mappings (map[string]any).
type Config map[string]any

// Returns a fresh copy of the built-in default configuration.
func Defaults() Config {
	return Config{
		KeyOptLevel: 2,
		KeyTargets:  []any{"x86", "arm"},
		KeyFeatures: map[string]any{
			FeatureSIMD:   true,
			FeatureOpenCL: false,
		},
	}
}

// Returns the optimization level, or 0 when unset or not an integer.
func (c Config) OptLevel() int {
	n, _ := asInt(c[KeyOptLevel])
	return n
}

// Returns the targets in configuration order.
//
// Non-string entries are skipped; [Config.Validate] reports them.
func (c Config) Targets() []string {
	switch v := c[KeyTargets].(type) {
	case []string:
		return slices.Clone(v)
	case []any:
		targets := make([]string, 0, len(v))
		for _, t := range v {
			if s, ok := t.(string); ok {
				targets = append(targets, s)
			}
		}
		return targets
	}
	return nil
}

// Returns whether the named feature switch is on. Missing switches are off.
func (c Config) Feature(name string) bool {
	features, ok := asMapping(c[KeyFeatures])
	if !ok {
		return false
	}
	on, _ := features[name].(bool)
	return on
}

// Returns a deep copy of the configuration.
func (c Config) Clone() Config {
	return Config(cloneMapping(c))
}

// Converts integral numbers of any decoded representation to int.
//
// YAML decodes integers as int, JSON decodes every number as float64.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		if n == math.Trunc(n) && !math.IsInf(n, 0) {
			return int(n), true
		}
	}
	return 0, false
}

// Returns v as a mapping if it is one.
func asMapping(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Config:
		return m, true
	}
	return nil, false
}
