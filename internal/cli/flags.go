package cli

import (
	"github.com/cruciblehq/xbuild/internal/config"
	"github.com/cruciblehq/xbuild/internal/paths"
)

// Flags shared by commands that compute the effective configuration.
type ConfigFlags struct {
	ConfigFile string          `name:"config" short:"c" help:"YAML file merged over the defaults. Defaults to the user configuration file when present." type:"path" placeholder:"PATH"`
	Targets    []string        `name:"target" short:"t" help:"Target to build; repeatable. Replaces the configured targets." placeholder:"ARCH"`
	OptLevel   int             `help:"Optimization level. Negative keeps the configured level." default:"-1" placeholder:"N"`
	Features   map[string]bool `name:"feature" short:"f" help:"Feature switch; repeatable." placeholder:"NAME=BOOL"`
	Set        []string        `help:"Dotted assignment applied last; repeatable." placeholder:"KEY=VALUE"`
}

// Returns the override to merge over the defaults.
//
// The configuration file is applied first, then the target, opt-level and
// feature flags, then every --set assignment in order.
func (f *ConfigFlags) Override() (config.Config, error) {
	override := config.Config{}

	if path := f.configPath(); path != "" {
		file, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		override = config.Merge(override, file)
	}

	if len(f.Targets) > 0 {
		targets := make([]any, len(f.Targets))
		for i, t := range f.Targets {
			targets[i] = t
		}
		override[config.KeyTargets] = targets
	}

	if f.OptLevel >= 0 {
		override[config.KeyOptLevel] = f.OptLevel
	}

	if len(f.Features) > 0 {
		features := make(map[string]any, len(f.Features))
		for name, on := range f.Features {
			features[name] = on
		}
		override = config.Merge(override, config.Config{config.KeyFeatures: features})
	}

	for _, assignment := range f.Set {
		if err := config.SetAssignment(override, assignment); err != nil {
			return nil, err
		}
	}

	return override, nil
}

// Returns the configuration file to load, or "" for none.
func (f *ConfigFlags) configPath() string {
	if f.ConfigFile != "" {
		return f.ConfigFile
	}
	if p := paths.ConfigFile(); paths.Exists(p) {
		return p
	}
	return ""
}
