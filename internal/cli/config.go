package cli

import (
	"io"
	"os"

	"github.com/cruciblehq/xbuild/internal/config"
)

// Represents the 'xbuild config' command.
type ConfigCmd struct {
	ConfigFlags `embed:""`
}

// Executes the config command.
func (c *ConfigCmd) Run() error {
	return printConfig(os.Stdout, &c.ConfigFlags)
}

// Writes the effective configuration as YAML.
func printConfig(w io.Writer, flags *ConfigFlags) error {
	override, err := flags.Override()
	if err != nil {
		return err
	}

	cfg := config.Merge(config.Defaults(), override)
	if err := cfg.Validate(); err != nil {
		return err
	}

	data, err := config.Encode(cfg)
	if err != nil {
		return err
	}

	_, err = w.Write(data)
	return err
}
