package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Reads a YAML override file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decodes a YAML document into a configuration.
//
// An empty document yields an empty configuration. The top level must be a
// mapping.
func Parse(data []byte) (Config, error) {
	var tree map[string]any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	if tree == nil {
		return Config{}, nil
	}
	return Config(tree), nil
}

// Encodes the configuration as YAML with keys in sorted order.
func Encode(cfg Config) ([]byte, error) {
	return yaml.Marshal(map[string]any(cfg))
}

// Assigns a value at a dotted key path, creating intermediate mappings.
//
// The raw value is decoded as a YAML node, so "false" becomes a boolean, "3"
// an integer and "[x86, riscv]" a sequence. Assigning through a key that
// holds a non-mapping value fails.
func Set(cfg Config, path, raw string) error {
	keys := strings.Split(path, ".")
	for _, k := range keys {
		if k == "" {
			return fmt.Errorf("%w: malformed key %q", ErrInvalidConfig, path)
		}
	}

	var value any
	if err := yaml.Unmarshal([]byte(raw), &value); err != nil {
		return fmt.Errorf("%w: value for %s: %w", ErrInvalidConfig, path, err)
	}

	node := map[string]any(cfg)
	for i, k := range keys[:len(keys)-1] {
		next, exists := node[k]
		if !exists {
			child := make(map[string]any)
			node[k] = child
			node = child
			continue
		}
		m, ok := asMapping(next)
		if !ok {
			return fmt.Errorf("%w: %s is not a mapping", ErrInvalidConfig, strings.Join(keys[:i+1], "."))
		}
		node = m
	}

	node[keys[len(keys)-1]] = value
	return nil
}

// Parses a "key=value" assignment and applies it with [Set].
func SetAssignment(cfg Config, assignment string) error {
	key, raw, ok := strings.Cut(assignment, "=")
	if !ok {
		return fmt.Errorf("%w: expected key=value, got %q", ErrInvalidConfig, assignment)
	}
	return Set(cfg, strings.TrimSpace(key), raw)
}
