package config

import "fmt"

// Reports whether the build can interpret the configuration.
//
// opt_level must be a non-negative integer, targets a sequence of non-empty
// strings, and features a mapping of booleans. Errors wrap
// [ErrInvalidConfig], which is classified as errdefs.ErrInvalidArgument.
func (c Config) Validate() error {
	if n, ok := asInt(c[KeyOptLevel]); !ok || n < 0 {
		return fmt.Errorf("%w: %s must be a non-negative integer, got %v", ErrInvalidConfig, KeyOptLevel, c[KeyOptLevel])
	}

	switch targets := c[KeyTargets].(type) {
	case []string:
		for i, t := range targets {
			if t == "" {
				return fmt.Errorf("%w: %s[%d] is empty", ErrInvalidConfig, KeyTargets, i)
			}
		}
	case []any:
		for i, t := range targets {
			if s, ok := t.(string); !ok || s == "" {
				return fmt.Errorf("%w: %s[%d] must be a non-empty string, got %v", ErrInvalidConfig, KeyTargets, i, t)
			}
		}
	default:
		return fmt.Errorf("%w: %s must be a sequence, got %T", ErrInvalidConfig, KeyTargets, c[KeyTargets])
	}

	if raw, present := c[KeyFeatures]; present {
		features, ok := asMapping(raw)
		if !ok {
			return fmt.Errorf("%w: %s must be a mapping, got %T", ErrInvalidConfig, KeyFeatures, raw)
		}
		for name, v := range features {
			if _, ok := v.(bool); !ok {
				return fmt.Errorf("%w: %s.%s must be a boolean, got %v", ErrInvalidConfig, KeyFeatures, name, v)
			}
		}
	}

	return nil
}
