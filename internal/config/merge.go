package config

// Returns base with override applied.
//
// For every key in override: when both values are mappings they are merged
// recursively; otherwise the override value replaces the base value in full.
// Keys absent from override keep their base values. The result is a deep
// copy; neither input is modified and the result shares no mutable state
// with them. A nil override yields a deep copy of base.
func Merge(base, override Config) Config {
	merged := cloneMapping(base)
	mergeInto(merged, override)
	return Config(merged)
}

// Applies src onto dst, which must be exclusively owned by the caller.
func mergeInto(dst, src map[string]any) {
	for k, v := range src {
		if sm, ok := asMapping(v); ok {
			if dm, ok := asMapping(dst[k]); ok {
				mergeInto(dm, sm)
				continue
			}
		}
		dst[k] = cloneValue(v)
	}
}

func cloneMapping(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneMapping(t)
	case Config:
		return cloneMapping(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	case []string:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = e
		}
		return out
	}
	return v
}
