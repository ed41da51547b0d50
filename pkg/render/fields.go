package render

// fields wraps a component's loose data map with typed, defaulted access.
// All the "field missing, use fallback" logic lives here so the block
// renderers read like straight-line markup construction.
//
// Numeric handling is deliberately permissive: values arrive as int from
// registry defaults, as float64 from JSON, and as assorted integer widths
// from msgpack, depending on which path loaded the document.
type fields map[string]any

func (f fields) str(key, fallback string) string {
	if v, ok := f[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

// rawStr returns the string value even when empty, falling back only when
// the key is absent or not a string. Used where "" is meaningful.
func (f fields) rawStr(key, fallback string) string {
	if v, ok := f[key].(string); ok {
		return v
	}
	return fallback
}

func (f fields) integer(key string, fallback int) int {
	switch v := f[key].(type) {
	case int:
		return v
	case int8:
		return int(v)
	case int16:
		return int(v)
	case int32:
		return int(v)
	case int64:
		return int(v)
	case uint8:
		return int(v)
	case uint16:
		return int(v)
	case uint32:
		return int(v)
	case uint64:
		return int(v)
	case float32:
		return int(v)
	case float64:
		return int(v)
	default:
		return fallback
	}
}

func (f fields) boolean(key string, fallback bool) bool {
	if v, ok := f[key].(bool); ok {
		return v
	}
	return fallback
}

// strings flattens a list field into its string members, skipping
// everything else. Accepts both []any and []string encodings.
func (f fields) strings(key string) []string {
	switch v := f[key].(type) {
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// maps flattens a list field into its object members.
func (f fields) maps(key string) []map[string]any {
	v, ok := f[key].([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(v))
	for _, item := range v {
		if m, ok := item.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}
