package redact

import "encoding/json"

const maxWalkDepth = 16

// redactExtra applies the redactor to every string leaf of passthrough
// fields. Values that fail to round-trip are left as they were.
func (r *Redactor) redactExtra(extra map[string]json.RawMessage) map[string]json.RawMessage {
	if len(extra) == 0 || len(r.rules) == 0 {
		return extra
	}
	out := make(map[string]json.RawMessage, len(extra))
	for k, raw := range extra {
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			out[k] = raw
			continue
		}
		data, err := json.Marshal(walkDepth(v, r.redactString, 0))
		if err != nil {
			out[k] = raw
			continue
		}
		out[k] = data
	}
	return out
}

func walkDepth(v any, fn func(string) string, depth int) any {
	if depth > maxWalkDepth {
		return v
	}
	switch val := v.(type) {
	case string:
		return fn(val)
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, child := range val {
			out[k] = walkDepth(child, fn, depth+1)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, child := range val {
			out[i] = walkDepth(child, fn, depth+1)
		}
		return out
	default:
		return v
	}
}
