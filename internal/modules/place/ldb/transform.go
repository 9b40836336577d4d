package ldb

// Transform converts a decoded response into plain maps and slices that
// templates and JSON can consume. Plain input comes back unchanged in
// shape, so applying it twice is harmless.
func Transform(v any) any {
	switch t := v.(type) {
	case *Object:
		if t == nil {
			return nil
		}
		out := make(map[string]any, len(t.Fields))
		for _, f := range t.Fields {
			out[f.Name] = Transform(f.Value)
		}
		return out
	case map[string]any:
		if t == nil {
			return t
		}
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = Transform(val)
		}
		return out
	case []any:
		if t == nil {
			return t
		}
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = Transform(val)
		}
		return out
	default:
		return v
	}
}

// TransformMap is Transform for results known to be structures.
func TransformMap(o *Object) map[string]any {
	m, _ := Transform(o).(map[string]any)
	return m
}
