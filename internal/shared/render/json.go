package render

import (
	"encoding/json"
	"net/http"
	"reflect"

	"github.com/reshetovitsme/mobile-portal/internal/shared/device"
)

// JSON serves the data context itself, for ?format=json or JSON-only clients.
type JSON struct{}

func (JSON) Accepts(r *http.Request, _ device.Profile) bool {
	return r.URL.Query().Get("format") == "json" || r.Header.Get("Accept") == "application/json"
}

func (JSON) Write(w http.ResponseWriter, _ device.Profile, status int, data Context, _ string) error {
	body, err := json.Marshal(Plain(map[string]any(data)))
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(body)
	return err
}

// Plain drops values JSON cannot represent, such as the callbacks some
// providers attach to metadata.
func Plain(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			if isFunc(val) {
				continue
			}
			out[k] = Plain(val)
		}
		return out
	case Context:
		return Plain(map[string]any(t))
	case []any:
		out := make([]any, 0, len(t))
		for _, val := range t {
			if isFunc(val) {
				continue
			}
			out = append(out, Plain(val))
		}
		return out
	default:
		return v
	}
}

func isFunc(v any) bool {
	return v != nil && reflect.TypeOf(v).Kind() == reflect.Func
}

// WriteJSON writes a JSON response with the given status code and data.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
