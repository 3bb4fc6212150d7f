package apiclient

import (
	"encoding/json"
	"fmt"
)

// Envelope is a decoded JSON response body, returned to callers unchanged.
type Envelope map[string]any

// Decode re-decodes the member named key into v.
func (e Envelope) Decode(key string, v any) error {
	raw, ok := e[key]
	if !ok {
		return fmt.Errorf("envelope has no %q member", key)
	}
	b, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("re-encode %q: %w", key, err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("decode %q: %w", key, err)
	}
	return nil
}

// String returns the string found by walking keys through nested objects,
// or "" when any step is missing.
func (e Envelope) String(keys ...string) string {
	var cur any = map[string]any(e)
	for _, k := range keys {
		m, ok := cur.(map[string]any)
		if !ok {
			return ""
		}
		cur = m[k]
	}
	s, _ := cur.(string)
	return s
}
