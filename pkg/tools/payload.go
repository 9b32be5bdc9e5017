package tools

import (
	"encoding/json"
	"fmt"
)

// Payload converts a typed result into the JSON-shaped map every tool
// returns, via one marshal round trip so struct tags decide the keys.
func Payload(v any) (map[string]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode tool result: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to decode tool result: %w", err)
	}
	return m, nil
}

// StringParam pulls an optional string parameter out of a tool call.
func StringParam(params map[string]any, key string) string {
	if v, ok := params[key].(string); ok {
		return v
	}
	return ""
}
