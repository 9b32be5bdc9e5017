package tools

import (
	"context"
)

// Tool represents a function that can be called by an LLM. Results are plain
// JSON-shaped maps so they can be embedded into the response stream verbatim.
type Tool interface {
	// Name returns the unique identifier for this tool
	Name() string

	// Description returns a human/LLM-readable description of what this tool does
	Description() string

	// JSONSchema returns the JSON Schema for the tool's parameters
	JSONSchema() map[string]any

	// Execute runs the tool with the given parameters
	Execute(ctx context.Context, params map[string]any) (map[string]any, error)
}

// JSONSchemaProperty represents a property in a JSON Schema
type JSONSchemaProperty struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Enum        []any  `json:"enum,omitempty"`
}

// NewJSONSchema creates a basic JSON Schema structure
func NewJSONSchema() map[string]any {
	return map[string]any{
		"type":       "object",
		"properties": make(map[string]any),
		"required":   []string{},
	}
}

// AddProperty adds a property to a JSON Schema
func AddProperty(schema map[string]any, name string, property JSONSchemaProperty) {
	if properties, ok := schema["properties"].(map[string]any); ok {
		properties[name] = property
	}
}

// AddRequired adds a required field to a JSON Schema
func AddRequired(schema map[string]any, field string) {
	if required, ok := schema["required"].([]string); ok {
		schema["required"] = append(required, field)
	}
}

// ToolError represents an error from tool execution
type ToolError struct {
	ToolName string
	Message  string
	Cause    error
}

func (e ToolError) Error() string {
	if e.Cause != nil {
		return e.ToolName + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.ToolName + ": " + e.Message
}

func (e ToolError) Unwrap() error {
	return e.Cause
}
