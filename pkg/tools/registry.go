package tools

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/radworks/radchat/pkg/logger"
)

// Registry manages available tools and their execution
type Registry struct {
	tools map[string]Tool
	mu    sync.RWMutex
}

// NewRegistry creates a new tool registry
func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]Tool),
	}
}

// Register adds a tool to the registry
func (r *Registry) Register(tool Tool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := tool.Name()
	if name == "" {
		return fmt.Errorf("tool name cannot be empty")
	}

	if _, exists := r.tools[name]; exists {
		return fmt.Errorf("tool %s already registered", name)
	}

	r.tools[name] = tool
	return nil
}

// Get retrieves a tool by name
func (r *Registry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tool, exists := r.tools[name]
	return tool, exists
}

// List returns all registered tool names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetTools returns all registered tools in name order.
func (r *Registry) GetTools() []Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]Tool, 0, len(names))
	for _, name := range names {
		out = append(out, r.tools[name])
	}
	return out
}

// Execute runs the named tool. Unknown tools and execution failures come back
// as an error payload rather than a Go error so the result can always be
// embedded into the stream.
func (r *Registry) Execute(ctx context.Context, name string, params map[string]any) map[string]any {
	tool, ok := r.Get(name)
	if !ok {
		logger.Warn("tools: unknown tool requested: %s", name)
		return map[string]any{"error": fmt.Sprintf("Unknown tool: %s", name)}
	}

	result, err := tool.Execute(ctx, params)
	if err != nil {
		logger.Error("tools: %s failed: %v", name, err)
		return map[string]any{"error": err.Error()}
	}
	return result
}

// Definitions returns the schema listing served by the tools endpoint.
func (r *Registry) Definitions() []map[string]any {
	defs := make([]map[string]any, 0)
	for _, tool := range r.GetTools() {
		defs = append(defs, map[string]any{
			"name":         tool.Name(),
			"description":  tool.Description(),
			"input_schema": tool.JSONSchema(),
		})
	}
	return defs
}
