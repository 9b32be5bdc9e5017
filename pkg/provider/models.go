package provider

// ModelInfo describes one selectable model in the catalog.
type ModelInfo struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Provider string `json:"provider"`
}

// catalog lists hosted models known to support function calling.
var catalog = []ModelInfo{
	{ID: "openai/gpt-4o", Name: "GPT-4o", Provider: "OpenAI"},
	{ID: "openai/gpt-4o-mini", Name: "GPT-4o Mini", Provider: "OpenAI"},
	{ID: "openai/gpt-4.1", Name: "GPT-4.1", Provider: "OpenAI"},
	{ID: "openai/gpt-4.1-mini", Name: "GPT-4.1 Mini", Provider: "OpenAI"},
	{ID: "openai/gpt-4.1-nano", Name: "GPT-4.1 Nano", Provider: "OpenAI"},
	{ID: "openai/o1", Name: "o1", Provider: "OpenAI"},
	{ID: "openai/o1-mini", Name: "o1 Mini", Provider: "OpenAI"},
	{ID: "openai/o3-mini", Name: "o3 Mini", Provider: "OpenAI"},
	{ID: "mistral-ai/mistral-large-2411", Name: "Mistral Large", Provider: "Mistral AI"},
	{ID: "mistral-ai/mistral-small-2503", Name: "Mistral Small", Provider: "Mistral AI"},
	{ID: "cohere/cohere-command-r", Name: "Command R", Provider: "Cohere"},
	{ID: "cohere/cohere-command-r-plus", Name: "Command R+", Provider: "Cohere"},
	{ID: "ai21-labs/jamba-1.5-large", Name: "Jamba 1.5 Large", Provider: "AI21 Labs"},
	{ID: "ai21-labs/jamba-1.5-mini", Name: "Jamba 1.5 Mini", Provider: "AI21 Labs"},
}

// ListModels returns the selectable model catalog.
func ListModels() []ModelInfo {
	out := make([]ModelInfo, len(catalog))
	copy(out, catalog)
	return out
}

// DefaultModel is used when a request names no model.
const DefaultModel = "openai/gpt-4o-mini"
