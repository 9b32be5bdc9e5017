package acr

import (
	"context"

	"github.com/radworks/radchat/pkg/logger"
	"github.com/radworks/radchat/pkg/tools"
)

// Tools returns the criteria tool set backed by one library. A non-nil
// semantic index upgrades topic search to similarity matching.
func Tools(lib *Library, semantic *SemanticIndex) []tools.Tool {
	return []tools.Tool{
		&SearchTool{lib: lib, semantic: semantic},
		&DetailsTool{lib: lib},
		&ListTool{lib: lib},
	}
}

// SearchTool finds criteria topics for a clinical scenario.
type SearchTool struct {
	lib      *Library
	semantic *SemanticIndex
}

func (t *SearchTool) Name() string {
	return "search_acr_criteria"
}

func (t *SearchTool) Description() string {
	return "Search ACR Appropriateness Criteria for imaging guidance. Use this when a clinician asks about appropriate imaging for a clinical scenario. Returns topics with appropriateness guidance."
}

func (t *SearchTool) JSONSchema() map[string]any {
	schema := tools.NewJSONSchema()
	tools.AddProperty(schema, "query", tools.JSONSchemaProperty{
		Type:        "string",
		Description: "Clinical scenario or search term (e.g., 'acute chest pain', 'headache', 'abdominal trauma', 'pulmonary embolism')",
	})
	tools.AddProperty(schema, "modality", tools.JSONSchemaProperty{
		Type:        "string",
		Description: "Filter by imaging modality",
		Enum:        []any{"ct", "mri", "us", "xray", "nuclear", "fluoroscopy", "mammography"},
	})
	tools.AddProperty(schema, "body_region", tools.JSONSchemaProperty{
		Type:        "string",
		Description: "Filter by body region",
		Enum:        []any{"head", "neck", "spine", "chest", "abdomen", "pelvis", "msk", "vascular", "breast"},
	})
	tools.AddRequired(schema, "query")
	return schema
}

func (t *SearchTool) Execute(ctx context.Context, params map[string]any) (map[string]any, error) {
	query := tools.StringParam(params, "query")
	modality := tools.StringParam(params, "modality")
	bodyRegion := tools.StringParam(params, "body_region")

	if t.semantic != nil {
		if result, err := t.semantic.Search(ctx, query, modality, bodyRegion); err == nil {
			return tools.Payload(result)
		} else {
			logger.Warn("acr: semantic search failed, using keyword search: %v", err)
		}
	}
	return tools.Payload(t.lib.Search(query, modality, bodyRegion))
}

// DetailsTool returns the scored procedures of one topic.
type DetailsTool struct {
	lib *Library
}

func (t *DetailsTool) Name() string {
	return "get_acr_topic_details"
}

func (t *DetailsTool) Description() string {
	return "Get detailed appropriateness ratings for a specific ACR topic. Returns all procedures with their appropriateness scores (1-9)."
}

func (t *DetailsTool) JSONSchema() map[string]any {
	schema := tools.NewJSONSchema()
	tools.AddProperty(schema, "topic_id", tools.JSONSchemaProperty{
		Type:        "string",
		Description: "ACR topic ID from search results",
	})
	tools.AddRequired(schema, "topic_id")
	return schema
}

func (t *DetailsTool) Execute(ctx context.Context, params map[string]any) (map[string]any, error) {
	return tools.Payload(t.lib.Details(tools.StringParam(params, "topic_id")))
}

// ListTool lists the browsable topic index.
type ListTool struct {
	lib *Library
}

func (t *ListTool) Name() string {
	return "list_acr_topics"
}

func (t *ListTool) Description() string {
	return "List all available ACR Appropriateness Criteria topics. Use when browsing or when the clinical scenario is unclear."
}

func (t *ListTool) JSONSchema() map[string]any {
	schema := tools.NewJSONSchema()
	tools.AddProperty(schema, "body_region", tools.JSONSchemaProperty{
		Type:        "string",
		Description: "Filter by body region",
		Enum:        []any{"head", "neck", "spine", "chest", "abdomen", "pelvis", "msk", "vascular", "breast"},
	})
	return schema
}

func (t *ListTool) Execute(ctx context.Context, params map[string]any) (map[string]any, error) {
	return tools.Payload(t.lib.List(tools.StringParam(params, "body_region")))
}
