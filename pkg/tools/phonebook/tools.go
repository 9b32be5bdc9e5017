package phonebook

import (
	"context"

	"github.com/radworks/radchat/pkg/tools"
)

// Tools returns the directory tool set backed by one catalog.
func Tools(dir *Directory) []tools.Tool {
	return []tools.Tool{
		&SearchTool{dir: dir},
		&ReadingRoomTool{dir: dir},
		&ProcedureTool{dir: dir},
	}
}

// SearchTool searches the whole directory.
type SearchTool struct {
	dir *Directory
}

func (t *SearchTool) Name() string {
	return "search_phone_directory"
}

func (t *SearchTool) Description() string {
	return "Search the radiology phone directory for contacts including reading rooms, scheduling lines, tech teams, and procedure contacts. Returns contacts sorted by relevance with current availability status."
}

func (t *SearchTool) JSONSchema() map[string]any {
	schema := tools.NewJSONSchema()
	tools.AddProperty(schema, "query", tools.JSONSchemaProperty{
		Type:        "string",
		Description: "Search term (e.g., 'CT reading room', 'MRI scheduling', 'VIR', 'chest')",
	})
	tools.AddProperty(schema, "modality", tools.JSONSchemaProperty{
		Type:        "string",
		Description: "Filter by imaging modality",
		Enum:        []any{"CT", "MRI", "XR", "US", "PET", "nuclear medicine", "mammography"},
	})
	tools.AddProperty(schema, "contact_type", tools.JSONSchemaProperty{
		Type:        "string",
		Description: "Filter by contact type",
		Enum:        []any{"interpretation_questions", "scheduling_inpatient", "tech_scheduling", "scanner_direct", "procedure_request"},
	})
	tools.AddProperty(schema, "location", tools.JSONSchemaProperty{
		Type:        "string",
		Description: "Filter by location",
	})
	tools.AddRequired(schema, "query")
	return schema
}

func (t *SearchTool) Execute(ctx context.Context, params map[string]any) (map[string]any, error) {
	result := t.dir.Search(
		tools.StringParam(params, "query"),
		tools.StringParam(params, "modality"),
		tools.StringParam(params, "contact_type"),
		tools.StringParam(params, "location"),
	)
	return tools.Payload(result)
}

// ReadingRoomTool resolves the interpretation line for a modality.
type ReadingRoomTool struct {
	dir *Directory
}

func (t *ReadingRoomTool) Name() string {
	return "get_reading_room_contact"
}

func (t *ReadingRoomTool) Description() string {
	return "Get the reading room phone number for a specific imaging modality. Automatically considers current time for after-hours routing."
}

func (t *ReadingRoomTool) JSONSchema() map[string]any {
	schema := tools.NewJSONSchema()
	tools.AddProperty(schema, "modality", tools.JSONSchemaProperty{
		Type:        "string",
		Description: "Imaging modality (CT, MRI, XR, US, PET)",
	})
	tools.AddProperty(schema, "body_region", tools.JSONSchemaProperty{
		Type:        "string",
		Description: "Body region (neuro, chest, body, abdomen, msk, breast, pediatric)",
	})
	tools.AddRequired(schema, "modality")
	return schema
}

func (t *ReadingRoomTool) Execute(ctx context.Context, params map[string]any) (map[string]any, error) {
	result := t.dir.ReadingRoom(
		tools.StringParam(params, "modality"),
		tools.StringParam(params, "body_region"),
	)
	return tools.Payload(result)
}

// ProcedureTool resolves who takes a procedure request.
type ProcedureTool struct {
	dir *Directory
}

func (t *ProcedureTool) Name() string {
	return "get_procedure_contact"
}

func (t *ProcedureTool) Description() string {
	return "Get contact for procedure requests like PICC lines, biopsies, drains, paracentesis, thoracentesis."
}

func (t *ProcedureTool) JSONSchema() map[string]any {
	schema := tools.NewJSONSchema()
	tools.AddProperty(schema, "procedure", tools.JSONSchemaProperty{
		Type:        "string",
		Description: "Procedure type (picc_line, tunneled_line, biopsy, drain, paracentesis, thoracentesis, lumbar_puncture)",
	})
	tools.AddRequired(schema, "procedure")
	return schema
}

func (t *ProcedureTool) Execute(ctx context.Context, params map[string]any) (map[string]any, error) {
	result := t.dir.ProcedureContact(tools.StringParam(params, "procedure"))
	return tools.Payload(result)
}
