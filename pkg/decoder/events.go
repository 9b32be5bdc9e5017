package decoder

import "encoding/json"

// Event is a decoded stream event. Events are produced in strict arrival
// order; consumers must not reorder them.
type Event interface {
	streamEvent()
}

// Text is a run of plain answer text.
type Text struct {
	Content string
}

// ToolStarted marks the beginning of a tool invocation.
type ToolStarted struct {
	ToolName string
}

// ToolCompleted carries the parsed payload of a finished tool invocation.
type ToolCompleted struct {
	ToolID  string
	Kind    string
	Payload ResultPayload
}

func (Text) streamEvent()          {}
func (ToolStarted) streamEvent()   {}
func (ToolCompleted) streamEvent() {}

// Result kinds embedded in result markers.
const (
	KindContacts = "contacts"
	KindACR      = "acr"
)

// ResultPayload is the JSON object wrapped by a result marker.
type ResultPayload struct {
	Type string          `json:"type"`
	Tool string          `json:"tool"`
	Data json.RawMessage `json:"data"`
}
