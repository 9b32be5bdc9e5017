package tui

import "strings"

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner is the thinking indicator shown while a tool runs. The label names
// what the assistant is doing; the frame advances on the app's tick.
type Spinner struct {
	IsVisible bool
	Frame     int
	Label     string
}

func NewSpinner() Spinner {
	return Spinner{}
}

func (s Spinner) Show(tool string) Spinner {
	// Reset the animation when becoming visible
	if !s.IsVisible {
		s.Frame = 0
	}
	s.IsVisible = true
	s.Label = labelForTool(tool)
	return s
}

func (s Spinner) Hide() Spinner {
	s.IsVisible = false
	s.Label = ""
	return s
}

func (s Spinner) NextFrame() Spinner {
	if !s.IsVisible {
		return s
	}
	s.Frame = (s.Frame + 1) % len(spinnerFrames)
	return s
}

func (s Spinner) DisplayText() string {
	if !s.IsVisible {
		return ""
	}
	return spinnerFrames[s.Frame] + " " + s.Label
}

// labelForTool maps a tool name to the activity line shown to the user.
func labelForTool(tool string) string {
	switch {
	case tool == "":
		return "Thinking..."
	case strings.Contains(tool, "acr"):
		return "Checking ACR Appropriateness Criteria..."
	case tool == "get_reading_room_contact":
		return "Finding the reading room..."
	case tool == "get_procedure_contact":
		return "Finding the procedure contact..."
	case strings.Contains(tool, "phone"):
		return "Searching the phone directory..."
	default:
		return "Thinking..."
	}
}
