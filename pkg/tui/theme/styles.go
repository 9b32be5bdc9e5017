package theme

import (
	"github.com/charmbracelet/lipgloss"
)

// Base16 color palette with orange, brown, yellow, and pink tones
// Based on Autumn theme with warm earth tones
var (
	// Base colors (backgrounds and text)
	ColorBase00 = lipgloss.Color("#1a1816") // Dark background
	ColorBase01 = lipgloss.Color("#282420") // Lighter background
	ColorBase02 = lipgloss.Color("#36302a") // Selection background
	ColorBase03 = lipgloss.Color("#5c5044") // Comments, invisibles
	ColorBase04 = lipgloss.Color("#83715f") // Dark foreground
	ColorBase05 = lipgloss.Color("#ab937b") // Default foreground
	ColorBase06 = lipgloss.Color("#d3b597") // Light foreground
	ColorBase07 = lipgloss.Color("#f5d7b9") // Lightest foreground

	// Accent colors
	ColorRed    = lipgloss.Color("#d95f5f") // Errors
	ColorOrange = lipgloss.Color("#eb8755") // Focus, prompts
	ColorYellow = lipgloss.Color("#f5b761") // Warnings, cautions
	ColorGreen  = lipgloss.Color("#93b56b") // Success, availability
	ColorCyan   = lipgloss.Color("#61afaf") // Info, metadata
	ColorBlue   = lipgloss.Color("#6b93b5") // Assistant text
	ColorPurple = lipgloss.Color("#976bb5") // Thinking indicator
	ColorBrown  = lipgloss.Color("#b57f6b") // Deprecated, special

	ColorBorder  = ColorBase03
	ColorFocus   = ColorOrange
	ColorSuccess = ColorGreen
	ColorWarning = ColorYellow
	ColorError   = ColorRed
	ColorInfo    = ColorCyan
	ColorMuted   = ColorBase03
)

// Styles holds the Lipgloss styles used by the headless renderer and card
// formatting.
type Styles struct {
	// Message styles
	UserMessage      lipgloss.Style
	AssistantMessage lipgloss.Style
	ErrorMessage     lipgloss.Style
	Footer           lipgloss.Style
	Thinking         lipgloss.Style

	// Card styles
	CardBorder    lipgloss.Style
	CardTitle     lipgloss.Style
	CardBody      lipgloss.Style
	CardMeta      lipgloss.Style
	Available     lipgloss.Style
	Unavailable   lipgloss.Style
	BandFirstLine lipgloss.Style
	BandAlternate lipgloss.Style
	BandAvoid     lipgloss.Style
	BandUnknown   lipgloss.Style
}

// DefaultStyles returns the default Lipgloss styles.
func DefaultStyles() *Styles {
	return &Styles{
		UserMessage: lipgloss.NewStyle().
			Foreground(ColorGreen),

		AssistantMessage: lipgloss.NewStyle().
			Foreground(ColorBlue),

		ErrorMessage: lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true),

		Footer: lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true),

		Thinking: lipgloss.NewStyle().
			Foreground(ColorPurple).
			Italic(true),

		CardBorder: lipgloss.NewStyle().
			Foreground(ColorBorder),

		CardTitle: lipgloss.NewStyle().
			Foreground(ColorYellow).
			Bold(true),

		CardBody: lipgloss.NewStyle().
			Foreground(ColorBase05),

		CardMeta: lipgloss.NewStyle().
			Foreground(ColorInfo),

		Available: lipgloss.NewStyle().
			Foreground(ColorSuccess),

		Unavailable: lipgloss.NewStyle().
			Foreground(ColorBase04),

		BandFirstLine: lipgloss.NewStyle().
			Foreground(ColorGreen),

		BandAlternate: lipgloss.NewStyle().
			Foreground(ColorYellow),

		BandAvoid: lipgloss.NewStyle().
			Foreground(ColorRed),

		BandUnknown: lipgloss.NewStyle().
			Foreground(ColorBase04),
	}
}
