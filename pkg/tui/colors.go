package tui

import "github.com/gdamore/tcell/v2"

// Color constants for the terminal chat view, matching the warm base16
// palette used elsewhere in the app.
var (
	ColorUserText      = tcell.NewRGBColor(147, 181, 107) // Green - user messages
	ColorAssistantText = tcell.NewRGBColor(107, 147, 181) // Blue - assistant messages
	ColorErrorText     = tcell.NewRGBColor(217, 95, 95)   // Red - error artifacts
	ColorDimText       = tcell.NewRGBColor(92, 80, 68)    // Comment brown - secondary text
	ColorMetaText      = tcell.NewRGBColor(131, 113, 95)  // Dark foreground - timestamps
	ColorThinking      = tcell.NewRGBColor(151, 107, 181) // Purple - thinking indicator

	ColorCardBorder = tcell.NewRGBColor(92, 80, 68)    // Card frame
	ColorCardTitle  = tcell.NewRGBColor(245, 183, 97)  // Yellow - card titles
	ColorCardBody   = tcell.NewRGBColor(171, 147, 123) // Default foreground
	ColorCardMeta   = tcell.NewRGBColor(97, 175, 175)  // Cyan - card metadata

	ColorAvailable   = tcell.NewRGBColor(147, 181, 107) // Green - reachable now
	ColorUnavailable = tcell.NewRGBColor(131, 113, 95)  // Muted - not on shift

	ColorBandFirstLine = tcell.NewRGBColor(147, 181, 107) // Usually appropriate
	ColorBandAlternate = tcell.NewRGBColor(245, 183, 97)  // May be appropriate
	ColorBandAvoid     = tcell.NewRGBColor(217, 95, 95)   // Usually not appropriate

	ColorPrompt    = tcell.NewRGBColor(235, 135, 85) // Orange - input prompt
	ColorStatusBar = tcell.NewRGBColor(131, 113, 95)
)

// Style presets combining colors with text attributes
var (
	StyleUserText      = tcell.StyleDefault.Foreground(ColorUserText)
	StyleAssistantText = tcell.StyleDefault.Foreground(ColorAssistantText)
	StyleErrorText     = tcell.StyleDefault.Foreground(ColorErrorText)
	StyleDimText       = tcell.StyleDefault.Foreground(ColorDimText).Dim(true)
	StyleMetaText      = tcell.StyleDefault.Foreground(ColorMetaText)
	StyleThinking      = tcell.StyleDefault.Foreground(ColorThinking).Italic(true)

	StyleDateHeader = tcell.StyleDefault.Foreground(ColorMetaText).Bold(true)
	StyleFooter     = tcell.StyleDefault.Foreground(ColorDimText).Italic(true)

	StyleCardBorder = tcell.StyleDefault.Foreground(ColorCardBorder)
	StyleCardTitle  = tcell.StyleDefault.Foreground(ColorCardTitle).Bold(true)
	StyleCardBody   = tcell.StyleDefault.Foreground(ColorCardBody)
	StyleCardMeta   = tcell.StyleDefault.Foreground(ColorCardMeta)

	StyleAvailable   = tcell.StyleDefault.Foreground(ColorAvailable)
	StyleUnavailable = tcell.StyleDefault.Foreground(ColorUnavailable)

	StyleBandFirstLine = tcell.StyleDefault.Foreground(ColorBandFirstLine)
	StyleBandAlternate = tcell.StyleDefault.Foreground(ColorBandAlternate)
	StyleBandAvoid     = tcell.StyleDefault.Foreground(ColorBandAvoid)

	StylePrompt    = tcell.StyleDefault.Foreground(ColorPrompt).Bold(true)
	StyleStatusBar = tcell.StyleDefault.Foreground(ColorStatusBar)
)
