package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// RenderTranscript draws the conversation lines into area and reports the
// resulting viewport geometry to the coordinator. Returns the clamped
// scroll offset so the view can keep its state consistent.
func RenderTranscript(screen tcell.Screen, view *View, area Rect) {
	if area.Width <= 0 || area.Height <= 0 {
		return
	}

	lines := view.Lines(area.Width)

	if view.stick {
		view.scroll = len(lines) - area.Height
		if view.scroll < 0 {
			view.scroll = 0
		}
		view.stick = false
	}

	visible, start := VisibleWindow(lines, area.Height, view.scroll)
	view.scroll = start
	view.lastTotal = len(lines)
	view.lastHeight = area.Height

	clearArea(screen, area)
	for i, line := range visible {
		renderText(screen, area.X, area.Y+i, line.Text, line.Style, area.Width)
	}

	view.coord.SetViewport(start, len(lines), area.Height)
}

// RenderIndicator draws the thinking indicator row.
func RenderIndicator(screen tcell.Screen, spinner Spinner, area Rect) {
	if area.Width <= 0 || area.Height <= 0 {
		return
	}
	clearArea(screen, area)
	renderText(screen, area.X, area.Y, spinner.DisplayText(), StyleThinking, area.Width)
}

// RenderInput draws the bordered single-line editor with its cursor.
func RenderInput(screen tcell.Screen, input InputField, area Rect) {
	if area.Width <= 0 || area.Height < 3 {
		return
	}

	clearArea(screen, area)
	borderStyle := StyleCardBorder

	for x := area.X; x < area.X+area.Width; x++ {
		screen.SetContent(x, area.Y, '─', nil, borderStyle)
		screen.SetContent(x, area.Y+2, '─', nil, borderStyle)
	}
	screen.SetContent(area.X, area.Y, '┌', nil, borderStyle)
	screen.SetContent(area.X+area.Width-1, area.Y, '┐', nil, borderStyle)
	screen.SetContent(area.X, area.Y+2, '└', nil, borderStyle)
	screen.SetContent(area.X+area.Width-1, area.Y+2, '┘', nil, borderStyle)
	screen.SetContent(area.X, area.Y+1, '│', nil, borderStyle)
	screen.SetContent(area.X+area.Width-1, area.Y+1, '│', nil, borderStyle)

	if area.Width < 5 {
		return
	}

	inputY := area.Y + 1
	promptX := area.X + 1
	screen.SetContent(promptX, inputY, '>', nil, StylePrompt)

	inputX := promptX + 2
	inputWidth := area.Width - 4

	content := input.Content
	cursor := input.Cursor

	// Horizontal scroll keeps the cursor in view.
	start := 0
	if cursor >= inputWidth {
		start = cursor - inputWidth + 1
	}
	end := start + inputWidth
	if end > len(content) {
		end = len(content)
	}
	visible := content[start:end]
	cursorPos := cursor - start

	for i, r := range visible {
		screen.SetContent(inputX+i, inputY, r, nil, tcell.StyleDefault)
	}

	if cursorPos >= 0 && cursorPos < inputWidth {
		cursorStyle := tcell.StyleDefault.Reverse(true)
		if cursorPos < len(visible) {
			screen.SetContent(inputX+cursorPos, inputY, visible[cursorPos], nil, cursorStyle)
		} else {
			screen.SetContent(inputX+cursorPos, inputY, ' ', nil, cursorStyle)
		}
	}
}

// StatusBar is the bottom row content.
type StatusBar struct {
	Model     string
	Streaming bool
}

func RenderStatus(screen tcell.Screen, status StatusBar, area Rect) {
	if area.Width <= 0 || area.Height <= 0 {
		return
	}

	clearArea(screen, area)

	state := "ready"
	if status.Streaming {
		state = "responding"
	}
	text := fmt.Sprintf(" %s · %s · Ctrl+N new chat · Ctrl+C quit", status.Model, state)
	renderText(screen, area.X, area.Y, text, StyleStatusBar, area.Width)
}

func clearArea(screen tcell.Screen, area Rect) {
	for y := area.Y; y < area.Y+area.Height; y++ {
		for x := area.X; x < area.X+area.Width; x++ {
			screen.SetContent(x, y, ' ', nil, tcell.StyleDefault)
		}
	}
}

func renderText(screen tcell.Screen, x, y int, text string, style tcell.Style, maxWidth int) {
	col := 0
	for _, r := range text {
		if col >= maxWidth {
			break
		}
		screen.SetContent(x+col, y, r, nil, style)
		col++
	}
}
