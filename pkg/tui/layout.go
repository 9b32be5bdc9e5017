package tui

type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

func NewRect(x, y, width, height int) Rect {
	return Rect{
		X:      x,
		Y:      y,
		Width:  width,
		Height: height,
	}
}

func (r Rect) Right() int {
	return r.X + r.Width
}

func (r Rect) Bottom() int {
	return r.Y + r.Height
}

func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

type Layout struct {
	ScreenWidth  int
	ScreenHeight int
}

func NewLayout(width, height int) Layout {
	return Layout{
		ScreenWidth:  width,
		ScreenHeight: height,
	}
}

// CalculateAreas splits the screen into the transcript, the thinking
// indicator row, the bordered input box and the status bar.
func (l Layout) CalculateAreas() (transcriptArea, indicatorArea, inputArea, statusArea Rect) {
	statusHeight := 1
	inputHeight := 3
	indicatorHeight := 1
	transcriptHeight := l.ScreenHeight - statusHeight - inputHeight - indicatorHeight

	if transcriptHeight < 1 {
		transcriptHeight = 1
	}

	// Horizontal padding for the transcript only; input and status run full
	// width.
	padding := 2
	availableWidth := l.ScreenWidth - (2 * padding)
	if availableWidth < 1 {
		availableWidth = l.ScreenWidth
		padding = 0
	}

	transcriptArea = NewRect(padding, 0, availableWidth, transcriptHeight)
	indicatorArea = NewRect(padding, transcriptHeight, availableWidth, indicatorHeight)
	inputArea = NewRect(0, transcriptHeight+indicatorHeight, l.ScreenWidth, inputHeight)
	statusArea = NewRect(0, transcriptHeight+indicatorHeight+inputHeight, l.ScreenWidth, statusHeight)

	return transcriptArea, indicatorArea, inputArea, statusArea
}

// WrapText breaks text into lines no wider than width, preferring to break
// at spaces. Explicit newlines always break.
func WrapText(text string, width int) []string {
	if width <= 0 || text == "" {
		return []string{}
	}

	var lines []string
	for _, paragraph := range splitLines(text) {
		runes := []rune(paragraph)
		if len(runes) == 0 {
			lines = append(lines, "")
			continue
		}

		for len(runes) > 0 {
			if len(runes) <= width {
				lines = append(lines, string(runes))
				break
			}

			breakPos := width
			for i := width - 1; i >= 0; i-- {
				if runes[i] == ' ' {
					breakPos = i
					break
				}
			}
			if breakPos == 0 {
				breakPos = width
			}

			lines = append(lines, string(runes[:breakPos]))
			runes = runes[breakPos:]
			for len(runes) > 0 && runes[0] == ' ' {
				runes = runes[1:]
			}
		}
	}

	return lines
}

func splitLines(text string) []string {
	var out []string
	start := 0
	for i, r := range text {
		if r == '\n' {
			out = append(out, text[start:i])
			start = i + 1
		}
	}
	out = append(out, text[start:])
	return out
}

// VisibleWindow clamps scroll and returns the slice of lines that fit in
// height starting at the (clamped) scroll offset.
func VisibleWindow(lines []Line, height, scroll int) (visible []Line, startLine int) {
	if height <= 0 || len(lines) == 0 {
		return []Line{}, 0
	}

	maxScroll := len(lines) - height
	if maxScroll < 0 {
		maxScroll = 0
	}
	if scroll > maxScroll {
		scroll = maxScroll
	}
	if scroll < 0 {
		scroll = 0
	}

	end := scroll + height
	if end > len(lines) {
		end = len(lines)
	}
	return lines[scroll:end], scroll
}
