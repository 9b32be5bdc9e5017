package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/radworks/radchat/pkg/chat"
	"github.com/radworks/radchat/pkg/session"
	"github.com/radworks/radchat/pkg/toolresult"
)

type blockKind int

const (
	blockDateHeader blockKind = iota
	blockUserText
	blockAssistantText
	blockCard
	blockFooter
	blockError
)

// block is one logical transcript entry. Blocks are wrapped into styled
// lines at render time so resizes reflow for free.
type block struct {
	kind    blockKind
	text    string
	card    toolresult.Card
	when    time.Time
	labeled bool // first assistant block of its turn carries the role prefix
}

// View owns everything the chat screen shows: the finalized conversation,
// the turn currently streaming in, the thinking indicator and the scroll
// state. It is the timeline's renderer; all mutation happens on the app's
// event loop goroutine.
type View struct {
	coord *session.Coordinator
	conv  chat.Conversation
	turn  *chat.Turn

	blocks          []block
	activeTextBlock int
	spinner         Spinner

	scroll     int
	stick      bool
	lastTotal  int
	lastHeight int

	now func() time.Time
}

// NewView creates an empty chat view. A nil clock defaults to time.Now.
func NewView(coord *session.Coordinator, model string, clock func() time.Time) *View {
	if clock == nil {
		clock = time.Now
	}
	return &View{
		coord:           coord,
		conv:            chat.NewConversation(model),
		activeTextBlock: -1,
		spinner:         NewSpinner(),
		stick:           true,
		now:             clock,
	}
}

// Conversation returns the finalized messages so far.
func (v *View) Conversation() chat.Conversation {
	return v.conv
}

// Spinner exposes the thinking indicator for rendering and animation.
func (v *View) Spinner() Spinner {
	return v.spinner
}

// AdvanceSpinner moves the indicator animation one frame.
func (v *View) AdvanceSpinner() {
	v.spinner = v.spinner.NextFrame()
}

// SubmitUser records a sent message and scrolls it into view.
func (v *View) SubmitUser(content string) chat.Message {
	msg := chat.NewUserMessage(content)
	v.conv = chat.AddMessage(v.conv, msg)
	v.appendDateHeader(msg.Timestamp)
	v.blocks = append(v.blocks, block{kind: blockUserText, text: msg.Content, when: msg.Timestamp, labeled: true})
	v.activeTextBlock = -1
	v.stick = true
	return msg
}

// Reset clears the view for a fresh conversation.
func (v *View) Reset(model string) {
	v.conv = chat.NewConversation(model)
	v.turn = nil
	v.blocks = nil
	v.activeTextBlock = -1
	v.spinner = v.spinner.Hide()
	v.scroll = 0
	v.stick = true
}

// RevealTurn starts the assistant's bubble for the streaming turn.
func (v *View) RevealTurn() {
	v.turn = chat.NewTurn()
	v.appendDateHeader(v.turn.Timestamp)
	v.activeTextBlock = -1
}

func (v *View) ShowThinking(tool string) {
	v.spinner = v.spinner.Show(tool)
}

func (v *View) HideThinking() {
	v.spinner = v.spinner.Hide()
}

func (v *View) AppendText(text string) {
	if v.turn == nil {
		v.RevealTurn()
	}
	v.turn.AppendText(text)

	if v.activeTextBlock >= 0 {
		v.blocks[v.activeTextBlock].text += text
		return
	}

	labeled := !v.turnHasBlocks()
	v.blocks = append(v.blocks, block{
		kind:    blockAssistantText,
		text:    text,
		when:    v.turn.Timestamp,
		labeled: labeled,
	})
	v.activeTextBlock = len(v.blocks) - 1
}

func (v *View) AppendCard(card toolresult.Card) {
	if v.turn == nil {
		v.RevealTurn()
	}
	v.turn.AppendCard(card)
	v.blocks = append(v.blocks, block{kind: blockCard, card: card, when: v.turn.Timestamp})
	v.activeTextBlock = -1
}

func (v *View) AttachFooter(toolsUsed bool) {
	if v.turn == nil {
		return
	}
	v.turn.Finalize(toolsUsed)
	v.blocks = append(v.blocks, block{kind: blockFooter, when: v.now(), labeled: toolsUsed})
	v.conv = chat.AddMessage(v.conv, chat.NewAssistantMessage(v.turn))
	v.turn = nil
	v.activeTextBlock = -1
}

func (v *View) ShowError(message string) {
	v.blocks = append(v.blocks, block{kind: blockError, text: message, when: v.now()})
	if v.turn != nil {
		v.turn.Fail(message)
		v.conv = chat.AddMessage(v.conv, chat.NewAssistantMessage(v.turn))
		v.turn = nil
	} else {
		v.conv = chat.AddMessage(v.conv, chat.NewErrorMessage(message))
	}
	v.activeTextBlock = -1
}

func (v *View) ScrollToBottom() {
	v.stick = true
}

// ScrollBy moves the viewport and detaches it from the bottom when moving
// up. Clamping happens on the next render, when the line count is known.
func (v *View) ScrollBy(delta int) {
	v.scroll += delta
	if delta < 0 {
		v.stick = false
	}
	if v.scroll < 0 {
		v.scroll = 0
	}
}

func (v *View) turnHasBlocks() bool {
	for i := len(v.blocks) - 1; i >= 0; i-- {
		switch v.blocks[i].kind {
		case blockAssistantText, blockCard:
			return true
		case blockDateHeader:
			continue
		default:
			return false
		}
	}
	return false
}

func (v *View) appendDateHeader(t time.Time) {
	if !v.coord.NeedsDateHeader(t) {
		return
	}
	v.blocks = append(v.blocks, block{kind: blockDateHeader, text: t.Format("Monday, January 2"), when: t})
}

// Lines flattens the transcript into styled, wrapped lines at width.
func (v *View) Lines(width int) []Line {
	if width <= 0 {
		return nil
	}

	var lines []Line
	for i, b := range v.blocks {
		switch b.kind {
		case blockDateHeader:
			if i > 0 {
				lines = append(lines, Line{})
			}
			lines = append(lines, Line{Text: "── " + b.text + " ──", Style: StyleDateHeader})
			lines = append(lines, Line{})

		case blockUserText:
			prefix := fmt.Sprintf("[%s] You: ", b.when.Format("15:04"))
			lines = append(lines, prefixedLines(prefix, b.text, StyleUserText, width)...)
			lines = append(lines, Line{})

		case blockAssistantText:
			if b.labeled {
				prefix := fmt.Sprintf("[%s] Assistant: ", b.when.Format("15:04"))
				lines = append(lines, prefixedLines(prefix, b.text, StyleAssistantText, width)...)
			} else {
				for _, wrapped := range WrapText(b.text, width) {
					lines = append(lines, Line{Text: wrapped, Style: StyleAssistantText})
				}
			}

		case blockCard:
			lines = append(lines, FormatCard(b.card, width)...)

		case blockFooter:
			footer := b.when.Format("15:04")
			if b.labeled {
				footer = "✓ Verified with tools · " + footer
			}
			lines = append(lines, Line{Text: footer, Style: StyleFooter})
			lines = append(lines, Line{})

		case blockError:
			for _, wrapped := range WrapText("✗ "+b.text, width) {
				lines = append(lines, Line{Text: wrapped, Style: StyleErrorText})
			}
			lines = append(lines, Line{})
		}
	}
	return lines
}

// prefixedLines wraps text under a role prefix, indenting continuation rows
// to the prefix width.
func prefixedLines(prefix, text string, style tcell.Style, width int) []Line {
	avail := width - len([]rune(prefix))
	if avail < 8 {
		avail = 8
	}
	wrapped := WrapText(text, avail)
	if len(wrapped) == 0 {
		wrapped = []string{""}
	}

	lines := make([]Line, 0, len(wrapped))
	lines = append(lines, Line{Text: prefix + wrapped[0], Style: style})
	indent := strings.Repeat(" ", len([]rune(prefix)))
	for _, rest := range wrapped[1:] {
		lines = append(lines, Line{Text: indent + rest, Style: style})
	}
	return lines
}
