package chat

import (
	"strings"
	"time"

	"github.com/radworks/radchat/pkg/toolresult"
)

// Segment is one ordered piece of an assistant turn's content. Text runs,
// tool cards, and error artifacts interleave in the order they streamed in.
type Segment interface {
	segment()
}

type TextSegment struct {
	Text string
}

type CardSegment struct {
	Card toolresult.Card
}

type ErrorSegment struct {
	Message string
}

func (TextSegment) segment()  {}
func (CardSegment) segment()  {}
func (ErrorSegment) segment() {}

// Footer is the provenance line attached when a turn finalizes. Verified
// means at least one tool result backed the answer.
type Footer struct {
	Verified bool
}

// Turn is the accumulated artifact of one assistant response. It is mutated
// while the stream is live and frozen once Finalized is set.
type Turn struct {
	Segments  []Segment
	Footer    *Footer
	Finalized bool
	Timestamp time.Time
}

func NewTurn() *Turn {
	return &Turn{Timestamp: time.Now()}
}

// AppendText coalesces consecutive text fragments into one segment so the
// turn does not fragment along arbitrary chunk boundaries.
func (t *Turn) AppendText(text string) {
	if t.Finalized || text == "" {
		return
	}
	if n := len(t.Segments); n > 0 {
		if last, ok := t.Segments[n-1].(TextSegment); ok {
			t.Segments[n-1] = TextSegment{Text: last.Text + text}
			return
		}
	}
	t.Segments = append(t.Segments, TextSegment{Text: text})
}

func (t *Turn) AppendCard(card toolresult.Card) {
	if t.Finalized {
		return
	}
	t.Segments = append(t.Segments, CardSegment{Card: card})
}

// Finalize freezes the turn and attaches its footer.
func (t *Turn) Finalize(toolsUsed bool) {
	if t.Finalized {
		return
	}
	t.Footer = &Footer{Verified: toolsUsed}
	t.Finalized = true
}

// Fail freezes the turn with an error artifact in place of further content.
// Cards already appended are kept.
func (t *Turn) Fail(message string) {
	if t.Finalized {
		return
	}
	t.Segments = append(t.Segments, ErrorSegment{Message: message})
	t.Finalized = true
}

// Text returns the concatenated text content of the turn, without cards or
// error artifacts. Used when recording the turn into conversation history.
func (t *Turn) Text() string {
	var b strings.Builder
	for _, seg := range t.Segments {
		if ts, ok := seg.(TextSegment); ok {
			b.WriteString(ts.Text)
		}
	}
	return b.String()
}

// Cards returns the tool cards in presentation order.
func (t *Turn) Cards() []toolresult.Card {
	var cards []toolresult.Card
	for _, seg := range t.Segments {
		if cs, ok := seg.(CardSegment); ok {
			cards = append(cards, cs.Card)
		}
	}
	return cards
}

// Failed reports whether the turn ended with an error artifact.
func (t *Turn) Failed() bool {
	for _, seg := range t.Segments {
		if _, ok := seg.(ErrorSegment); ok {
			return true
		}
	}
	return false
}

func (t *Turn) IsEmpty() bool {
	return len(t.Segments) == 0
}
