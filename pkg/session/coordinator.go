package session

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// DefaultScrollThreshold is how many rows from the bottom still count as
// "near bottom" for auto-scroll purposes.
const DefaultScrollThreshold = 3

// Epoch identifies one streaming generation. Starting a new chat bumps the
// epoch; effects carrying a stale epoch must not be applied.
type Epoch uint64

// Coordinator tracks per-conversation bookkeeping the presentation timeline
// consults: date-group boundaries, near-bottom scroll state and the current
// streaming epoch. Turns are strictly sequential, so none of this needs
// locking beyond the epoch counter (bumped from input handlers while a
// stream drains).
type Coordinator struct {
	sessionID       string
	epoch           atomic.Uint64
	scrollThreshold int

	lastRenderedDay  string
	hasRendered      bool
	scrollOffset     int
	contentHeight    int
	viewportHeight   int
	viewportReported bool
}

// NewCoordinator creates a coordinator with a fresh session identifier.
func NewCoordinator(scrollThreshold int) *Coordinator {
	if scrollThreshold <= 0 {
		scrollThreshold = DefaultScrollThreshold
	}
	return &Coordinator{
		sessionID:       uuid.NewString(),
		scrollThreshold: scrollThreshold,
	}
}

// SessionID returns the identifier sent with every chat request.
func (c *Coordinator) SessionID() string {
	return c.sessionID
}

// CurrentEpoch returns the active streaming generation.
func (c *Coordinator) CurrentEpoch() Epoch {
	return Epoch(c.epoch.Load())
}

// NewChat starts a fresh conversation: new session identifier, bumped epoch
// and reset date grouping. Any in-flight stream from the previous epoch is
// thereby fenced off.
func (c *Coordinator) NewChat() Epoch {
	c.sessionID = uuid.NewString()
	c.hasRendered = false
	c.lastRenderedDay = ""
	return Epoch(c.epoch.Add(1))
}

// IsCurrent reports whether an epoch is still the active one.
func (c *Coordinator) IsCurrent(e Epoch) bool {
	return Epoch(c.epoch.Load()) == e
}

// NeedsDateHeader reports whether rendering a message at t requires a new
// date-group header first, and records t as the latest rendered message.
func (c *Coordinator) NeedsDateHeader(t time.Time) bool {
	day := t.Format("2006-01-02")
	if c.hasRendered && day == c.lastRenderedDay {
		return false
	}
	c.lastRenderedDay = day
	c.hasRendered = true
	return true
}

// SetViewport records the latest scroll geometry: offset is the first
// visible row, contentHeight the total rendered rows, viewportHeight the
// visible rows.
func (c *Coordinator) SetViewport(offset, contentHeight, viewportHeight int) {
	c.scrollOffset = offset
	c.contentHeight = contentHeight
	c.viewportHeight = viewportHeight
	c.viewportReported = true
}

// NearBottom reports whether the viewport is within the threshold distance
// of the bottom of the conversation. Before any geometry is reported it
// returns true so the first render always scrolls into view.
func (c *Coordinator) NearBottom() bool {
	if !c.viewportReported {
		return true
	}
	if c.contentHeight <= c.viewportHeight {
		return true
	}
	distance := c.contentHeight - c.viewportHeight - c.scrollOffset
	return distance <= c.scrollThreshold
}
