package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoordinator_DateHeaders(t *testing.T) {
	c := NewCoordinator(0)

	monday := time.Date(2025, 3, 3, 9, 30, 0, 0, time.Local)
	assert.True(t, c.NeedsDateHeader(monday), "first message always opens a date group")
	assert.False(t, c.NeedsDateHeader(monday.Add(2*time.Hour)), "same day, no new header")
	assert.True(t, c.NeedsDateHeader(monday.Add(24*time.Hour)), "next day opens a new group")
}

func TestCoordinator_DateHeadersResetOnNewChat(t *testing.T) {
	c := NewCoordinator(0)
	now := time.Date(2025, 3, 3, 9, 30, 0, 0, time.Local)

	require.True(t, c.NeedsDateHeader(now))
	c.NewChat()
	assert.True(t, c.NeedsDateHeader(now), "fresh conversation regroups from scratch")
}

func TestCoordinator_NearBottom(t *testing.T) {
	c := NewCoordinator(3)

	assert.True(t, c.NearBottom(), "near bottom before any geometry is known")

	// 100 rows of content, 20 visible, scrolled to the very bottom.
	c.SetViewport(80, 100, 20)
	assert.True(t, c.NearBottom())

	// Two rows shy of the bottom is still within the threshold.
	c.SetViewport(78, 100, 20)
	assert.True(t, c.NearBottom())

	// Scrolled up into history.
	c.SetViewport(40, 100, 20)
	assert.False(t, c.NearBottom())

	// Content shorter than the viewport is always at the bottom.
	c.SetViewport(0, 10, 20)
	assert.True(t, c.NearBottom())
}

func TestCoordinator_Epochs(t *testing.T) {
	c := NewCoordinator(0)
	first := c.CurrentEpoch()
	assert.True(t, c.IsCurrent(first))

	second := c.NewChat()
	assert.False(t, c.IsCurrent(first), "stale epoch is fenced off")
	assert.True(t, c.IsCurrent(second))
	assert.Equal(t, second, c.CurrentEpoch())
}

func TestCoordinator_NewChatRotatesSession(t *testing.T) {
	c := NewCoordinator(0)
	id := c.SessionID()
	require.NotEmpty(t, id)

	c.NewChat()
	assert.NotEqual(t, id, c.SessionID())
}
