package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radworks/radchat/pkg/toolresult"
)

func TestTurn_CoalescesTextFragments(t *testing.T) {
	turn := NewTurn()
	turn.AppendText("The on-call ")
	turn.AppendText("number is ")
	turn.AppendText("919-555-0100.")

	require.Len(t, turn.Segments, 1)
	assert.Equal(t, "The on-call number is 919-555-0100.", turn.Text())
}

func TestTurn_CardsBreakTextRuns(t *testing.T) {
	turn := NewTurn()
	turn.AppendText("Let me check. ")
	turn.AppendCard(toolresult.ContactsCard{Tool: "search_contacts"})
	turn.AppendText("Found it.")

	require.Len(t, turn.Segments, 3)
	assert.Equal(t, "Let me check. Found it.", turn.Text())
	require.Len(t, turn.Cards(), 1)
	assert.Equal(t, "search_contacts", turn.Cards()[0].Key())
}

func TestTurn_FinalizeAttachesFooter(t *testing.T) {
	turn := NewTurn()
	turn.AppendText("answer")
	turn.Finalize(true)

	require.NotNil(t, turn.Footer)
	assert.True(t, turn.Footer.Verified)
	assert.True(t, turn.Finalized)
}

func TestTurn_FrozenAfterFinalize(t *testing.T) {
	turn := NewTurn()
	turn.AppendText("answer")
	turn.Finalize(false)

	turn.AppendText(" late")
	turn.AppendCard(toolresult.ContactsCard{Tool: "late"})

	assert.Equal(t, "answer", turn.Text())
	assert.Empty(t, turn.Cards())
	require.NotNil(t, turn.Footer)
	assert.False(t, turn.Footer.Verified)
}

func TestTurn_FailKeepsCards(t *testing.T) {
	turn := NewTurn()
	turn.AppendText("partial")
	turn.AppendCard(toolresult.ContactsCard{Tool: "search_contacts"})
	turn.Fail("connection lost")

	assert.True(t, turn.Failed())
	assert.True(t, turn.Finalized)
	assert.Len(t, turn.Cards(), 1)
	assert.Nil(t, turn.Footer, "failed turns carry no provenance footer")
}

func TestTurn_EmptyTurn(t *testing.T) {
	turn := NewTurn()
	assert.True(t, turn.IsEmpty())
	turn.AppendText("")
	assert.True(t, turn.IsEmpty(), "empty fragments do not create segments")
}
