package timeline

import (
	"time"

	"github.com/radworks/radchat/pkg/decoder"
	"github.com/radworks/radchat/pkg/logger"
	"github.com/radworks/radchat/pkg/session"
	"github.com/radworks/radchat/pkg/toolresult"
)

// Renderer receives the UI-visible effects of one conversation turn, in
// presentation order. Implementations draw to the screen; tests record.
type Renderer interface {
	RevealTurn()
	ShowThinking(tool string)
	HideThinking()
	AppendText(text string)
	AppendCard(card toolresult.Card)
	AttachFooter(toolsUsed bool)
	ShowError(message string)
	ScrollToBottom()
}

// Phase is the per-turn presentation state.
type Phase int

const (
	AwaitingFirstContent Phase = iota
	Revealed
	Finalized
)

// DefaultThinkingFloor is the minimum wall-clock time the thinking indicator
// stays visible, so fast tool calls do not flicker.
const DefaultThinkingFloor = 800 * time.Millisecond

// Timeline sequences decoded stream events into a coherent reveal order for
// one turn. Ingestion never blocks: while the thinking-indicator floor is
// pending, draw effects are queued in arrival order and drained by FlushDue.
// Every effect is fenced by the turn's epoch so a superseded stream cannot
// touch a fresh conversation.
type Timeline struct {
	render Renderer
	coord  *session.Coordinator
	epoch  session.Epoch
	floor  time.Duration
	now    func() time.Time

	phase           Phase
	revealRequested bool
	thinkingVisible bool // queue-order state
	indicatorUp     bool // drawn state, mutated by the effects themselves
	thinkingShownAt time.Time
	openTools       map[string]time.Time

	waiting   bool
	revealDue time.Time
	pending   []func()

	renderedCards map[string]bool
	receivedCards []toolresult.Card
	toolsUsed     bool

	completionPending bool
}

// New creates a timeline for the turn streaming under epoch. A nil clock
// defaults to time.Now.
func New(r Renderer, coord *session.Coordinator, epoch session.Epoch, floor time.Duration, clock func() time.Time) *Timeline {
	if floor <= 0 {
		floor = DefaultThinkingFloor
	}
	if clock == nil {
		clock = time.Now
	}
	return &Timeline{
		render:        r,
		coord:         coord,
		epoch:         epoch,
		floor:         floor,
		now:           clock,
		openTools:     make(map[string]time.Time),
		renderedCards: make(map[string]bool),
	}
}

// Phase returns the turn's current presentation phase.
func (t *Timeline) Phase() Phase {
	return t.phase
}

// Apply ingests one decoded event. Events are processed in arrival order and
// never reordered; drawing may be deferred but queued effects preserve order.
func (t *Timeline) Apply(ev decoder.Event) {
	if t.phase == Finalized || t.superseded() {
		return
	}

	switch ev := ev.(type) {
	case decoder.ToolStarted:
		t.applyToolStarted(ev)
	case decoder.ToolCompleted:
		t.applyToolCompleted(ev)
	case decoder.Text:
		t.applyText(ev)
	}
}

func (t *Timeline) applyToolStarted(ev decoder.ToolStarted) {
	t.openTools[ev.ToolName] = t.now()
	if !t.thinkingVisible {
		t.thinkingVisible = true
		t.thinkingShownAt = t.now()
	}
	t.emit(func() {
		t.indicatorUp = true
		t.render.ShowThinking(ev.ToolName)
	})
	t.autoScroll()
}

func (t *Timeline) applyToolCompleted(ev decoder.ToolCompleted) {
	delete(t.openTools, ev.ToolID)
	t.toolsUsed = true

	// The floor decision has to come before the hide so the indicator's
	// removal queues behind the wait instead of flashing it away.
	t.maybeStartWait()
	t.hideThinking()
	t.requestReveal()

	if card, ok := toolresult.Interpret(ev); ok {
		t.receivedCards = append(t.receivedCards, card)
		t.appendCard(card)
	}
	t.autoScroll()
}

func (t *Timeline) applyText(ev decoder.Text) {
	if ev.Content == "" {
		return
	}
	t.maybeStartWait()
	t.requestReveal()
	t.emit(func() { t.render.AppendText(ev.Content) })
	t.autoScroll()
}

// maybeStartWait defers the upcoming reveal while a visible thinking
// indicator has not yet met its minimum display duration.
func (t *Timeline) maybeStartWait() {
	if t.phase != AwaitingFirstContent || t.revealRequested || t.waiting || !t.thinkingVisible {
		return
	}
	if due := t.thinkingShownAt.Add(t.floor); t.now().Before(due) {
		t.waiting = true
		t.revealDue = due
		logger.Debug("timeline: reveal deferred %s for thinking floor", due.Sub(t.now()))
	}
}

// requestReveal emits the one-time AwaitingFirstContent -> Revealed
// transition. The phase flips when the effect is drawn, which may be after
// the thinking floor elapses.
func (t *Timeline) requestReveal() {
	if t.revealRequested || t.phase != AwaitingFirstContent {
		return
	}
	t.revealRequested = true
	t.emit(func() {
		t.phase = Revealed
		t.render.RevealTurn()
	})
}

func (t *Timeline) hideThinking() {
	if !t.thinkingVisible {
		return
	}
	t.thinkingVisible = false
	t.emit(func() {
		t.indicatorUp = false
		t.render.HideThinking()
	})
}

// appendCard draws a card at most once per tool identifier, even if the same
// result arrives both inline and in the final reconciliation pass.
func (t *Timeline) appendCard(card toolresult.Card) {
	if t.renderedCards[card.Key()] {
		return
	}
	t.renderedCards[card.Key()] = true
	t.emit(func() { t.render.AppendCard(card) })
}

// emit draws an effect now, or queues it while the reveal floor is pending.
func (t *Timeline) emit(effect func()) {
	if t.waiting {
		t.pending = append(t.pending, effect)
		return
	}
	if t.superseded() {
		return
	}
	effect()
}

func (t *Timeline) autoScroll() {
	if t.waiting || t.superseded() {
		return
	}
	if t.coord.NearBottom() {
		t.render.ScrollToBottom()
	}
}

// Due reports the deadline of the pending reveal, if one is waiting on the
// thinking floor. The driver schedules a FlushDue call for that time.
func (t *Timeline) Due() (time.Time, bool) {
	return t.revealDue, t.waiting
}

// FlushDue drains every queued effect in order once the floor has elapsed.
// Returns true when the queue was drained.
func (t *Timeline) FlushDue() bool {
	if !t.waiting || t.now().Before(t.revealDue) {
		return false
	}
	t.waiting = false

	for _, effect := range t.pending {
		if t.superseded() {
			break
		}
		effect()
	}
	t.pending = nil
	t.autoScroll()

	if t.completionPending {
		t.completionPending = false
		if !t.superseded() {
			t.finalize()
		}
	}
	return true
}

// Complete finalizes the turn after a clean end-of-stream. If the reveal
// floor is still pending, finalization happens when FlushDue drains.
func (t *Timeline) Complete() {
	if t.phase == Finalized || t.superseded() {
		return
	}
	if t.waiting {
		t.completionPending = true
		return
	}
	t.requestReveal()
	t.finalize()
}

func (t *Timeline) finalize() {
	// Orphaned tool starts must not leave a stale indicator behind.
	if t.indicatorUp {
		t.indicatorUp = false
		t.thinkingVisible = false
		t.render.HideThinking()
	}
	for name := range t.openTools {
		logger.Debug("timeline: tool %s never completed before stream end", name)
		delete(t.openTools, name)
	}

	// Defensive reconciliation: append anything received but never drawn.
	for _, card := range t.receivedCards {
		if !t.renderedCards[card.Key()] {
			t.renderedCards[card.Key()] = true
			t.render.AppendCard(card)
		}
	}

	t.render.AttachFooter(t.toolsUsed)
	t.phase = Finalized
	if t.coord.NearBottom() {
		t.render.ScrollToBottom()
	}
}

// Fail finalizes the turn with an error artifact replacing the bubble
// content. Cards already rendered remain; queued but undrawn effects are
// discarded.
func (t *Timeline) Fail(message string) {
	if t.phase == Finalized || t.superseded() {
		return
	}
	t.waiting = false
	t.pending = nil
	t.completionPending = false

	if t.indicatorUp {
		t.indicatorUp = false
		t.thinkingVisible = false
		t.render.HideThinking()
	}
	t.render.ShowError(message)
	t.phase = Finalized
	if t.coord.NearBottom() {
		t.render.ScrollToBottom()
	}
}

func (t *Timeline) superseded() bool {
	return !t.coord.IsCurrent(t.epoch)
}
