package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/radworks/radchat/pkg/config"
	"github.com/radworks/radchat/pkg/decoder"
	"github.com/radworks/radchat/pkg/logger"
	"github.com/radworks/radchat/pkg/session"
	"github.com/radworks/radchat/pkg/sse"
	"github.com/radworks/radchat/pkg/timeline"
)

const tickInterval = 80 * time.Millisecond

// App drives the interactive chat screen: one goroutine owns the terminal,
// the decoder state and the presentation timeline, fed by tcell events and
// stream fragments over channels.
type App struct {
	cfg    *config.Config
	client *sse.Client
	coord  *session.Coordinator
	view   *View
	input  InputField
	model  string

	screen tcell.Screen

	tl           *timeline.Timeline
	decState     decoder.State
	fragments    <-chan sse.Fragment
	cancelStream context.CancelFunc
	streaming    bool
}

// NewApp assembles the chat screen against the configured backend.
func NewApp(cfg *config.Config, model string) *App {
	backendURL := cfg.Backend.URL
	if backendURL == "" {
		backendURL = "http://127.0.0.1:8000"
	}

	coord := session.NewCoordinator(cfg.UI.ScrollThreshold)
	return &App{
		cfg:    cfg,
		client: sse.NewClient(backendURL),
		coord:  coord,
		view:   NewView(coord, model, nil),
		input:  NewInputField(0),
		model:  model,
	}
}

// Run owns the terminal until the user quits or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to init screen: %w", err)
	}
	a.screen = screen
	defer screen.Fini()
	defer a.stopStream()

	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go screen.ChannelEvents(events, quit)

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	a.draw()
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			if !a.handleEvent(ctx, ev) {
				return nil
			}

		case frag, ok := <-a.fragments:
			a.handleFragment(frag, ok)

		case <-ticker.C:
			a.tick()
		}
		a.draw()
	}
}

// handleEvent returns false when the app should exit.
func (a *App) handleEvent(ctx context.Context, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()

	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyCtrlC:
			return false
		case tcell.KeyCtrlN:
			a.newChat()
		case tcell.KeyEnter:
			a.submit(ctx)
		case tcell.KeyRune:
			a.input = a.input.InsertRune(ev.Rune())
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			a.input = a.input.DeleteBackward()
		case tcell.KeyLeft:
			a.input = a.input.MoveLeft()
		case tcell.KeyRight:
			a.input = a.input.MoveRight()
		case tcell.KeyHome, tcell.KeyCtrlA:
			a.input = a.input.MoveHome()
		case tcell.KeyEnd, tcell.KeyCtrlE:
			a.input = a.input.MoveEnd()
		case tcell.KeyUp:
			a.view.ScrollBy(-1)
		case tcell.KeyDown:
			a.view.ScrollBy(1)
		case tcell.KeyPgUp:
			a.view.ScrollBy(-a.view.lastHeight)
		case tcell.KeyPgDn:
			a.view.ScrollBy(a.view.lastHeight)
		}
	}
	return true
}

// newChat abandons any in-flight stream and starts a clean conversation.
// The epoch bump fences off effects from the superseded stream.
func (a *App) newChat() {
	a.stopStream()
	epoch := a.coord.NewChat()
	logger.Debug("tui: new chat, epoch %d", epoch)
	a.view.Reset(a.model)
	a.tl = nil
	a.streaming = false
	a.input = a.input.Clear()
}

func (a *App) submit(ctx context.Context) {
	if a.streaming || a.input.IsEmpty() {
		return
	}
	content := a.input.Text()
	a.input = a.input.Clear()

	a.view.SubmitUser(content)
	a.startStream(ctx, content)
}

func (a *App) startStream(ctx context.Context, content string) {
	epoch := a.coord.CurrentEpoch()
	a.tl = timeline.New(a.view, a.coord, epoch, a.cfg.ThinkingMinDuration(), nil)
	a.decState = decoder.State{}

	streamCtx, cancel := context.WithCancel(ctx)
	a.cancelStream = cancel

	fragments, err := a.client.StreamChat(streamCtx, sse.Request{
		Message:   content,
		SessionID: a.coord.SessionID(),
		Model:     a.model,
	})
	if err != nil {
		a.tl.Fail(friendlyError(err))
		cancel()
		a.cancelStream = nil
		return
	}

	a.fragments = fragments
	a.streaming = true
}

func (a *App) handleFragment(frag sse.Fragment, ok bool) {
	if a.tl == nil {
		return
	}

	if !ok {
		// Stream closed cleanly: flush any marker held back by the scanner
		// and finalize the turn.
		for _, ev := range decoder.Finish(a.decState) {
			a.tl.Apply(ev)
		}
		a.tl.Complete()
		a.endStream()
		return
	}

	if frag.Err != nil {
		a.tl.Fail(friendlyError(frag.Err))
		a.endStream()
		return
	}

	var events []decoder.Event
	a.decState, events = decoder.Scan(a.decState, frag.Text)
	for _, ev := range events {
		a.tl.Apply(ev)
	}
}

// tick advances the indicator animation and drains timeline effects whose
// thinking floor has elapsed. The turn stays in flight until the drain
// finalizes it; only then does submit reopen.
func (a *App) tick() {
	a.view.AdvanceSpinner()
	if a.tl == nil {
		return
	}
	a.tl.FlushDue()
	if a.streaming && a.fragments == nil && a.tl.Phase() == timeline.Finalized {
		a.streaming = false
	}
}

// endStream releases the transport. The indicator and the streaming flag
// belong to the timeline's lifecycle: its queued hide covers the indicator,
// and submit stays blocked while finalization is still pending the floor.
func (a *App) endStream() {
	a.fragments = nil
	if a.cancelStream != nil {
		a.cancelStream()
		a.cancelStream = nil
	}
	a.streaming = a.tl != nil && a.tl.Phase() != timeline.Finalized
}

func (a *App) stopStream() {
	if a.cancelStream != nil {
		a.cancelStream()
		a.cancelStream = nil
	}
	a.fragments = nil
	a.streaming = false
}

func (a *App) draw() {
	width, height := a.screen.Size()
	layout := NewLayout(width, height)
	transcriptArea, indicatorArea, inputArea, statusArea := layout.CalculateAreas()

	a.input = a.input.WithWidth(inputArea.Width)

	RenderTranscript(a.screen, a.view, transcriptArea)
	RenderIndicator(a.screen, a.view.Spinner(), indicatorArea)
	RenderInput(a.screen, a.input, inputArea)
	RenderStatus(a.screen, StatusBar{Model: a.model, Streaming: a.streaming}, statusArea)

	a.screen.Show()
}

// friendlyError turns transport failures into a message worth showing in
// the transcript.
func friendlyError(err error) string {
	var backendErr *sse.BackendError
	if errors.As(err, &backendErr) {
		return backendErr.Message
	}
	if errors.Is(err, context.Canceled) {
		return "Request cancelled."
	}
	return fmt.Sprintf("Unable to reach the assistant backend: %v", err)
}
