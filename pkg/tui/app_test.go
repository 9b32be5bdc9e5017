package tui

import (
	"strings"
	"time"

	"github.com/radworks/radchat/pkg/session"
	"github.com/radworks/radchat/pkg/sse"
	"github.com/radworks/radchat/pkg/timeline"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

const contactResult = `__TOOL_RESULT__{"type":"contacts","tool":"search_phone_directory",` +
	`"data":{"results":[{"department":"CT Reading Room","phone":"919-555-0100","available_now":true}]}} __`

var _ = Describe("App stream lifecycle", func() {
	var (
		coord *session.Coordinator
		app   *App
		now   time.Time
	)

	clock := func() time.Time { return now }

	transcript := func() string {
		var b strings.Builder
		for _, line := range app.view.Lines(120) {
			b.WriteString(line.Text)
			b.WriteString("\n")
		}
		return b.String()
	}

	feed := func(text string) {
		app.handleFragment(sse.Fragment{Text: text}, true)
	}

	closeStream := func() {
		app.handleFragment(sse.Fragment{}, false)
	}

	BeforeEach(func() {
		now = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
		coord = session.NewCoordinator(3)
		app = &App{
			coord: coord,
			view:  NewView(coord, "openai/gpt-4o-mini", clock),
		}
		app.view.SubmitUser("who reads CT?")
		app.tl = timeline.New(app.view, coord, coord.CurrentEpoch(), 800*time.Millisecond, clock)
		app.fragments = make(chan sse.Fragment)
		app.streaming = true
	})

	Describe("a stream that completes inside the thinking floor", func() {
		BeforeEach(func() {
			feed("__TOOL_START__search_phone_directory__")
			now = now.Add(50 * time.Millisecond)
			feed(contactResult)
			feed("Call 919-555-0100.")
			closeStream()
		})

		It("should keep the indicator up until the floor elapses", func() {
			Expect(app.view.Spinner().IsVisible).To(BeTrue())

			now = now.Add(350 * time.Millisecond)
			app.tick()
			Expect(app.view.Spinner().IsVisible).To(BeTrue())

			now = now.Add(500 * time.Millisecond)
			app.tick()
			Expect(app.view.Spinner().IsVisible).To(BeFalse())
		})

		It("should keep submit blocked until the queued turn is drawn", func() {
			Expect(app.streaming).To(BeTrue(), "turn still in flight while effects are queued")
			Expect(transcript()).NotTo(ContainSubstring("CT Reading Room"))

			now = now.Add(850 * time.Millisecond)
			app.tick()

			Expect(app.streaming).To(BeFalse())
			Expect(app.tl.Phase()).To(Equal(timeline.Finalized))

			text := transcript()
			Expect(text).To(ContainSubstring("CT Reading Room"))
			Expect(text).To(ContainSubstring("Call 919-555-0100."))
			Expect(text).To(ContainSubstring("Verified with tools"))

			conv := app.view.Conversation()
			Expect(conv.Messages).To(HaveLen(2))
			Expect(conv.Messages[1].IsAssistant()).To(BeTrue())
		})
	})

	Describe("a stream that completes after the floor", func() {
		It("should reopen submit as soon as the stream closes", func() {
			feed("__TOOL_START__search_phone_directory__")
			now = now.Add(900 * time.Millisecond)
			app.tick()

			feed(contactResult)
			feed("Call 919-555-0100.")
			closeStream()

			Expect(app.streaming).To(BeFalse())
			Expect(app.view.Spinner().IsVisible).To(BeFalse())
			Expect(transcript()).To(ContainSubstring("Call 919-555-0100."))
		})
	})

	Describe("a stream that fails", func() {
		It("should finalize the turn and reopen submit immediately", func() {
			feed("Partial answer ")
			app.handleFragment(sse.Fragment{Err: &sse.BackendError{Message: "model overloaded"}}, true)

			Expect(app.streaming).To(BeFalse())
			Expect(app.tl.Phase()).To(Equal(timeline.Finalized))
			Expect(transcript()).To(ContainSubstring("✗ model overloaded"))
		})
	})
})
