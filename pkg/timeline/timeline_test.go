package timeline_test

import (
	"encoding/json"
	"fmt"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/radworks/radchat/pkg/decoder"
	"github.com/radworks/radchat/pkg/session"
	"github.com/radworks/radchat/pkg/timeline"
	"github.com/radworks/radchat/pkg/toolresult"
)

// recordingRenderer captures effects in order as readable strings.
type recordingRenderer struct {
	calls []string
}

func (r *recordingRenderer) RevealTurn()              { r.calls = append(r.calls, "reveal") }
func (r *recordingRenderer) ShowThinking(tool string) { r.calls = append(r.calls, "thinking:"+tool) }
func (r *recordingRenderer) HideThinking()            { r.calls = append(r.calls, "hide-thinking") }
func (r *recordingRenderer) AppendText(text string)   { r.calls = append(r.calls, "text:"+text) }
func (r *recordingRenderer) ShowError(message string) { r.calls = append(r.calls, "error:"+message) }
func (r *recordingRenderer) ScrollToBottom()          { r.calls = append(r.calls, "scroll") }
func (r *recordingRenderer) AttachFooter(toolsUsed bool) {
	r.calls = append(r.calls, fmt.Sprintf("footer:%v", toolsUsed))
}
func (r *recordingRenderer) AppendCard(card toolresult.Card) {
	r.calls = append(r.calls, "card:"+card.Key())
}

// withoutScrolls filters scroll effects, which most specs do not care about.
func (r *recordingRenderer) withoutScrolls() []string {
	var out []string
	for _, c := range r.calls {
		if c != "scroll" {
			out = append(out, c)
		}
	}
	return out
}

type fakeClock struct {
	t time.Time
}

func (f *fakeClock) now() time.Time          { return f.t }
func (f *fakeClock) advance(d time.Duration) { f.t = f.t.Add(d) }

func contactsCompleted(tool string) decoder.ToolCompleted {
	data := `{"contacts":[{"department":"CT","phone":"919-555-0100","available_now":true}]}`
	return decoder.ToolCompleted{
		ToolID: tool,
		Kind:   decoder.KindContacts,
		Payload: decoder.ResultPayload{
			Type: decoder.KindContacts,
			Tool: tool,
			Data: json.RawMessage(data),
		},
	}
}

var _ = Describe("Timeline", func() {
	var (
		render *recordingRenderer
		coord  *session.Coordinator
		clock  *fakeClock
		tl     *timeline.Timeline
	)

	const floor = 500 * time.Millisecond

	BeforeEach(func() {
		render = &recordingRenderer{}
		coord = session.NewCoordinator(0)
		clock = &fakeClock{t: time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)}
		tl = timeline.New(render, coord, coord.CurrentEpoch(), floor, clock.now)
	})

	Describe("reveal transition", func() {
		It("reveals exactly once across any event sequence", func() {
			tl.Apply(decoder.Text{Content: "first"})
			tl.Apply(decoder.Text{Content: " second"})
			tl.Apply(contactsCompleted("lookup"))
			tl.Complete()

			reveals := 0
			for _, c := range render.calls {
				if c == "reveal" {
					reveals++
				}
			}
			Expect(reveals).To(Equal(1))
			Expect(tl.Phase()).To(Equal(timeline.Finalized))
		})

		It("reveals immediately when no thinking indicator is showing", func() {
			tl.Apply(decoder.Text{Content: "hello"})

			Expect(render.withoutScrolls()).To(Equal([]string{"reveal", "text:hello"}))
			Expect(tl.Phase()).To(Equal(timeline.Revealed))
		})
	})

	Describe("thinking indicator floor", func() {
		It("defers the reveal until the minimum display duration elapses", func() {
			tl.Apply(decoder.ToolStarted{ToolName: "lookup"})
			clock.advance(50 * time.Millisecond)
			tl.Apply(contactsCompleted("lookup"))

			// Result arrived fast: nothing beyond the indicator is drawn yet.
			Expect(render.withoutScrolls()).To(Equal([]string{"thinking:lookup"}))
			Expect(tl.Phase()).To(Equal(timeline.AwaitingFirstContent))

			due, waiting := tl.Due()
			Expect(waiting).To(BeTrue())
			Expect(due.Sub(clock.t)).To(Equal(450 * time.Millisecond))

			// Not due yet.
			Expect(tl.FlushDue()).To(BeFalse())

			clock.advance(450 * time.Millisecond)
			Expect(tl.FlushDue()).To(BeTrue())
			Expect(render.withoutScrolls()).To(Equal([]string{
				"thinking:lookup",
				"hide-thinking",
				"reveal",
				"card:lookup",
			}))
			Expect(tl.Phase()).To(Equal(timeline.Revealed))
		})

		It("keeps ingesting events during the wait and drains them in order", func() {
			tl.Apply(decoder.ToolStarted{ToolName: "lookup"})
			clock.advance(10 * time.Millisecond)
			tl.Apply(contactsCompleted("lookup"))
			tl.Apply(decoder.Text{Content: "Here is the contact."})

			Expect(render.withoutScrolls()).To(Equal([]string{"thinking:lookup"}))

			clock.advance(floor)
			tl.FlushDue()
			Expect(render.withoutScrolls()).To(Equal([]string{
				"thinking:lookup",
				"hide-thinking",
				"reveal",
				"card:lookup",
				"text:Here is the contact.",
			}))
		})

		It("skips the wait when the result arrives after the floor", func() {
			tl.Apply(decoder.ToolStarted{ToolName: "lookup"})
			clock.advance(floor + time.Millisecond)
			tl.Apply(contactsCompleted("lookup"))

			_, waiting := tl.Due()
			Expect(waiting).To(BeFalse())
			Expect(tl.Phase()).To(Equal(timeline.Revealed))
		})

		It("finalizes after the wait when completion arrives during it", func() {
			tl.Apply(decoder.ToolStarted{ToolName: "lookup"})
			tl.Apply(contactsCompleted("lookup"))
			tl.Complete()

			Expect(tl.Phase()).To(Equal(timeline.AwaitingFirstContent))

			clock.advance(floor)
			tl.FlushDue()
			Expect(tl.Phase()).To(Equal(timeline.Finalized))
			Expect(render.calls).To(ContainElement("footer:true"))
		})
	})

	Describe("card idempotency", func() {
		It("renders the same tool identifier at most once", func() {
			tl.Apply(decoder.Text{Content: "intro"})
			tl.Apply(contactsCompleted("lookup"))
			tl.Apply(contactsCompleted("lookup"))
			tl.Complete()

			cards := 0
			for _, c := range render.calls {
				if c == "card:lookup" {
					cards++
				}
			}
			Expect(cards).To(Equal(1))
		})
	})

	Describe("finalization", func() {
		It("clears an orphaned thinking indicator and attaches an unverified footer", func() {
			tl.Apply(decoder.ToolStarted{ToolName: "lookup"})
			clock.advance(floor + time.Millisecond)
			tl.Complete()

			Expect(render.withoutScrolls()).To(Equal([]string{
				"thinking:lookup",
				"reveal",
				"hide-thinking",
				"footer:false",
			}))
			Expect(tl.Phase()).To(Equal(timeline.Finalized))
		})

		It("marks the footer verified when a tool completed", func() {
			tl.Apply(contactsCompleted("lookup"))
			tl.Complete()

			Expect(render.calls).To(ContainElement("footer:true"))
		})

		It("ignores events after finalization", func() {
			tl.Apply(decoder.Text{Content: "done"})
			tl.Complete()
			before := len(render.calls)

			tl.Apply(decoder.Text{Content: "late"})
			Expect(render.calls).To(HaveLen(before))
		})
	})

	Describe("errors", func() {
		It("replaces the bubble with an error artifact and keeps rendered cards", func() {
			tl.Apply(decoder.Text{Content: "partial"})
			tl.Apply(contactsCompleted("lookup"))
			tl.Fail("connection lost")

			Expect(render.calls).To(ContainElement("card:lookup"))
			Expect(render.calls).To(ContainElement("error:connection lost"))
			Expect(tl.Phase()).To(Equal(timeline.Finalized))
		})

		It("discards effects still queued behind the thinking floor", func() {
			tl.Apply(decoder.ToolStarted{ToolName: "lookup"})
			tl.Apply(contactsCompleted("lookup"))
			tl.Fail("stream error")

			Expect(render.calls).NotTo(ContainElement("card:lookup"))
			Expect(render.calls).To(ContainElement("error:stream error"))
		})
	})

	Describe("epoch fencing", func() {
		It("stops applying effects once the conversation moves on", func() {
			tl.Apply(decoder.Text{Content: "old turn"})
			before := len(render.calls)

			coord.NewChat()
			tl.Apply(decoder.Text{Content: "stale"})
			tl.Complete()

			Expect(render.calls).To(HaveLen(before))
			Expect(tl.Phase()).To(Equal(timeline.Revealed), "superseded turn never finalizes onto the new conversation")
		})

		It("drops a queued reveal when superseded during the wait", func() {
			tl.Apply(decoder.ToolStarted{ToolName: "lookup"})
			tl.Apply(contactsCompleted("lookup"))

			coord.NewChat()
			clock.advance(floor)
			tl.FlushDue()

			Expect(render.withoutScrolls()).To(Equal([]string{"thinking:lookup"}))
		})
	})
})
