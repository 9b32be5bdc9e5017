package tui_test

import (
	"strings"

	"github.com/radworks/radchat/pkg/session"
	"github.com/radworks/radchat/pkg/toolresult"
	"github.com/radworks/radchat/pkg/tui"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func transcriptText(view *tui.View, width int) string {
	var b strings.Builder
	for _, line := range view.Lines(width) {
		b.WriteString(line.Text)
		b.WriteString("\n")
	}
	return b.String()
}

var _ = Describe("View", func() {
	var (
		coord *session.Coordinator
		view  *tui.View
	)

	BeforeEach(func() {
		coord = session.NewCoordinator(3)
		view = tui.NewView(coord, "openai/gpt-4o-mini", nil)
	})

	Describe("user messages", func() {
		It("should render a date header before the first message", func() {
			view.SubmitUser("hello")
			text := transcriptText(view, 80)

			Expect(text).To(ContainSubstring("──"))
			Expect(text).To(ContainSubstring("You: hello"))
		})

		It("should not repeat the header for same-day messages", func() {
			view.SubmitUser("first")
			view.SubmitUser("second")

			Expect(strings.Count(transcriptText(view, 80), "──")).To(Equal(2),
				"one header, two border markers")
		})
	})

	Describe("streaming a turn", func() {
		It("should coalesce text fragments into one bubble", func() {
			view.RevealTurn()
			view.AppendText("The CT reading ")
			view.AppendText("room reads all CT.")

			text := transcriptText(view, 120)
			Expect(text).To(ContainSubstring("Assistant: The CT reading room reads all CT."))
		})

		It("should start a fresh text run after a card", func() {
			view.RevealTurn()
			view.AppendText("Checking.")
			view.AppendCard(toolresult.ContactsCard{
				Tool: "search_phone_directory",
				Contacts: []toolresult.Contact{
					{Department: "CT Reading Room", Phone: "919-555-0100", AvailableNow: true},
				},
			})
			view.AppendText("That's who to call.")

			text := transcriptText(view, 120)
			Expect(text).To(ContainSubstring("CT Reading Room"))
			Expect(text).To(ContainSubstring("That's who to call."))

			// The post-card text is not glued onto the pre-card run.
			Expect(text).NotTo(ContainSubstring("Checking.That's"))
		})

		It("should record the finalized turn into the conversation", func() {
			view.RevealTurn()
			view.AppendText("Answer.")
			view.AttachFooter(true)

			conv := view.Conversation()
			Expect(conv.Messages).To(HaveLen(1))
			Expect(conv.Messages[0].IsAssistant()).To(BeTrue())
			Expect(conv.Messages[0].Content).To(Equal("Answer."))

			Expect(transcriptText(view, 80)).To(ContainSubstring("Verified with tools"))
		})

		It("should omit the verified mark when no tools ran", func() {
			view.RevealTurn()
			view.AppendText("Just chatting.")
			view.AttachFooter(false)

			Expect(transcriptText(view, 80)).NotTo(ContainSubstring("Verified"))
		})
	})

	Describe("errors", func() {
		It("should keep cards when a turn fails midway", func() {
			view.RevealTurn()
			view.AppendCard(toolresult.ContactsCard{
				Tool:     "search_phone_directory",
				Contacts: []toolresult.Contact{{Department: "VIR", Phone: "919-555-0199"}},
			})
			view.ShowError("connection lost")

			text := transcriptText(view, 80)
			Expect(text).To(ContainSubstring("VIR"))
			Expect(text).To(ContainSubstring("✗ connection lost"))
		})

		It("should record an error message when no turn is active", func() {
			view.ShowError("backend offline")

			conv := view.Conversation()
			Expect(conv.Messages).To(HaveLen(1))
			Expect(conv.Messages[0].IsError()).To(BeTrue())
		})
	})

	Describe("thinking indicator", func() {
		It("should label the spinner by tool", func() {
			view.ShowThinking("search_acr_criteria")
			Expect(view.Spinner().DisplayText()).To(ContainSubstring("ACR Appropriateness Criteria"))

			view.HideThinking()
			Expect(view.Spinner().DisplayText()).To(BeEmpty())
		})

		It("should advance frames only while visible", func() {
			view.AdvanceSpinner()
			Expect(view.Spinner().Frame).To(Equal(0))

			view.ShowThinking("")
			view.AdvanceSpinner()
			Expect(view.Spinner().Frame).To(Equal(1))
		})
	})

	Describe("Reset", func() {
		It("should drop the transcript and conversation", func() {
			view.SubmitUser("hello")
			view.RevealTurn()
			view.AppendText("partial")
			view.Reset("openai/gpt-4o-mini")

			Expect(view.Conversation().Messages).To(BeEmpty())
			Expect(view.Lines(80)).To(BeEmpty())
		})
	})
})
