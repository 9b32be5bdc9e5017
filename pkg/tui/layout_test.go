package tui_test

import (
	"github.com/radworks/radchat/pkg/tui"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Layout", func() {
	Describe("CalculateAreas", func() {
		It("should stack transcript, indicator, input and status", func() {
			layout := tui.NewLayout(80, 24)
			transcript, indicator, input, status := layout.CalculateAreas()

			Expect(transcript.Y).To(Equal(0))
			Expect(indicator.Y).To(Equal(transcript.Bottom()))
			Expect(input.Y).To(Equal(indicator.Bottom()))
			Expect(status.Y).To(Equal(input.Bottom()))
			Expect(status.Bottom()).To(Equal(24))
		})

		It("should pad the transcript horizontally", func() {
			layout := tui.NewLayout(80, 24)
			transcript, _, input, _ := layout.CalculateAreas()

			Expect(transcript.X).To(Equal(2))
			Expect(transcript.Width).To(Equal(76))
			Expect(input.Width).To(Equal(80))
		})

		It("should survive tiny screens", func() {
			layout := tui.NewLayout(3, 2)
			transcript, _, _, _ := layout.CalculateAreas()

			Expect(transcript.Height).To(BeNumerically(">=", 1))
			Expect(transcript.Width).To(BeNumerically(">=", 1))
		})
	})

	Describe("WrapText", func() {
		It("should return short text unchanged", func() {
			Expect(tui.WrapText("hello", 10)).To(Equal([]string{"hello"}))
		})

		It("should break at spaces", func() {
			lines := tui.WrapText("the quick brown fox", 10)
			Expect(lines).To(Equal([]string{"the quick", "brown fox"}))
		})

		It("should hard-break unbreakable runs", func() {
			lines := tui.WrapText("abcdefghij", 4)
			Expect(lines).To(Equal([]string{"abcd", "efgh", "ij"}))
		})

		It("should respect explicit newlines", func() {
			lines := tui.WrapText("one\ntwo", 20)
			Expect(lines).To(Equal([]string{"one", "two"}))
		})

		It("should return nothing for empty input", func() {
			Expect(tui.WrapText("", 10)).To(BeEmpty())
			Expect(tui.WrapText("text", 0)).To(BeEmpty())
		})
	})

	Describe("VisibleWindow", func() {
		lines := []tui.Line{{Text: "a"}, {Text: "b"}, {Text: "c"}, {Text: "d"}}

		It("should return the window at the scroll offset", func() {
			visible, start := tui.VisibleWindow(lines, 2, 1)
			Expect(start).To(Equal(1))
			Expect(visible).To(HaveLen(2))
			Expect(visible[0].Text).To(Equal("b"))
		})

		It("should clamp scroll past the end", func() {
			visible, start := tui.VisibleWindow(lines, 2, 10)
			Expect(start).To(Equal(2))
			Expect(visible[0].Text).To(Equal("c"))
		})

		It("should clamp negative scroll", func() {
			_, start := tui.VisibleWindow(lines, 2, -5)
			Expect(start).To(Equal(0))
		})
	})
})
