package tui_test

import (
	"github.com/radworks/radchat/pkg/tui"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("InputField", func() {
	typed := func(text string) tui.InputField {
		field := tui.NewInputField(40)
		for _, r := range text {
			field = field.InsertRune(r)
		}
		return field
	}

	It("should insert runes at the cursor", func() {
		field := typed("hello")
		Expect(field.Text()).To(Equal("hello"))
		Expect(field.Cursor).To(Equal(5))

		field = field.MoveLeft().MoveLeft().InsertRune('X')
		Expect(field.Text()).To(Equal("helXlo"))
	})

	It("should handle multi-byte runes by rune position", func() {
		field := typed("héllo")
		Expect(field.Cursor).To(Equal(5))
		field = field.DeleteBackward()
		Expect(field.Text()).To(Equal("héll"))
	})

	It("should delete backward at the cursor", func() {
		field := typed("abc").MoveHome().DeleteBackward()
		Expect(field.Text()).To(Equal("abc"), "deleting at the start is a no-op")

		field = field.MoveEnd().DeleteBackward()
		Expect(field.Text()).To(Equal("ab"))
	})

	It("should clamp cursor movement", func() {
		field := typed("ab").MoveRight().MoveRight()
		Expect(field.Cursor).To(Equal(2))

		field = field.MoveHome().MoveLeft()
		Expect(field.Cursor).To(Equal(0))
	})

	It("should report whitespace-only content as empty", func() {
		Expect(typed("   ").IsEmpty()).To(BeTrue())
		Expect(typed(" x ").IsEmpty()).To(BeFalse())
		Expect(tui.NewInputField(10).IsEmpty()).To(BeTrue())
	})

	It("should clear content and cursor", func() {
		field := typed("something").Clear()
		Expect(field.Text()).To(BeEmpty())
		Expect(field.Cursor).To(Equal(0))
	})
})
