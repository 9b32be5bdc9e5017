package tui_test

import (
	"strings"

	"github.com/radworks/radchat/pkg/toolresult"
	"github.com/radworks/radchat/pkg/tui"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func cardText(card toolresult.Card, width int) string {
	var b strings.Builder
	for _, line := range tui.FormatCard(card, width) {
		b.WriteString(line.Text)
		b.WriteString("\n")
	}
	return b.String()
}

var _ = Describe("FormatCard", func() {
	Describe("contacts", func() {
		It("should render department, phone and availability", func() {
			text := cardText(toolresult.ContactsCard{
				Tool: "search_phone_directory",
				Contacts: []toolresult.Contact{{
					Department:   "CT Reading Room",
					Description:  "Reads all inpatient and ED CT studies",
					Phone:        "919-555-0100",
					Location:     "Reading Room A",
					AvailableNow: true,
					Availability: "business hours",
					Modalities:   []string{"CT"},
				}},
			}, 80)

			Expect(text).To(ContainSubstring("┌ CT Reading Room"))
			Expect(text).To(ContainSubstring("☎ 919-555-0100"))
			Expect(text).To(ContainSubstring("Reading Room A"))
			Expect(text).To(ContainSubstring("● Available now (business hours)"))
		})

		It("should mark unavailable contacts", func() {
			text := cardText(toolresult.ContactsCard{
				Tool: "search_phone_directory",
				Contacts: []toolresult.Contact{{
					Department: "After-Hours Radiology",
					Phone:      "919-555-0111",
				}},
			}, 80)

			Expect(text).To(ContainSubstring("○ Not currently staffed"))
		})

		It("should say so when nothing matched", func() {
			text := cardText(toolresult.ContactsCard{Tool: "search_phone_directory"}, 80)
			Expect(text).To(ContainSubstring("No matching contacts"))
		})

		It("should wrap long descriptions inside the card border", func() {
			long := strings.Repeat("modality coverage ", 10)
			lines := tui.FormatCard(toolresult.ContactsCard{
				Tool:     "search_phone_directory",
				Contacts: []toolresult.Contact{{Department: "X", Description: long, Phone: "1"}},
			}, 40)

			wrapped := 0
			for _, line := range lines {
				if strings.HasPrefix(line.Text, "│") {
					wrapped++
				}
			}
			Expect(wrapped).To(BeNumerically(">", 1))
		})
	})

	Describe("criteria", func() {
		It("should list topics with their metadata", func() {
			text := cardText(toolresult.CriteriaCard{
				Tool: "search_acr_criteria",
				Topics: []toolresult.CriteriaTopic{{
					ID:          "69418",
					Title:       "Suspected Pulmonary Embolism",
					Modalities:  []string{"CT", "CTA"},
					BodyRegions: []string{"chest"},
				}},
			}, 80)

			Expect(text).To(ContainSubstring("ACR Appropriateness Criteria"))
			Expect(text).To(ContainSubstring("Suspected Pulmonary Embolism"))
			Expect(text).To(ContainSubstring("CT, CTA"))
		})

		It("should bucket recommendations by band with scores", func() {
			text := cardText(toolresult.CriteriaCard{
				Tool: "get_acr_topic_details",
				Topic: &toolresult.TopicDetail{
					Title: "Suspected Pulmonary Embolism",
					FirstLine: []toolresult.Recommendation{
						{Name: "CTA chest with IV contrast", Score: 9, HasScore: true, Band: toolresult.BandUsuallyAppropriate},
					},
					Alternative: []toolresult.Recommendation{
						{Name: "US echocardiography", Score: 5, HasScore: true, Band: toolresult.BandMayBeAppropriate},
					},
					Unscored: []toolresult.Recommendation{
						{Name: "CT head", Band: toolresult.BandUnknown},
					},
				},
			}, 100)

			Expect(text).To(ContainSubstring("Usually Appropriate"))
			Expect(text).To(ContainSubstring("CTA chest with IV contrast  [9/9]"))
			Expect(text).To(ContainSubstring("May Be Appropriate"))
			Expect(text).To(ContainSubstring("Not Rated"))
			Expect(text).To(ContainSubstring("CT head"))
			Expect(text).NotTo(ContainSubstring("CT head  ["), "unscored entries carry no score")
		})

		It("should say so when no topics matched", func() {
			text := cardText(toolresult.CriteriaCard{Tool: "search_acr_criteria"}, 80)
			Expect(text).To(ContainSubstring("No matching ACR topics"))
		})
	})
})
