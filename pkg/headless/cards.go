package headless

import (
	"fmt"
	"strings"

	"github.com/radworks/radchat/pkg/toolresult"
	"github.com/radworks/radchat/pkg/tui/theme"
)

// renderCard formats a tool result card for plain terminal output.
func renderCard(styles *theme.Styles, card toolresult.Card) string {
	switch c := card.(type) {
	case toolresult.ContactsCard:
		return renderContacts(styles, c)
	case toolresult.CriteriaCard:
		return renderCriteria(styles, c)
	default:
		return ""
	}
}

func renderContacts(styles *theme.Styles, card toolresult.ContactsCard) string {
	if len(card.Contacts) == 0 {
		return styles.CardBody.Render("No matching contacts found.") + "\n"
	}

	var b strings.Builder
	for _, contact := range card.Contacts {
		b.WriteString(styles.CardTitle.Render(contact.Department))
		b.WriteString("\n")
		if contact.Description != "" {
			b.WriteString(styles.CardBody.Render("  " + contact.Description))
			b.WriteString("\n")
		}

		detail := "  ☎ " + contact.Phone
		if contact.Location != "" {
			detail += "  •  " + contact.Location
		}
		b.WriteString(styles.CardMeta.Render(detail))
		b.WriteString("\n")

		if contact.AvailableNow {
			b.WriteString(styles.Available.Render("  ● Available now"))
		} else {
			b.WriteString(styles.Unavailable.Render("  ○ Not currently staffed"))
		}
		if contact.Availability != "" {
			b.WriteString(styles.Unavailable.Render(" (" + contact.Availability + ")"))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func renderCriteria(styles *theme.Styles, card toolresult.CriteriaCard) string {
	if card.Topic != nil {
		return renderTopicDetail(styles, *card.Topic)
	}

	if len(card.Topics) == 0 {
		return styles.CardBody.Render("No matching ACR topics found.") + "\n"
	}

	var b strings.Builder
	b.WriteString(styles.CardTitle.Render("ACR Appropriateness Criteria"))
	b.WriteString("\n")
	for _, topic := range card.Topics {
		b.WriteString(styles.CardBody.Render("  " + topic.Title))
		b.WriteString("\n")
		var meta []string
		if len(topic.Modalities) > 0 {
			meta = append(meta, strings.Join(topic.Modalities, ", "))
		}
		if len(topic.BodyRegions) > 0 {
			meta = append(meta, strings.Join(topic.BodyRegions, ", "))
		}
		if len(meta) > 0 {
			b.WriteString(styles.CardMeta.Render("    " + strings.Join(meta, "  •  ")))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func renderTopicDetail(styles *theme.Styles, topic toolresult.TopicDetail) string {
	var b strings.Builder
	b.WriteString(styles.CardTitle.Render(topic.Title))
	b.WriteString("\n")

	writeSection := func(heading string, recs []toolresult.Recommendation, styled func(...string) string) {
		if len(recs) == 0 {
			return
		}
		b.WriteString(styled("  " + heading))
		b.WriteString("\n")
		for _, rec := range recs {
			entry := "    " + rec.Name
			if rec.HasScore {
				entry = fmt.Sprintf("    %s  [%d/9]", rec.Name, rec.Score)
			}
			b.WriteString(styles.CardBody.Render(entry))
			b.WriteString("\n")
		}
	}

	writeSection("Usually Appropriate", topic.FirstLine, styles.BandFirstLine.Render)
	writeSection("May Be Appropriate", topic.Alternative, styles.BandAlternate.Render)
	writeSection("Usually Not Appropriate", topic.Discouraged, styles.BandAvoid.Render)
	writeSection("Not Rated", topic.Unscored, styles.BandUnknown.Render)

	return b.String()
}
