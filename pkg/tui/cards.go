package tui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/radworks/radchat/pkg/toolresult"
)

// Line is one styled transcript row.
type Line struct {
	Text  string
	Style tcell.Style
}

// FormatCard renders a tool result card into styled lines, wrapped to width.
func FormatCard(card toolresult.Card, width int) []Line {
	switch c := card.(type) {
	case toolresult.ContactsCard:
		return formatContacts(c, width)
	case toolresult.CriteriaCard:
		return formatCriteria(c, width)
	default:
		return nil
	}
}

func formatContacts(card toolresult.ContactsCard, width int) []Line {
	if len(card.Contacts) == 0 {
		return []Line{{Text: "│ No matching contacts found.", Style: StyleCardBody}}
	}

	var lines []Line
	for i, contact := range card.Contacts {
		if i > 0 {
			lines = append(lines, Line{Text: "│", Style: StyleCardBorder})
		}
		lines = append(lines, cardLine("┌ ", contact.Department, StyleCardTitle, width)...)
		if contact.Description != "" {
			lines = append(lines, cardLine("│ ", contact.Description, StyleCardBody, width)...)
		}

		detail := "☎ " + contact.Phone
		if contact.Location != "" {
			detail += "  •  " + contact.Location
		}
		lines = append(lines, cardLine("│ ", detail, StyleCardMeta, width)...)

		if len(contact.Modalities) > 0 {
			lines = append(lines, cardLine("│ ", strings.Join(contact.Modalities, ", "), StyleCardMeta, width)...)
		}

		status, style := availabilityLine(contact)
		lines = append(lines, cardLine("└ ", status, style, width)...)
	}
	return lines
}

func availabilityLine(contact toolresult.Contact) (string, tcell.Style) {
	suffix := ""
	if contact.Availability != "" {
		suffix = " (" + contact.Availability + ")"
	}
	if contact.AvailableNow {
		return "● Available now" + suffix, StyleAvailable
	}
	return "○ Not currently staffed" + suffix, StyleUnavailable
}

func formatCriteria(card toolresult.CriteriaCard, width int) []Line {
	if card.Topic != nil {
		return formatTopicDetail(*card.Topic, width)
	}
	return formatTopicList(card.Topics, width)
}

func formatTopicList(topics []toolresult.CriteriaTopic, width int) []Line {
	if len(topics) == 0 {
		return []Line{{Text: "│ No matching ACR topics found.", Style: StyleCardBody}}
	}

	lines := cardLine("┌ ", "ACR Appropriateness Criteria", StyleCardTitle, width)
	for _, topic := range topics {
		lines = append(lines, cardLine("│ ", topic.Title, StyleCardBody, width)...)
		var meta []string
		if len(topic.Modalities) > 0 {
			meta = append(meta, strings.Join(topic.Modalities, ", "))
		}
		if len(topic.BodyRegions) > 0 {
			meta = append(meta, strings.Join(topic.BodyRegions, ", "))
		}
		if len(meta) > 0 {
			lines = append(lines, cardLine("│   ", strings.Join(meta, "  •  "), StyleCardMeta, width)...)
		}
	}
	lines = append(lines, Line{Text: "└", Style: StyleCardBorder})
	return lines
}

func formatTopicDetail(topic toolresult.TopicDetail, width int) []Line {
	lines := cardLine("┌ ", topic.Title, StyleCardTitle, width)

	sections := []struct {
		heading string
		recs    []toolresult.Recommendation
		style   tcell.Style
	}{
		{"Usually Appropriate", topic.FirstLine, StyleBandFirstLine},
		{"May Be Appropriate", topic.Alternative, StyleBandAlternate},
		{"Usually Not Appropriate", topic.Discouraged, StyleBandAvoid},
		{"Not Rated", topic.Unscored, StyleCardMeta},
	}

	for _, section := range sections {
		if len(section.recs) == 0 {
			continue
		}
		lines = append(lines, cardLine("│ ", section.heading, section.style, width)...)
		for _, rec := range section.recs {
			entry := rec.Name
			if rec.HasScore {
				entry = fmt.Sprintf("%s  [%d/9]", rec.Name, rec.Score)
			}
			lines = append(lines, cardLine("│   ", entry, StyleCardBody, width)...)
		}
	}

	lines = append(lines, Line{Text: "└", Style: StyleCardBorder})
	return lines
}

// cardLine wraps text under a card border prefix; continuation rows keep the
// border but indent past the bullet.
func cardLine(prefix, text string, style tcell.Style, width int) []Line {
	avail := width - len([]rune(prefix))
	if avail < 8 {
		avail = 8
	}

	wrapped := WrapText(text, avail)
	if len(wrapped) == 0 {
		wrapped = []string{""}
	}

	lines := make([]Line, 0, len(wrapped))
	lines = append(lines, Line{Text: prefix + wrapped[0], Style: style})
	continuation := "│ " + strings.Repeat(" ", len([]rune(prefix))-2)
	if strings.HasPrefix(prefix, "└") {
		continuation = "  " + strings.Repeat(" ", len([]rune(prefix))-2)
	}
	for _, rest := range wrapped[1:] {
		lines = append(lines, Line{Text: continuation + rest, Style: style})
	}
	return lines
}
