package toolresult

import (
	"encoding/json"

	"github.com/radworks/radchat/pkg/decoder"
	"github.com/radworks/radchat/pkg/logger"
)

// MaxContacts caps how many directory entries a single card displays.
const MaxContacts = 5

// rawContact mirrors the backend contact shape. The directory backend has
// returned several variants over time, so every field is optional.
type rawContact struct {
	Department   string   `json:"department"`
	Description  string   `json:"description"`
	Phone        string   `json:"phone"`
	Availability string   `json:"availability"`
	AvailableNow bool     `json:"available_now"`
	Modalities   []string `json:"modalities"`
	Location     string   `json:"location"`
}

type rawContactsData struct {
	Error        string       `json:"error"`
	Results      []rawContact `json:"results"`
	Contacts     []rawContact `json:"contacts"`
	Contact      *rawContact  `json:"contact"`
	Alternatives []rawContact `json:"alternatives"`
}

type rawProcedure struct {
	Name  string `json:"name"`
	Score *int   `json:"score"`
}

type rawCriteriaData struct {
	Error      string         `json:"error"`
	Results    []rawTopic     `json:"results"`
	Topics     []rawTopic     `json:"topics"`
	Title      string         `json:"title"`
	Procedures []rawProcedure `json:"procedures"`
}

type rawTopic struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Modalities  []string `json:"modalities"`
	BodyRegions []string `json:"body_regions"`
}

// Interpret maps a completed tool invocation onto a renderable card. It
// performs no I/O. Payloads carrying an explicit error, empty result sets and
// unrecognized kinds produce no card.
func Interpret(ev decoder.ToolCompleted) (Card, bool) {
	switch ev.Kind {
	case decoder.KindContacts:
		return interpretContacts(ev)
	case decoder.KindACR:
		return interpretCriteria(ev)
	default:
		logger.Debug("interpreter: dropping result with unrecognized kind %q (tool %s)", ev.Kind, ev.ToolID)
		return nil, false
	}
}

func interpretContacts(ev decoder.ToolCompleted) (Card, bool) {
	var data rawContactsData
	if err := json.Unmarshal(ev.Payload.Data, &data); err != nil {
		logger.Debug("interpreter: contacts payload unreadable: %v", err)
		return nil, false
	}
	if data.Error != "" {
		return nil, false
	}

	// The backend answers with one of three shapes: a results list, a
	// contacts list, or a single contact plus alternates.
	list := data.Results
	if len(list) == 0 {
		list = data.Contacts
	}
	if len(list) == 0 && data.Contact != nil {
		list = append([]rawContact{*data.Contact}, data.Alternatives...)
	}
	if len(list) == 0 {
		return nil, false
	}
	if len(list) > MaxContacts {
		list = list[:MaxContacts]
	}

	card := ContactsCard{Tool: ev.ToolID}
	for _, rc := range list {
		card.Contacts = append(card.Contacts, Contact{
			Department:   rc.Department,
			Description:  rc.Description,
			Phone:        rc.Phone,
			AvailableNow: rc.AvailableNow,
			Availability: rc.Availability,
			Modalities:   rc.Modalities,
			Location:     rc.Location,
		})
	}
	return card, true
}

func interpretCriteria(ev decoder.ToolCompleted) (Card, bool) {
	var data rawCriteriaData
	if err := json.Unmarshal(ev.Payload.Data, &data); err != nil {
		logger.Debug("interpreter: criteria payload unreadable: %v", err)
		return nil, false
	}
	if data.Error != "" {
		return nil, false
	}

	// Detail shape: a single topic with scored procedures.
	if len(data.Procedures) > 0 {
		detail := &TopicDetail{Title: data.Title}
		for _, p := range data.Procedures {
			rec := Recommendation{Name: p.Name}
			if p.Score != nil {
				rec.Score = *p.Score
				rec.HasScore = true
			}
			rec.Band = BandForScore(rec.Score, rec.HasScore)
			switch rec.Band {
			case BandUsuallyAppropriate:
				detail.FirstLine = append(detail.FirstLine, rec)
			case BandMayBeAppropriate:
				detail.Alternative = append(detail.Alternative, rec)
			case BandUsuallyNotAppropriate:
				detail.Discouraged = append(detail.Discouraged, rec)
			default:
				detail.Unscored = append(detail.Unscored, rec)
			}
		}
		return CriteriaCard{Tool: ev.ToolID, Topic: detail}, true
	}

	// Search shape: a topic list under either key.
	list := data.Results
	if len(list) == 0 {
		list = data.Topics
	}
	if len(list) == 0 {
		return nil, false
	}

	card := CriteriaCard{Tool: ev.ToolID}
	for _, t := range list {
		card.Topics = append(card.Topics, CriteriaTopic{
			ID:          t.ID,
			Title:       t.Title,
			Modalities:  t.Modalities,
			BodyRegions: t.BodyRegions,
		})
	}
	return card, true
}
