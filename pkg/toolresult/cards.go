package toolresult

// Card is a renderable tool result. Exactly one card per Key is ever
// appended to a turn; the presentation layer enforces the idempotency.
type Card interface {
	// Key identifies the tool invocation this card belongs to.
	Key() string
	card()
}

// Contact is one phone directory entry prepared for display.
type Contact struct {
	Department   string
	Description  string
	Phone        string
	AvailableNow bool
	Availability string
	Modalities   []string
	Location     string
}

// ContactsCard lists up to MaxContacts directory entries.
type ContactsCard struct {
	Tool     string
	Contacts []Contact
}

func (c ContactsCard) Key() string { return c.Tool }
func (ContactsCard) card()         {}

// Band is an ACR appropriateness band derived from a 1-9 score.
type Band int

const (
	BandUnknown Band = iota
	BandUsuallyAppropriate
	BandMayBeAppropriate
	BandUsuallyNotAppropriate
)

func (b Band) String() string {
	switch b {
	case BandUsuallyAppropriate:
		return "Usually Appropriate"
	case BandMayBeAppropriate:
		return "May Be Appropriate"
	case BandUsuallyNotAppropriate:
		return "Usually Not Appropriate"
	default:
		return "Unknown"
	}
}

// BandForScore maps a numeric appropriateness score to its band. hasScore
// false (or an out-of-range score) yields BandUnknown; a missing score is
// never defaulted into a band.
func BandForScore(score int, hasScore bool) Band {
	if !hasScore {
		return BandUnknown
	}
	switch {
	case score >= 7 && score <= 9:
		return BandUsuallyAppropriate
	case score >= 4 && score <= 6:
		return BandMayBeAppropriate
	case score >= 1 && score <= 3:
		return BandUsuallyNotAppropriate
	default:
		return BandUnknown
	}
}

// Recommendation is one imaging procedure with its appropriateness rating.
type Recommendation struct {
	Name     string
	Score    int
	HasScore bool
	Band     Band
}

// CriteriaTopic is one ACR topic from a search result list.
type CriteriaTopic struct {
	ID          string
	Title       string
	Modalities  []string
	BodyRegions []string
}

// TopicDetail is a single topic with its recommendations bucketed by band.
type TopicDetail struct {
	Title       string
	FirstLine   []Recommendation // usually appropriate (7-9)
	Alternative []Recommendation // may be appropriate (4-6)
	Discouraged []Recommendation // usually not appropriate (1-3)
	Unscored    []Recommendation // no numeric score
}

// CriteriaCard is either a topic search result list or one detailed topic.
type CriteriaCard struct {
	Tool   string
	Topics []CriteriaTopic
	Topic  *TopicDetail
}

func (c CriteriaCard) Key() string { return c.Tool }
func (CriteriaCard) card()         {}
