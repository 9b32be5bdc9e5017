package phonebook

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Directory answers phone lookups against a loaded catalog.
type Directory struct {
	catalog *Catalog
	now     func() time.Time
}

func New(catalog *Catalog) *Directory {
	return NewWithClock(catalog, time.Now)
}

// NewWithClock pins the clock, so availability logic is testable.
func NewWithClock(catalog *Catalog, now func() time.Time) *Directory {
	return &Directory{catalog: catalog, now: now}
}

// ScoredContact is a catalog entry annotated for one query.
type ScoredContact struct {
	Contact
	RelevanceScore int  `json:"relevance_score"`
	AvailableNow   bool `json:"available_now"`
}

// SearchResult is the payload of a directory search.
type SearchResult struct {
	Results      []ScoredContact `json:"results"`
	TotalMatches int             `json:"total_matches"`
	TimeContext  TimeContext     `json:"time_context"`
}

// ReadingRoomResult is the payload of a reading-room lookup: the best
// currently-available contact plus up to two alternates.
type ReadingRoomResult struct {
	Contact      *ScoredContact  `json:"contact,omitempty"`
	Alternatives []ScoredContact `json:"alternatives"`
	Error        string          `json:"error,omitempty"`
	TimeContext  TimeContext     `json:"time_context"`
}

// ProcedureResult is the payload of a procedure-contact lookup.
type ProcedureResult struct {
	Contact     *ScoredContact `json:"contact,omitempty"`
	Note        string         `json:"note,omitempty"`
	Error       string         `json:"error,omitempty"`
	TimeContext TimeContext    `json:"time_context"`
}

const maxSearchResults = 10

// Search scores every contact against the query and filters, highest
// relevance first. An empty query with filters still matches.
func (d *Directory) Search(query, modality, contactType, location string) SearchResult {
	queryLower := strings.ToLower(query)
	tc := TimeContextAt(d.now())

	var results []ScoredContact
	for _, contact := range d.catalog.Contacts {
		score := 0

		if queryLower != "" {
			if strings.Contains(strings.ToLower(contact.Department), queryLower) {
				score += 10
			}
			if strings.Contains(strings.ToLower(contact.Description), queryLower) {
				score += 5
			}
			for _, mod := range contact.Modalities {
				if strings.Contains(strings.ToLower(mod), queryLower) {
					score += 8
				}
			}
			for _, region := range contact.AnatomicalRegions {
				if strings.Contains(strings.ToLower(region), queryLower) {
					score += 6
				}
			}
			for _, proc := range contact.Procedures {
				if strings.Contains(strings.ToLower(proc), queryLower) {
					score += 7
				}
			}
			if score == 0 {
				continue
			}
		}

		if modality != "" {
			if !containsFold(contact.Modalities, modality) {
				continue
			}
			score += 3
		}
		if contactType != "" && contact.StudyStatus != contactType {
			continue
		}
		if location != "" && !strings.Contains(strings.ToLower(contact.Location), strings.ToLower(location)) {
			continue
		}

		results = append(results, ScoredContact{
			Contact:        contact,
			RelevanceScore: score,
			AvailableNow:   contact.AvailableNow(tc),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].RelevanceScore > results[j].RelevanceScore
	})

	total := len(results)
	if len(results) > maxSearchResults {
		results = results[:maxSearchResults]
	}

	return SearchResult{
		Results:      results,
		TotalMatches: total,
		TimeContext:  tc,
	}
}

// ReadingRoom resolves the interpretation line for a modality, preferring
// contacts reachable right now.
func (d *Directory) ReadingRoom(modality, bodyRegion string) ReadingRoomResult {
	query := modality
	if bodyRegion != "" {
		query = fmt.Sprintf("%s %s", modality, bodyRegion)
	}
	search := d.Search(query, "", "interpretation_questions", "")

	var available []ScoredContact
	for _, r := range search.Results {
		if r.AvailableNow {
			available = append(available, r)
		}
	}

	if len(available) > 0 {
		alternatives := available[1:]
		if len(alternatives) > 2 {
			alternatives = alternatives[:2]
		}
		return ReadingRoomResult{
			Contact:      &available[0],
			Alternatives: append([]ScoredContact{}, alternatives...),
			TimeContext:  search.TimeContext,
		}
	}
	if len(search.Results) > 0 {
		return ReadingRoomResult{
			Contact:      &search.Results[0],
			Alternatives: []ScoredContact{},
			TimeContext:  search.TimeContext,
		}
	}
	return ReadingRoomResult{
		Error:        fmt.Sprintf("No reading room found for %s", modality),
		Alternatives: []ScoredContact{},
		TimeContext:  search.TimeContext,
	}
}

// ProcedureContact resolves who takes a procedure request. Unrecognized
// procedures fall through to the VIR resident.
func (d *Directory) ProcedureContact(procedure string) ProcedureResult {
	search := d.Search(procedure, "", "procedure_request", "")
	if len(search.Results) > 0 {
		return ProcedureResult{
			Contact:     &search.Results[0],
			TimeContext: search.TimeContext,
		}
	}

	vir := d.Search("VIR", "", "procedure_request", "")
	if len(vir.Results) > 0 {
		return ProcedureResult{
			Contact:     &vir.Results[0],
			Note:        fmt.Sprintf("VIR resident handles %s requests", procedure),
			TimeContext: vir.TimeContext,
		}
	}

	return ProcedureResult{
		Error:       fmt.Sprintf("No contact found for %s", procedure),
		TimeContext: search.TimeContext,
	}
}

func containsFold(list []string, target string) bool {
	for _, item := range list {
		if strings.EqualFold(item, target) {
			return true
		}
	}
	return false
}
