package acr

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/radworks/radchat/pkg/logger"
)

// Topic is one appropriateness criteria document in the index.
type Topic struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	URL         string   `json:"url,omitempty"`
	Modalities  []string `json:"modalities"`
	BodyRegions []string `json:"body_regions"`
}

// Procedure is one scored row of a topic's rating table. Score is a pointer:
// some cached rows genuinely have no rating and must not default to zero.
type Procedure struct {
	Name       string   `json:"name"`
	Score      *int     `json:"score"`
	Level      string   `json:"level"`
	Modalities []string `json:"modalities"`
}

// TopicDetail is the full rating set for one topic.
type TopicDetail struct {
	TopicID    string      `json:"topic_id"`
	Title      string      `json:"title"`
	URL        string      `json:"url,omitempty"`
	Procedures []Procedure `json:"procedures"`
	Error      string      `json:"error,omitempty"`
}

type indexFile struct {
	Generated string  `json:"generated,omitempty"`
	Topics    []Topic `json:"topics"`
}

type detailFile struct {
	TopicID    string `json:"topic_id"`
	Title      string `json:"title"`
	URL        string `json:"url,omitempty"`
	Procedures []struct {
		Name   string `json:"name"`
		Score  *int   `json:"score"`
		Rating string `json:"rating,omitempty"`
	} `json:"procedures"`
}

// Library serves appropriateness criteria from the scraped JSON cache: an
// index file plus one detail file per topic in a sibling topics/ directory.
type Library struct {
	topics    []Topic
	topicsDir string
}

// LoadLibrary reads the topic index. Modalities and body regions missing from
// the cache are derived from the title.
func LoadLibrary(indexPath string) (*Library, error) {
	data, err := os.ReadFile(indexPath)
	if os.IsNotExist(err) {
		logger.Warn("acr: criteria cache %s not found, index is empty", indexPath)
		return &Library{topicsDir: topicsDirFor(indexPath)}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read criteria index: %w", err)
	}

	var index indexFile
	if err := json.Unmarshal(data, &index); err != nil {
		return nil, fmt.Errorf("failed to parse criteria index: %w", err)
	}

	for i := range index.Topics {
		if index.Topics[i].Modalities == nil {
			index.Topics[i].Modalities = ExtractModalities(index.Topics[i].Title)
		}
		if index.Topics[i].BodyRegions == nil {
			index.Topics[i].BodyRegions = ExtractBodyRegions(index.Topics[i].Title)
		}
	}

	logger.Info("acr: loaded %d criteria topics from %s", len(index.Topics), indexPath)
	return &Library{
		topics:    index.Topics,
		topicsDir: topicsDirFor(indexPath),
	}, nil
}

func topicsDirFor(indexPath string) string {
	return filepath.Join(filepath.Dir(indexPath), "topics")
}

// Topics returns the full index.
func (l *Library) Topics() []Topic {
	return l.topics
}

// SearchResult is the payload of a criteria topic search.
type SearchResult struct {
	Results      []Topic `json:"results"`
	TotalMatches int     `json:"total_matches"`
	Query        string  `json:"query"`
}

// ListResult is the payload of a topic listing.
type ListResult struct {
	Topics []Topic `json:"topics"`
	Total  int     `json:"total"`
}

const (
	maxSearchResults = 15
	maxListedTopics  = 30
)

// Search filters topics by title substring, modality and body region.
func (l *Library) Search(query, modality, bodyRegion string) SearchResult {
	queryLower := strings.ToLower(query)

	var results []Topic
	for _, topic := range l.topics {
		if queryLower != "" && !strings.Contains(strings.ToLower(topic.Title), queryLower) {
			continue
		}
		if modality != "" && !contains(topic.Modalities, modality) {
			continue
		}
		if bodyRegion != "" && !contains(topic.BodyRegions, bodyRegion) {
			continue
		}
		results = append(results, topic)
	}

	total := len(results)
	if len(results) > maxSearchResults {
		results = results[:maxSearchResults]
	}
	return SearchResult{Results: results, TotalMatches: total, Query: query}
}

// List returns the browsable topic index, optionally narrowed to one region.
func (l *Library) List(bodyRegion string) ListResult {
	topics := l.topics
	if bodyRegion != "" {
		var filtered []Topic
		for _, topic := range topics {
			if contains(topic.BodyRegions, bodyRegion) {
				filtered = append(filtered, topic)
			}
		}
		topics = filtered
	}

	total := len(topics)
	if len(topics) > maxListedTopics {
		topics = topics[:maxListedTopics]
	}
	return ListResult{Topics: topics, Total: total}
}

// Details loads a topic's rating table from the cache, annotating each
// procedure with its band label and extracted modalities.
func (l *Library) Details(topicID string) TopicDetail {
	path := filepath.Join(l.topicsDir, topicID+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Debug("acr: no cached details for topic %s: %v", topicID, err)
		return TopicDetail{
			TopicID: topicID,
			Error:   fmt.Sprintf("No cached criteria for topic %s", topicID),
		}
	}

	var detail detailFile
	if err := json.Unmarshal(data, &detail); err != nil {
		return TopicDetail{
			TopicID: topicID,
			Error:   fmt.Sprintf("Unreadable criteria cache for topic %s", topicID),
		}
	}

	out := TopicDetail{
		TopicID: topicID,
		Title:   detail.Title,
		URL:     detail.URL,
	}
	if out.Title == "" {
		for _, topic := range l.topics {
			if topic.ID == topicID {
				out.Title = topic.Title
				break
			}
		}
	}

	for _, p := range detail.Procedures {
		score, hasScore := 0, false
		if p.Score != nil {
			score, hasScore = *p.Score, true
		} else if p.Rating != "" {
			score, hasScore = ParseScore(p.Rating)
		}

		proc := Procedure{
			Name:       p.Name,
			Level:      LevelLabel(score, hasScore),
			Modalities: ExtractModalities(p.Name),
		}
		if hasScore {
			s := score
			proc.Score = &s
		}
		out.Procedures = append(out.Procedures, proc)
	}
	return out
}

func contains(list []string, target string) bool {
	for _, item := range list {
		if item == target {
			return true
		}
	}
	return false
}
