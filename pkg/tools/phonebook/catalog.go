package phonebook

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/radworks/radchat/pkg/logger"
)

// Contact is one phone directory entry.
type Contact struct {
	Department        string   `json:"department"`
	Description       string   `json:"description,omitempty"`
	Phone             string   `json:"phone"`
	Location          string   `json:"location,omitempty"`
	Availability      string   `json:"availability,omitempty"`
	StudyStatus       string   `json:"study_status,omitempty"`
	Modalities        []string `json:"modalities,omitempty"`
	AnatomicalRegions []string `json:"anatomical_regions,omitempty"`
	Procedures        []string `json:"procedures,omitempty"`
}

// Catalog is the on-disk directory file.
type Catalog struct {
	Metadata     map[string]any  `json:"metadata"`
	Contacts     []Contact       `json:"contacts"`
	RoutingRules json.RawMessage `json:"routing_rules,omitempty"`
}

// LoadCatalog reads the contacts file. A missing file yields an empty catalog
// rather than an error so the assistant degrades to general knowledge.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		logger.Warn("phonebook: contacts file %s not found, directory is empty", path)
		return &Catalog{Contacts: []Contact{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read contacts file: %w", err)
	}

	var catalog Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse contacts file: %w", err)
	}
	logger.Info("phonebook: loaded %d contacts from %s", len(catalog.Contacts), path)
	return &catalog, nil
}
