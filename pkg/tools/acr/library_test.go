package acr

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLibrary(t *testing.T) *Library {
	t.Helper()
	lib, err := LoadLibrary("testdata/index.json")
	require.NoError(t, err)
	return lib
}

func TestLoadLibrary_DerivesModalitiesAndRegions(t *testing.T) {
	lib := testLibrary(t)
	require.Len(t, lib.Topics(), 5)

	result := lib.Search("pulmonary embolism", "", "")
	require.Len(t, result.Results, 1)
	topic := result.Results[0]
	assert.Contains(t, topic.BodyRegions, "chest")
	assert.Contains(t, topic.BodyRegions, "vascular")
}

func TestLoadLibrary_MissingCacheYieldsEmptyIndex(t *testing.T) {
	lib, err := LoadLibrary("testdata/nope/index.json")
	require.NoError(t, err)
	assert.Empty(t, lib.Topics())
}

func TestSearch_Filters(t *testing.T) {
	lib := testLibrary(t)

	t.Run("title substring", func(t *testing.T) {
		result := lib.Search("headache", "", "")
		require.Len(t, result.Results, 1)
		assert.Equal(t, "Headache", result.Results[0].Title)
		assert.Equal(t, 1, result.TotalMatches)
	})

	t.Run("body region", func(t *testing.T) {
		result := lib.Search("pain", "", "msk")
		require.Len(t, result.Results, 1)
		assert.Equal(t, "Chronic Knee Pain", result.Results[0].Title)
	})

	t.Run("no match", func(t *testing.T) {
		result := lib.Search("appendicitis in zero gravity", "", "")
		assert.Empty(t, result.Results)
	})
}

func TestList_FiltersByRegion(t *testing.T) {
	lib := testLibrary(t)

	all := lib.List("")
	assert.Equal(t, 5, all.Total)

	head := lib.List("head")
	require.Len(t, head.Topics, 1)
	assert.Equal(t, "Headache", head.Topics[0].Title)
}

func TestDetails_AnnotatesBands(t *testing.T) {
	lib := testLibrary(t)
	detail := lib.Details("69418")

	require.Empty(t, detail.Error)
	assert.Equal(t, "Acute Chest Pain - Suspected Pulmonary Embolism", detail.Title)
	require.Len(t, detail.Procedures, 6)

	byName := map[string]Procedure{}
	for _, p := range detail.Procedures {
		byName[p.Name] = p
	}

	cta := byName["CTA chest with IV contrast"]
	require.NotNil(t, cta.Score)
	assert.Equal(t, 9, *cta.Score)
	assert.Equal(t, "Usually Appropriate", cta.Level)

	echo := byName["US echocardiography transthoracic"]
	assert.Equal(t, "May Be Appropriate", echo.Level)

	mra := byName["MRA chest without and with IV contrast"]
	assert.Equal(t, "Usually Not Appropriate", mra.Level)

	// Null score is preserved as unknown, never defaulted to a band.
	ctHead := byName["CT head without IV contrast"]
	assert.Nil(t, ctHead.Score)
	assert.Equal(t, "Unknown", ctHead.Level)

	// Label-only ratings are parsed into the band's representative score.
	vq := byName["Lung scintigraphy ventilation-perfusion"]
	require.NotNil(t, vq.Score)
	assert.Equal(t, 8, *vq.Score)
	assert.Equal(t, "Usually Appropriate", vq.Level)
}

func TestDetails_UnknownTopic(t *testing.T) {
	lib := testLibrary(t)
	detail := lib.Details("999999")
	assert.Contains(t, detail.Error, "999999")
}

func TestParseScore(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		score    int
		hasScore bool
	}{
		{"bare digit", "7", 7, true},
		{"digit in text", "rated 4 of 9", 4, true},
		{"label high", "Usually Appropriate", 8, true},
		{"label mid", "May Be Appropriate", 5, true},
		{"label low", "Usually Not Appropriate", 2, true},
		{"empty", "", 0, false},
		{"no rating", "pending review", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, ok := ParseScore(tt.text)
			assert.Equal(t, tt.hasScore, ok)
			if ok {
				assert.Equal(t, tt.score, score)
			}
		})
	}
}

func TestExtractModalities(t *testing.T) {
	mods := ExtractModalities("CTA chest with IV contrast")
	assert.Contains(t, mods, "ct")

	mods = ExtractModalities("US duplex Doppler lower extremity")
	assert.Contains(t, mods, "us")

	assert.Empty(t, ExtractModalities("clinical follow-up"))
}

func TestSearchTool_ExecuteWithoutSemanticIndex(t *testing.T) {
	lib := testLibrary(t)
	tool := &SearchTool{lib: lib}

	payload, err := tool.Execute(context.Background(), map[string]any{"query": "knee"})
	require.NoError(t, err)

	results, ok := payload["results"].([]any)
	require.True(t, ok)
	require.Len(t, results, 1)
	first := results[0].(map[string]any)
	assert.Equal(t, "Chronic Knee Pain", first["title"])
}
