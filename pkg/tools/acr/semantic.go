package acr

import (
	"context"
	"fmt"
	"runtime"

	chromem "github.com/philippgille/chromem-go"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/ollama"

	"github.com/radworks/radchat/pkg/logger"
)

// SemanticIndex answers topic searches by embedding similarity instead of
// title substrings, so "worst headache of my life" can still land on the
// subarachnoid hemorrhage topic.
type SemanticIndex struct {
	lib        *Library
	collection *chromem.Collection
	byID       map[string]Topic
}

// NewSemanticIndex embeds every topic title into an in-memory chromem
// collection using an Ollama embedding model.
func NewSemanticIndex(ctx context.Context, lib *Library, ollamaURL, model string) (*SemanticIndex, error) {
	opts := []ollama.Option{ollama.WithModel(model)}
	if ollamaURL != "" {
		opts = append(opts, ollama.WithServerURL(ollamaURL))
	}
	llm, err := ollama.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create ollama client: %w", err)
	}
	embedder, err := embeddings.NewEmbedder(llm)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedder: %w", err)
	}
	embedFunc := func(ctx context.Context, text string) ([]float32, error) {
		return embedder.EmbedQuery(ctx, text)
	}

	db := chromem.NewDB()
	collection, err := db.CreateCollection("acr-topics", nil, embedFunc)
	if err != nil {
		return nil, fmt.Errorf("failed to create topic collection: %w", err)
	}

	topics := lib.Topics()
	byID := make(map[string]Topic, len(topics))
	docs := make([]chromem.Document, 0, len(topics))
	for _, topic := range topics {
		byID[topic.ID] = topic
		docs = append(docs, chromem.Document{
			ID:      topic.ID,
			Content: topic.Title,
		})
	}
	if len(docs) > 0 {
		if err := collection.AddDocuments(ctx, docs, runtime.NumCPU()); err != nil {
			return nil, fmt.Errorf("failed to embed topics: %w", err)
		}
	}

	logger.Info("acr: semantic index ready with %d topics (model %s)", len(docs), model)
	return &SemanticIndex{lib: lib, collection: collection, byID: byID}, nil
}

// Search runs a similarity query and applies the modality and body-region
// filters to the matches.
func (s *SemanticIndex) Search(ctx context.Context, query, modality, bodyRegion string) (SearchResult, error) {
	if query == "" {
		return s.lib.Search(query, modality, bodyRegion), nil
	}

	n := maxSearchResults
	if count := s.collection.Count(); count < n {
		n = count
	}
	if n == 0 {
		return SearchResult{Query: query}, nil
	}

	matches, err := s.collection.Query(ctx, query, n, nil, nil)
	if err != nil {
		return SearchResult{}, fmt.Errorf("semantic query failed: %w", err)
	}

	var results []Topic
	for _, match := range matches {
		topic, ok := s.byID[match.ID]
		if !ok {
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

	return SearchResult{Results: results, TotalMatches: len(results), Query: query}, nil
}
