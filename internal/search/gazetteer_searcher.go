package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/agnivade/levenshtein"
	"github.com/meilisearch/meilisearch-go"
	"github.com/xrash/smetrics"
	"go.uber.org/zap"

	"github.com/rights-calculator/internal/normalizer"
)

// NeighborhoodDoc is one gazetteer entry: a neighborhood or quarter name as
// it appears in the municipal GIS layers, with its HFP/2666 district
// assignment.
type NeighborhoodDoc struct {
	DocID          string   `json:"doc_id" bson:"doc_id"`
	Name           string   `json:"name" bson:"name"`
	NormalizedName string   `json:"normalized_name" bson:"normalized_name"`
	SearchKey      string   `json:"search_key" bson:"search_key"`
	Aliases        []string `json:"aliases" bson:"aliases"`
	Quarter        string   `json:"quarter,omitempty" bson:"quarter,omitempty"`
	DistrictID     int      `json:"district_id" bson:"district_id"`
}

// Suggestion is a ranked gazetteer match for a free-text neighborhood query.
type Suggestion struct {
	Name       string  `json:"name"`
	Quarter    string  `json:"quarter,omitempty"`
	DistrictID int     `json:"district_id"`
	Score      float64 `json:"score"`
}

// SearchConfig configures the Meilisearch connection and the fuzzy re-rank.
type SearchConfig struct {
	Host          string
	APIKey        string
	IndexName     string
	Timeout       time.Duration
	MaxCandidates int

	// Re-rank weights over the Meilisearch candidates. Jaro-Winkler favors
	// shared prefixes; the Levenshtein term penalizes overall edit distance.
	JWWeight  float64
	LevWeight float64
	MinScore  float64
}

// GazetteerSearcher serves neighborhood-name suggestions from a Meilisearch
// index and re-ranks them with string-distance scoring.
type GazetteerSearcher struct {
	client     meilisearch.ServiceManager
	normalizer *normalizer.PlaceNameNormalizer
	logger     *zap.Logger
	config     SearchConfig
}

// NewGazetteerSearcher creates the searcher and verifies connectivity.
func NewGazetteerSearcher(config SearchConfig, logger *zap.Logger) (*GazetteerSearcher, error) {
	client := meilisearch.New(config.Host, meilisearch.WithAPIKey(config.APIKey))

	if _, err := client.Health(); err != nil {
		return nil, fmt.Errorf("meilisearch unreachable: %w", err)
	}

	if config.MaxCandidates <= 0 {
		config.MaxCandidates = 20
	}
	if config.JWWeight == 0 && config.LevWeight == 0 {
		config.JWWeight, config.LevWeight = 0.6, 0.4
	}

	return &GazetteerSearcher{
		client:     client,
		normalizer: normalizer.NewPlaceNameNormalizer(),
		logger:     logger,
		config:     config,
	}, nil
}

// Suggest returns ranked neighborhood matches for a free-text query.
func (gs *GazetteerSearcher) Suggest(ctx context.Context, query string, limit int) ([]Suggestion, error) {
	if query == "" {
		return nil, errors.New("empty query")
	}
	if limit <= 0 || limit > gs.config.MaxCandidates {
		limit = gs.config.MaxCandidates
	}

	normalized := gs.normalizer.Normalize(query)

	docs, err := gs.searchDocs(ctx, normalized, "", int64(gs.config.MaxCandidates))
	if err != nil {
		return nil, err
	}

	key := gs.normalizer.SearchKey(query)
	suggestions := rankSuggestions(key, docs, gs.config.JWWeight, gs.config.LevWeight, gs.config.MinScore, limit)

	gs.logger.Debug("gazetteer suggest",
		zap.String("query", query),
		zap.Int("candidates", len(docs)),
		zap.Int("returned", len(suggestions)))

	return suggestions, nil
}

// SuggestInDistrict is Suggest restricted to one district's neighborhoods.
func (gs *GazetteerSearcher) SuggestInDistrict(ctx context.Context, query string, districtID, limit int) ([]Suggestion, error) {
	if query == "" {
		return nil, errors.New("empty query")
	}
	if limit <= 0 || limit > gs.config.MaxCandidates {
		limit = gs.config.MaxCandidates
	}

	normalized := gs.normalizer.Normalize(query)

	docs, err := gs.searchDocs(ctx, normalized, FilterDistrict(districtID), int64(gs.config.MaxCandidates))
	if err != nil {
		return nil, err
	}

	key := gs.normalizer.SearchKey(query)
	return rankSuggestions(key, docs, gs.config.JWWeight, gs.config.LevWeight, gs.config.MinScore, limit), nil
}

// DistrictFor resolves a single best district id for a free-text
// neighborhood name, or 0 when nothing scores above the threshold.
func (gs *GazetteerSearcher) DistrictFor(ctx context.Context, name string) (int, error) {
	suggestions, err := gs.Suggest(ctx, name, 1)
	if err != nil {
		return 0, err
	}
	if len(suggestions) == 0 {
		return 0, nil
	}
	return suggestions[0].DistrictID, nil
}

func (gs *GazetteerSearcher) searchDocs(ctx context.Context, query, filter string, limit int64) ([]NeighborhoodDoc, error) {
	searchCtx, cancel := context.WithTimeout(ctx, gs.config.Timeout)
	defer cancel()
	_ = searchCtx // the 1.5.x client does not take a context per request

	index := gs.client.Index(gs.config.IndexName)
	result, err := index.Search(query, &meilisearch.SearchRequest{
		Limit:  limit,
		Filter: filter,
	})
	if err != nil {
		return nil, fmt.Errorf("gazetteer search: %w", err)
	}

	return parseHits(result)
}

func parseHits(result *meilisearch.SearchResponse) ([]NeighborhoodDoc, error) {
	docs := make([]NeighborhoodDoc, 0, len(result.Hits))
	for _, hit := range result.Hits {
		hitMap, ok := hit.(map[string]interface{})
		if !ok {
			continue
		}

		doc := NeighborhoodDoc{}
		if v, ok := hitMap["doc_id"].(string); ok {
			doc.DocID = v
		}
		if v, ok := hitMap["name"].(string); ok {
			doc.Name = v
		}
		if v, ok := hitMap["normalized_name"].(string); ok {
			doc.NormalizedName = v
		}
		if v, ok := hitMap["search_key"].(string); ok {
			doc.SearchKey = v
		}
		if v, ok := hitMap["quarter"].(string); ok {
			doc.Quarter = v
		}
		if v, ok := hitMap["district_id"].(float64); ok {
			doc.DistrictID = int(v)
		}
		if doc.Name == "" {
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// rankSuggestions scores candidates against the query's ASCII search key and
// returns the top matches above the minimum score, best first.
func rankSuggestions(queryKey string, docs []NeighborhoodDoc, jwWeight, levWeight, minScore float64, limit int) []Suggestion {
	suggestions := make([]Suggestion, 0, len(docs))
	for _, doc := range docs {
		candidateKey := doc.SearchKey
		if candidateKey == "" {
			candidateKey = doc.NormalizedName
		}
		score := fuzzyScore(queryKey, candidateKey, jwWeight, levWeight)
		if score < minScore {
			continue
		}
		suggestions = append(suggestions, Suggestion{
			Name:       doc.Name,
			Quarter:    doc.Quarter,
			DistrictID: doc.DistrictID,
			Score:      score,
		})
	}

	// Insertion sort; candidate lists are small (MaxCandidates).
	for i := 1; i < len(suggestions); i++ {
		for j := i; j > 0 && suggestions[j].Score > suggestions[j-1].Score; j-- {
			suggestions[j], suggestions[j-1] = suggestions[j-1], suggestions[j]
		}
	}

	if len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions
}

// fuzzyScore combines Jaro-Winkler similarity with a length-normalized
// Levenshtein term.
func fuzzyScore(a, b string, jwWeight, levWeight float64) float64 {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}

	jw := smetrics.JaroWinkler(a, b, 0.7, 4)

	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	dist := levenshtein.ComputeDistance(a, b)
	lev := 1 - float64(dist)/float64(maxLen)
	if lev < 0 {
		lev = 0
	}

	total := jwWeight + levWeight
	return (jw*jwWeight + lev*levWeight) / total
}

// BuildIndexes applies the gazetteer index settings.
func (gs *GazetteerSearcher) BuildIndexes() error {
	index := gs.client.Index(gs.config.IndexName)

	settings := &meilisearch.Settings{
		SearchableAttributes: []string{"name", "normalized_name", "search_key", "aliases"},
		FilterableAttributes: []string{"district_id", "quarter", "doc_id"},
		SortableAttributes:   []string{"name"},
		RankingRules: []string{
			"words",
			"typo",
			"proximity",
			"attribute",
			"sort",
			"exactness",
		},
	}

	task, err := index.UpdateSettings(settings)
	if err != nil {
		return fmt.Errorf("updating gazetteer index settings: %w", err)
	}

	gs.logger.Info("gazetteer index settings submitted", zap.Int64("task_uid", task.TaskUID))
	return nil
}

// SeedData loads neighborhood documents into the index, filling derived
// fields when the source omits them.
func (gs *GazetteerSearcher) SeedData(docs []NeighborhoodDoc) error {
	if len(docs) == 0 {
		return errors.New("no documents to seed")
	}

	prepared := make([]NeighborhoodDoc, 0, len(docs))
	for _, doc := range docs {
		if doc.Name == "" {
			continue
		}
		if doc.DocID == "" {
			doc.DocID = gs.normalizer.SearchKey(doc.Name)
		}
		if doc.NormalizedName == "" {
			doc.NormalizedName = gs.normalizer.Normalize(doc.Name)
		}
		if doc.SearchKey == "" {
			doc.SearchKey = gs.normalizer.SearchKey(doc.Name)
		}
		if doc.Aliases == nil {
			doc.Aliases = []string{}
		}
		prepared = append(prepared, doc)
	}

	index := gs.client.Index(gs.config.IndexName)
	task, err := index.AddDocuments(prepared, "doc_id")
	if err != nil {
		return fmt.Errorf("seeding gazetteer: %w", err)
	}

	gs.logger.Info("gazetteer seed submitted",
		zap.Int("documents", len(prepared)),
		zap.Int64("task_uid", task.TaskUID))
	return nil
}
