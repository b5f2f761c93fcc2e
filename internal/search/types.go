// Package search scores free-text queries against a built index: TF-IDF
// cosine similarity blended with fuzzy title similarity and categorical
// bonuses, behind price/category/rating filters.
package search

import "github.com/RMoulla/search-engine/internal/catalog"

// Filters restricts candidates before scoring. A nil bound never rejects; an
// active numeric bound rejects products whose field is absent. Category is an
// exact-equality match when non-empty.
type Filters struct {
	MinPrice  *float64
	MaxPrice  *float64
	MinRating *float64
	Category  string
}

// Result is one ranked hit. Product is borrowed from the index, never copied
// and mutated. MatchedTokens is the sorted set of query tokens literally
// present in the product's searchable text, for explainability.
type Result struct {
	Product       *catalog.Product `json:"product"`
	Score         float64          `json:"score"`
	TFIDFScore    float64          `json:"tfidf_score"`
	FuzzyScore    float64          `json:"fuzzy_score"`
	CategoryBonus float64          `json:"category_bonus"`
	MatchedTokens []string         `json:"matched_tokens"`
}

// ScoreBreakdown exposes per-component scores of a top result in debug
// diagnostics.
type ScoreBreakdown struct {
	Title string  `json:"title"`
	Final float64 `json:"final"`
	TFIDF float64 `json:"tfidf"`
	Fuzzy float64 `json:"fuzzy"`
	Bonus float64 `json:"bonus"`
}

// Diagnostics accompanies every search response.
type Diagnostics struct {
	QueryTokens   []string         `json:"query_tokens"`
	TotalProducts int              `json:"total_products"`
	IndexBuildMs  float64          `json:"index_build_ms"`
	QueryTimeMs   float64          `json:"query_time_ms"`
	TopScores     []ScoreBreakdown `json:"top_scores,omitempty"`
}
