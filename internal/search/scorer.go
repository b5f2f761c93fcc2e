package search

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/RMoulla/search-engine/internal/analysis"
	"github.com/RMoulla/search-engine/internal/catalog"
	"github.com/RMoulla/search-engine/internal/index"
)

// Score fusion weights. The blend is fixed; relevance tuning is out of scope.
const (
	tfidfWeight   = 0.72
	fuzzyWeight   = 0.22
	categoryBonus = 0.12
	brandBonus    = 0.08
)

// DefaultLimit caps result lists when the caller does not specify one.
const DefaultLimit = 30

// Search tokenizes the query, filters and scores every product in the index,
// and returns the ranked results plus diagnostics. A query that tokenizes to
// nothing is a defined zero-result outcome, not an error. Search never
// mutates the index and holds no locks; every derived value is local to the
// call.
func Search(idx *index.Index, query string, filters Filters, limit int, debug bool) ([]Result, Diagnostics) {
	queryTokens := analysis.Tokenize(query)
	diagnostics := Diagnostics{
		QueryTokens:   queryTokens,
		TotalProducts: idx.Len(),
		IndexBuildMs:  round2(float64(idx.BuildTime.Nanoseconds()) / 1e6),
	}
	if len(queryTokens) == 0 {
		return nil, diagnostics
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	start := time.Now()
	queryVec, queryNorm := queryVector(queryTokens, idx.IDF)

	querySet := make(map[string]struct{}, len(queryTokens))
	for _, token := range queryTokens {
		querySet[token] = struct{}{}
	}

	var results []Result
	for i := range idx.Products {
		product := &idx.Products[i]
		if !filters.accept(product) {
			continue
		}

		tfidfScore := cosine(queryVec, queryNorm, idx.Vectors[i], idx.Norms[i])
		fuzzyScore := fuzzyTitleScore(querySet, product.Title)

		var bonus float64
		if product.Category != "" && intersects(querySet, analysis.TokenSet(product.Category)) {
			bonus += categoryBonus
		}
		if product.Brand != "" && intersects(querySet, analysis.TokenSet(product.Brand)) {
			bonus += brandBonus
		}

		finalScore := tfidfWeight*tfidfScore + fuzzyWeight*fuzzyScore + bonus
		if finalScore <= 0 {
			continue
		}

		results = append(results, Result{
			Product:       product,
			Score:         finalScore,
			TFIDFScore:    tfidfScore,
			FuzzyScore:    fuzzyScore,
			CategoryBonus: bonus,
			MatchedTokens: matchedTokens(querySet, product.SearchableText),
		})
	}

	// Stable sort keeps catalog order as the tie-break.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > limit {
		results = results[:limit]
	}

	diagnostics.QueryTimeMs = round2(float64(time.Since(start).Nanoseconds()) / 1e6)
	if debug {
		top := results
		if len(top) > 5 {
			top = top[:5]
		}
		diagnostics.TopScores = make([]ScoreBreakdown, 0, len(top))
		for _, r := range top {
			diagnostics.TopScores = append(diagnostics.TopScores, ScoreBreakdown{
				Title: r.Product.Title,
				Final: round4(r.Score),
				TFIDF: round4(r.TFIDFScore),
				Fuzzy: round4(r.FuzzyScore),
				Bonus: round4(r.CategoryBonus),
			})
		}
	}
	return results, diagnostics
}

func (f Filters) accept(p *catalog.Product) bool {
	if f.MinPrice != nil && (p.Price == nil || *p.Price < *f.MinPrice) {
		return false
	}
	if f.MaxPrice != nil && (p.Price == nil || *p.Price > *f.MaxPrice) {
		return false
	}
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.MinRating != nil && (p.Rating == nil || *p.Rating < *f.MinRating) {
		return false
	}
	return true
}

// queryVector applies the document TF formula over the existing IDF table.
// Tokens unseen in the corpus contribute nothing and do not enter the vector.
func queryVector(tokens []string, idf map[string]float64) (index.TermVector, float64) {
	counts := make(map[string]int, len(tokens))
	for _, token := range tokens {
		counts[token]++
	}
	total := len(tokens)
	if total == 0 {
		total = 1
	}
	vector := make(index.TermVector, len(counts))
	var sumSquares float64
	for token, count := range counts {
		weight, ok := idf[token]
		if !ok {
			continue
		}
		w := float64(count) / float64(total) * weight
		vector[token] = w
		sumSquares += w * w
	}
	return vector, math.Sqrt(sumSquares)
}

// cosine is the dot product over shared tokens divided by the norm product,
// defined as 0 when either norm is 0.
func cosine(qvec index.TermVector, qnorm float64, dvec index.TermVector, dnorm float64) float64 {
	if qnorm == 0 || dnorm == 0 {
		return 0
	}
	var dot float64
	for token, weight := range qvec {
		dot += weight * dvec[token]
	}
	return dot / (qnorm * dnorm)
}

// fuzzyTitleScore compares the space-joined sorted distinct query tokens with
// the same form of the tokenized title. Deduplicating and sorting first makes
// the metric order-insensitive, rewarding shared vocabulary over phrasing.
func fuzzyTitleScore(querySet map[string]struct{}, title string) float64 {
	titleSet := analysis.TokenSet(title)
	if len(titleSet) == 0 {
		return 0
	}
	return Ratio(joinSorted(querySet), joinSorted(titleSet))
}

func joinSorted(set map[string]struct{}) string {
	tokens := make([]string, 0, len(set))
	for token := range set {
		tokens = append(tokens, token)
	}
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

func matchedTokens(querySet map[string]struct{}, searchableText string) []string {
	docTokens := strings.Fields(searchableText)
	docSet := make(map[string]struct{}, len(docTokens))
	for _, token := range docTokens {
		docSet[token] = struct{}{}
	}
	var matched []string
	for token := range querySet {
		if _, ok := docSet[token]; ok {
			matched = append(matched, token)
		}
	}
	sort.Strings(matched)
	return matched
}

func intersects(a, b map[string]struct{}) bool {
	for token := range a {
		if _, ok := b[token]; ok {
			return true
		}
	}
	return false
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round4(v float64) float64 { return math.Round(v*10000) / 10000 }
