package index

import (
	"math"

	"github.com/RMoulla/search-engine/internal/catalog"
)

// Build computes document frequencies, the smoothed IDF table, and one sparse
// weighted term vector (with precomputed Euclidean norm) per product.
//
// The IDF is idf(t) = ln((1+N)/(1+df(t))) + 1, which stays strictly positive
// for every token present in at least one document. Term frequency is the
// token count over the document's total token count (floored at 1 to keep the
// empty document defined). The whole index is rebuilt on every load; there is
// no incremental update.
func Build(corpus *catalog.Corpus) *Index {
	docCount := len(corpus.TokenLists)

	docFreq := make(map[string]int)
	for _, tokens := range corpus.TokenLists {
		seen := make(map[string]struct{}, len(tokens))
		for _, token := range tokens {
			if _, ok := seen[token]; ok {
				continue
			}
			seen[token] = struct{}{}
			docFreq[token]++
		}
	}

	idf := make(map[string]float64, len(docFreq))
	for token, df := range docFreq {
		idf[token] = math.Log(float64(1+docCount)/float64(1+df)) + 1.0
	}

	vectors := make([]TermVector, 0, docCount)
	norms := make([]float64, 0, docCount)
	for _, tokens := range corpus.TokenLists {
		counts := make(map[string]int, len(tokens))
		for _, token := range tokens {
			counts[token]++
		}
		total := len(tokens)
		if total == 0 {
			total = 1
		}
		vector := make(TermVector, len(counts))
		var sumSquares float64
		for token, count := range counts {
			weight := float64(count) / float64(total) * idf[token]
			vector[token] = weight
			sumSquares += weight * weight
		}
		vectors = append(vectors, vector)
		norms = append(norms, math.Sqrt(sumSquares))
	}

	return &Index{
		Products:   corpus.Products,
		Vectors:    vectors,
		Norms:      norms,
		IDF:        idf,
		Categories: corpus.Categories,
	}
}
