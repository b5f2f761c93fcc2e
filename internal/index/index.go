// Package index builds the in-memory TF-IDF index over a loaded catalog. An
// Index is immutable after construction; a rebuild produces a wholly new
// Index that the engine swaps in atomically, so concurrent readers never
// observe a partial build.
package index

import (
	"time"

	"github.com/RMoulla/search-engine/internal/catalog"
)

// TermVector is a sparse mapping from token to its TF-IDF weight.
type TermVector map[string]float64

// Index aggregates the products, their term vectors and norms (parallel
// slices, position = product id), the shared IDF table, and the distinct
// category list. BuildTime covers the full load: source scan, tokenisation,
// and vector construction.
type Index struct {
	Products   []catalog.Product
	Vectors    []TermVector
	Norms      []float64
	IDF        map[string]float64
	Categories []string
	BuildTime  time.Duration
}

// Len returns the corpus size.
func (idx *Index) Len() int {
	return len(idx.Products)
}
