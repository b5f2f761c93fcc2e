// Package catalog turns rows from a tabular source into typed product
// records. Column names are resolved once, at the load boundary; scoring code
// never sees raw rows.
package catalog

// Canonical product fields. Every source must map onto these, however its
// columns are named.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldPrice       = "price"
	FieldRating      = "rating"
	FieldImageURL    = "image_url"
	FieldCategory    = "category"
	FieldBrand       = "brand"
	FieldURL         = "url"
)

// Fields lists the canonical field names in a stable order.
var Fields = []string{
	FieldTitle,
	FieldDescription,
	FieldPrice,
	FieldRating,
	FieldImageURL,
	FieldCategory,
	FieldBrand,
	FieldURL,
}

// Row is a single record from the source, keyed by source column name.
type Row map[string]string

// ColumnMap resolves each canonical field to a source column name. An empty
// value means the field is absent from the source.
type ColumnMap map[string]string

// Product is an immutable catalog record. ID is the dense 0-based position
// among kept rows and is stable within one loaded index. SearchableText is
// the normalised, synonym-mapped, stop-word-filtered token stream of
// title+description+category+brand, stored once so queries never re-tokenize
// documents.
type Product struct {
	ID             int      `json:"id"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Category       string   `json:"category"`
	Brand          string   `json:"brand"`
	Price          *float64 `json:"price"`
	Rating         *float64 `json:"rating"`
	ImageURL       string   `json:"image_url"`
	URL            string   `json:"url"`
	SearchableText string   `json:"searchable_text"`
}

// Corpus is the loader output. Products and TokenLists are parallel slices;
// TokenLists feeds TF-IDF construction and preserves duplicate tokens.
type Corpus struct {
	Products   []Product
	TokenLists [][]string
	Categories []string
}
