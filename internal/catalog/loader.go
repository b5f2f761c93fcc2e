package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/RMoulla/search-engine/internal/analysis"
	apperrors "github.com/RMoulla/search-engine/pkg/errors"
)

// Load builds a Corpus from already column-mapped rows. Rows whose title is
// empty after trimming are skipped silently; ids are assigned as a dense
// 0-based sequence over the kept rows, in source order. Unparsable price and
// rating cells become absent fields, never errors. Load fails when no usable
// title column was resolved or when no row yields a non-empty title.
func Load(rows []Row, columns ColumnMap) (*Corpus, error) {
	titleCol := columns[FieldTitle]
	if titleCol == "" {
		return nil, fmt.Errorf("%w: configure catalog.columnMapJSON, e.g. {\"title\": \"product_name\"}",
			apperrors.ErrNoTitleColumn)
	}

	corpus := &Corpus{}
	categorySet := make(map[string]struct{})

	cell := func(row Row, field string) string {
		col := columns[field]
		if col == "" {
			return ""
		}
		return strings.TrimSpace(row[col])
	}

	for _, row := range rows {
		title := strings.TrimSpace(row[titleCol])
		if title == "" {
			continue
		}

		description := cell(row, FieldDescription)
		category := cell(row, FieldCategory)
		brand := cell(row, FieldBrand)

		parts := make([]string, 0, 4)
		for _, part := range []string{title, description, category, brand} {
			if part != "" {
				parts = append(parts, part)
			}
		}
		tokens := analysis.Tokenize(strings.Join(parts, " "))

		product := Product{
			ID:             len(corpus.Products),
			Title:          title,
			Description:    description,
			Category:       category,
			Brand:          brand,
			Price:          ParseNumeric(cell(row, FieldPrice)),
			Rating:         ParseNumeric(cell(row, FieldRating)),
			ImageURL:       cell(row, FieldImageURL),
			URL:            cell(row, FieldURL),
			SearchableText: strings.Join(tokens, " "),
		}
		corpus.Products = append(corpus.Products, product)
		corpus.TokenLists = append(corpus.TokenLists, tokens)
		if category != "" {
			categorySet[category] = struct{}{}
		}
	}

	if len(corpus.Products) == 0 {
		return nil, apperrors.ErrNoValidRows
	}

	corpus.Categories = make([]string, 0, len(categorySet))
	for category := range categorySet {
		corpus.Categories = append(corpus.Categories, category)
	}
	sort.Strings(corpus.Categories)
	return corpus, nil
}
