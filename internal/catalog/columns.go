package catalog

import (
	"encoding/json"
	"strings"

	"github.com/RMoulla/search-engine/internal/analysis"
)

// columnCandidates lists, per canonical field, the source column names it is
// commonly published under. Matching is done on the space-free normalised
// form, so "Product Name" matches "product_name".
var columnCandidates = map[string][]string{
	FieldTitle:       {"title", "name", "product_name", "nom", "titre", "product"},
	FieldDescription: {"description", "desc", "details", "content"},
	FieldPrice:       {"price", "selling_price", "prix", "amount", "cost"},
	FieldRating:      {"rating", "average_rating", "note", "stars"},
	FieldImageURL:    {"image_url", "image", "images", "thumbnail", "photo"},
	FieldCategory:    {"category", "categorie", "sub_category", "type", "department"},
	FieldBrand:       {"brand", "marque", "maker"},
	FieldURL:         {"url", "product_url", "link", "href"},
}

// DetectColumns resolves each canonical field to a source column, preferring
// explicit overrides over the candidate-name heuristic. Unresolvable fields
// map to the empty string.
func DetectColumns(headers []string, override map[string]string) ColumnMap {
	available := make([]string, 0, len(headers))
	for _, h := range headers {
		if trimmed := strings.TrimSpace(h); trimmed != "" {
			available = append(available, trimmed)
		}
	}
	normalizedToOriginal := make(map[string]string, len(available))
	for _, h := range available {
		normalizedToOriginal[analysis.Normalize(h, false)] = h
	}

	mapping := make(ColumnMap, len(Fields))
	for _, field := range Fields {
		mapping[field] = ""
	}

	for canonical, chosen := range override {
		for _, h := range available {
			if h == chosen {
				mapping[canonical] = chosen
				break
			}
		}
	}

	for _, field := range Fields {
		if mapping[field] != "" {
			continue
		}
		for _, candidate := range columnCandidates[field] {
			if original, ok := normalizedToOriginal[analysis.Normalize(candidate, false)]; ok {
				mapping[field] = original
				break
			}
		}
	}
	return mapping
}

// ParseColumnMap decodes an optional user-supplied column mapping from a JSON
// object string. Malformed input yields an empty map rather than an error;
// the heuristic detection then runs unassisted.
func ParseColumnMap(raw string) map[string]string {
	if raw == "" {
		return nil
	}
	var payload map[string]string
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil
	}
	return payload
}
