package analysis

import "strings"

// Tokenize normalises text and splits it into search terms. Each term is
// mapped through the synonym table, then dropped if the mapped form is a
// stop-word or a single character. Order and duplicates are preserved; term
// frequency counting downstream depends on that.
func Tokenize(text string) []string {
	normalized := Normalize(text, true)
	if normalized == "" {
		return nil
	}
	words := strings.Split(normalized, " ")
	tokens := make([]string, 0, len(words))
	for _, word := range words {
		if mapped, ok := synonyms[word]; ok {
			word = mapped
		}
		if _, stop := stopWords[word]; stop {
			continue
		}
		if len(word) <= 1 {
			continue
		}
		tokens = append(tokens, word)
	}
	return tokens
}

// TokenSet returns the distinct tokens of text.
func TokenSet(text string) map[string]struct{} {
	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}
