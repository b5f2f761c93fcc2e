// Package analysis provides the text normalisation and tokenisation shared by
// index construction and query scoring. Normalisation lower-cases, folds
// accented Latin letters to their base letter, strips punctuation, and
// collapses whitespace; tokenisation additionally applies a synonym table and
// removes FR/EN stop-words.
package analysis

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes to NFD and drops nonspacing marks, so that an
// accented letter folds to its unaccented base.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lowercases, deaccents, and removes punctuation and noise. Runs of
// whitespace collapse to a single space. With keepSpaces false every space is
// removed as well; that form is used only for column-name matching, never for
// document text.
func Normalize(text string, keepSpaces bool) string {
	if text == "" {
		return ""
	}
	folded, _, err := transform.String(stripMarks, strings.ToLower(text))
	if err != nil {
		folded = strings.ToLower(text)
	}

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	cleaned := strings.Join(strings.Fields(b.String()), " ")
	if keepSpaces {
		return cleaned
	}
	return strings.ReplaceAll(cleaned, " ", "")
}
