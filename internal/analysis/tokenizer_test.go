package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenizeStopWords(t *testing.T) {
	got := Tokenize("Le téléphone pour les étudiants")
	assert.Equal(t, []string{"telephone", "etudiants"}, got)
}

func TestTokenizeSynonyms(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"baskets runing", []string{"chaussure", "running"}},
		{"sneakers blanches", []string{"chaussure", "blanches"}},
		{"cadeaux anniv", []string{"cadeau", "anniversaire"}},
		{"ordi portable", []string{"ordinateur", "portable"}},
		{"smartphone 5g", []string{"telephone", "5g"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Tokenize(tt.input), "input %q", tt.input)
	}
}

func TestTokenizeDropsShortTokens(t *testing.T) {
	// "b" survives normalisation but is a single character.
	got := Tokenize("b cd efg")
	assert.Equal(t, []string{"cd", "efg"}, got)
}

func TestTokenizePreservesOrderAndDuplicates(t *testing.T) {
	got := Tokenize("chaussure rouge chaussure")
	assert.Equal(t, []string{"chaussure", "rouge", "chaussure"}, got)
}

func TestTokenizeStopWordsOnly(t *testing.T) {
	assert.Empty(t, Tokenize("le la les de du et pour"))
	assert.Empty(t, Tokenize(""))
	assert.Empty(t, Tokenize("   !!!   "))
}

func TestTokenizeSynonymBeforeFiltering(t *testing.T) {
	// The mapped form, not the source word, is what the filters see.
	got := Tokenize("chaussur")
	assert.Equal(t, []string{"chaussure"}, got)
}

func TestTokenSet(t *testing.T) {
	set := TokenSet("chaussure rouge chaussure")
	assert.Len(t, set, 2)
	assert.Contains(t, set, "chaussure")
	assert.Contains(t, set, "rouge")

	assert.Nil(t, TokenSet("le la"))
}
