package analysis

// The stop-word set and synonym table are plain data, kept apart from the
// tokenizer logic so the vocabulary can be extended without touching it.

// stopWords covers common FR and EN function words.
var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "au": {}, "aux": {}, "avec": {},
	"ce": {}, "ces": {}, "dans": {}, "de": {}, "des": {}, "du": {},
	"elle": {}, "en": {}, "et": {}, "for": {}, "il": {}, "ils": {},
	"in": {}, "is": {}, "la": {}, "le": {}, "les": {}, "mais": {},
	"of": {}, "on": {}, "or": {}, "ou": {}, "par": {}, "pas": {},
	"pour": {}, "que": {}, "qui": {}, "sur": {}, "the": {}, "to": {},
	"un": {}, "une": {}, "with": {},
}

// synonyms maps product-domain abbreviations and frequent misspellings to a
// canonical form, applied before stop-word filtering.
var synonyms = map[string]string{
	"basket":     "chaussure",
	"baskets":    "chaussure",
	"sneaker":    "chaussure",
	"sneakers":   "chaussure",
	"tel":        "telephone",
	"mobile":     "telephone",
	"smartphone": "telephone",
	"ordi":       "ordinateur",
	"laptop":     "ordinateur",
	"notebook":   "ordinateur",
	"cadeaux":    "cadeau",
	"anniv":      "anniversaire",
	"runing":     "running",
	"chaussur":   "chaussure",
}
