// Package tokenize splits raw document text into normalized word tokens.
package tokenize

import (
	"strings"
	"unicode"
)

// Options configures a Tokenizer.
type Options struct {
	Stopwords []string // dropped after normalization
	AlphaOnly bool     // keep only purely alphabetic tokens
	Lowercase bool     // lowercase before tokenization
}

// Tokenizer splits text into word tokens. The stopword set is built once
// at construction and shared read-only across all calls.
type Tokenizer struct {
	stopwords map[string]struct{}
	alphaOnly bool
	lowercase bool
}

// New creates a tokenizer with the given options.
func New(opts Options) *Tokenizer {
	stops := make(map[string]struct{}, len(opts.Stopwords))
	for _, w := range opts.Stopwords {
		stops[strings.ToLower(w)] = struct{}{}
	}
	return &Tokenizer{
		stopwords: stops,
		alphaOnly: opts.AlphaOnly,
		lowercase: opts.Lowercase,
	}
}

// Tokenize splits text into tokens, applying the configured filters.
func (t *Tokenizer) Tokenize(text string) []string {
	var tokens []string
	var current strings.Builder
	alpha := true

	flush := func() {
		if current.Len() == 0 {
			return
		}
		word := current.String()
		current.Reset()
		ok := alpha
		alpha = true
		if t.alphaOnly && !ok {
			return
		}
		if _, stop := t.stopwords[word]; stop {
			return
		}
		tokens = append(tokens, word)
	}

	for _, r := range text {
		switch {
		case unicode.IsLetter(r):
			if t.lowercase {
				r = unicode.ToLower(r)
			}
			current.WriteRune(r)
		case unicode.IsNumber(r):
			current.WriteRune(r)
			alpha = false
		default:
			flush()
		}
	}
	flush()

	return tokens
}
