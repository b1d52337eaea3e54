// Package text turns free-form profile text into bag-of-words vectors and
// compares them.
package text

import (
	"strings"
	"unicode"
)

// DefaultMinTokenLength is the shortest token kept by the default tokenizer.
// Two-letter words, acronyms like "AI" included, are dropped.
const DefaultMinTokenLength = 3

// defaultStopWords are English function words that carry no signal for matching.
var defaultStopWords = []string{
	"a", "an", "and", "are", "as", "at", "be", "but", "by", "for", "from",
	"has", "he", "in", "is", "it", "its", "of", "on", "or", "she", "that",
	"the", "their", "they", "this", "to", "was", "we", "with", "you", "your",
	"our", "us", "i", "my", "me", "them", "who", "what", "when",
	"where", "why", "how",
}

// DefaultStopWords returns a copy of the built-in stop-word list.
func DefaultStopWords() []string {
	out := make([]string, len(defaultStopWords))
	copy(out, defaultStopWords)
	return out
}

// Option applies a configuration option to a Tokenizer.
type Option func(*Tokenizer)

// WithMinTokenLength sets the minimum length a token needs to survive.
func WithMinTokenLength(n int) Option {
	return func(t *Tokenizer) {
		if n > 0 {
			t.minTokenLength = n
		}
	}
}

// WithStopWords replaces the stop-word set. Words are lowercased and blank
// entries ignored. A list with no usable word keeps the current set.
func WithStopWords(words []string) Option {
	return func(t *Tokenizer) {
		set := make(map[string]struct{}, len(words))
		for _, w := range words {
			if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
				set[w] = struct{}{}
			}
		}
		if len(set) > 0 {
			t.stopWords = set
		}
	}
}

// Tokenizer splits text into lowercase terms, dropping short tokens and
// stop words. A Tokenizer is immutable and safe for concurrent use.
type Tokenizer struct {
	minTokenLength int
	stopWords      map[string]struct{}
}

// NewTokenizer creates a tokenizer with the default threshold and stop words
// unless overridden by opts.
func NewTokenizer(opts ...Option) *Tokenizer {
	t := &Tokenizer{minTokenLength: DefaultMinTokenLength}
	WithStopWords(defaultStopWords)(t)

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// MinTokenLength reports the configured length threshold.
func (t *Tokenizer) MinTokenLength() int { return t.minTokenLength }

// IsStopWord reports whether w is in the stop-word set.
func (t *Tokenizer) IsStopWord(w string) bool {
	_, ok := t.stopWords[w]
	return ok
}

// Tokenize returns the surviving terms of s in the order they appear.
// Anything other than ASCII letters, digits and whitespace acts as a
// separator, so "data-science" yields "data" and "science".
func (t *Tokenizer) Tokenize(s string) []string {
	if s == "" {
		return []string{}
	}

	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case unicode.IsSpace(r):
			return r
		default:
			return ' '
		}
	}, lower(s))

	fields := strings.Fields(cleaned)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) < t.minTokenLength || t.IsStopWord(f) {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// dottedCapitalI lowercases to "i" plus U+0307 under full Unicode case
// mapping, the only unconditional multi-rune lowercase mapping.
var dottedCapitalI = strings.NewReplacer("\u0130", "i\u0307")

// lower applies full Unicode lowercase mapping.
func lower(s string) string {
	return strings.ToLower(dottedCapitalI.Replace(s))
}

var defaultTokenizer = NewTokenizer()

// Tokenize splits s with the default tokenizer.
func Tokenize(s string) []string {
	return defaultTokenizer.Tokenize(s)
}
