// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize turns a raw topic phrase into ordered tokens with stop
// words removed.
//
// Punctuation attached to a token is kept: "topic." stays "topic.". Callers
// that need bare words must strip it themselves.
package normalize

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/pdiddy/essay-engine/pkg/types"
)

// Normalizer lowercases, splits, and filters topic phrases against its own
// stop-word set.
type Normalizer struct {
	stop  map[string]struct{}
	lower cases.Caser
}

// New returns a Normalizer for stopWords. A nil slice selects
// types.DefaultStopWords; an empty non-nil slice disables filtering.
func New(stopWords []string) *Normalizer {
	if stopWords == nil {
		stopWords = types.DefaultStopWords
	}
	n := &Normalizer{
		stop:  make(map[string]struct{}, len(stopWords)),
		lower: cases.Lower(language.Und),
	}
	for _, w := range stopWords {
		w = strings.TrimSpace(n.lower.String(w))
		if w != "" {
			n.stop[w] = struct{}{}
		}
	}
	return n
}

// Normalize returns the lowercased whitespace-separated tokens of text that
// are not stop words, in their original order.
func (n *Normalizer) Normalize(text string) []string {
	text = n.lower.String(norm.NFC.String(text))

	var out []string
	for _, tok := range strings.Fields(text) {
		if n.IsStopWord(tok) {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// IsStopWord reports whether tok exactly matches a stop word.
func (n *Normalizer) IsStopWord(tok string) bool {
	_, ok := n.stop[tok]
	return ok
}
