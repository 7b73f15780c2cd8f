// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tagger segments a sentence into tokens that each carry a coarse
// part-of-speech category. Bracketed labels such as [NOUN] are recognized
// as template placeholders.
package tagger

import (
	"regexp"
	"strings"

	"github.com/pdiddy/essay-engine/pkg/types"
)

// Token is one segment of a tagged sentence.
type Token struct {
	// Text is the surface text without trailing punctuation.
	Text string
	// POS is the coarse category; Unknown for function words and for
	// placeholders with an unrecognized label.
	POS types.PartOfSpeech
	// Placeholder marks a bracketed label to be substituted.
	Placeholder bool
	// Suffix holds trailing punctuation split off Text (e.g. ".").
	Suffix string
}

// Tagger tags a literal sentence.
type Tagger interface {
	Tag(sentence string) []Token
}

var (
	rePlaceholder = regexp.MustCompile(`^\[([A-Za-z_]+)\]$`)
	reAdverb      = regexp.MustCompile(`ly$`)
	reVerb        = regexp.MustCompile(`(ing|ed|ize|ise|ify)$|^(is|are|be|was|were|has|have|does|do)$`)
	reAdjective   = regexp.MustCompile(`(ous|ful|ive|able|ible|less|ic|al)$`)
)

// functionWords are tagged Unknown rather than guessed from their suffix.
var functionWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {}, "of": {},
	"in": {}, "on": {}, "at": {}, "to": {}, "for": {}, "with": {}, "by": {},
	"from": {}, "as": {}, "it": {}, "its": {}, "this": {}, "that": {},
	"every": {}, "some": {}, "each": {}, "while": {}, "when": {}, "than": {},
	"over": {}, "under": {}, "near": {}, "without": {},
}

// trailingPunct is split off a token into Token.Suffix.
const trailingPunct = ".,;:!?"

// Heuristic is a rule-based tagger: bracketed labels become placeholders,
// function words are Unknown, and other words are classified by suffix
// ("-ly" adverb, "-ing"/"-ed" verb, "-ous"/"-ful"/... adjective, else noun).
type Heuristic struct{}

// Tag splits sentence on whitespace and tags each token.
func (Heuristic) Tag(sentence string) []Token {
	fields := strings.Fields(sentence)
	tokens := make([]Token, 0, len(fields))
	for _, f := range fields {
		text := strings.TrimRight(f, trailingPunct)
		tok := Token{Text: text, Suffix: f[len(text):]}
		if text == "" {
			// Bare punctuation: keep it as an untagged literal.
			tok.Text, tok.Suffix = f, ""
			tokens = append(tokens, tok)
			continue
		}

		if m := rePlaceholder.FindStringSubmatch(text); m != nil {
			tok.Placeholder = true
			tok.POS = types.ParseLabel(m[1])
		} else {
			tok.POS = classify(strings.ToLower(text))
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

func classify(word string) types.PartOfSpeech {
	if _, ok := functionWords[word]; ok {
		return types.Unknown
	}
	switch {
	case reAdverb.MatchString(word):
		return types.Adverb
	case reVerb.MatchString(word):
		return types.Verb
	case reAdjective.MatchString(word):
		return types.Adjective
	default:
		return types.Noun
	}
}
