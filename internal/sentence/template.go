// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sentence

import (
	"fmt"
	"strings"

	"github.com/pdiddy/essay-engine/internal/tagger"
	"github.com/pdiddy/essay-engine/pkg/types"
)

// Slot is one position in a sentence template: a literal word or a
// placeholder for a word of some category.
type Slot struct {
	// Text is the literal word, or the placeholder's original text
	// (emitted unchanged when its category is unmapped).
	Text        string
	POS         types.PartOfSpeech
	Placeholder bool
	// Optional placeholders may resolve to nothing when their category
	// has no vocabulary; required ones always get a word.
	Optional bool
	// Suffix is trailing punctuation attached to the resolved word.
	Suffix string
}

// Template is an ordered sequence of slots.
type Template struct {
	Source string
	Slots  []Slot
}

// Parse tags text and builds a template from the tokens.
func Parse(t tagger.Tagger, text string) (Template, error) {
	tmpl := FromTokens(t.Tag(text))
	if len(tmpl.Slots) == 0 {
		return Template{}, fmt.Errorf("template %q has no words", text)
	}
	tmpl.Source = text
	return tmpl, nil
}

// MustParse is Parse for built-in templates; it panics on error.
func MustParse(t tagger.Tagger, text string) Template {
	tmpl, err := Parse(t, text)
	if err != nil {
		panic(err)
	}
	return tmpl
}

// ParseTagged tags text and builds a template in which every token of a
// mapped category is substituted, bracketed or not. "The cat runs quickly."
// becomes "The [NOUN] [VERB] [ADV].".
func ParseTagged(t tagger.Tagger, text string) (Template, error) {
	tmpl, err := Parse(t, text)
	if err != nil {
		return Template{}, err
	}
	for i, slot := range tmpl.Slots {
		if slot.POS.Known() {
			tmpl.Slots[i].Placeholder = true
		}
	}
	return tmpl, nil
}

// FromTokens converts tagged tokens to slots. Only placeholder tokens are
// substituted; every other token is a literal regardless of its tag.
func FromTokens(tokens []tagger.Token) Template {
	slots := make([]Slot, 0, len(tokens))
	var src []string
	for _, tok := range tokens {
		slots = append(slots, Slot{
			Text:        tok.Text,
			POS:         tok.POS,
			Placeholder: tok.Placeholder,
			Suffix:      tok.Suffix,
		})
		src = append(src, tok.Text+tok.Suffix)
	}
	return Template{Source: strings.Join(src, " "), Slots: slots}
}

// Categories returns the distinct mapped placeholder categories in
// canonical order (noun, verb, adjective, adverb).
func (t Template) Categories() []types.PartOfSpeech {
	var out []types.PartOfSpeech
	for _, pos := range types.Categories {
		for _, s := range t.Slots {
			if s.Placeholder && s.POS == pos {
				out = append(out, pos)
				break
			}
		}
	}
	return out
}

// Requires reports whether any non-optional placeholder uses pos.
func (t Template) Requires(pos types.PartOfSpeech) bool {
	for _, s := range t.Slots {
		if s.Placeholder && s.POS == pos && !s.Optional {
			return true
		}
	}
	return false
}

func placeholder(pos types.PartOfSpeech, optional bool) Slot {
	return Slot{Text: "[" + pos.Label() + "]", POS: pos, Placeholder: true, Optional: optional}
}

// FixedTemplate is the fixed structure: an optional adjective, a noun, an
// optional adjective, a verb, a noun, and an optional adverb. It is meant
// for types.PolicyRandom, where each placeholder is an independent draw.
func FixedTemplate() Template {
	return Template{
		Source: "[ADJ]? [NOUN] [ADJ]? [VERB] [NOUN] [ADV]?",
		Slots: []Slot{
			placeholder(types.Adjective, true),
			placeholder(types.Noun, false),
			placeholder(types.Adjective, true),
			placeholder(types.Verb, false),
			placeholder(types.Noun, false),
			placeholder(types.Adverb, true),
		},
	}
}

// DefaultTemplateTexts are the built-in placeholder templates.
var DefaultTemplateTexts = []string{
	"The [ADJ] [NOUN] [VERB] the [NOUN] [ADV].",
	"A [NOUN] [VERB] [ADV] near the [ADJ] [NOUN].",
	"Every [ADJ] [NOUN] [VERB] with a [NOUN].",
	"[NOUN] and [NOUN] [VERB] [ADV] over the [ADJ] [NOUN].",
}

// ParseAll parses each text with t.
func ParseAll(t tagger.Tagger, texts []string) ([]Template, error) {
	return parseAll(Parse, t, texts)
}

// ParseAllTagged parses each text with ParseTagged.
func ParseAllTagged(t tagger.Tagger, texts []string) ([]Template, error) {
	return parseAll(ParseTagged, t, texts)
}

func parseAll(parse func(tagger.Tagger, string) (Template, error), t tagger.Tagger, texts []string) ([]Template, error) {
	out := make([]Template, 0, len(texts))
	for _, text := range texts {
		tmpl, err := parse(t, text)
		if err != nil {
			return nil, err
		}
		out = append(out, tmpl)
	}
	return out, nil
}

// TemplatesFor returns the templates a policy renders. Configured texts
// take precedence, parsed with ParseTagged when tagged is set; otherwise
// PolicySequential uses DefaultTemplateTexts and PolicyRandom uses
// FixedTemplate.
func TemplatesFor(t tagger.Tagger, policy types.Policy, texts []string, tagged bool) ([]Template, error) {
	if len(texts) > 0 {
		if tagged {
			return ParseAllTagged(t, texts)
		}
		return ParseAll(t, texts)
	}
	if policy == types.PolicyRandom {
		return []Template{FixedTemplate()}, nil
	}
	return ParseAll(t, DefaultTemplateTexts)
}
