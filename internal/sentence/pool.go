// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sentence

import (
	"math/rand/v2"

	"github.com/pdiddy/essay-engine/pkg/types"
)

// Pool holds candidate words per category for one rendering. Sequential
// consumption pops from the front; random draws leave the pool intact.
type Pool struct {
	nouns      []string
	verbs      []string
	adjectives []string
	adverbs    []string
}

func (p *Pool) list(pos types.PartOfSpeech) *[]string {
	switch pos {
	case types.Noun:
		return &p.nouns
	case types.Verb:
		return &p.verbs
	case types.Adjective:
		return &p.adjectives
	case types.Adverb:
		return &p.adverbs
	default:
		return nil
	}
}

// Set replaces the words for pos with a copy of words.
func (p *Pool) Set(pos types.PartOfSpeech, words []string) {
	if l := p.list(pos); l != nil {
		*l = append([]string(nil), words...)
	}
}

// Words returns a copy of the current words for pos.
func (p *Pool) Words(pos types.PartOfSpeech) []string {
	if l := p.list(pos); l != nil {
		return append([]string(nil), (*l)...)
	}
	return nil
}

// Len returns the number of words left for pos.
func (p *Pool) Len(pos types.PartOfSpeech) int {
	if l := p.list(pos); l != nil {
		return len(*l)
	}
	return 0
}

// Pop removes and returns the front word for pos.
func (p *Pool) Pop(pos types.PartOfSpeech) (string, bool) {
	l := p.list(pos)
	if l == nil || len(*l) == 0 {
		return "", false
	}
	w := (*l)[0]
	*l = (*l)[1:]
	return w, true
}

// Draw returns a uniformly chosen word for pos without removing it.
func (p *Pool) Draw(pos types.PartOfSpeech, r *rand.Rand) (string, bool) {
	l := p.list(pos)
	if l == nil || len(*l) == 0 {
		return "", false
	}
	return (*l)[r.IntN(len(*l))], true
}
