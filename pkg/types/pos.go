// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"strings"
)

// PartOfSpeech is a coarse grammatical category. The zero value Unknown
// means "no filter" to the lexical client and "unmapped" to templates.
type PartOfSpeech int

const (
	Unknown PartOfSpeech = iota
	Noun
	Verb
	Adjective
	Adverb
)

// Categories lists the mapped categories in canonical order.
var Categories = []PartOfSpeech{Noun, Verb, Adjective, Adverb}

// Code returns the lexical service tag for the category ("n", "v", "adj", "adv").
func (p PartOfSpeech) Code() string {
	switch p {
	case Noun:
		return "n"
	case Verb:
		return "v"
	case Adjective:
		return "adj"
	case Adverb:
		return "adv"
	default:
		return ""
	}
}

// Label returns the placeholder label used in templates (e.g. "NOUN").
func (p PartOfSpeech) Label() string {
	switch p {
	case Noun:
		return "NOUN"
	case Verb:
		return "VERB"
	case Adjective:
		return "ADJ"
	case Adverb:
		return "ADV"
	default:
		return ""
	}
}

// String returns a readable name, used in log attributes.
func (p PartOfSpeech) String() string {
	switch p {
	case Noun:
		return "noun"
	case Verb:
		return "verb"
	case Adjective:
		return "adjective"
	case Adverb:
		return "adverb"
	default:
		return "any"
	}
}

// Known reports whether p is one of the four mapped categories.
func (p PartOfSpeech) Known() bool {
	return p >= Noun && p <= Adverb
}

// ParseLabel maps a placeholder label to a category. Unrecognized labels
// return Unknown.
func ParseLabel(label string) PartOfSpeech {
	switch strings.ToUpper(strings.TrimSpace(label)) {
	case "NOUN", "N":
		return Noun
	case "VERB", "V":
		return Verb
	case "ADJ", "ADJECTIVE":
		return Adjective
	case "ADV", "ADVERB":
		return Adverb
	default:
		return Unknown
	}
}

// Strategy selects how a batch of lexical calls is executed.
type Strategy int

const (
	Sequential Strategy = iota
	Concurrent
)

func (s Strategy) String() string {
	if s == Concurrent {
		return "concurrent"
	}
	return "sequential"
}

// StrategyFor returns Concurrent when concurrent is true.
func StrategyFor(concurrent bool) Strategy {
	if concurrent {
		return Concurrent
	}
	return Sequential
}

// Policy selects how placeholders draw words from a vocabulary pool.
type Policy int

const (
	// PolicySequential pops the front word of the category pool, so no word
	// repeats within a sentence until the pool is refilled from defaults.
	PolicySequential Policy = iota
	// PolicyRandom draws uniformly with replacement and never consumes the pool.
	PolicyRandom
)

func (p Policy) String() string {
	if p == PolicyRandom {
		return "random"
	}
	return "sequential"
}

// ParsePolicy accepts "sequential" or "random".
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "sequential", "pop":
		return PolicySequential, nil
	case "random", "draw":
		return PolicyRandom, nil
	default:
		return PolicySequential, fmt.Errorf("unknown substitution policy %q: use sequential or random", s)
	}
}
