// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"strings"
)

// SentenceRange bounds the number of sentences in a paragraph. Min == Max
// means a fixed count.
type SentenceRange struct {
	Min int `json:"min" yaml:"min"`
	Max int `json:"max" yaml:"max"`
}

// FixedSentences returns a range that always yields n sentences.
func FixedSentences(n int) SentenceRange {
	return SentenceRange{Min: n, Max: n}
}

// Validate checks that the range is non-empty and starts at one or more.
func (r SentenceRange) Validate() error {
	if r.Min < 1 {
		return fmt.Errorf("sentences per paragraph must be at least 1, got %d", r.Min)
	}
	if r.Max < r.Min {
		return fmt.Errorf("sentence range max %d is below min %d", r.Max, r.Min)
	}
	return nil
}

// Paragraph is an ordered sequence of sentences about a single topic.
type Paragraph struct {
	Topic     Topic    `json:"topic" yaml:"topic"`
	Sentences []string `json:"sentences" yaml:"sentences"`
}

// Text joins the sentences with single spaces.
func (p Paragraph) Text() string {
	return strings.Join(p.Sentences, " ")
}
