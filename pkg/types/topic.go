// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the essay-engine pipeline:
// topics and topic sets, part-of-speech categories, execution strategies,
// substitution policies, paragraphs, and configuration.
package types

import (
	"sort"
	"strings"
)

// Topic is a normalized seed word: lowercase, non-empty, and not a stop word.
type Topic string

// String returns the topic text.
func (t Topic) String() string { return string(t) }

// TopicSet holds unique topics. Insertion order is not retained.
type TopicSet struct {
	m map[Topic]struct{}
}

// NewTopicSet returns a set containing the given topics. Empty strings are ignored.
func NewTopicSet(topics ...Topic) TopicSet {
	s := TopicSet{m: make(map[Topic]struct{}, len(topics))}
	for _, t := range topics {
		s.Add(t)
	}
	return s
}

// Add inserts t into the set and reports whether it was new.
func (s *TopicSet) Add(t Topic) bool {
	if strings.TrimSpace(string(t)) == "" {
		return false
	}
	if s.m == nil {
		s.m = make(map[Topic]struct{})
	}
	if _, ok := s.m[t]; ok {
		return false
	}
	s.m[t] = struct{}{}
	return true
}

// Merge adds every member of other to s.
func (s *TopicSet) Merge(other TopicSet) {
	for t := range other.m {
		s.Add(t)
	}
}

// Contains reports whether t is a member.
func (s TopicSet) Contains(t Topic) bool {
	_, ok := s.m[t]
	return ok
}

// Len returns the number of topics.
func (s TopicSet) Len() int { return len(s.m) }

// IsEmpty reports whether the set has no topics.
func (s TopicSet) IsEmpty() bool { return len(s.m) == 0 }

// Sorted returns the members in lexical order. The order is stable so that
// seeded random selection over the set is reproducible.
func (s TopicSet) Sorted() []Topic {
	out := make([]Topic, 0, len(s.m))
	for t := range s.m {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Strings returns the sorted members as plain strings.
func (s TopicSet) Strings() []string {
	sorted := s.Sorted()
	out := make([]string, len(sorted))
	for i, t := range sorted {
		out[i] = string(t)
	}
	return out
}
