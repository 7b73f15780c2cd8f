// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package discovery expands normalized tokens into a set of related topics
// using the lexical service's "triggered by" relation.
package discovery

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/pdiddy/essay-engine/internal/fanout"
	"github.com/pdiddy/essay-engine/pkg/types"
)

// Source returns words related to a topic. A failed lookup returns an
// empty slice.
type Source interface {
	FetchRelated(ctx context.Context, topic types.Topic) []string
}

// Discoverer aggregates related words across tokens.
type Discoverer struct {
	source  Source
	workers int
	exclude func(string) bool
	logger  *slog.Logger
}

// Option configures a Discoverer.
type Option func(*Discoverer)

// WithWorkers bounds the concurrent worker group.
func WithWorkers(n int) Option {
	return func(d *Discoverer) { d.workers = n }
}

// WithExclude drops returned words for which exclude is true, e.g. stop words.
func WithExclude(exclude func(string) bool) Option {
	return func(d *Discoverer) { d.exclude = exclude }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(d *Discoverer) { d.logger = l }
}

// New returns a Discoverer backed by source.
func New(source Source, opts ...Option) *Discoverer {
	d := &Discoverer{
		source:  source,
		workers: fanout.DefaultWorkers,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Discover calls the source once per token and returns the union of the
// results. Sequential and Concurrent strategies produce the same set; a
// token whose lookup fails contributes nothing and does not stop the rest.
// Blank tokens are skipped.
func (d *Discoverer) Discover(ctx context.Context, tokens []string, strategy types.Strategy) types.TopicSet {
	var queries []types.Topic
	for _, tok := range tokens {
		if tok = strings.TrimSpace(tok); tok != "" {
			queries = append(queries, types.Topic(tok))
		}
	}

	d.logger.Info("discovering topics",
		slog.Int("tokens", len(queries)),
		slog.String("strategy", strategy.String()))

	results := fanout.Run(ctx, strategy, d.workers, queries, d.source.FetchRelated)

	topics := types.NewTopicSet()
	for i, words := range results {
		if len(words) == 0 {
			d.logger.Warn("no related topics", slog.String("token", string(queries[i])))
			continue
		}
		for _, w := range words {
			w = strings.ToLower(strings.TrimSpace(w))
			if w == "" || (d.exclude != nil && d.exclude(w)) {
				continue
			}
			topics.Add(types.Topic(w))
		}
		d.logger.Debug("related topics found",
			slog.String("token", string(queries[i])),
			slog.Any("words", words))
	}

	d.logger.Info("topics discovered", slog.Int("count", topics.Len()))
	return topics
}
