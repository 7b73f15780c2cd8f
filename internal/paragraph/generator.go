// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package paragraph assembles rendered sentences into paragraphs, one
// randomly drawn topic per paragraph.
package paragraph

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/pdiddy/essay-engine/internal/sentence"
	"github.com/pdiddy/essay-engine/pkg/types"
)

// ErrNoTopics is returned when generation is asked to run over an empty
// topic set. Callers treat it as a user-facing condition, not a failure.
var ErrNoTopics = errors.New("no valid topics found")

// Renderer renders one sentence from a template about a topic.
type Renderer interface {
	Render(ctx context.Context, tmpl sentence.Template, topic types.Topic) string
}

// Generator produces paragraphs.
type Generator struct {
	renderer  Renderer
	templates []sentence.Template
	rnd       *rand.Rand
	logger    *slog.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithRand sets the random source for topic, template, and length draws.
func WithRand(r *rand.Rand) Option {
	return func(g *Generator) { g.rnd = r }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) { g.logger = l }
}

// New returns a generator that renders with r, drawing uniformly from
// templates. An empty template list falls back to sentence.FixedTemplate.
func New(r Renderer, templates []sentence.Template, opts ...Option) *Generator {
	if len(templates) == 0 {
		templates = []sentence.Template{sentence.FixedTemplate()}
	}
	g := &Generator{
		renderer:  r,
		templates: templates,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rnd == nil {
		seed := uint64(time.Now().UnixNano())
		g.rnd = rand.New(rand.NewPCG(seed, seed>>1))
	}
	return g
}

// Generate returns count paragraphs in generation order. Each paragraph
// draws a topic uniformly (with replacement) and a sentence count within
// rng, and renders every sentence about that topic.
func (g *Generator) Generate(ctx context.Context, topics types.TopicSet, count int, rng types.SentenceRange) ([]types.Paragraph, error) {
	if topics.IsEmpty() {
		return nil, ErrNoTopics
	}
	if err := rng.Validate(); err != nil {
		return nil, err
	}

	// Sorted so that a fixed seed reproduces the same draws.
	candidates := topics.Sorted()

	paragraphs := make([]types.Paragraph, 0, max(count, 0))
	for i := range count {
		topic := candidates[g.rnd.IntN(len(candidates))]
		n := rng.Min
		if rng.Max > rng.Min {
			n += g.rnd.IntN(rng.Max - rng.Min + 1)
		}

		g.logger.Debug("generating paragraph",
			slog.Int("index", i+1),
			slog.String("topic", string(topic)),
			slog.Int("sentences", n))

		p := types.Paragraph{Topic: topic, Sentences: make([]string, 0, n)}
		for range n {
			if err := ctx.Err(); err != nil {
				return paragraphs, fmt.Errorf("generating paragraph %d: %w", i+1, err)
			}
			tmpl := g.templates[g.rnd.IntN(len(g.templates))]
			p.Sentences = append(p.Sentences, g.renderer.Render(ctx, tmpl, topic))
		}
		paragraphs = append(paragraphs, p)
	}
	return paragraphs, nil
}
