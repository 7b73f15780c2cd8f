// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sentence renders sentence templates for a topic by substituting
// placeholders with words fetched from the lexical service.
//
// Rendering builds a fresh vocabulary pool per call: one fetch per distinct
// placeholder category, with fallback words injected into any required
// category that comes back empty. Placeholders are then resolved under the
// engine's substitution policy, chosen at construction:
//
//   - types.PolicySequential pops words from the front of the pool, so a
//     word is not reused within a sentence unless the pool runs dry and is
//     refilled from the fallback words.
//   - types.PolicyRandom draws each word independently with replacement;
//     optional placeholders over an empty category resolve to nothing.
package sentence

import (
	"context"
	"io"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/pdiddy/essay-engine/internal/fanout"
	"github.com/pdiddy/essay-engine/pkg/types"
)

// Source fetches words of a category related to a topic. A failed fetch
// returns an empty slice.
type Source interface {
	Fetch(ctx context.Context, topic types.Topic, pos types.PartOfSpeech, limit int) []string
}

// Engine renders templates. It is not safe for concurrent use when it
// shares a random source with other goroutines.
type Engine struct {
	source   Source
	vocab    types.VocabularyConfig
	policy   types.Policy
	strategy types.Strategy
	workers  int
	rnd      *rand.Rand
	logger   *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithPolicy selects the substitution policy.
func WithPolicy(p types.Policy) Option {
	return func(e *Engine) { e.policy = p }
}

// WithStrategy selects how the per-category fetch batch runs.
func WithStrategy(s types.Strategy, workers int) Option {
	return func(e *Engine) {
		e.strategy = s
		e.workers = workers
	}
}

// WithRand sets the random source used by PolicyRandom.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) { e.rnd = r }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// New returns an engine over source. Missing limits or fallback lists in
// vocab are filled from types.DefaultVocabulary, so every required
// placeholder can always resolve to a word.
func New(source Source, vocab types.VocabularyConfig, opts ...Option) *Engine {
	def := types.DefaultVocabulary()
	if vocab.LargeLimit <= 0 {
		vocab.LargeLimit = def.LargeLimit
	}
	if vocab.SmallLimit <= 0 {
		vocab.SmallLimit = def.SmallLimit
	}
	if len(vocab.Defaults.Nouns) == 0 {
		vocab.Defaults.Nouns = def.Defaults.Nouns
	}
	if len(vocab.Defaults.Verbs) == 0 {
		vocab.Defaults.Verbs = def.Defaults.Verbs
	}
	if len(vocab.Defaults.Adjectives) == 0 {
		vocab.Defaults.Adjectives = def.Defaults.Adjectives
	}
	if len(vocab.Defaults.Adverbs) == 0 {
		vocab.Defaults.Adverbs = def.Defaults.Adverbs
	}

	e := &Engine{
		source:  source,
		vocab:   vocab,
		policy:  types.PolicySequential,
		workers: fanout.DefaultWorkers,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rnd == nil {
		seed := uint64(time.Now().UnixNano())
		e.rnd = rand.New(rand.NewPCG(seed, seed>>1))
	}
	return e
}

// Policy returns the engine's substitution policy.
func (e *Engine) Policy() types.Policy { return e.policy }

// BuildPool fetches vocabulary for every placeholder category in tmpl and
// injects fallback words into required categories that came back empty.
func (e *Engine) BuildPool(ctx context.Context, tmpl Template, topic types.Topic) *Pool {
	cats := tmpl.Categories()
	fetched := fanout.Run(ctx, e.strategy, e.workers, cats, func(ctx context.Context, pos types.PartOfSpeech) []string {
		return e.source.Fetch(ctx, topic, pos, e.vocab.LimitFor(pos))
	})

	pool := &Pool{}
	for i, pos := range cats {
		words := fetched[i]
		if len(words) == 0 && tmpl.Requires(pos) {
			e.logger.Info("no vocabulary, using fallback words",
				slog.String("topic", string(topic)),
				slog.String("category", pos.String()))
			words = e.vocab.Defaults.For(pos)
		}
		pool.Set(pos, words)
	}
	return pool
}

// Render builds a pool for topic and resolves tmpl against it.
func (e *Engine) Render(ctx context.Context, tmpl Template, topic types.Topic) string {
	s := e.Fill(tmpl, e.BuildPool(ctx, tmpl, topic))
	e.logger.Debug("generated sentence",
		slog.String("topic", string(topic)),
		slog.String("policy", e.policy.String()),
		slog.String("sentence", s))
	return s
}

// Fill resolves every slot of tmpl from pool under the engine's policy and
// returns the finished sentence. Sequential consumption mutates pool.
func (e *Engine) Fill(tmpl Template, pool *Pool) string {
	parts := make([]string, 0, len(tmpl.Slots))
	for _, slot := range tmpl.Slots {
		word := e.resolve(slot, pool)
		if word == "" {
			// Keep punctuation of a dropped optional slot on the previous word.
			if slot.Suffix != "" && len(parts) > 0 {
				parts[len(parts)-1] += slot.Suffix
			}
			continue
		}
		parts = append(parts, word+slot.Suffix)
	}
	return finish(strings.Join(parts, " "))
}

func (e *Engine) resolve(slot Slot, pool *Pool) string {
	if !slot.Placeholder {
		return slot.Text
	}
	if !slot.POS.Known() {
		return slot.Text
	}

	switch e.policy {
	case types.PolicyRandom:
		if w, ok := pool.Draw(slot.POS, e.rnd); ok {
			return w
		}
		if slot.Optional {
			return ""
		}
		pool.Set(slot.POS, e.vocab.Defaults.For(slot.POS))
		w, _ := pool.Draw(slot.POS, e.rnd)
		return w
	default:
		if w, ok := pool.Pop(slot.POS); ok {
			return w
		}
		if slot.Optional {
			return ""
		}
		pool.Set(slot.POS, e.vocab.Defaults.For(slot.POS))
		w, _ := pool.Pop(slot.POS)
		return w
	}
}

// finish collapses whitespace, capitalizes the first letter, and ends the
// sentence with exactly one period, replacing any other terminal mark.
func finish(s string) string {
	s = strings.TrimRight(strings.Join(strings.Fields(s), " "), ".!?;:, ")
	if s == "" {
		return ""
	}
	first, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(first)) + s[size:] + "."
}
