// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/pdiddy/essay-engine/internal/discovery"
	"github.com/pdiddy/essay-engine/internal/lexicon"
	"github.com/pdiddy/essay-engine/internal/normalize"
	"github.com/pdiddy/essay-engine/internal/store"
	"github.com/pdiddy/essay-engine/pkg/types"
)

// pipeline holds the components shared by commands that talk to the
// lexical service.
type pipeline struct {
	cfg        types.Config
	logger     *slog.Logger
	client     *lexicon.Client
	normalizer *normalize.Normalizer
	registry   *prometheus.Registry
	store      *store.Store
}

// newPipeline wires the lexical client with its memory cache, the SQLite
// cache (unless disabled), and a private metrics registry.
func newPipeline(cfg types.Config, logger *slog.Logger, noCache bool) (*pipeline, error) {
	p := &pipeline{
		cfg:        cfg,
		logger:     logger,
		normalizer: normalize.New(cfg.StopWords),
		registry:   prometheus.NewRegistry(),
	}

	metrics, err := lexicon.NewMetrics(p.registry)
	if err != nil {
		return nil, fmt.Errorf("registering metrics: %w", err)
	}

	var backing lexicon.Cache
	if cfg.Cache.Enabled && !noCache {
		st, err := store.Open(cfg.Cache)
		if err != nil {
			return nil, err
		}
		p.store = st
		backing = st
		logger.Debug("using response cache", slog.String("path", st.Path()))
	}

	opts := []lexicon.Option{
		lexicon.WithMetrics(metrics),
		lexicon.WithLogger(logger),
	}
	if !noCache {
		mem, err := lexicon.NewMemoryCache(cfg.Cache.Size, backing)
		if err != nil {
			p.Close()
			return nil, fmt.Errorf("creating memory cache: %w", err)
		}
		opts = append(opts, lexicon.WithCache(mem))
	}

	p.client = lexicon.New(cfg.Lexicon, opts...)
	return p, nil
}

// Close releases the SQLite cache, if open.
func (p *pipeline) Close() error {
	if p.store == nil {
		return nil
	}
	return p.store.Close()
}

// discover normalizes phrase and expands its tokens into related topics.
func (p *pipeline) discover(ctx context.Context, phrase string, strategy types.Strategy) ([]string, types.TopicSet) {
	tokens := p.normalizer.Normalize(phrase)
	d := discovery.New(p.client,
		discovery.WithWorkers(p.cfg.Generation.Workers),
		discovery.WithExclude(p.normalizer.IsStopWord),
		discovery.WithLogger(p.logger),
	)
	topics := d.Discover(ctx, tokens, strategy)
	p.logger.Info("identified topics",
		slog.Int("tokens", len(tokens)),
		slog.Int("topics", topics.Len()),
		slog.String("strategy", strategy.String()))
	return tokens, topics
}

// writeStats prints the lexical metrics gathered during the run.
func (p *pipeline) writeStats(w io.Writer) error {
	fmt.Fprintln(w, "\nLexical service statistics:")
	return lexicon.WriteSummary(p.registry, w)
}

// newRand returns a random source for seed and the seed it used; 0 seeds
// from the clock. Passing the returned seed back reproduces the sequence.
func newRand(seed uint64) (*rand.Rand, uint64) {
	for seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed>>1)), seed
}

// prompt writes question to w and returns the next trimmed line from r.
func prompt(r *bufio.Reader, w io.Writer, question string) (string, error) {
	fmt.Fprint(w, question)
	line, err := r.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// confirm asks a yes/no question that defaults to no.
func confirm(r *bufio.Reader, w io.Writer, question string) (bool, error) {
	answer, err := prompt(r, w, question)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
