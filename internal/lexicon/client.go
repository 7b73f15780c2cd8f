// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package lexicon queries the lexical-association service (Datamuse) for
// words that mean something like a topic, optionally restricted to one part
// of speech, and for words triggered by a topic.
//
// Every failure is recoverable: a non-success status, a transport error, or
// an undecodable body is logged with the topic, category, and status, and the
// caller receives an empty result. Nothing is raised.
package lexicon

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/time/rate"

	"github.com/pdiddy/essay-engine/internal/httputil"
	"github.com/pdiddy/essay-engine/pkg/types"
)

// Query kinds, used as cache key prefixes and metric labels.
const (
	kindSimilar = "similar"
	kindRelated = "related"
)

const (
	// posOverfetch multiplies the requested size when a category filter
	// will be applied locally, so the filtered list can still reach limit.
	posOverfetch = 4
	// maxResults is the largest max the service accepts.
	maxResults = 1000
)

// Client is the lexical service client. It is safe for concurrent use.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	userAgent    string
	maxRetries   int
	relatedLimit int
	relatedTopN  int

	limiter *rate.Limiter
	cache   Cache
	metrics *Metrics
	logger  *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithCache serves repeated queries from cache.
func WithCache(cache Cache) Option {
	return func(c *Client) { c.cache = cache }
}

// WithMetrics records request and cache counters.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithLogger sets the logger for failure diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New returns a client for the service at cfg.BaseURL.
func New(cfg types.LexiconConfig, opts ...Option) *Client {
	c := &Client{
		baseURL:      cfg.BaseURL,
		httpClient:   &http.Client{Timeout: cfg.Timeout},
		userAgent:    cfg.UserAgent,
		maxRetries:   cfg.MaxRetries,
		relatedLimit: cfg.RelatedLimit,
		relatedTopN:  cfg.RelatedTopN,
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	if c.relatedTopN <= 0 {
		c.relatedTopN = 100
	}
	if cfg.RateLimit > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch returns words that mean something like topic, in service rank
// order. When pos is a known category only words tagged with it are kept;
// words the service returned without any tags are kept as well. Multi-word
// entries such as "ice cream" are dropped so every substituted word is a
// single token. limit <= 0 leaves the result size to the service.
func (c *Client) Fetch(ctx context.Context, topic types.Topic, pos types.PartOfSpeech, limit int) []string {
	if topic == "" {
		return nil
	}

	params := url.Values{"ml": {string(topic)}}
	if pos.Known() {
		params.Set("md", "p")
	}
	if limit > 0 {
		params.Set("max", strconv.Itoa(requestSize(pos, limit)))
	}

	key := cacheKey(kindSimilar, pos, params)
	words, ok := c.cached(ctx, key)
	if ok {
		return words
	}

	records, ok := c.query(ctx, kindSimilar, params, topic, pos)
	if !ok {
		return nil
	}

	words = make([]string, 0, len(records))
	for _, r := range records {
		if r.Word == "" || strings.ContainsFunc(r.Word, unicode.IsSpace) {
			continue
		}
		if pos.Known() && len(r.Tags) > 0 && !slices.Contains(r.Tags, pos.Code()) {
			continue
		}
		words = append(words, r.Word)
	}
	if limit > 0 && len(words) > limit {
		words = words[:limit]
	}

	c.store(ctx, key, words)
	return words
}

// FetchRelated returns words the service associates with topic through the
// "triggered by" relation. Topic discovery uses these as candidate topics.
func (c *Client) FetchRelated(ctx context.Context, topic types.Topic) []string {
	if topic == "" {
		return nil
	}

	params := url.Values{"rel_trg": {string(topic)}}
	if c.relatedLimit > 0 {
		params.Set("max", strconv.Itoa(c.relatedLimit))
	}

	key := cacheKey(kindRelated, types.Unknown, params)
	words, ok := c.cached(ctx, key)
	if ok {
		return words
	}

	records, ok := c.query(ctx, kindRelated, params, topic, types.Unknown)
	if !ok {
		return nil
	}

	words = make([]string, 0, len(records))
	for _, r := range records {
		if r.Word != "" {
			words = append(words, r.Word)
		}
	}

	c.store(ctx, key, words)
	return words
}

// requestSize is the max sent to the service for a fetch of limit words.
func requestSize(pos types.PartOfSpeech, limit int) int {
	if !pos.Known() {
		return limit
	}
	return min(limit*posOverfetch, maxResults)
}

// IsRelated reports whether word appears in the top results of a similarity
// query for topic.
func (c *Client) IsRelated(ctx context.Context, word string, topic types.Topic) bool {
	if word == "" {
		return false
	}
	return slices.Contains(c.Fetch(ctx, topic, types.Unknown, c.relatedTopN), word)
}

// record is one entry of the service's JSON array response. Only Word is
// required; Tags is present when part-of-speech metadata was requested.
type record struct {
	Word  string   `json:"word"`
	Score int      `json:"score"`
	Tags  []string `json:"tags"`
}

// query performs one request and decodes the records. ok is false on any
// failure, which has already been logged.
func (c *Client) query(ctx context.Context, kind string, params url.Values, topic types.Topic, pos types.PartOfSpeech) ([]record, bool) {
	attrs := []any{
		slog.String("kind", kind),
		slog.String("topic", string(topic)),
		slog.String("category", pos.String()),
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			c.metrics.request(kind, "cancelled")
			c.logger.Warn("lexical request not sent", append(attrs, slog.String("error", err.Error()))...)
			return nil, false
		}
	}

	reqURL := c.baseURL + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		c.metrics.request(kind, "invalid_request")
		c.logger.Error("building lexical request", append(attrs, slog.String("error", err.Error()))...)
		return nil, false
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, c.httpClient, req, c.maxRetries, c.logger)
	if err != nil {
		c.metrics.request(kind, "transport_error")
		c.logger.Warn("lexical service unavailable", append(attrs, slog.String("error", err.Error()))...)
		return nil, false
	}
	defer resp.Body.Close()

	c.metrics.request(kind, strconv.Itoa(resp.StatusCode))
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		c.logger.Warn("lexical service returned non-success status",
			append(attrs, slog.Int("status", resp.StatusCode))...)
		return nil, false
	}

	var records []record
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		c.logger.Warn("parsing lexical response",
			append(attrs, slog.Int("status", resp.StatusCode), slog.String("error", err.Error()))...)
		return nil, false
	}

	c.metrics.words(kind, len(records))
	c.logger.Debug("lexical response", append(attrs, slog.Int("records", len(records)))...)
	return records, true
}

// cacheKey identifies a query. The category is part of the key because the
// part-of-speech filter is applied client-side, not in the query string.
func cacheKey(kind string, pos types.PartOfSpeech, params url.Values) string {
	if pos.Known() {
		kind += "/" + pos.Code()
	}
	return fmt.Sprintf("%s?%s", kind, params.Encode())
}

func (c *Client) cached(ctx context.Context, key string) ([]string, bool) {
	if c.cache == nil {
		return nil, false
	}
	words, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		c.logger.Warn("reading lexical cache", slog.String("key", key), slog.String("error", err.Error()))
		return nil, false
	}
	c.metrics.cacheLookup(ok)
	return words, ok
}

func (c *Client) store(ctx context.Context, key string, words []string) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Put(ctx, key, words); err != nil {
		c.logger.Warn("writing lexical cache", slog.String("key", key), slog.String("error", err.Error()))
	}
}
