// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "essay-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// LexiconConfig holds settings for the lexical-association service client.
type LexiconConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// BaseURL is the word query endpoint.
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`

	// RateLimit is the sustained request rate in requests per second (0 = unlimited).
	RateLimit float64 `json:"rate_limit" yaml:"rate_limit" mapstructure:"rate_limit"`

	// Burst is the number of requests allowed above RateLimit at once.
	Burst int `json:"burst" yaml:"burst" mapstructure:"burst"`

	// MaxRetries bounds retries on HTTP 429. 0 disables retrying, so a 429
	// is an empty result like any other non-success status.
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`

	// RelatedLimit bounds trigger-relation results per token (0 = service default).
	RelatedLimit int `json:"related_limit" yaml:"related_limit" mapstructure:"related_limit"`

	// RelatedTopN is the number of similarity results checked by IsRelated.
	RelatedTopN int `json:"related_top_n" yaml:"related_top_n" mapstructure:"related_top_n"`
}

// DefaultWords lists fallback words per category, injected into an empty
// vocabulary pool before substitution.
type DefaultWords struct {
	Nouns      []string `json:"nouns" yaml:"nouns" mapstructure:"nouns"`
	Verbs      []string `json:"verbs" yaml:"verbs" mapstructure:"verbs"`
	Adjectives []string `json:"adjectives" yaml:"adjectives" mapstructure:"adjectives"`
	Adverbs    []string `json:"adverbs" yaml:"adverbs" mapstructure:"adverbs"`
}

// For returns the defaults for a category. Unknown returns nil.
func (d DefaultWords) For(pos PartOfSpeech) []string {
	switch pos {
	case Noun:
		return d.Nouns
	case Verb:
		return d.Verbs
	case Adjective:
		return d.Adjectives
	case Adverb:
		return d.Adverbs
	default:
		return nil
	}
}

// VocabularyConfig holds per-category fetch limits and fallback words.
type VocabularyConfig struct {
	// LargeLimit bounds noun and verb fetches.
	LargeLimit int `json:"large_limit" yaml:"large_limit" mapstructure:"large_limit"`

	// SmallLimit bounds adjective and adverb fetches.
	SmallLimit int `json:"small_limit" yaml:"small_limit" mapstructure:"small_limit"`

	Defaults DefaultWords `json:"defaults" yaml:"defaults" mapstructure:"defaults"`
}

// LimitFor returns the fetch limit for a category.
func (v VocabularyConfig) LimitFor(pos PartOfSpeech) int {
	switch pos {
	case Noun, Verb:
		return v.LargeLimit
	default:
		return v.SmallLimit
	}
}

// GenerationConfig holds paragraph generation settings.
type GenerationConfig struct {
	// Paragraphs is the number of paragraphs to generate (default 5).
	Paragraphs int `json:"paragraphs" yaml:"paragraphs" mapstructure:"paragraphs"`

	// MinSentences and MaxSentences bound sentences per paragraph (default 2-3).
	MinSentences int `json:"min_sentences" yaml:"min_sentences" mapstructure:"min_sentences"`
	MaxSentences int `json:"max_sentences" yaml:"max_sentences" mapstructure:"max_sentences"`

	// Policy is the substitution policy: sequential or random.
	Policy string `json:"policy" yaml:"policy" mapstructure:"policy"`

	// Concurrent fans lexical calls out on a bounded worker group.
	Concurrent bool `json:"concurrent" yaml:"concurrent" mapstructure:"concurrent"`

	// Workers bounds the concurrent worker group (default 8).
	Workers int `json:"workers" yaml:"workers" mapstructure:"workers"`

	// Seed seeds the random source; 0 seeds from the clock.
	Seed uint64 `json:"seed" yaml:"seed" mapstructure:"seed"`

	// Templates are sentence templates with [NOUN], [VERB], [ADJ], [ADV]
	// placeholders. Empty uses the built-in set.
	Templates []string `json:"templates" yaml:"templates" mapstructure:"templates"`

	// Tagged treats Templates as plain sentences: every word the tagger
	// assigns a category is substituted, not only bracketed placeholders.
	Tagged bool `json:"tagged" yaml:"tagged" mapstructure:"tagged"`
}

// Range returns the configured sentence range.
func (g GenerationConfig) Range() SentenceRange {
	return SentenceRange{Min: g.MinSentences, Max: g.MaxSentences}
}

// CacheConfig holds settings for the lexical response cache.
type CacheConfig struct {
	// Enabled turns the on-disk SQLite cache on.
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`

	// Dir holds the cache database (lexicon.db).
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`

	// Size is the in-memory LRU capacity in entries.
	Size int `json:"size" yaml:"size" mapstructure:"size"`

	// TTL expires on-disk entries; 0 keeps them forever.
	TTL time.Duration `json:"ttl" yaml:"ttl" mapstructure:"ttl"`
}

// LogConfig selects the slog level and handler format.
type LogConfig struct {
	Level  string `json:"level" yaml:"level" mapstructure:"level"`
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// Config groups all component configurations.
type Config struct {
	Lexicon    LexiconConfig    `json:"lexicon" yaml:"lexicon" mapstructure:"lexicon"`
	Vocabulary VocabularyConfig `json:"vocabulary" yaml:"vocabulary" mapstructure:"vocabulary"`
	Generation GenerationConfig `json:"generation" yaml:"generation" mapstructure:"generation"`
	Cache      CacheConfig      `json:"cache" yaml:"cache" mapstructure:"cache"`
	Log        LogConfig        `json:"log" yaml:"log" mapstructure:"log"`
	StopWords  []string         `json:"stop_words" yaml:"stop_words" mapstructure:"stop_words"`
}

// DefaultStopWords is the stop-word set removed from topic phrases.
var DefaultStopWords = []string{"the", "a", "an", "and", "of", "in", "on", "at", "to", "is", "for"}

// DefaultVocabulary returns the built-in limits and fallback words.
func DefaultVocabulary() VocabularyConfig {
	return VocabularyConfig{
		LargeLimit: 10,
		SmallLimit: 5,
		Defaults: DefaultWords{
			Nouns:      []string{"thing", "object", "item"},
			Verbs:      []string{"does", "is"},
			Adjectives: []string{"nice", "good"},
			Adverbs:    []string{"quickly"},
		},
	}
}

// DefaultConfig returns the configuration used when no file, env, or flag
// overrides a value.
func DefaultConfig() Config {
	return Config{
		Lexicon: LexiconConfig{
			HTTPConfig: HTTPConfig{
				Timeout:   10 * time.Second,
				UserAgent: "essay-engine/0.1",
			},
			BaseURL:     "https://api.datamuse.com/words",
			RateLimit:   10,
			Burst:       5,
			RelatedTopN: 100,
		},
		Vocabulary: DefaultVocabulary(),
		Generation: GenerationConfig{
			Paragraphs:   5,
			MinSentences: 2,
			MaxSentences: 3,
			Policy:       "sequential",
			Workers:      8,
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     ".essay-engine",
			Size:    1024,
			TTL:     7 * 24 * time.Hour,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
		StopWords: append([]string(nil), DefaultStopWords...),
	}
}
