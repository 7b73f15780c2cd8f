// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the essay-engine CLI.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/essay-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the essay-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "essay-engine",
	Short: "Generate paragraphs of text about a topic phrase",
	Long: `essay-engine expands a topic phrase into related topics using the Datamuse
word-association service, then fills sentence templates with nouns, verbs,
adjectives, and adverbs associated with each topic.

The output is best-effort and template-driven; it makes no claim to
grammatical correctness.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./essay-engine.yaml or ~/.config/essay-engine/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "", "log format: text or json")

	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))
}

func initConfig() {
	setDefaults(viper.GetViper(), types.DefaultConfig())

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("essay-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "essay-engine"))
		}
	}

	viper.SetEnvPrefix("ESSAY_ENGINE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	} else if cfgFile != "" {
		fmt.Fprintf(os.Stderr, "Reading config file %s: %v\n", cfgFile, err)
	}
}

// setDefaults registers every configuration key with its default so that
// environment variables and Unmarshal see the full key set.
func setDefaults(v *viper.Viper, d types.Config) {
	v.SetDefault("lexicon.base_url", d.Lexicon.BaseURL)
	v.SetDefault("lexicon.timeout", d.Lexicon.Timeout)
	v.SetDefault("lexicon.user_agent", d.Lexicon.UserAgent)
	v.SetDefault("lexicon.rate_limit", d.Lexicon.RateLimit)
	v.SetDefault("lexicon.burst", d.Lexicon.Burst)
	v.SetDefault("lexicon.max_retries", d.Lexicon.MaxRetries)
	v.SetDefault("lexicon.related_limit", d.Lexicon.RelatedLimit)
	v.SetDefault("lexicon.related_top_n", d.Lexicon.RelatedTopN)

	v.SetDefault("vocabulary.large_limit", d.Vocabulary.LargeLimit)
	v.SetDefault("vocabulary.small_limit", d.Vocabulary.SmallLimit)
	v.SetDefault("vocabulary.defaults.nouns", d.Vocabulary.Defaults.Nouns)
	v.SetDefault("vocabulary.defaults.verbs", d.Vocabulary.Defaults.Verbs)
	v.SetDefault("vocabulary.defaults.adjectives", d.Vocabulary.Defaults.Adjectives)
	v.SetDefault("vocabulary.defaults.adverbs", d.Vocabulary.Defaults.Adverbs)

	v.SetDefault("generation.paragraphs", d.Generation.Paragraphs)
	v.SetDefault("generation.min_sentences", d.Generation.MinSentences)
	v.SetDefault("generation.max_sentences", d.Generation.MaxSentences)
	v.SetDefault("generation.policy", d.Generation.Policy)
	v.SetDefault("generation.concurrent", d.Generation.Concurrent)
	v.SetDefault("generation.workers", d.Generation.Workers)
	v.SetDefault("generation.seed", d.Generation.Seed)
	v.SetDefault("generation.templates", d.Generation.Templates)
	v.SetDefault("generation.tagged", d.Generation.Tagged)

	v.SetDefault("cache.enabled", d.Cache.Enabled)
	v.SetDefault("cache.dir", d.Cache.Dir)
	v.SetDefault("cache.size", d.Cache.Size)
	v.SetDefault("cache.ttl", d.Cache.TTL)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)

	v.SetDefault("stop_words", d.StopWords)
}

// bindFlags binds command flags to configuration keys. Bindings are made
// when a command runs because several commands share keys.
func bindFlags(cmd *cobra.Command, keys map[string]string) error {
	for flag, key := range keys {
		f := cmd.Flags().Lookup(flag)
		if f == nil {
			continue
		}
		if err := viper.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding --%s: %w", flag, err)
		}
	}
	return nil
}

// loadConfig unmarshals the merged defaults, config file, environment, and
// bound flags.
func loadConfig(v *viper.Viper) (types.Config, error) {
	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing configuration: %w", err)
	}
	return cfg, nil
}

// newLogger builds the process logger on stderr.
func newLogger(cfg types.LogConfig) (*slog.Logger, error) {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "", "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return nil, fmt.Errorf("unknown log level %q", cfg.Level)
	}

	opts := &slog.HandlerOptions{Level: level}
	switch strings.ToLower(cfg.Format) {
	case "", "text":
		return slog.New(slog.NewTextHandler(os.Stderr, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(os.Stderr, opts)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
