// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/essay-engine/internal/archive"
	"github.com/pdiddy/essay-engine/internal/paragraph"
	"github.com/pdiddy/essay-engine/internal/sentence"
	"github.com/pdiddy/essay-engine/internal/tagger"
	"github.com/pdiddy/essay-engine/pkg/types"
)

// noTopicsMessage is printed when discovery finds nothing to write about.
const noTopicsMessage = "No valid topics found. Please enter a valid input."

var generateCmd = &cobra.Command{
	Use:   "generate [phrase...]",
	Short: "Generate paragraphs about a topic phrase",
	Long: `Generate normalizes the topic phrase, discovers related topics through the
word-association service, and writes paragraphs whose sentences are filled
with vocabulary fetched for a randomly chosen topic.

With no arguments the phrase is read interactively. Lexical calls run one
after another unless --concurrent is set (or confirmed at the prompt).

The sequential policy fills the built-in templates without repeating a
word within a sentence; the random policy renders a fixed
adjective-noun-verb-noun-adverb structure with independent draws.`,
	Args: cobra.ArbitraryArgs,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().Int("paragraphs", 0, "number of paragraphs (default 5)")
	generateCmd.Flags().Int("min-sentences", 0, "minimum sentences per paragraph (default 2)")
	generateCmd.Flags().Int("max-sentences", 0, "maximum sentences per paragraph (default 3)")
	generateCmd.Flags().String("policy", "", "substitution policy: sequential or random")
	generateCmd.Flags().Bool("concurrent", false, "fan lexical calls out concurrently")
	generateCmd.Flags().Int("workers", 0, "concurrent worker bound (default 8)")
	generateCmd.Flags().Uint64("seed", 0, "random seed for reproducible output (0 = clock)")
	generateCmd.Flags().String("templates", "", "YAML file listing sentence templates")
	generateCmd.Flags().Bool("tagged", false, "substitute every tagged word of the templates, not only [PLACEHOLDERS]")
	generateCmd.Flags().StringP("output", "o", "", "save the run to a .yaml or .json file")
	generateCmd.Flags().Bool("json", false, "print the run as JSON")
	generateCmd.Flags().Bool("no-cache", false, "bypass the response cache")
	generateCmd.Flags().Bool("stats", false, "print lexical service statistics to stderr")

	rootCmd.AddCommand(generateCmd)
}

var generateFlagKeys = map[string]string{
	"paragraphs":    "generation.paragraphs",
	"min-sentences": "generation.min_sentences",
	"max-sentences": "generation.max_sentences",
	"policy":        "generation.policy",
	"concurrent":    "generation.concurrent",
	"workers":       "generation.workers",
	"seed":          "generation.seed",
	"tagged":        "generation.tagged",
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if err := bindChangedFlags(cmd, generateFlagKeys); err != nil {
		return err
	}
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}

	policy, err := types.ParsePolicy(cfg.Generation.Policy)
	if err != nil {
		return err
	}
	rng := cfg.Generation.Range()
	if err := rng.Validate(); err != nil {
		return err
	}

	texts := cfg.Generation.Templates
	if path, _ := cmd.Flags().GetString("templates"); path != "" {
		if texts, err = archive.ReadTemplates(path); err != nil {
			return err
		}
	}
	templates, err := sentence.TemplatesFor(tagger.Heuristic{}, policy, texts, cfg.Generation.Tagged)
	if err != nil {
		return err
	}

	in := bufio.NewReader(cmd.InOrStdin())
	out := cmd.OutOrStdout()

	phrase := strings.Join(args, " ")
	interactive := len(args) == 0
	if interactive {
		if phrase, err = prompt(in, out, "Enter a topic: "); err != nil {
			return err
		}
	}

	concurrent := cfg.Generation.Concurrent
	if interactive && !cmd.Flags().Changed("concurrent") {
		if concurrent, err = confirm(in, out, "Use concurrent requests? [y/N]: "); err != nil {
			return err
		}
	}
	strategy := types.StrategyFor(concurrent)

	noCache, _ := cmd.Flags().GetBool("no-cache")
	p, err := newPipeline(cfg, logger, noCache)
	if err != nil {
		return err
	}
	defer p.Close()

	ctx := cmd.Context()
	tokens, topics := p.discover(ctx, phrase, strategy)
	if topics.IsEmpty() {
		fmt.Fprintln(out, noTopicsMessage)
		return nil
	}

	rnd, seed := newRand(cfg.Generation.Seed)
	logger.Debug("random source seeded", slog.Uint64("seed", seed))
	engine := sentence.New(p.client, cfg.Vocabulary,
		sentence.WithPolicy(policy),
		sentence.WithStrategy(strategy, cfg.Generation.Workers),
		sentence.WithRand(rnd),
		sentence.WithLogger(logger),
	)
	gen := paragraph.New(engine, templates,
		paragraph.WithRand(rnd),
		paragraph.WithLogger(logger),
	)

	paragraphs, err := gen.Generate(ctx, topics, cfg.Generation.Paragraphs, rng)
	if errors.Is(err, paragraph.ErrNoTopics) {
		fmt.Fprintln(out, noTopicsMessage)
		return nil
	}
	if err != nil {
		return err
	}
	logger.Info("generated paragraphs", slog.Int("count", len(paragraphs)))

	run := archive.NewRun(phrase, tokens, topics, strategy, policy, paragraphs)
	run.Seed = seed

	if output, _ := cmd.Flags().GetString("output"); output != "" {
		if err := archive.Write(output, run); err != nil {
			return err
		}
		logger.Info("saved run", slog.String("path", output), slog.String("id", run.ID.String()))
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		err = archive.FormatJSON(out, run)
	} else {
		fmt.Fprint(out, "\nGenerated paragraphs:\n\n")
		err = archive.FormatText(out, paragraphs)
	}
	if err != nil {
		return err
	}

	if stats, _ := cmd.Flags().GetBool("stats"); stats {
		return p.writeStats(cmd.ErrOrStderr())
	}
	return nil
}

// bindChangedFlags binds only flags the user set, so zero-valued flag
// defaults never mask configuration file values.
func bindChangedFlags(cmd *cobra.Command, keys map[string]string) error {
	changed := make(map[string]string, len(keys))
	for flag, key := range keys {
		if cmd.Flags().Changed(flag) {
			changed[flag] = key
		}
	}
	return bindFlags(cmd, changed)
}
