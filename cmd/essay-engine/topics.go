// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/essay-engine/pkg/types"
)

var topicsCmd = &cobra.Command{
	Use:   "topics <phrase...>",
	Short: "List the topics discovered for a phrase",
	Long: `Topics normalizes the phrase, removes stop words, and prints every word the
word-association service reports as triggered by a remaining token.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTopics,
}

func init() {
	topicsCmd.Flags().Bool("concurrent", false, "fan lexical calls out concurrently")
	topicsCmd.Flags().Bool("no-cache", false, "bypass the response cache")
	topicsCmd.Flags().Bool("json", false, "output tokens and topics as JSON")

	rootCmd.AddCommand(topicsCmd)
}

func runTopics(cmd *cobra.Command, args []string) error {
	if err := bindChangedFlags(cmd, map[string]string{"concurrent": "generation.concurrent"}); err != nil {
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

	noCache, _ := cmd.Flags().GetBool("no-cache")
	p, err := newPipeline(cfg, logger, noCache)
	if err != nil {
		return err
	}
	defer p.Close()

	phrase := strings.Join(args, " ")
	tokens, topics := p.discover(cmd.Context(), phrase, types.StrategyFor(cfg.Generation.Concurrent))

	out := cmd.OutOrStdout()
	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Tokens []string `json:"tokens"`
			Topics []string `json:"topics"`
		}{tokens, topics.Strings()})
	}

	if topics.IsEmpty() {
		fmt.Fprintln(out, noTopicsMessage)
		return nil
	}
	for _, t := range topics.Sorted() {
		fmt.Fprintln(out, t)
	}
	fmt.Fprintf(out, "\n%d topics from %d tokens\n", topics.Len(), len(tokens))
	return nil
}
