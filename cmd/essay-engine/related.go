// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/essay-engine/pkg/types"
)

var relatedCmd = &cobra.Command{
	Use:   "related <word> <topic>",
	Short: "Check whether a word is associated with a topic",
	Long: `Related reports whether word appears among the words the service considers
similar in meaning to topic (the top lexicon.related_top_n results).`,
	Args: cobra.ExactArgs(2),
	RunE: runRelated,
}

func init() {
	relatedCmd.Flags().Bool("no-cache", false, "bypass the response cache")

	rootCmd.AddCommand(relatedCmd)
}

func runRelated(cmd *cobra.Command, args []string) error {
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

	word, topic := args[0], types.Topic(args[1])
	if p.client.IsRelated(cmd.Context(), word, topic) {
		fmt.Fprintf(cmd.OutOrStdout(), "%q is related to %q\n", word, topic)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "%q is not related to %q\n", word, topic)
	}
	return nil
}
