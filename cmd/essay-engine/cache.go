// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/essay-engine/internal/store"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the lexical response cache",
	Long: `Cache manages the SQLite database of word lists fetched from the
word-association service (cache.dir/lexicon.db).`,
}

// --- stats subcommand ---

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cache entry counts and age",
	RunE:  runCacheStats,
}

func runCacheStats(cmd *cobra.Command, args []string) error {
	st, err := openCache()
	if err != nil {
		return err
	}
	defer st.Close()

	stats, err := st.Stats(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	}

	fmt.Fprintf(out, "Path:    %s\n", stats.Path)
	fmt.Fprintf(out, "Entries: %d\n", stats.Entries)
	fmt.Fprintf(out, "Expired: %d\n", stats.Expired)
	if stats.Entries > 0 {
		fmt.Fprintf(out, "Oldest:  %s\n", stats.Oldest.Format(time.RFC3339))
		fmt.Fprintf(out, "Newest:  %s\n", stats.Newest.Format(time.RFC3339))
	}
	return nil
}

// --- clear subcommand ---

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete cached responses",
	Long: `Clear deletes every cached response. With --expired only entries older
than cache.ttl are removed.`,
	RunE: runCacheClear,
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	st, err := openCache()
	if err != nil {
		return err
	}
	defer st.Close()

	var n int64
	if expired, _ := cmd.Flags().GetBool("expired"); expired {
		n, err = st.Prune(cmd.Context())
	} else {
		n, err = st.Clear(cmd.Context())
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %d cached responses\n", n)
	return nil
}

func openCache() (*store.Store, error) {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return nil, err
	}
	return store.Open(cfg.Cache)
}

func init() {
	cacheStatsCmd.Flags().Bool("json", false, "output statistics as JSON")
	cacheClearCmd.Flags().Bool("expired", false, "remove only entries older than cache.ttl")

	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}
