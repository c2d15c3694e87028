// Package main provides the kbtip CLI entry point.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "kbtip",
	Short: "Tooltip content and reference data for the knowledge-base front-end",
	Long: `kbtip resolves the hover tooltips of the knowledge-base front-end and
wraps the reference endpoints those pages read.

Tooltips come in three kinds: gene evidence (publications fetched from
PubMed plus curated abstracts), gene level (a level description) and
static content. All commands output JSON by default.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}
