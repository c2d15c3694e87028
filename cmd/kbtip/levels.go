package main

import (
	"github.com/spf13/cobra"

	"github.com/oncokb/kbtip/internal/levels"
)

func init() {
	rootCmd.AddCommand(levelsCmd)
}

var levelsCmd = &cobra.Command{
	Use:   "levels [code]",
	Short: "Show evidence level descriptions",
	Long: `Show evidence level descriptions from the configured level table.

With a code, show that level only. Codes are case-insensitive.

Examples:
  kbtip levels
  kbtip levels 2a --human`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLevels,
}

// LevelResult is one level in levels output.
type LevelResult struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

func runLevels(cmd *cobra.Command, args []string) error {
	table := mustLoadLevels(mustLoadConfig())

	codes := table.Codes()
	if len(args) == 1 {
		code := levels.Normalize(args[0])
		if !table.Has(code) {
			exitWithError(ExitDataError, "unknown level %q", args[0])
		}
		codes = []string{code}
	}

	results := levelResults(table, codes)
	if !humanOutput {
		return outputJSON(results)
	}

	if len(results) == 0 {
		outputHuman("No level descriptions configured.\n")
		return nil
	}
	for _, r := range results {
		outputHuman("%-4s %s\n", r.Code, levels.PlainText(r.Description))
	}
	return nil
}

func levelResults(table levels.Descriptions, codes []string) []LevelResult {
	results := make([]LevelResult, 0, len(codes))
	for _, c := range codes {
		results = append(results, LevelResult{Code: c, Description: table.Lookup(c)})
	}
	return results
}
