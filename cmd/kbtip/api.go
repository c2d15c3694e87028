package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oncokb/kbtip/internal/api"
	"github.com/oncokb/kbtip/internal/reference"
)

var (
	apiExactMatch bool
	apiBiological bool
	apiRecords    bool
)

func init() {
	rootCmd.AddCommand(apiCmd)
	apiCmd.AddCommand(
		apiNumbersCmd, apiSearchCmd, apiGenesCmd, apiSummaryCmd, apiBackgroundCmd,
		apiVariantsCmd, apiSamplesCmd, apiMutationsCmd, apiStudiesCmd, apiArticlesCmd,
		apiTreatmentsCmd,
	)
	apiSearchCmd.Flags().BoolVar(&apiExactMatch, "exact", false, "Match the gene symbol exactly")
	apiVariantsCmd.Flags().BoolVar(&apiBiological, "biological", false, "List biological instead of clinical variants")
	apiArticlesCmd.Flags().BoolVar(&apiRecords, "records", false, "Decode the response into publication records")
}

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Query the reference endpoints",
	Long: `Query the reference endpoints the front-end reads.

Each subcommand issues one GET and prints the response envelope:
  {"status": 200, "url": "...", "data": <upstream JSON>}`,
}

// apiCall runs one client operation.
type apiCall func(ctx context.Context, c *api.Client) (*api.Response, error)

// runAPICall executes call against the configured endpoints and prints the
// envelope. A nil response means the arguments did not specify a request.
func runAPICall(call apiCall) error {
	client := api.NewClientFromConfig(mustLoadConfig())

	resp, err := call(context.Background(), client)
	if err != nil {
		exitWithError(apiExitCode(err), "%v", err)
	}
	if resp == nil {
		exitWithError(ExitDataError, "arguments do not specify a request")
	}

	if humanOutput {
		outputHuman("%d %s\n%s\n", resp.StatusCode, resp.URL, resp.Data)
		return nil
	}
	return outputJSON(resp)
}

var apiNumbersCmd = &cobra.Command{
	Use:   "numbers <main|genes|levels|gene> [symbol]",
	Short: "Fetch summary counts",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		symbol := ""
		if len(args) == 2 {
			symbol = args[1]
		}
		return runAPICall(func(ctx context.Context, c *api.Client) (*api.Response, error) {
			return c.Numbers(ctx, api.NumbersScope(args[0]), symbol)
		})
	},
}

var apiSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search genes by symbol or alias",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAPICall(func(ctx context.Context, c *api.Client) (*api.Response, error) {
			return c.SearchGene(ctx, args[0], apiExactMatch)
		})
	},
}

var apiGenesCmd = &cobra.Command{
	Use:   "genes",
	Short: "List curated genes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAPICall(func(ctx context.Context, c *api.Client) (*api.Response, error) {
			return c.Genes(ctx)
		})
	},
}

var apiSummaryCmd = &cobra.Command{
	Use:   "summary <symbol>",
	Short: "Fetch the gene summary evidence",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAPICall(func(ctx context.Context, c *api.Client) (*api.Response, error) {
			return c.GeneSummary(ctx, args[0])
		})
	},
}

var apiBackgroundCmd = &cobra.Command{
	Use:   "background <symbol>",
	Short: "Fetch the gene background evidence",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAPICall(func(ctx context.Context, c *api.Client) (*api.Response, error) {
			return c.GeneBackground(ctx, args[0])
		})
	},
}

var apiVariantsCmd = &cobra.Command{
	Use:   "variants <symbol>",
	Short: "List clinical (or --biological) variants of a gene",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAPICall(func(ctx context.Context, c *api.Client) (*api.Response, error) {
			if apiBiological {
				return c.BiologicalVariants(ctx, args[0])
			}
			return c.ClinicalVariants(ctx, args[0])
		})
	},
}

var apiSamplesCmd = &cobra.Command{
	Use:   "samples [symbol]",
	Short: "Fetch portal alteration sample counts, for all genes or one",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		symbol := ""
		if len(args) == 1 {
			symbol = args[0]
		}
		return runAPICall(func(ctx context.Context, c *api.Client) (*api.Response, error) {
			return c.PortalAlterationSampleCount(ctx, symbol)
		})
	},
}

var apiMutationsCmd = &cobra.Command{
	Use:   "mutations <symbol>",
	Short: "Fetch mutation mapper data for a gene",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAPICall(func(ctx context.Context, c *api.Client) (*api.Response, error) {
			return c.MutationMapperData(ctx, args[0])
		})
	},
}

var apiStudiesCmd = &cobra.Command{
	Use:   "studies <study-id>...",
	Short: "Look up portal studies",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAPICall(func(ctx context.Context, c *api.Client) (*api.Response, error) {
			return c.Studies(ctx, args)
		})
	},
}

var apiArticlesCmd = &cobra.Command{
	Use:   "articles <pmid>...",
	Short: "Fetch PubMed summaries",
	Long: `Fetch PubMed summaries for one or more ids.

By default the raw esummary envelope is printed. With --records the
response is decoded into publication records in request order.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runArticles,
}

func runArticles(cmd *cobra.Command, args []string) error {
	ids := make([]reference.PublicationID, len(args))
	for i, a := range args {
		ids[i] = reference.PublicationID(a)
	}

	if !apiRecords {
		return runAPICall(func(ctx context.Context, c *api.Client) (*api.Response, error) {
			return c.PubMedArticles(ctx, ids)
		})
	}

	client := api.NewClientFromConfig(mustLoadConfig())
	records, err := client.PublicationRecords(context.Background(), ids)
	if err != nil {
		exitWithError(apiExitCode(err), "%v", err)
	}

	if !humanOutput {
		return outputJSON(records)
	}
	for _, r := range records {
		outputHuman("%s", recordHuman(r))
	}
	return nil
}

// recordHuman formats one publication record for --human output.
func recordHuman(r reference.PublicationRecord) string {
	out := fmt.Sprintf("%s  %s\n", r.UID, r.Title)
	if !r.HasAuthors() {
		return out
	}
	out += fmt.Sprintf("     %s et al. %s", r.FirstAuthor(), r.Source)
	if y := r.Year(); y > 0 {
		out += fmt.Sprintf(" (%d)", y)
	}
	return out + "\n"
}

var apiTreatmentsCmd = &cobra.Command{
	Use:   "treatments [level]",
	Short: "List treatments at an evidence level",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		level := ""
		if len(args) == 1 {
			level = args[0]
		}
		return runAPICall(func(ctx context.Context, c *api.Client) (*api.Response, error) {
			return c.TreatmentsByLevel(ctx, level)
		})
	},
}
