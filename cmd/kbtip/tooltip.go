package main

import (
	"context"
	"encoding/json"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/oncokb/kbtip/internal/api"
	"github.com/oncokb/kbtip/internal/reference"
	"github.com/oncokb/kbtip/internal/tooltip"
)

var (
	tooltipPMIDs     string
	tooltipAbstracts string
	tooltipLevel     string
	tooltipContent   string
	tooltipMy        string
	tooltipAt        string
	tooltipTimeout   time.Duration
)

func init() {
	rootCmd.AddCommand(tooltipCmd)
	tooltipCmd.Flags().StringVar(&tooltipPMIDs, "pmids", "", "Comma-separated PubMed ids (geneEvidence)")
	tooltipCmd.Flags().StringVar(&tooltipAbstracts, "abstracts", "", `JSON list of {"abstract","link"} objects (geneEvidence)`)
	tooltipCmd.Flags().StringVar(&tooltipLevel, "level", "", "Level code (geneLevel)")
	tooltipCmd.Flags().StringVar(&tooltipContent, "content", "", "Static content (default kind)")
	tooltipCmd.Flags().StringVar(&tooltipMy, "my", "", "Tooltip corner anchored to the target (default \"bottom right\")")
	tooltipCmd.Flags().StringVar(&tooltipAt, "at", "", "Target corner the tooltip attaches to (default \"top left\")")
	tooltipCmd.Flags().DurationVar(&tooltipTimeout, "timeout", 30*time.Second, "Give up waiting for content after this long")
}

var tooltipCmd = &cobra.Command{
	Use:   "tooltip <kind>",
	Short: "Render one tooltip offline",
	Long: `Render one tooltip the way the front-end would see it: the initial widget
options, then the content pushed after the show event.

Kinds:
  geneEvidence   publications from --pmids plus --abstracts
  geneLevel      the description of --level
  <anything>     the static --content

Examples:
  kbtip tooltip geneEvidence --pmids 25079552,26343583
  kbtip tooltip geneEvidence --abstracts '[{"abstract":"Smith et al. ASCO 2015","link":"http://example.org"}]'
  kbtip tooltip geneLevel --level 2a --human`,
	Args: cobra.ExactArgs(1),
	RunE: runTooltip,
}

// TooltipResult is the JSON output of the tooltip command.
type TooltipResult struct {
	Kind    string          `json:"kind"`
	Outcome tooltip.Outcome `json:"outcome"`
	Options tooltip.Options `json:"options"`
	Content string          `json:"content"`
	Classes string          `json:"classes"`
	Error   string          `json:"error,omitempty"`
}

// tooltipParams builds resolver inputs from the command's flags.
func tooltipParams(kind string) tooltip.Params {
	p := tooltip.Params{
		Kind:           tooltip.ParseKind(kind),
		Content:        tooltipContent,
		Level:          tooltipLevel,
		PublicationIDs: splitPublicationIDs(tooltipPMIDs),
		My:             tooltipMy,
		At:             tooltipAt,
	}
	if tooltipAbstracts != "" {
		p.Abstracts, _ = reference.NormalizeAbstracts(json.RawMessage(tooltipAbstracts))
	}
	return p
}

func splitPublicationIDs(s string) []reference.PublicationID {
	ids := []reference.PublicationID{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			ids = append(ids, reference.PublicationID(part))
		}
	}
	return ids
}

func runTooltip(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	table := mustLoadLevels(cfg)

	client := api.NewClientFromConfig(cfg)
	resolver := tooltip.NewResolver(client, table)
	p := tooltipParams(args[0])

	frame := tooltip.NewFrame(resolver.Options(p))
	tip := resolver.Bind(frame, p)
	defer tip.Dispose()

	ctx, cancel := context.WithTimeout(context.Background(), tooltipTimeout)
	defer cancel()

	frame.Show()
	outcome, err := tip.OnShow(ctx, tooltip.Event{Type: tooltip.ShowEvent}).Wait(ctx)
	if err != nil && outcome == "" {
		exitWithError(ExitAPIError, "waiting for tooltip content: %v", err)
	}

	state := frame.State()
	result := TooltipResult{
		Kind:    p.Kind.String(),
		Outcome: outcome,
		Options: tip.Options(),
		Content: state.Content,
		Classes: state.Classes,
	}
	if err != nil {
		result.Error = err.Error()
	}

	if !humanOutput {
		if err := outputJSON(result); err != nil {
			return err
		}
	} else {
		outputHuman("kind:    %s\n", result.Kind)
		outputHuman("outcome: %s\n", result.Outcome)
		outputHuman("classes: %s\n", result.Classes)
		if result.Error != "" {
			outputHuman("error:   %s\n", result.Error)
		}
		outputHuman("\n%s\n", result.Content)
	}

	if outcome == tooltip.OutcomeFailed {
		os.Exit(apiExitCode(err))
	}
	return nil
}
