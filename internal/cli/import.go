package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"edge-analysis/internal/dataset"
	"edge-analysis/internal/models"
	"edge-analysis/internal/stats"
	"edge-analysis/pkg/utils"
)

func newImportCmd(app *App) *cobra.Command {
	var (
		templateName string
		saveAs       string
	)

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a journal export (CSV, TSV or XLSX)",
		Long: `Import reads a journal export, reconciles its columns through the
mapping templates, normalizes every row and prints the headline
statistics. With --save the normalized dataset is persisted under the
given label for later analysis.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			table, profile, err := app.Normalizer.AdaptAuto(args[0], templateName)
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}

			trades, _ := dataset.Build(table, app.buildOptions())
			if len(trades) == 0 {
				output.Warning("No trades retained from %s", args[0])
				return nil
			}

			if saveAs != "" {
				if app.Store == nil {
					return fmt.Errorf("store unavailable, cannot save dataset")
				}
				if err := app.Store.ReplaceTrades(cmd.Context(), saveAs, trades); err != nil {
					return err
				}
				output.Success("Saved %d trades as %q", len(trades), saveAs)
			}

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"file":     args[0],
					"profile":  profile,
					"trades":   len(trades),
					"overview": stats.ComputeOverview(trades),
				})
			}

			if profile != "" {
				output.Info("Applied mapping template %q", profile)
			} else {
				output.Dim("No mapping template matched, columns used as-is")
			}
			printOverview(output, trades)
			return nil
		},
	}

	cmd.Flags().StringVar(&templateName, "template", "", "force a mapping template by name")
	cmd.Flags().StringVar(&saveAs, "save", "", "persist the dataset under this label")
	return cmd
}

// buildOptions assembles the normalization options from configuration.
// Strictness is a single session-wide setting.
func (app *App) buildOptions() dataset.Options {
	return dataset.Options{
		Strict:               app.Config.Analysis.StrictCompletion,
		Normalizer:           app.Normalizer,
		InferSessionFromHour: app.Config.Analysis.InferSession,
		Logger:               app.Logger,
	}
}

func printOverview(output *Output, trades []models.CanonicalTrade) {
	ov := stats.ComputeOverview(trades)
	complete := 0
	for _, t := range trades {
		if t.IsComplete {
			complete++
		}
	}

	output.Println()
	output.Bold("Overview")
	output.Printf("  Trades:     %d (%d complete)\n", len(trades), complete)
	output.Printf("  Win:        %d (%s)\n", ov.Counts.Win, output.FormatWinPct(ov.Percentages.Win))
	output.Printf("  BE:         %d (%s)\n", ov.Counts.BE, utils.FormatPercent(ov.Percentages.BE))
	output.Printf("  Loss:       %d (%s)\n", ov.Counts.Loss, utils.FormatPercent(ov.Percentages.Loss))
	output.Printf("  Net R:      %s\n", output.FormatR(stats.NetR(trades)))
	if e, ok := stats.ExpectancyR(trades); ok {
		output.Printf("  Expectancy: %s\n", output.FormatR(e))
	}
	output.Printf("  Wins-only R: %s\n", output.FormatR(ov.PnLWinsOnlyR))
}
