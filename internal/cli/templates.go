package cli

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"edge-analysis/internal/template"
)

func newTemplatesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "Mapping template management",
		Long:  "List mapping templates and check how well they match a journal export.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List available mapping templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			profiles := app.Normalizer.Profiles()

			if output.IsJSON() {
				names := make([]string, 0, len(profiles))
				for _, p := range profiles {
					names = append(names, p.Name)
				}
				return output.JSON(names)
			}

			if len(profiles) == 0 {
				output.Warning("No mapping templates in %s", app.Config.Analysis.TemplatesDir)
				return nil
			}
			table := NewTable(output, "Template", "Renames", "Normalizers", "Coercions")
			for _, p := range profiles {
				table.AddRow(
					p.Name,
					fmt.Sprintf("%d", len(p.Columns)),
					fmt.Sprintf("%d", len(p.Normalizers)),
					fmt.Sprintf("%d", len(p.Coercions)),
				)
			}
			table.Render()
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "score <file>",
		Short: "Score every template against a journal export's headers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			var headers []string
			switch strings.ToLower(filepath.Ext(args[0])) {
			case ".csv":
				t, err := template.ReadCSV(args[0], ',')
				if err != nil {
					return err
				}
				headers = t.Headers
			case ".tsv":
				t, err := template.ReadCSV(args[0], '\t')
				if err != nil {
					return err
				}
				headers = t.Headers
			case ".xlsx", ".xls":
				t, err := template.ReadXLSX(args[0])
				if err != nil {
					return err
				}
				headers = t.Headers
			default:
				return fmt.Errorf("unsupported file type: %s", filepath.Ext(args[0]))
			}

			profiles := app.Normalizer.Profiles()
			type scored struct {
				Name  string  `json:"name"`
				Score float64 `json:"score"`
			}
			results := make([]scored, 0, len(profiles))
			for _, p := range profiles {
				results = append(results, scored{Name: p.Name, Score: template.Score(headers, p)})
			}
			sort.Slice(results, func(i, j int) bool { return results[i].Score > results[j].Score })

			if output.IsJSON() {
				return output.JSON(results)
			}
			table := NewTable(output, "Template", "Score")
			for _, r := range results {
				table.AddRow(r.Name, fmt.Sprintf("%.3f", r.Score))
			}
			table.Render()
			return nil
		},
	})

	return cmd
}
