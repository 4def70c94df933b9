package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"edge-analysis/internal/dataset"
	"edge-analysis/internal/models"
	"edge-analysis/internal/stats"
	"edge-analysis/internal/store"
	"edge-analysis/pkg/utils"
)

// filterFlags carries the shared dataset filter flags.
type filterFlags struct {
	collection   string
	from, to     string
	instrument   string
	session      string
	entryModel   string
	account      string
	onlyComplete bool
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.collection, "collection", "", "dataset label (default: configured collection)")
	cmd.Flags().StringVar(&f.from, "from", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.to, "to", "", "end date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.instrument, "instrument", "", "filter by instrument")
	cmd.Flags().StringVar(&f.session, "session", "", "filter by session")
	cmd.Flags().StringVar(&f.entryModel, "model", "", "filter by entry model")
	cmd.Flags().StringVar(&f.account, "account", "", "filter by account group")
	cmd.Flags().BoolVar(&f.onlyComplete, "complete", false, "only fully classified trades")
}

// loadTrades reads the persisted dataset and applies the filter flags.
func (app *App) loadTrades(cmd *cobra.Command, f *filterFlags) ([]models.CanonicalTrade, error) {
	if app.Store == nil {
		return nil, fmt.Errorf("store unavailable")
	}

	collection := f.collection
	if collection == "" {
		collection = app.Config.Credentials.Source.CollectionID
	}

	trades, err := app.Store.GetTrades(cmd.Context(), store.TradeFilter{Collection: collection})
	if err != nil {
		return nil, err
	}
	if len(trades) == 0 {
		return nil, fmt.Errorf("no persisted trades; run 'edge fetch' or 'edge import --save' first")
	}

	from, err := parseDateFlag(f.from)
	if err != nil {
		return nil, err
	}
	to, err := parseDateFlag(f.to)
	if err != nil {
		return nil, err
	}

	return dataset.Apply(trades, dataset.Filter{
		From:         from,
		To:           to,
		Instrument:   f.instrument,
		Session:      f.session,
		EntryModel:   f.entryModel,
		Account:      f.account,
		OnlyComplete: f.onlyComplete,
	}), nil
}

func newStatsCmd(app *App) *cobra.Command {
	var filters filterFlags

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Headline statistics over the persisted journal",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			trades, err := app.loadTrades(cmd, &filters)
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"trades":   len(trades),
					"overview": stats.ComputeOverview(trades),
					"net_r":    stats.NetR(trades),
				})
			}
			printOverview(output, trades)
			return nil
		},
	}
	filters.register(cmd)

	cmd.AddCommand(newStatsByCmd(app))
	return cmd
}

func newStatsByCmd(app *App) *cobra.Command {
	var filters filterFlags

	cmd := &cobra.Command{
		Use:   "by <dimension>",
		Short: "Grouped breakdown along one dimension",
		Long: `Break the journal down along one dimension and show per-group win
rates and R statistics.

Dimensions: instrument, session, model, day, account, duration, rr,
month, confluence.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			dim, err := stats.ParseDimension(args[0])
			if err != nil {
				return err
			}
			trades, err := app.loadTrades(cmd, &filters)
			if err != nil {
				return err
			}

			rows := stats.GroupWinRates(trades, dim)
			if output.IsJSON() {
				return output.JSON(rows)
			}

			output.Bold("Breakdown by %s", dim)
			table := NewTable(output, "Group", "Trades", "Win%", "BE%", "Loss%", "Net R", "Expectancy")
			for _, r := range rows {
				table.AddRow(
					utils.Truncate(r.Key, 28),
					fmt.Sprintf("%d", r.Trades),
					output.FormatWinPct(r.WinPct),
					utils.FormatPercent(r.BEPct),
					utils.FormatPercent(r.LossPct),
					output.FormatR(r.NetR),
					FormatOptionalR(r.ExpectancyR),
				)
			}
			table.Render()
			return nil
		},
	}
	filters.register(cmd)
	return cmd
}

func newEquityCmd(app *App) *cobra.Command {
	var (
		filters     filterFlags
		granularity string
		winRate     bool
	)

	cmd := &cobra.Command{
		Use:   "equity",
		Short: "Cumulative R curve over time",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			g, ok := stats.ParseGranularity(granularity)
			if !ok {
				return fmt.Errorf("unknown granularity %q (want day, week or month)", granularity)
			}
			trades, err := app.loadTrades(cmd, &filters)
			if err != nil {
				return err
			}

			if winRate {
				points := stats.CumulativeWinRate(trades, g)
				if output.IsJSON() {
					return output.JSON(points)
				}
				table := NewTable(output, "Bucket", "Trades", "Cum. Trades", "Cum. Win%")
				for _, p := range points {
					table.AddRow(
						FormatDate(p.Bucket),
						fmt.Sprintf("%d", p.Trades),
						fmt.Sprintf("%d", p.CumulativeTrades),
						output.FormatWinPct(p.CumulativeWinPct),
					)
				}
				table.Render()
				return nil
			}

			points := stats.CumulativeRR(trades, g)
			if output.IsJSON() {
				return output.JSON(points)
			}
			table := NewTable(output, "Bucket", "Net R", "Cumulative R")
			for _, p := range points {
				table.AddRow(FormatDate(p.Bucket), output.FormatR(p.NetR), output.FormatR(p.CumulativeR))
			}
			table.Render()
			return nil
		},
	}
	filters.register(cmd)
	cmd.Flags().StringVar(&granularity, "granularity", "day", "bucket size: day, week or month")
	cmd.Flags().BoolVar(&winRate, "win-rate", false, "show the cumulative win-rate curve instead")
	return cmd
}
