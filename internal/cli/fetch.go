package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"edge-analysis/internal/dataset"
	"edge-analysis/internal/errors"
	"edge-analysis/internal/logging"
	"edge-analysis/internal/stats"
	"edge-analysis/internal/store"
)

func newFetchCmd(app *App) *cobra.Command {
	var (
		collectionID string
		templateName string
		noSave       bool
	)

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch the journal from the configured source",
		Long: `Fetch pulls every page of the configured document-database
collection, normalizes the rows and persists the dataset, replacing any
previous sync of the same collection.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			if app.Source == nil {
				return errors.ErrNotAuthenticated
			}
			if collectionID == "" {
				collectionID = app.Config.Credentials.Source.CollectionID
			}
			if collectionID == "" {
				return errors.ErrCollectionNotSet
			}

			logger := logging.WithCollection(app.Logger, collectionID)

			table, err := app.Source.Load(cmd.Context(), collectionID)
			if err != nil {
				return err
			}
			output.Info("Fetched %d rows from collection", len(table.Rows))

			opts := app.buildOptions()
			opts.ForcedProfile = templateName
			opts.Logger = logger
			trades, profile := dataset.Build(table, opts)

			if !noSave {
				if app.Store == nil {
					return fmt.Errorf("store unavailable, rerun with --no-save")
				}
				if err := app.Store.ReplaceTrades(cmd.Context(), collectionID, trades); err != nil {
					return err
				}
				if err := app.Store.SetLastSync(collectionID, time.Now().UTC()); err != nil {
					logger.Warn().Err(err).Msg("Failed to record sync time")
				}
				output.Success("Synced %d trades", len(trades))
			}

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"collection": collectionID,
					"rows":       len(table.Rows),
					"trades":     len(trades),
					"profile":    profile,
					"overview":   stats.ComputeOverview(trades),
				})
			}
			printOverview(output, trades)
			return nil
		},
	}

	cmd.Flags().StringVar(&collectionID, "collection", "", "collection to fetch (default: configured collection)")
	cmd.Flags().StringVar(&templateName, "template", "", "force a mapping template by name")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "analyze without persisting")

	cmd.AddCommand(newFetchStatusCmd(app))
	return cmd
}

func newFetchStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show how fresh the synced journal is",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				return fmt.Errorf("store unavailable")
			}
			collectionID := app.Config.Credentials.Source.CollectionID
			if collectionID == "" {
				return errors.ErrCollectionNotSet
			}

			status := store.CheckFreshness(app.Store, collectionID, store.DefaultStaleAfter)
			if output.IsJSON() {
				return output.JSON(status)
			}
			if status.LastSync.IsZero() {
				output.Warning("Collection has never been synced")
				return nil
			}
			output.Printf("Last sync: %s (%s ago)\n", FormatDate(status.LastSync), status.Age.Round(time.Minute))
			if status.IsStale {
				output.Warning("Dataset is stale, run 'edge fetch' to refresh")
			} else {
				output.Success("Dataset is fresh")
			}
			return nil
		},
	}
}
