package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"edge-analysis/internal/models"
)

func newUserCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Per-user preferences",
		Long:  "Show and update which mapping template and collection a user is tied to.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show saved preferences for the configured user",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			userID, err := app.requireUser()
			if err != nil {
				return err
			}

			prefs, err := app.Store.GetUserPrefs(cmd.Context(), userID)
			if err != nil {
				return err
			}
			if prefs == nil {
				output.Warning("No saved preferences for %s", userID)
				return nil
			}
			if output.IsJSON() {
				return output.JSON(prefs)
			}
			output.Bold("Preferences for %s", prefs.UserID)
			output.Printf("  Template:   %s\n", orDash(prefs.Template))
			output.Printf("  Collection: %s\n", orDash(prefs.CollectionID))
			output.Printf("  Updated:    %s\n", FormatDate(prefs.UpdatedAt))
			return nil
		},
	})

	var (
		templateName string
		collectionID string
	)
	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Save template and collection preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			userID, err := app.requireUser()
			if err != nil {
				return err
			}
			if templateName == "" && collectionID == "" {
				return fmt.Errorf("nothing to set; pass --template and/or --collection")
			}

			prefs, err := app.Store.GetUserPrefs(cmd.Context(), userID)
			if err != nil {
				return err
			}
			if prefs == nil {
				prefs = &models.UserPrefs{UserID: userID}
			}
			if templateName != "" {
				prefs.Template = templateName
			}
			if collectionID != "" {
				prefs.CollectionID = collectionID
			}

			if err := app.Store.SaveUserPrefs(cmd.Context(), prefs); err != nil {
				return err
			}
			output.Success("Preferences saved for %s", userID)
			return nil
		},
	}
	setCmd.Flags().StringVar(&templateName, "template", "", "preferred mapping template")
	setCmd.Flags().StringVar(&collectionID, "collection", "", "preferred source collection")
	cmd.AddCommand(setCmd)

	return cmd
}

func (app *App) requireUser() (string, error) {
	if app.Store == nil {
		return "", fmt.Errorf("store unavailable")
	}
	userID := app.Config.Credentials.Source.UserID
	if userID == "" {
		return "", fmt.Errorf("no user configured; set EDGE_USER_ID or credentials.toml")
	}
	return userID, nil
}

func orDash(s string) string {
	if s == "" {
		return "–"
	}
	return s
}
