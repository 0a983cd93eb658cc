package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sstent/gfitweight/internal/config"
	"github.com/sstent/gfitweight/internal/fit"
	"github.com/sstent/gfitweight/internal/weight"
)

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete",
		Short: "Delete all weight data from Google Fit",
		Long: `Finds the weight data source of the account and deletes every point in
it, from the epoch to the far future. Nothing is deleted when the account has
no weight data source.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			settings, err := config.LoadSettings(a.v)
			if err != nil {
				return fmt.Errorf("failed to load settings: %w", err)
			}

			secrets, client, err := a.connect(ctx, out, settings)
			if err != nil {
				return err
			}

			deleter := weight.NewDeleter(fit.NewResolver(client, secrets.ProjectID), client)
			deleter.Found = func(id string) {
				fmt.Fprintf(out, "Found weight data source: %s\n", id)
			}

			if _, err := deleter.Delete(ctx); err != nil {
				if errors.Is(err, fit.ErrNoWeightSource) {
					fmt.Fprintln(out, "No weight data source found")
					return nil
				}
				if errors.Is(err, fit.ErrDatasetDelete) {
					fmt.Fprintf(out, "❌ Error deleting data: %v\n", err)
				}
				return err
			}

			fmt.Fprintln(out, "✅ Successfully deleted weight data")
			return nil
		},
	}
}
