package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sstent/gfitweight/internal/config"
	"github.com/sstent/gfitweight/internal/fit"
	"github.com/sstent/gfitweight/internal/weight"
)

func newImportCmd(a *app) *cobra.Command {
	importCmd := &cobra.Command{
		Use:   "import",
		Short: "Import weight measurements from a CSV export",
		Long: `Reads a smart-scale CSV export and writes all measurements to the
Google Fit weight data source in a single dataset patch, then reads the
dataset back to verify it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			settings, err := config.LoadSettings(a.v)
			if err != nil {
				return fmt.Errorf("failed to load settings: %w", err)
			}

			points, err := weight.ReadCSVFile(settings.CSVPath, settings.Location)
			if err != nil {
				return fmt.Errorf("%w %s: %w", errInput, settings.CSVPath, err)
			}

			secrets, client, err := a.connect(ctx, out, settings)
			if err != nil {
				return err
			}

			resolver := fit.NewResolver(client, secrets.ProjectID)
			resolver.Logger = a.logger
			if settings.StrictCreate {
				resolver.Policy = fit.Strict
			}

			fmt.Fprintln(out, "datasourceID")
			fmt.Fprintln(out, resolver.ComputedID())

			res, err := resolver.ResolveForImport(ctx)
			if err != nil {
				return err
			}
			switch res.Origin {
			case fit.OriginExisting:
				fmt.Fprintf(out, "Found existing weight data source: %s\n", res.ID)
			case fit.OriginCreated:
				fmt.Fprintf(out, "Created new data source: %s\n", res.ID)
			default:
				fmt.Fprintf(out, "⚠️ Data source not confirmed: %v\n", res.Err)
				fmt.Fprintf(out, "⏳ Continuing with computed data source: %s\n", res.ID)
			}

			fmt.Fprintf(out, "got %d weights...\n", len(points))

			importer := weight.NewImporter(client)
			importer.Logger = a.logger
			result, err := importer.Import(ctx, res.ID, points)
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "✅ Imported %d points into %s (dataset %s)\n", result.Sent, result.DataSourceID, result.DatasetID)
			v := result.Verified
			fmt.Fprintf(out, "📊 Verified dataset: %d points from %s to %s\n",
				len(v.Point), formatNanos(v.MinStartTimeNs), formatNanos(v.MaxEndTimeNs))
			return nil
		},
	}

	importCmd.Flags().String("csv", "weights.csv", "Path to the weight CSV export")
	importCmd.Flags().Bool("strict-create", false, "Abort when registering the data source fails")
	importCmd.Flags().String("timezone", "Local", "Time zone of timestamps without an offset")
	_ = a.v.BindPFlag("csv", importCmd.Flags().Lookup("csv"))
	_ = a.v.BindPFlag("strict_create", importCmd.Flags().Lookup("strict-create"))
	_ = a.v.BindPFlag("timezone", importCmd.Flags().Lookup("timezone"))

	return importCmd
}

func formatNanos(ns int64) string {
	return time.Unix(0, ns).Format("2006-01-02 15:04:05")
}
