package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-importer/internal/config"
	"github.com/jonathan/resume-importer/internal/driver"
	"github.com/jonathan/resume-importer/internal/observability"
	"github.com/jonathan/resume-importer/internal/pipeline"
	"github.com/jonathan/resume-importer/internal/sheets"
)

var validateDataCommand = &cobra.Command{
	Use:   "validate-data <source>",
	Short: "Fetch and validate source data without storing it",
	Long: `Fetches candidate rows from the given source, converts them, and reports
validation defects. Nothing is written to the database or the backup tree.

Sources: lrs, cake, yourator, csv.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidateDataCmd,
}

var (
	validateFilePath    string
	validateSheetURL    string
	validateCredentials string
)

func init() {
	validateDataCommand.Flags().StringVarP(&validateFilePath, "file-path", "f", "", "Input file for file-based sources (yourator, csv)")
	validateDataCommand.Flags().StringVar(&validateSheetURL, "sheet-url", "", "Override the source's CSV export URL (lrs, cake)")
	validateDataCommand.Flags().StringVar(&validateCredentials, "credentials", "", "Google service account credentials JSON (optional)")

	rootCmd.AddCommand(validateDataCommand)
}

func runValidateDataCmd(_ *cobra.Command, args []string) error {
	ctx := context.Background()
	source := args[0]

	var resolver driver.LinkResolver
	if credFile := config.ResolveCredentialsFile(validateCredentials); credFile != "" {
		if client, err := sheets.NewClient(ctx, credFile); err == nil {
			resolver = client
		}
	}

	drv, err := driver.New(source, driver.Options{
		FilePath: validateFilePath,
		SheetURL: validateSheetURL,
		Resolver: resolver,
	})
	if err != nil {
		return err
	}

	result, err := pipeline.Run(ctx, pipeline.RunOptions{
		Driver:       drv,
		ValidateOnly: true,
	})
	if err != nil {
		return err
	}

	observability.NewPrinter(os.Stdout).PrintValidationSummary(result)
	return nil
}
