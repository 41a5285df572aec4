package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-importer/internal/db"
	"github.com/jonathan/resume-importer/internal/observability"
)

var showDataCommand = &cobra.Command{
	Use:   "show-data",
	Short: "Show stored resume records",
	Long:  "Displays the most recent resume records from the SQLite database, optionally filtered by source.",
	RunE:  runShowDataCmd,
}

var (
	showDBPath string
	showLimit  int
	showSource string
)

func init() {
	showDataCommand.Flags().StringVar(&showDBPath, "db-path", "resume.db", "Path to the SQLite database file")
	showDataCommand.Flags().IntVarP(&showLimit, "limit", "n", 10, "Maximum number of records to show (0 for all)")
	showDataCommand.Flags().StringVarP(&showSource, "source", "s", "", "Only show records from this source (lrs, cake, yourator, csv)")

	rootCmd.AddCommand(showDataCommand)
}

func runShowDataCmd(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	store, err := db.Open(showDBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	records, err := store.ListResumes(ctx, db.ListOpts{Source: showSource, Limit: showLimit})
	if err != nil {
		return err
	}

	total, err := store.CountResumes(ctx, showSource)
	if err != nil {
		return err
	}

	printer := observability.NewPrinter(os.Stdout)
	if total == 0 {
		printer.Printf("No records found.\n")
		return nil
	}

	printer.Printf("Showing %d of %d records:\n\n", len(records), total)
	for i, sr := range records {
		printer.PrintStoredResume(i+1, sr)
	}
	return nil
}
