package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-importer/internal/backup"
	"github.com/jonathan/resume-importer/internal/config"
	"github.com/jonathan/resume-importer/internal/db"
	"github.com/jonathan/resume-importer/internal/driver"
	"github.com/jonathan/resume-importer/internal/observability"
	"github.com/jonathan/resume-importer/internal/pipeline"
	"github.com/jonathan/resume-importer/internal/sheets"
)

var importCommand = &cobra.Command{
	Use:   "import-resume <source>",
	Short: "Import candidate data from one source into the database",
	Long: `Fetches candidate rows from the given source, converts them to normalized
records, validates them, and upserts them into the SQLite database. Referenced
resume files are backed up with a timestamped copy per run.

Sources: lrs, cake, yourator, csv.

Configuration can be loaded from a JSON file using --config. Command-line
arguments override config file values.`,
	Args: cobra.ExactArgs(1),
	RunE: runImportCmd,
}

var (
	importConfigPath     string
	importDBPath         string
	importFilePath       string
	importBackupDir      string
	importCredentials    string
	importSheetURL       string
	importSkipValidation bool
	importVerbose        bool
)

func init() {
	// Config file flag (processed first)
	importCommand.Flags().StringVar(&importConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	importCommand.Flags().StringVar(&importDBPath, "db-path", "resume.db", "Path to the SQLite database file")
	importCommand.Flags().StringVarP(&importFilePath, "file-path", "f", "", "Input file for file-based sources (yourator, csv)")
	importCommand.Flags().StringVar(&importBackupDir, "backup-dir", "backup", "Root directory for resume file backups")
	importCommand.Flags().StringVar(&importCredentials, "credentials", "", "Google service account credentials JSON (optional, defaults to GOOGLE_APPLICATION_CREDENTIALS)")
	importCommand.Flags().StringVar(&importSheetURL, "sheet-url", "", "Override the source's CSV export URL (lrs, cake)")
	importCommand.Flags().BoolVar(&importSkipValidation, "skip-validation", false, "Skip the validation stage")
	importCommand.Flags().BoolVarP(&importVerbose, "verbose", "v", false, "Print detailed progress information")

	rootCmd.AddCommand(importCommand)
}

func runImportCmd(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	source := args[0]

	cfg, err := loadMergedConfig(cmd, importConfigPath)
	if err != nil {
		return err
	}

	printer := observability.NewPrinter(os.Stdout)
	var verbosePrinter *observability.Printer
	if cfg.Verbose {
		verbosePrinter = printer
	}

	store, err := db.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	drv, err := driver.New(source, driver.Options{
		FilePath: cfg.FilePath,
		SheetURL: sheetURLFor(source, cfg),
		Resolver: newResolver(ctx, cfg, verbosePrinter),
	})
	if err != nil {
		return err
	}

	result, err := pipeline.Run(ctx, pipeline.RunOptions{
		Driver:         drv,
		DB:             store,
		Backups:        backup.New(cfg.BackupDir, nil),
		SkipValidation: cfg.SkipValidation,
		Printer:        verbosePrinter,
	})
	if err != nil {
		return err
	}

	printer.PrintDefects(result.Defects)
	printer.PrintSummary(result)
	return nil
}

// loadMergedConfig loads an optional config file and applies the import
// command's flag values on top, flags winning when explicitly set.
func loadMergedConfig(cmd *cobra.Command, configPath string) (config.Config, error) {
	var cfg config.Config
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return cfg, err
		}
		cfg = *loaded
	}

	if cmd.Flags().Changed("db-path") || cfg.DBPath == "" {
		cfg.DBPath = importDBPath
	}
	if cmd.Flags().Changed("file-path") {
		cfg.FilePath = importFilePath
	}
	if cmd.Flags().Changed("backup-dir") || cfg.BackupDir == "" {
		cfg.BackupDir = importBackupDir
	}
	if cmd.Flags().Changed("credentials") {
		cfg.CredentialsFile = importCredentials
	}
	if cmd.Flags().Changed("skip-validation") {
		cfg.SkipValidation = importSkipValidation
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = importVerbose
	}
	return cfg, nil
}

func sheetURLFor(source string, cfg config.Config) string {
	if importSheetURL != "" {
		return importSheetURL
	}
	switch source {
	case "lrs":
		return cfg.LRSSheetURL
	case "cake":
		return cfg.CakeSheetURL
	default:
		return ""
	}
}

// newResolver builds the sheets hyperlink resolver when credentials are
// available. Resolution is optional: without credentials the import still
// runs and resume-file cells keep their literal text.
func newResolver(ctx context.Context, cfg config.Config, printer *observability.Printer) driver.LinkResolver {
	credFile := config.ResolveCredentialsFile(cfg.CredentialsFile)
	if credFile == "" {
		return nil
	}
	client, err := sheets.NewClient(ctx, credFile)
	if err != nil {
		if printer != nil {
			printer.Printf("Warning: sheets client unavailable, hyperlink resolution disabled: %v\n", err)
		}
		return nil
	}
	return client
}
