// Package main provides the entry point for the resume importer CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_importer",
	Short: "Import candidate resumes from recruiting sources into SQLite",
	Long:  "Resume Importer fetches candidate data from recruiting sources (LRS and Cake Google Sheets, Yourator Excel exports, plain CSV files), normalizes it into a common record shape, validates it, and upserts it into a local SQLite database with timestamped backups of referenced resume files.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
