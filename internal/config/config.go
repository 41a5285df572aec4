// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	DBPath          string `json:"db_path,omitempty"`          // Path to the SQLite database file
	BackupDir       string `json:"backup_dir,omitempty"`       // Root directory for resume file backups
	FilePath        string `json:"file_path,omitempty"`        // Input file for file-based sources (yourator, csv)
	CredentialsFile string `json:"credentials_file,omitempty"` // Google service account credentials JSON

	// Source overrides
	LRSSheetURL  string `json:"lrs_sheet_url,omitempty"`  // Override for the LRS sheet CSV export URL
	CakeSheetURL string `json:"cake_sheet_url,omitempty"` // Override for the Cake sheet CSV export URL

	// Behavior
	SkipValidation bool `json:"skip_validation,omitempty"` // Skip the validation stage
	Verbose        bool `json:"verbose,omitempty"`         // Print detailed progress information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Required fields are not checked here; they are handled by CLI flag
// validation after merging.
func (c *Config) Validate() error {
	if c.CredentialsFile != "" {
		if _, err := os.Stat(c.CredentialsFile); os.IsNotExist(err) {
			return fmt.Errorf("config error: credentials file not found: %s", c.CredentialsFile)
		}
	}

	if c.FilePath != "" {
		if _, err := os.Stat(c.FilePath); os.IsNotExist(err) {
			return fmt.Errorf("config error: input file not found: %s", c.FilePath)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.DBPath == "" {
		result.DBPath = defaults.DBPath
	}
	if result.BackupDir == "" {
		result.BackupDir = defaults.BackupDir
	}
	if result.FilePath == "" {
		result.FilePath = defaults.FilePath
	}
	if result.CredentialsFile == "" {
		result.CredentialsFile = defaults.CredentialsFile
	}
	if result.LRSSheetURL == "" {
		result.LRSSheetURL = defaults.LRSSheetURL
	}
	if result.CakeSheetURL == "" {
		result.CakeSheetURL = defaults.CakeSheetURL
	}

	// Bool fields: true wins from either side
	result.SkipValidation = result.SkipValidation || defaults.SkipValidation
	result.Verbose = result.Verbose || defaults.Verbose

	return result
}
