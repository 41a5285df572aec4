package config

import (
	"os"
	"path/filepath"
)

// gspreadCredentialsPath is the conventional location for a gspread-style
// service account file, relative to the home directory.
var gspreadCredentialsPath = filepath.Join(".config", "gspread", "service_account.json")

// ResolveCredentialsFile finds the Google service account credentials file to
// use: an explicit path wins, then the GOOGLE_APPLICATION_CREDENTIALS
// environment variable, then the conventional gspread location. Returns ""
// when none exists; hyperlink resolution is then disabled.
func ResolveCredentialsFile(explicit string) string {
	if explicit != "" {
		return explicit
	}

	if env := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); env != "" {
		if _, err := os.Stat(env); err == nil {
			return env
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	path := filepath.Join(home, gspreadCredentialsPath)
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}
