package driver

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-importer/internal/fetch"
	"github.com/jonathan/resume-importer/internal/types"
)

// Options carries source-specific construction parameters. Fields that do
// not apply to the requested source are ignored.
type Options struct {
	// FilePath locates the input file for the csv and yourator sources.
	FilePath string

	// SheetURL overrides the default CSV export URL for the lrs and cake
	// sources. Used by tests and self-hosted mirrors.
	SheetURL string

	// Fetcher performs HTTP fetches; nil uses a default client.
	Fetcher *fetch.Client

	// Resolver enables hyperlink resolution for the lrs source; nil
	// disables it.
	Resolver LinkResolver
}

// New creates a driver for the given source tag. Tags are matched
// case-insensitively; an unrecognized tag yields ErrUnknownSource.
func New(source string, opts Options) (Driver, error) {
	switch types.Source(strings.ToLower(strings.TrimSpace(source))) {
	case types.SourceLRS:
		return NewLRSDriver(opts.Fetcher, opts.SheetURL, opts.Resolver), nil
	case types.SourceCake:
		return NewCakeDriver(opts.Fetcher, opts.SheetURL), nil
	case types.SourceYourator:
		return NewYouratorDriver(opts.FilePath), nil
	case types.SourceCSV:
		return NewCSVDriver(opts.FilePath), nil
	default:
		return nil, fmt.Errorf("%w %q (available sources: %s)", ErrUnknownSource, source, strings.Join(Sources(), ", "))
	}
}

// Sources lists the known source tags.
func Sources() []string {
	known := types.KnownSources()
	out := make([]string, len(known))
	for i, s := range known {
		out[i] = string(s)
	}
	return out
}
