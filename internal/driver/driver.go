// Package driver provides source-specific adapters that convert raw tabular
// rows from the supported resume sources (LRS, Cake, Yourator, CSV) into
// normalized Record values. Drivers are created through New and share a
// common capability set: fetching rows, converting one row, and best-effort
// hyperlink resolution.
package driver

import (
	"context"
	"errors"

	"github.com/jonathan/resume-importer/internal/types"
)

// Row is one raw row from a tabular source, keyed by column header. Its
// schema varies per source and is known only to that source's driver.
type Row map[string]string

// Driver converts raw rows from one source into Records.
//
// FetchRows failure aborts the whole import for that source. ToRecord
// failures are collected per row without aborting the batch. ResolveLink is
// strictly best-effort: it reports ("", false) on any failure and callers
// fall back to the literal cell text.
type Driver interface {
	// Source returns the tag of the source this driver reads.
	Source() types.Source

	// FetchRows retrieves every data row from the native source.
	FetchRows(ctx context.Context) ([]Row, error)

	// ToRecord maps one raw row to a normalized Record. index is the
	// 0-based data row position (header excluded) and is used in errors.
	ToRecord(row Row, index int) (*types.Record, error)

	// ResolveLink looks up the true hyperlink target behind the row's
	// resume-file cell, when the source can carry one.
	ResolveLink(ctx context.Context, row Row, index int) (string, bool)
}

// LinkResolver looks up hyperlink targets hidden behind displayed cell
// values. Implemented by the sheets client; a nil resolver disables
// resolution entirely.
type LinkResolver interface {
	ColumnHyperlinks(ctx context.Context, spreadsheetID, columnRange string) (map[int]string, error)
}

// ErrEmptyRow rejects a row with no usable cell content at all. It is the
// only row-construction failure.
var ErrEmptyRow = errors.New("row has no usable cells")

// ErrUnknownSource reports a source tag the factory does not recognize.
var ErrUnknownSource = errors.New("unknown source")
