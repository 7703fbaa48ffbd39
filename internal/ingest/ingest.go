// Package ingest turns uploaded or fetched spreadsheets into the
// (headers, rows) pair the store consumes. Row 0 of every source is the
// header row; the rest are data rows. Header strings pass through
// untouched so column resolution sees exactly what the sheet carries.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// ErrEmptySource reports a source with no rows at all.
var ErrEmptySource = errors.New("source contains no rows")

// Fetcher is the remote-spreadsheet collaborator: it returns a complete
// (headers, rows) pair or fails outright, never partial data.
type Fetcher interface {
	Fetch(ctx context.Context) (headers []string, rows [][]string, err error)
}

// ParseFile dispatches on the uploaded file's extension.
func ParseFile(filename string, r io.Reader) ([]string, [][]string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		return ParseWorkbook(r)
	case ".csv":
		return ParseCSV(r)
	default:
		return nil, nil, fmt.Errorf("unsupported file type %q", filepath.Ext(filename))
	}
}

// split separates the header row from the data rows.
func split(all [][]string) ([]string, [][]string, error) {
	if len(all) == 0 {
		return nil, nil, ErrEmptySource
	}
	return all[0], all[1:], nil
}
