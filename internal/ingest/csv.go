package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
)

// ParseCSV reads a CSV export. Records may vary in length; short rows
// survive as-is and read as absent cells downstream.
func ParseCSV(r io.Reader) ([]string, [][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	all, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read csv: %w", err)
	}
	return split(all)
}
