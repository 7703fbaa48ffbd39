package core

import (
	"strconv"
	"strings"
)

type (
	// Dataset is the current spreadsheet contents: an ordered header row
	// and data rows aligned positionally to it. Rows shorter than the
	// header row are tolerated; absent cells read as empty.
	Dataset struct {
		Headers []string
		Rows    [][]string
	}
)

// Empty reports whether the dataset has no usable contents.
func (d Dataset) Empty() bool {
	return len(d.Headers) == 0 || len(d.Rows) == 0
}

// Cell returns the raw cell string at the given column of a row.
// An unresolved column (negative index) or a row too short to carry the
// column yields "" and false.
func Cell(row []string, col int) (string, bool) {
	if col < 0 || col >= len(row) {
		return "", false
	}
	return row[col], true
}

// Number parses a cell as a float64. Empty, absent and non-numeric
// cells all count as zero; sums over numeric columns rely on this.
func Number(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
