package ingest

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestParseCSV(t *testing.T) {
	src := "OU,Center,January_Actual\nA,C1,100\nB,C2\n"

	headers, rows, err := ParseCSV(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}
	if want := []string{"OU", "Center", "January_Actual"}; !reflect.DeepEqual(headers, want) {
		t.Errorf("headers = %v, want %v", headers, want)
	}
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}
	if want := []string{"B", "C2"}; !reflect.DeepEqual(rows[1], want) {
		t.Errorf("short row = %v, want %v", rows[1], want)
	}
}

func TestParseCSVEmpty(t *testing.T) {
	if _, _, err := ParseCSV(strings.NewReader("")); !errors.Is(err, ErrEmptySource) {
		t.Errorf("err = %v, want ErrEmptySource", err)
	}
}

func TestParseWorkbook(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	cells := [][]interface{}{
		{"OU", "Center", "January_Actual"},
		{"A", "C1", 100},
		{"B", "C2", 2.5},
	}
	for i, row := range cells {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("SetSheetRow: %v", err)
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("Write: %v", err)
	}

	headers, rows, err := ParseWorkbook(&buf)
	if err != nil {
		t.Fatalf("ParseWorkbook: %v", err)
	}
	if want := []string{"OU", "Center", "January_Actual"}; !reflect.DeepEqual(headers, want) {
		t.Errorf("headers = %v, want %v", headers, want)
	}
	if len(rows) != 2 || rows[0][2] != "100" {
		t.Errorf("rows = %v", rows)
	}
}

func TestParseWorkbookRejectsGarbage(t *testing.T) {
	if _, _, err := ParseWorkbook(strings.NewReader("definitely not a zip")); err == nil {
		t.Error("expected error for malformed workbook")
	}
}

func TestParseFileDispatch(t *testing.T) {
	t.Run("csv by extension", func(t *testing.T) {
		headers, _, err := ParseFile("budget.CSV", strings.NewReader("OU\nA\n"))
		if err != nil {
			t.Fatalf("ParseFile: %v", err)
		}
		if len(headers) != 1 || headers[0] != "OU" {
			t.Errorf("headers = %v", headers)
		}
	})

	t.Run("unknown extension", func(t *testing.T) {
		if _, _, err := ParseFile("budget.pdf", strings.NewReader("")); err == nil {
			t.Error("expected error for unsupported file type")
		}
	})
}
