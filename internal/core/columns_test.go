package core

import (
	"reflect"
	"testing"
)

func TestResolveColumns(t *testing.T) {
	headers := []string{"OU", "Code", "Sub-Account", "Account", "Center", "January_Budget", "January_Actual", "January_Variance", "February_Actual"}
	cols := ResolveColumns(headers)

	if cols.OU != 0 {
		t.Errorf("OU index = %d, want 0", cols.OU)
	}
	if cols.Center != 4 {
		t.Errorf("Center index = %d, want 4", cols.Center)
	}
	if cols.SubAccount != 2 {
		t.Errorf("Sub-Account index = %d, want 2", cols.SubAccount)
	}
	if cols.Account != 3 {
		t.Errorf("Account index = %d, want 3", cols.Account)
	}

	t.Run("actuals collects every header containing Actual", func(t *testing.T) {
		want := []int{6, 8}
		if !reflect.DeepEqual(cols.Actuals, want) {
			t.Errorf("Actuals = %v, want %v", cols.Actuals, want)
		}
	})

	t.Run("january fully resolved", func(t *testing.T) {
		jan := cols.Months[0]
		if jan.Budget != 5 || jan.Actual != 6 || jan.Variance != 7 {
			t.Errorf("January = %+v, want {5 6 7}", jan)
		}
	})

	t.Run("absent month stays unresolved", func(t *testing.T) {
		mar := cols.Months[2]
		if mar.Budget != Unresolved || mar.Actual != Unresolved || mar.Variance != Unresolved {
			t.Errorf("March = %+v, want all unresolved", mar)
		}
	})
}

func TestResolveColumnsExactMatch(t *testing.T) {
	// Header matching is exact and case-sensitive; no trimming.
	cols := ResolveColumns([]string{" OU", "center", "SUB-ACCOUNT"})
	if cols.OU != Unresolved {
		t.Errorf("OU resolved against padded header, want unresolved")
	}
	if cols.Center != Unresolved {
		t.Errorf("Center resolved against lowercase header, want unresolved")
	}
	if cols.SubAccount != Unresolved {
		t.Errorf("Sub-Account resolved against uppercase header, want unresolved")
	}
}

func TestCell(t *testing.T) {
	row := []string{"a", "b"}

	if v, ok := Cell(row, 1); !ok || v != "b" {
		t.Errorf("Cell(row, 1) = %q, %v", v, ok)
	}
	if _, ok := Cell(row, Unresolved); ok {
		t.Error("Cell with unresolved column should report absent")
	}
	if _, ok := Cell(row, 5); ok {
		t.Error("Cell past the end of a short row should report absent")
	}
}

func TestNumber(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"12.5", 12.5},
		{" 7 ", 7},
		{"-3.25", -3.25},
		{"", 0},
		{"n/a", 0},
		{"12,5", 0},
	}
	for _, tc := range cases {
		if got := Number(tc.in); got != tc.want {
			t.Errorf("Number(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
