package core

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// RevenueSentinel is the Sub-Account value that classifies a row as
// revenue; every other value classifies it as expense.
const RevenueSentinel = "Null"

// Account-name prefixes for the expense category split.
const (
	adminPrefix   = "Administrative"
	sellingPrefix = "Selling"
)

var (
	ErrNoSelection    = errors.New("no organizational unit or center selected")
	ErrEmptyDataset   = errors.New("dataset is empty")
	ErrColumnsMissing = errors.New("required columns not present in headers")
)

type (
	// CenterSummary is the per-center revenue/expense split within one
	// OU. Amounts are fixed-two-decimal strings, ready for display.
	CenterSummary struct {
		Center   string `json:"center"`
		Revenue  string `json:"revenue"`
		Expenses string `json:"expenses"`
	}

	// MonthPoint is one month of the budget/actual/variance series for
	// a center.
	MonthPoint struct {
		Month    string  `json:"name"`
		Budget   float64 `json:"budget"`
		Actual   float64 `json:"actual"`
		Variance float64 `json:"variance"`
	}

	// CategoryTotals splits one OU+Center's actuals by account prefix.
	// Rows matching neither prefix contribute to neither total.
	CategoryTotals struct {
		Administrative float64 `json:"administrativeExpenseTotal"`
		Selling        float64 `json:"sellingExpenseTotal"`
	}
)

// UniqueOUs returns the distinct OU values in first-appearance order.
// It returns nil when the OU column is unresolved.
func UniqueOUs(d Dataset, cols Columns) []string {
	if cols.OU == Unresolved {
		return nil
	}
	var out []string
	seen := make(map[string]struct{})
	for _, row := range d.Rows {
		ou, ok := Cell(row, cols.OU)
		if !ok {
			continue
		}
		if _, dup := seen[ou]; dup {
			continue
		}
		seen[ou] = struct{}{}
		out = append(out, ou)
	}
	return out
}

// SummarizeCenters computes the revenue/expense split per center for
// every row whose OU cell equals ou. A row is revenue when its
// Sub-Account cell equals the revenue sentinel, expense otherwise; its
// contribution is the sum of all "Actual" columns. Centers appear in
// first-appearance order. Returns nil when the grouping columns are
// unresolved.
func SummarizeCenters(d Dataset, cols Columns, ou string) []CenterSummary {
	if !cols.HasGrouping() {
		return nil
	}

	type split struct {
		revenue  float64
		expenses float64
	}
	totals := make(map[string]*split)
	var order []string

	for _, row := range d.Rows {
		if v, _ := Cell(row, cols.OU); v != ou {
			continue
		}
		center, _ := Cell(row, cols.Center)
		sub, _ := Cell(row, cols.SubAccount)

		s, ok := totals[center]
		if !ok {
			s = &split{}
			totals[center] = s
			order = append(order, center)
		}
		amount := rowTotalActual(row, cols.Actuals)
		if sub == RevenueSentinel {
			s.revenue += amount
		} else {
			s.expenses += amount
		}
	}

	out := make([]CenterSummary, 0, len(order))
	for _, center := range order {
		s := totals[center]
		out = append(out, CenterSummary{
			Center:   center,
			Revenue:  fixed2(s.revenue),
			Expenses: fixed2(s.expenses),
		})
	}
	return out
}

// MonthlySeries sums {Month}_Budget, {Month}_Actual and
// {Month}_Variance over every row whose Center cell equals center,
// yielding exactly twelve points in calendar order. A month whose
// columns the sheet does not carry contributes zeros, never an error.
// The center is matched through the name-resolved Center column.
func MonthlySeries(d Dataset, cols Columns, center string) []MonthPoint {
	points := make([]MonthPoint, 12)
	for m := range points {
		points[m].Month = MonthNames[m]
	}

	for _, row := range d.Rows {
		if v, _ := Cell(row, cols.Center); v != center {
			continue
		}
		for m, mc := range cols.Months {
			if cell, ok := Cell(row, mc.Budget); ok {
				points[m].Budget += Number(cell)
			}
			if cell, ok := Cell(row, mc.Actual); ok {
				points[m].Actual += Number(cell)
			}
			if cell, ok := Cell(row, mc.Variance); ok {
				points[m].Variance += Number(cell)
			}
		}
	}
	return points
}

// SummarizeCategories totals the actuals of one OU+Center pair by
// account category. OU and Center cells are compared after whitespace
// trimming; the filter values are assumed already trimmed. Account
// names starting with "Administrative" count toward the administrative
// total, "Selling" toward the selling total, anything else toward
// neither. The sentinel errors report missing inputs so callers can
// render an empty state instead of failing.
func SummarizeCategories(d Dataset, cols Columns, ou, center string) (CategoryTotals, error) {
	var totals CategoryTotals
	if ou == "" || center == "" {
		return totals, ErrNoSelection
	}
	if d.Empty() {
		return totals, ErrEmptyDataset
	}
	if !cols.HasCategories() {
		return totals, ErrColumnsMissing
	}

	for _, row := range d.Rows {
		ouCell, _ := Cell(row, cols.OU)
		centerCell, _ := Cell(row, cols.Center)
		if strings.TrimSpace(ouCell) != ou || strings.TrimSpace(centerCell) != center {
			continue
		}
		account, _ := Cell(row, cols.Account)
		account = strings.TrimSpace(account)

		amount := rowTotalActual(row, cols.Actuals)
		switch {
		case strings.HasPrefix(account, adminPrefix):
			totals.Administrative += amount
		case strings.HasPrefix(account, sellingPrefix):
			totals.Selling += amount
		}
	}
	return totals, nil
}

// rowTotalActual sums every "Actual" column of a row. Absent and
// non-numeric cells contribute zero.
func rowTotalActual(row []string, actuals []int) float64 {
	var total float64
	for _, col := range actuals {
		cell, _ := Cell(row, col)
		total += Number(cell)
	}
	return total
}

// fixed2 renders a float with exactly two decimal places.
func fixed2(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}
