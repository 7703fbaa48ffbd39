package core

import "strings"

// Unresolved marks a column role with no matching header.
const Unresolved = -1

// Well-known header names. Matching is exact and case-sensitive;
// header strings are never trimmed or case-folded.
const (
	HeaderOU         = "OU"
	HeaderCenter     = "Center"
	HeaderSubAccount = "Sub-Account"
	HeaderAccount    = "Account"
)

// MonthNames lists the twelve calendar months in order. Monthly series
// output always follows this order, whatever columns the sheet carries.
var MonthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

type (
	// MonthColumns holds the resolved indices of one month's
	// {Month}_Budget, {Month}_Actual and {Month}_Variance columns.
	MonthColumns struct {
		Budget   int
		Actual   int
		Variance int
	}

	// Columns is the lookup table from semantic column roles to header
	// positions, built once per dataset load. Roles that the header row
	// does not carry stay Unresolved.
	Columns struct {
		OU         int
		Center     int
		SubAccount int
		Account    int

		// Actuals collects every column whose header contains the
		// substring "Actual". Sheets may carry one such column per
		// month; a row's total actual value sums all of them.
		Actuals []int

		// Months aligns with MonthNames.
		Months [12]MonthColumns
	}
)

// ResolveColumns builds the role lookup table for a header row.
func ResolveColumns(headers []string) Columns {
	c := Columns{
		OU:         indexOf(headers, HeaderOU),
		Center:     indexOf(headers, HeaderCenter),
		SubAccount: indexOf(headers, HeaderSubAccount),
		Account:    indexOf(headers, HeaderAccount),
	}
	for i, h := range headers {
		if strings.Contains(h, "Actual") {
			c.Actuals = append(c.Actuals, i)
		}
	}
	for m, name := range MonthNames {
		c.Months[m] = MonthColumns{
			Budget:   indexOf(headers, name+"_Budget"),
			Actual:   indexOf(headers, name+"_Actual"),
			Variance: indexOf(headers, name+"_Variance"),
		}
	}
	return c
}

// HasGrouping reports whether the columns needed for the OU/Center
// drill-down (OU, Center, Sub-Account) are all present.
func (c Columns) HasGrouping() bool {
	return c.OU != Unresolved && c.Center != Unresolved && c.SubAccount != Unresolved
}

// HasCategories reports whether the columns needed for category totals
// (OU, Center, Account) are all present.
func (c Columns) HasCategories() bool {
	return c.OU != Unresolved && c.Center != Unresolved && c.Account != Unresolved
}

func indexOf(headers []string, name string) int {
	for i, h := range headers {
		if h == name {
			return i
		}
	}
	return Unresolved
}
