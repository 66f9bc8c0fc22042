package report

import (
	"cmp"
	"slices"
	"strings"

	reportcolumns "github.com/RobsonDevCode/vareport/internal/constants/reportColumns"
	reportmodels "github.com/RobsonDevCode/vareport/internal/report/models"
)

// Duplicate is a row dropped by DetectDuplicates together with the index of
// the first occurrence it collapses into.
type Duplicate struct {
	Row       reportmodels.Row
	Canonical int
}

type MergeResult struct {
	Table      *reportmodels.Table
	Duplicates []Duplicate
	// Backfilled counts the flag values copied from a duplicate.
	Backfilled int
}

// Concatenate appends the tables in order. The header is the union of the
// input headers in order of first appearance; cells of columns a table does
// not carry are null.
func Concatenate(tables []*reportmodels.Table) *reportmodels.Table {
	merged := &reportmodels.Table{}
	for _, table := range tables {
		for _, column := range table.Header {
			if !merged.HasColumn(column) {
				merged.Header = append(merged.Header, column)
			}
		}
	}

	for _, table := range tables {
		positions := make([]int, len(merged.Header))
		for i, column := range merged.Header {
			positions[i] = table.ColumnIndex(column)
		}

		for _, row := range table.Rows {
			mergedRow := make(reportmodels.Row, len(merged.Header))
			for i, position := range positions {
				if position < 0 || position >= len(row) {
					mergedRow[i] = reportmodels.NullCell()
					continue
				}
				mergedRow[i] = row[position]
			}
			merged.Rows = append(merged.Rows, mergedRow)
		}
	}

	return merged
}

func duplicateKey(table *reportmodels.Table, row reportmodels.Row) string {
	parts := make([]string, len(reportcolumns.DuplicateKey))
	for i, column := range reportcolumns.DuplicateKey {
		cell := table.Get(row, column)
		if cell.Null {
			// keeps a null apart from a literal value
			parts[i] = "\x00"
			continue
		}
		parts[i] = cell.Value
	}
	return strings.Join(parts, "\x1f")
}

// DetectDuplicates splits table into its first occurrences and the rows
// repeating an earlier key. The returned table shares rows with the input.
func DetectDuplicates(table *reportmodels.Table) (*reportmodels.Table, []Duplicate) {
	deduplicated := &reportmodels.Table{
		Source: table.Source,
		Header: table.Header,
	}
	seen := make(map[string]int)
	var duplicates []Duplicate

	for _, row := range table.Rows {
		key := duplicateKey(table, row)
		if canonical, ok := seen[key]; ok {
			duplicates = append(duplicates, Duplicate{Row: row, Canonical: canonical})
			continue
		}

		seen[key] = len(deduplicated.Rows)
		deduplicated.Rows = append(deduplicated.Rows, row)
	}

	return deduplicated, duplicates
}

// IsFalsy reports whether a flag cell carries no usable value.
func IsFalsy(cell reportmodels.Cell) bool {
	if cell.Null {
		return true
	}

	switch strings.ToLower(strings.TrimSpace(cell.Value)) {
	case "", "false", "0", "0.0", "nan":
		return true
	}
	return false
}

// BackfillColumn picks the flag column whose value moves from duplicate to
// canonical: the first column, in priority order, that canonical lacks and
// duplicate carries. At most one column is ever chosen.
func BackfillColumn(table *reportmodels.Table, columns []string, canonical, duplicate reportmodels.Row) (string, bool) {
	for _, column := range columns {
		if IsFalsy(table.Get(canonical, column)) && !IsFalsy(table.Get(duplicate, column)) {
			return column, true
		}
	}
	return "", false
}

// MergeFlags folds every duplicate into its canonical row of deduplicated.
func MergeFlags(deduplicated *reportmodels.Table, duplicates []Duplicate, policy FlagPolicy) int {
	columns := policy.Columns(deduplicated)
	backfilled := 0

	for _, duplicate := range duplicates {
		canonical := deduplicated.Rows[duplicate.Canonical]
		column, ok := BackfillColumn(deduplicated, columns, canonical, duplicate.Row)
		if !ok {
			continue
		}

		deduplicated.Set(canonical, column, deduplicated.Get(duplicate.Row, column))
		backfilled++
	}

	return backfilled
}

// Merge normalizes table, removes its duplicates and backfills the flag
// columns of the surviving rows according to policy.
func Merge(table *reportmodels.Table, policy FlagPolicy) MergeResult {
	NormalizeTable(table)
	deduplicated, duplicates := DetectDuplicates(table)
	backfilled := MergeFlags(deduplicated, duplicates, policy)

	return MergeResult{
		Table:      deduplicated,
		Duplicates: duplicates,
		Backfilled: backfilled,
	}
}

// SortRows orders rows by the given columns, comparing values as strings.
// Equal rows keep their relative order.
func SortRows(table *reportmodels.Table, columns []string) {
	positions := make([]int, 0, len(columns))
	for _, column := range columns {
		if i := table.ColumnIndex(column); i >= 0 {
			positions = append(positions, i)
		}
	}

	slices.SortStableFunc(table.Rows, func(a, b reportmodels.Row) int {
		for _, i := range positions {
			if c := cmp.Compare(a[i].String(), b[i].String()); c != 0 {
				return c
			}
		}
		return 0
	})
}
