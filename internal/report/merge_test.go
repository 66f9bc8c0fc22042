package report

import (
	"testing"

	reportmodels "github.com/RobsonDevCode/vareport/internal/report/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var threeScannerHeader = []string{
	"Vulnerability ID", "Package Name", "Severity", "Locations",
	"Found on grype", "Found on trivy", "Found on XRay",
}

func newRow(values ...string) reportmodels.Row {
	row := make(reportmodels.Row, len(values))
	for i, value := range values {
		row[i] = reportmodels.NewCell(value)
	}
	return row
}

func newTable(header []string, rows ...reportmodels.Row) *reportmodels.Table {
	return &reportmodels.Table{Header: header, Rows: rows}
}

func TestMergeScenarioBackfillsFoundOn(t *testing.T) {
	table := newTable([]string{"Vulnerability ID", "Package Name", "Severity", "Locations", "Found on grype"},
		newRow("CVE-1", "pkgA", "HIGH", `[Location<RealPath="/a/b">]"`, ""),
		newRow("CVE-1", "pkgA", "high", "/a/b", "yes"),
	)

	result := Merge(table, ScannerPriorityPolicy{})

	require.Equal(t, 1, result.Table.Len())
	assert.Equal(t, []string{"CVE-1", "pkgA", "High", "/a/b", "yes"}, result.Table.Rows[0].Strings())
	assert.Len(t, result.Duplicates, 1)
	assert.Equal(t, 1, result.Backfilled)
}

func TestMergeKeepsDistinctFindings(t *testing.T) {
	table := newTable(threeScannerHeader,
		newRow("CVE-1", "pkgA", "High", "/a", "X", "", ""),
		newRow("CVE-1", "pkgA", "High", "/b", "X", "", ""),
		newRow("CVE-1", "pkgB", "High", "/a", "X", "", ""),
		newRow("CVE-2", "pkgA", "High", "/a", "X", "", ""),
		newRow("CVE-1", "pkgA", "Low", "/a", "X", "", ""),
	)

	result := Merge(table, ScannerPriorityPolicy{})

	assert.Equal(t, 5, result.Table.Len())
	assert.Empty(t, result.Duplicates)
}

func TestMergeBackfillsOnlyOneColumnPerDuplicate(t *testing.T) {
	table := newTable(threeScannerHeader,
		newRow("CVE-1", "pkgA", "High", "/a", "", "", ""),
		newRow("CVE-1", "pkgA", "High", "/a", "grype", "trivy", "xray"),
	)

	result := Merge(table, ScannerPriorityPolicy{})

	require.Equal(t, 1, result.Table.Len())
	row := result.Table.Rows[0]
	assert.Equal(t, "grype", result.Table.Get(row, "Found on grype").String())
	assert.True(t, result.Table.Get(row, "Found on trivy").Null)
	assert.True(t, result.Table.Get(row, "Found on XRay").Null)
}

func TestMergeCollapsesThreeScannerReports(t *testing.T) {
	grype := newTable(threeScannerHeader, newRow("CVE-1", "pkgA", "HIGH", `[Location<RealPath="/a">]"`, "True", "", ""))
	trivy := newTable(threeScannerHeader, newRow("CVE-1", "pkgA", "High", "/a", "", "True", ""))
	xray := newTable(threeScannerHeader, newRow("CVE-1", "pkgA", "high", "/a", "", "", "True"))

	result := Merge(Concatenate([]*reportmodels.Table{grype, trivy, xray}), ScannerPriorityPolicy{})

	require.Equal(t, 1, result.Table.Len())
	assert.Equal(t, []string{"CVE-1", "pkgA", "High", "/a", "True", "True", "True"}, result.Table.Rows[0].Strings())
	assert.Len(t, result.Duplicates, 2)
}

func TestBackfillColumn(t *testing.T) {
	table := newTable(threeScannerHeader)
	columns := ScannerPriorityPolicy{}.Columns(table)

	tests := []struct {
		name      string
		canonical reportmodels.Row
		duplicate reportmodels.Row
		column    string
		found     bool
	}{
		{
			name:      "first missing column wins",
			canonical: newRow("CVE-1", "p", "High", "/a", "", "", ""),
			duplicate: newRow("CVE-1", "p", "High", "/a", "", "yes", "yes"),
			column:    "Found on trivy",
			found:     true,
		},
		{
			name:      "false counts as missing",
			canonical: newRow("CVE-1", "p", "High", "/a", "False", "yes", ""),
			duplicate: newRow("CVE-1", "p", "High", "/a", "True", "", ""),
			column:    "Found on grype",
			found:     true,
		},
		{
			name:      "canonical already carries everything",
			canonical: newRow("CVE-1", "p", "High", "/a", "yes", "yes", "yes"),
			duplicate: newRow("CVE-1", "p", "High", "/a", "yes", "yes", "yes"),
			found:     false,
		},
		{
			name:      "duplicate has nothing to give",
			canonical: newRow("CVE-1", "p", "High", "/a", "", "", ""),
			duplicate: newRow("CVE-1", "p", "High", "/a", "0", "", "false"),
			found:     false,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			column, found := BackfillColumn(table, columns, test.canonical, test.duplicate)
			assert.Equal(t, test.found, found)
			assert.Equal(t, test.column, column)
		})
	}
}

func TestPolicies(t *testing.T) {
	table := newTable([]string{"Vulnerability ID", "Found on XRay", "Found on snyk", "Found on grype", "Locations"})

	assert.Equal(t, []string{"Found on grype", "Found on XRay"}, ScannerPriorityPolicy{}.Columns(table))
	assert.Equal(t, []string{"Found on XRay", "Found on snyk", "Found on grype"}, HeaderOrderPolicy{}.Columns(table))
}

func TestConcatenateUnionsHeaders(t *testing.T) {
	first := newTable([]string{"Vulnerability ID", "Found on grype"}, newRow("CVE-1", "yes"))
	second := newTable([]string{"Found on trivy", "Vulnerability ID"}, newRow("yes", "CVE-2"), newRow("", "CVE-3"))

	merged := Concatenate([]*reportmodels.Table{first, second})

	assert.Equal(t, []string{"Vulnerability ID", "Found on grype", "Found on trivy"}, merged.Header)
	require.Equal(t, 3, merged.Len())
	assert.Equal(t, []string{"CVE-1", "yes", ""}, merged.Rows[0].Strings())
	assert.True(t, merged.Rows[0][2].Null)
	assert.Equal(t, []string{"CVE-2", "", "yes"}, merged.Rows[1].Strings())
	assert.Equal(t, []string{"CVE-3", "", ""}, merged.Rows[2].Strings())
}

func TestDetectDuplicatesKeepsFirstOccurrence(t *testing.T) {
	table := newTable(threeScannerHeader,
		newRow("CVE-1", "pkgA", "High", "/a", "first", "", ""),
		newRow("CVE-2", "pkgA", "High", "/a", "", "", ""),
		newRow("CVE-1", "pkgA", "High", "/a", "second", "", ""),
	)

	deduplicated, duplicates := DetectDuplicates(table)

	require.Equal(t, 2, deduplicated.Len())
	assert.Equal(t, "first", deduplicated.Rows[0][4].String())
	require.Len(t, duplicates, 1)
	assert.Equal(t, 0, duplicates[0].Canonical)
	assert.Equal(t, "second", duplicates[0].Row[4].String())
}

func TestSortRows(t *testing.T) {
	table := newTable([]string{"Vulnerability ID", "Package Name", "Severity"},
		newRow("CVE-3", "zlib", "Low"),
		newRow("CVE-2", "openssl", "High"),
		newRow("CVE-1", "openssl", "High"),
		newRow("CVE-4", "curl", "Critical"),
	)

	SortRows(table, []string{"Severity", "Package Name", "Vulnerability ID"})

	var ids []string
	for _, row := range table.Rows {
		ids = append(ids, row[0].String())
	}
	assert.Equal(t, []string{"CVE-4", "CVE-1", "CVE-2", "CVE-3"}, ids)
}

func TestIsFalsy(t *testing.T) {
	for _, value := range []string{"", "false", "False", "FALSE", "0", "0.0", "NaN", " "} {
		assert.True(t, IsFalsy(reportmodels.Cell{Value: value}), value)
	}
	assert.True(t, IsFalsy(reportmodels.NullCell()))

	for _, value := range []string{"True", "yes", "1", "fixed in 1.2.3"} {
		assert.False(t, IsFalsy(reportmodels.NewCell(value)), value)
	}
}
