package report

import (
	"strings"
	"unicode/utf8"

	reportcolumns "github.com/RobsonDevCode/vareport/internal/constants/reportColumns"
	reportmodels "github.com/RobsonDevCode/vareport/internal/report/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// StripRule removes the markup a scanner wraps around a location. A rule
// only cuts a value that carries both its Header and, after it, its
// Footer; any other value is returned unchanged.
type StripRule struct {
	Header string
	Footer string
	// Unquote drops the quote left in front of the path once Header is cut.
	Unquote bool
}

func (r StripRule) Apply(location string) string {
	start := strings.Index(location, r.Header)
	if start < 0 {
		return location
	}

	path := location[start+len(r.Header):]
	end := strings.Index(path, r.Footer)
	if end < 0 {
		return location
	}

	path = path[:end]
	if r.Unquote {
		path = strings.TrimPrefix(path, `"`)
	}
	return path
}

// LocationRules are applied in order. The first handles the plain grype
// form `[Location<RealPath="/a/b">]"`, the second the layered form
// `[Location<RealPath="/a/b" Layer="sha256:...">]`.
var LocationRules = []StripRule{
	{Header: `[Location<RealPath=`, Footer: `">]"`, Unquote: true},
	{Header: `[Location<RealPath="`, Footer: `" Layer="`},
}

func CleanLocation(location string) string {
	for _, rule := range LocationRules {
		location = rule.Apply(location)
	}
	return location
}

// CapitalizeSeverity upper cases the first letter and lower cases the rest.
func CapitalizeSeverity(severity string) string {
	if severity == "" {
		return severity
	}

	_, size := utf8.DecodeRuneInString(severity)
	return cases.Upper(language.Und).String(severity[:size]) + cases.Lower(language.Und).String(severity[size:])
}

// Normalize rewrites the severity and location cells of row in place.
func Normalize(table *reportmodels.Table, row reportmodels.Row) {
	severity := table.Get(row, reportcolumns.Severity)
	if !severity.Null {
		table.Set(row, reportcolumns.Severity, reportmodels.NewCell(CapitalizeSeverity(severity.Value)))
	}

	location := table.Get(row, reportcolumns.Locations)
	if !location.Null {
		table.Set(row, reportcolumns.Locations, reportmodels.NewCell(CleanLocation(location.Value)))
	}
}

func NormalizeTable(table *reportmodels.Table) {
	for _, row := range table.Rows {
		Normalize(table, row)
	}
}
