package report

import (
	"strings"

	reportcolumns "github.com/RobsonDevCode/vareport/internal/constants/reportColumns"
	reportmodels "github.com/RobsonDevCode/vareport/internal/report/models"
)

// FlagPolicy decides which "Found on" columns take part in a backfill and
// in which priority.
type FlagPolicy interface {
	Columns(table *reportmodels.Table) []string
}

// ScannerPriorityPolicy is the fixed grype, trivy, XRay order used when
// exactly three scanner reports are merged.
type ScannerPriorityPolicy struct{}

var scannerPriority = []string{
	reportcolumns.FoundOnGrype,
	reportcolumns.FoundOnTrivy,
	reportcolumns.FoundOnXRay,
}

func (ScannerPriorityPolicy) Columns(table *reportmodels.Table) []string {
	var columns []string
	for _, column := range scannerPriority {
		if table.HasColumn(column) {
			columns = append(columns, column)
		}
	}
	return columns
}

// HeaderOrderPolicy takes every "Found on" column in the order the merged
// header lists them.
type HeaderOrderPolicy struct{}

func (HeaderOrderPolicy) Columns(table *reportmodels.Table) []string {
	var columns []string
	for _, column := range table.Header {
		if strings.HasPrefix(column, reportcolumns.FoundOnPrefix) {
			columns = append(columns, column)
		}
	}
	return columns
}
