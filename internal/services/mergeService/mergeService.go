package mergeservice

import (
	"errors"
	"fmt"

	tablewriterservice "github.com/RobsonDevCode/vareport/internal/cmdLineWriters/tablewriter"
	reportcolumns "github.com/RobsonDevCode/vareport/internal/constants/reportColumns"
	"github.com/RobsonDevCode/vareport/internal/exitcodes"
	"github.com/RobsonDevCode/vareport/internal/report"
	reportmodels "github.com/RobsonDevCode/vareport/internal/report/models"
	reportreaderservice "github.com/RobsonDevCode/vareport/internal/services/reportReaderService"
	reportwriterservice "github.com/RobsonDevCode/vareport/internal/services/reportWriterService"
	"github.com/fatih/color"
)

type MergeService interface {
	MergeThree(sources []string, target string) (*MergeSummary, error)
	MergeAll(sources []string, target string, keepDuplicates bool) (*MergeSummary, error)
}

type MergeSummary struct {
	Target     string
	Rows       int
	Duplicates int
	Backfilled int
	Skipped    []reportmodels.SkippedFile
}

type Merger struct {
	reader reportreaderservice.ReportReaderService
	writer reportwriterservice.ReportWriterService
}

func NewMerger(reader reportreaderservice.ReportReaderService, writer reportwriterservice.ReportWriterService) *Merger {
	return &Merger{
		reader: reader,
		writer: writer,
	}
}

// MergeThree merges exactly three scanner reports. Any report that cannot
// be loaded aborts the run before the target is touched.
func (m *Merger) MergeThree(sources []string, target string) (*MergeSummary, error) {
	if len(sources) != 3 {
		return nil, exitcodes.Newf(exitcodes.Usage, "expected 3 files to merge, got %d", len(sources))
	}

	tables := make([]*reportmodels.Table, 0, len(sources))
	for _, source := range sources {
		table, err := m.reader.ReadCsvReport(source, reportcolumns.Required)
		if err != nil {
			return nil, exitcodes.New(exitcodes.LoadFailure, fmt.Errorf("ERROR! Impossible to load file to merge: %w", err))
		}
		tables = append(tables, table)
	}

	result := report.Merge(report.Concatenate(tables), report.ScannerPriorityPolicy{})
	tablewriterservice.DisplayDuplicatesTable(result.Table.Header, duplicateRows(result.Duplicates))

	if err := m.writer.WriteReport(result.Table, target); err != nil {
		return nil, err
	}

	return &MergeSummary{
		Target:     target,
		Rows:       result.Table.Len(),
		Duplicates: len(result.Duplicates),
		Backfilled: result.Backfilled,
	}, nil
}

// MergeAll merges two or more reports. Unreadable, empty or malformed
// reports are skipped with a warning and the target is always written.
func (m *Merger) MergeAll(sources []string, target string, keepDuplicates bool) (*MergeSummary, error) {
	if len(sources) < 2 {
		return nil, exitcodes.Newf(exitcodes.Usage, "at least 2 files to merge are required, got %d", len(sources))
	}

	summary := &MergeSummary{Target: target}
	var tables []*reportmodels.Table
	for _, source := range sources {
		table, err := m.reader.ReadCsvReport(source, reportcolumns.Required)
		if err != nil {
			if !reportreaderservice.IsLoadFailure(err) {
				return nil, err
			}

			fmt.Print(color.YellowString("\n %s", describeLoadFailure(source, err)))
			summary.Skipped = append(summary.Skipped, reportmodels.SkippedFile{Path: source, Reason: err})
			continue
		}
		tables = append(tables, table)
	}

	merged := report.Concatenate(tables)
	if keepDuplicates {
		report.NormalizeTable(merged)
	} else {
		result := report.Merge(merged, report.HeaderOrderPolicy{})
		merged = result.Table
		summary.Duplicates = len(result.Duplicates)
		summary.Backfilled = result.Backfilled
	}

	report.SortRows(merged, reportcolumns.SortOrder)
	summary.Rows = merged.Len()

	tablewriterservice.DisplaySkippedFilesTable(summary.Skipped)

	if err := m.writer.WriteReport(merged, target); err != nil {
		return nil, err
	}

	return summary, nil
}

func describeLoadFailure(source string, err error) string {
	switch {
	case errors.Is(err, report.ErrEmptyFile):
		return fmt.Sprintf("Empty csv file: %s", source)
	case errors.Is(err, report.ErrParse):
		return fmt.Sprintf("Error on parsing: %s", source)
	default:
		return fmt.Sprintf("ERROR! Impossible to load input file: %s (%v)", source, err)
	}
}

func duplicateRows(duplicates []report.Duplicate) []reportmodels.Row {
	rows := make([]reportmodels.Row, 0, len(duplicates))
	for _, duplicate := range duplicates {
		rows = append(rows, duplicate.Row)
	}
	return rows
}
