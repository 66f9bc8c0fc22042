package reportreaderservice

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/RobsonDevCode/vareport/internal/report"
	reportmodels "github.com/RobsonDevCode/vareport/internal/report/models"
	"github.com/xuri/excelize/v2"
)

type ReportReaderService interface {
	ReadCsv(path string) (*reportmodels.Table, error)
	ReadSpreadsheet(path string) (*reportmodels.Table, error)
	ReadCsvReport(path string, required []string) (*reportmodels.Table, error)
	ReadReport(path string, required []string) (*reportmodels.Table, error)
}

type ReportReader struct{}

func NewReportReader() *ReportReader {
	return &ReportReader{}
}

// ReadCsv loads a comma separated file whose first record is the header.
// Quotes inside unquoted fields are kept literally and short records are
// padded with nulls; a record longer than the header is a parse error.
// Failures are *report.LoadError wrapping report.ErrEmptyFile or
// report.ErrParse, or the underlying os error.
func (r *ReportReader) ReadCsv(path string) (*reportmodels.Table, error) {
	path = filepath.Clean(path)

	file, err := os.Open(path)
	if err != nil {
		return nil, &report.LoadError{Path: path, Err: err}
	}
	defer file.Close()

	return readCsv(path, file)
}

func readCsv(path string, source io.Reader) (*reportmodels.Table, error) {
	reader := csv.NewReader(source)
	// scanners write locations like [Location<RealPath="/a/b">]" unquoted
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, &report.LoadError{Path: path, Err: fmt.Errorf("%w: %v", report.ErrParse, err)}
	}

	if len(records) == 0 {
		return nil, &report.LoadError{Path: path, Err: report.ErrEmptyFile}
	}

	for i, record := range records[1:] {
		if len(record) > len(records[0]) {
			return nil, &report.LoadError{Path: path, Err: fmt.Errorf("%w: record on line %d has %d fields, header has %d",
				report.ErrParse, i+2, len(record), len(records[0]))}
		}
	}

	return toTable(path, records), nil
}

// ReadSpreadsheet loads the first sheet of an Excel workbook.
func (r *ReportReader) ReadSpreadsheet(path string) (*reportmodels.Table, error) {
	path = filepath.Clean(path)

	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &report.LoadError{Path: path, Err: fmt.Errorf("%w: %v", report.ErrParse, err)}
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, &report.LoadError{Path: path, Err: report.ErrEmptyFile}
	}

	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, &report.LoadError{Path: path, Err: fmt.Errorf("%w: %v", report.ErrParse, err)}
	}

	if len(rows) == 0 {
		return nil, &report.LoadError{Path: path, Err: report.ErrEmptyFile}
	}

	return toTable(path, rows), nil
}

// ReadCsvReport reads path as csv whatever its extension and checks the
// required columns.
func (r *ReportReader) ReadCsvReport(path string, required []string) (*reportmodels.Table, error) {
	table, err := r.ReadCsv(path)
	if err != nil {
		return nil, err
	}

	return requireColumns(table, required)
}

// ReadReport reads path as csv or as a workbook depending on its extension
// and checks the required columns.
func (r *ReportReader) ReadReport(path string, required []string) (*reportmodels.Table, error) {
	var table *reportmodels.Table
	var err error
	if IsCsv(path) {
		table, err = r.ReadCsv(path)
	} else {
		table, err = r.ReadSpreadsheet(path)
	}
	if err != nil {
		return nil, err
	}

	return requireColumns(table, required)
}

func requireColumns(table *reportmodels.Table, required []string) (*reportmodels.Table, error) {
	for _, column := range required {
		if !table.HasColumn(column) {
			return nil, &report.LoadError{Path: table.Source, Err: fmt.Errorf("%w: '%s'", report.ErrMissingColumn, column)}
		}
	}

	return table, nil
}

func IsCsv(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".csv")
}

// IsLoadFailure reports whether err came from a report that is unreadable,
// empty or malformed rather than from a programming error.
func IsLoadFailure(err error) bool {
	var loadErr *report.LoadError
	return errors.As(err, &loadErr)
}

func toTable(path string, records [][]string) *reportmodels.Table {
	header := records[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	table := &reportmodels.Table{
		Source: path,
		Header: header,
		Rows:   make([]reportmodels.Row, 0, len(records)-1),
	}

	for _, record := range records[1:] {
		row := make(reportmodels.Row, len(header))
		for i := range row {
			if i < len(record) {
				row[i] = reportmodels.NewCell(record[i])
			} else {
				row[i] = reportmodels.NullCell()
			}
		}
		table.Rows = append(table.Rows, row)
	}

	return table
}
