package reportwriterservice

import (
	"encoding/csv"
	"os"
	"path/filepath"

	"github.com/RobsonDevCode/vareport/internal/report"
	reportmodels "github.com/RobsonDevCode/vareport/internal/report/models"
)

type ReportWriterService interface {
	WriteCsv(table *reportmodels.Table, path string) error
	WriteReport(table *reportmodels.Table, path string) error
	WriteEmpty(path string) error
}

type ReportWriter struct{}

func NewReportWriter() *ReportWriter {
	return &ReportWriter{}
}

// WriteCsv writes the header and every row, nulls as empty fields.
func (w *ReportWriter) WriteCsv(table *reportmodels.Table, path string) error {
	path = filepath.Clean(path)

	file, err := os.Create(path)
	if err != nil {
		return &report.WriteError{Path: path, Err: err}
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.WriteAll(table.Records()); err != nil {
		return &report.WriteError{Path: path, Err: err}
	}

	if err := file.Close(); err != nil {
		return &report.WriteError{Path: path, Err: err}
	}

	return nil
}

// WriteReport behaves like WriteCsv but leaves an empty file, not a lone
// header, when the table has no rows.
func (w *ReportWriter) WriteReport(table *reportmodels.Table, path string) error {
	if table == nil || table.IsEmpty() {
		return w.WriteEmpty(path)
	}
	return w.WriteCsv(table, path)
}

func (w *ReportWriter) WriteEmpty(path string) error {
	path = filepath.Clean(path)
	if err := os.WriteFile(path, nil, 0644); err != nil {
		return &report.WriteError{Path: path, Err: err}
	}
	return nil
}
