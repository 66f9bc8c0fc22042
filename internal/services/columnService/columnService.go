package columnservice

import (
	"fmt"

	reportmodels "github.com/RobsonDevCode/vareport/internal/report/models"
	reportreaderservice "github.com/RobsonDevCode/vareport/internal/services/reportReaderService"
	reportwriterservice "github.com/RobsonDevCode/vareport/internal/services/reportWriterService"
	"github.com/fatih/color"
)

type ColumnService interface {
	AddColumn(path string, name string, value string) (bool, error)
}

type ColumnWriter struct {
	reader reportreaderservice.ReportReaderService
	writer reportwriterservice.ReportWriterService
}

func NewColumnWriter(reader reportreaderservice.ReportReaderService, writer reportwriterservice.ReportWriterService) *ColumnWriter {
	return &ColumnWriter{
		reader: reader,
		writer: writer,
	}
}

// AddColumn sets column name to value on every row of the csv file at path
// and rewrites it in place. It returns false, leaving the file untouched,
// when the file is empty or not valid csv.
func (c *ColumnWriter) AddColumn(path string, name string, value string) (bool, error) {
	table, err := c.reader.ReadCsv(path)
	if err != nil {
		if !reportreaderservice.IsLoadFailure(err) {
			return false, err
		}

		fmt.Print(color.YellowString("\n %v\n", err))
		return false, nil
	}

	table.AddColumn(name, reportmodels.NewCell(value))

	if err := c.writer.WriteCsv(table, path); err != nil {
		return false, err
	}

	return true, nil
}
