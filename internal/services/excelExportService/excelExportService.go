package excelexportservice

import (
	"fmt"
	"math"
	"path/filepath"
	"strconv"

	reportmodels "github.com/RobsonDevCode/vareport/internal/report/models"
	reportreaderservice "github.com/RobsonDevCode/vareport/internal/services/reportReaderService"
	reportwriterservice "github.com/RobsonDevCode/vareport/internal/services/reportWriterService"
	"github.com/fatih/color"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Sheet1"

type ExcelExportService interface {
	ConvertCsv(source string, target string) error
	ExportTable(table *reportmodels.Table, target string) error
}

type ExcelExporter struct {
	reader reportreaderservice.ReportReaderService
	writer reportwriterservice.ReportWriterService
}

func NewExcelExporter(reader reportreaderservice.ReportReaderService, writer reportwriterservice.ReportWriterService) *ExcelExporter {
	return &ExcelExporter{
		reader: reader,
		writer: writer,
	}
}

// ConvertCsv saves source as a workbook. A source that cannot be read
// leaves an empty target behind.
func (e *ExcelExporter) ConvertCsv(source string, target string) error {
	table, err := e.reader.ReadCsv(source)
	if err != nil {
		if !reportreaderservice.IsLoadFailure(err) {
			return err
		}

		fmt.Print(color.YellowString("\n ERROR! Impossible to process input file: %s (%v)\n", filepath.Clean(source), err))
		return e.writer.WriteEmpty(target)
	}

	return e.ExportTable(table, target)
}

func (e *ExcelExporter) ExportTable(table *reportmodels.Table, target string) error {
	file := excelize.NewFile()
	defer file.Close()

	for i, header := range table.Header {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("error resolving header cell %d, %w", i+1, err)
		}
		file.SetCellValue(sheetName, cell, header)
	}

	for i, row := range table.Rows {
		rowData := make([]interface{}, len(row))
		for j, cell := range row {
			rowData[j] = cellValue(cell)
		}

		// excel is 1 index and skip headers
		if err := file.SetSheetRow(sheetName, fmt.Sprintf("A%d", i+2), &rowData); err != nil {
			return fmt.Errorf("error writing row %d, %w", i+2, err)
		}
	}

	if err := file.SaveAs(target); err != nil {
		return fmt.Errorf("failed to save excel to %s, %w", target, err)
	}

	return nil
}

// cellValue keeps numbers numeric in the workbook and leaves nulls blank.
func cellValue(cell reportmodels.Cell) interface{} {
	if cell.Null {
		return nil
	}

	if i, err := strconv.ParseInt(cell.Value, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(cell.Value, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return f
	}
	return cell.Value
}
