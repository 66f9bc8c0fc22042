package htmlexportservice

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	reportmodels "github.com/RobsonDevCode/vareport/internal/report/models"
	reportreaderservice "github.com/RobsonDevCode/vareport/internal/services/reportReaderService"
	reportwriterservice "github.com/RobsonDevCode/vareport/internal/services/reportWriterService"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
	"golang.org/x/net/html"
)

type HtmlExportService interface {
	ConvertCsv(source string, target string) error
	ConvertText(source string, target string) error
	RenderTable(table *reportmodels.Table, w io.Writer) error
}

type HtmlExporter struct {
	reader reportreaderservice.ReportReaderService
	writer reportwriterservice.ReportWriterService
}

func NewHtmlExporter(reader reportreaderservice.ReportReaderService, writer reportwriterservice.ReportWriterService) *HtmlExporter {
	return &HtmlExporter{
		reader: reader,
		writer: writer,
	}
}

// ConvertCsv renders source as an html table. A source that cannot be read
// leaves an empty target behind.
func (h *HtmlExporter) ConvertCsv(source string, target string) error {
	table, err := h.reader.ReadCsv(source)
	if err != nil {
		if !reportreaderservice.IsLoadFailure(err) {
			return err
		}

		fmt.Print(color.YellowString("\n ERROR! Impossible to process input file: %s (%v)\n", filepath.Clean(source), err))
		return h.writer.WriteEmpty(target)
	}

	file, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("error creating %s, %w", target, err)
	}
	defer file.Close()

	if err := h.RenderTable(table, file); err != nil {
		return err
	}

	return file.Close()
}

func (h *HtmlExporter) RenderTable(table *reportmodels.Table, w io.Writer) error {
	htmlTable := tablewriter.NewTable(w,
		tablewriter.WithRenderer(renderer.NewHTML(renderer.HTMLConfig{
			EscapeContent: true,
			TableClass:    "dataframe",
		})),
		tablewriter.WithHeaderAutoFormat(tw.Off),
	)

	htmlTable.Header(table.Header)
	for _, row := range table.Rows {
		if err := htmlTable.Append(row.Strings()); err != nil {
			return fmt.Errorf("error adding row to html table, %w", err)
		}
	}

	if err := htmlTable.Render(); err != nil {
		return fmt.Errorf("error rendering html table, %w", err)
	}

	return nil
}

// ConvertText wraps every line of source, line break included, in a
// <pre> element.
func (h *HtmlExporter) ConvertText(source string, target string) error {
	in, err := os.Open(filepath.Clean(source))
	if err != nil {
		return fmt.Errorf("error reading %s, %w", source, err)
	}
	defer in.Close()

	out, err := os.Create(filepath.Clean(target))
	if err != nil {
		return fmt.Errorf("error creating %s, %w", target, err)
	}
	defer out.Close()

	reader := bufio.NewReader(in)
	writer := bufio.NewWriter(out)
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			if _, writeErr := writer.WriteString("<pre>" + html.EscapeString(line) + "</pre>"); writeErr != nil {
				return fmt.Errorf("error writing %s, %w", target, writeErr)
			}
		}

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("error reading %s, %w", source, err)
		}
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("error writing %s, %w", target, err)
	}

	return out.Close()
}
