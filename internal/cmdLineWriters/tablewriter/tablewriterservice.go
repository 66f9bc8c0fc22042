package tablewriterservice

import (
	"fmt"
	"io"
	"os"

	"github.com/RobsonDevCode/vareport/internal/extensions"
	reportmodels "github.com/RobsonDevCode/vareport/internal/report/models"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
)

// Output is where the console tables are rendered.
var Output io.Writer = os.Stdout

func newConsoleTable() *tablewriter.Table {
	return tablewriter.NewTable(Output,
		tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{
			Settings: tw.Settings{Separators: tw.Separators{BetweenRows: tw.On}},
		})),
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{
					AutoWrap: tw.WrapNormal}, //wrap long content like locations
				Alignment:    tw.CellAlignment{Global: tw.AlignCenter},
				ColMaxWidths: tw.CellWidth{Global: 20},
			},
		}),
	)
}

func DisplayDuplicatesTable(header []string, duplicates []reportmodels.Row) {
	fmt.Fprint(Output, "\n--- DUPLICATES TO REMOVE\n")
	if len(duplicates) == 0 {
		fmt.Fprint(Output, color.GreenString(" No duplicates!\n"))
		return
	}

	table := newConsoleTable()
	table.Header(header)
	for _, duplicate := range duplicates {
		cells := duplicate.Strings()
		for i := range cells {
			cells[i] = extensions.TruncateString(cells[i], 60)
		}
		table.Append(cells)
	}

	table.Render()
	fmt.Fprintf(Output, "\n Removing %d duplicates\n", len(duplicates))
}

func DisplaySkippedFilesTable(skipped []reportmodels.SkippedFile) {
	if len(skipped) == 0 {
		return
	}

	fmt.Fprintf(Output, "%s", color.RedString("\nSkipped Files: \n"))
	table := newConsoleTable()
	table.Header([]string{"File", "Reason"})

	for _, file := range skipped {
		table.Append([]string{
			extensions.TruncateStringStart(file.Path, 60),
			extensions.TruncateString(file.Reason.Error(), 500),
		})
	}

	table.Render()
}

// DisplaySeverityTable prints one row per severity of ladder, most severe
// first.
func DisplaySeverityTable(ladder []string, counts map[string]int) {
	table := newConsoleTable()
	table.Header([]string{"Severity", "Vulnerabilities"})

	for _, severity := range ladder {
		table.Append([]string{severity, fmt.Sprintf("%d", counts[severity])})
	}

	table.Render()
}
