package cmd

import (
	"fmt"
	"strings"

	tablewriterservice "github.com/RobsonDevCode/vareport/internal/cmdLineWriters/tablewriter"
	severityconstants "github.com/RobsonDevCode/vareport/internal/constants/severity"
	"github.com/spf13/cobra"
)

var countSeverityCmd = &cobra.Command{
	Use:   "count-severity",
	Short: "count the vulnerabilities with the specified or higher severity",
	Long: `count-severity prints how many vulnerabilities with the specified or higher
severity are present on a csv or Excel VA report.

Accepted severities: ` + strings.Join(severityconstants.Ladder, ", ") + ".",
	Args: usageArgs(cobra.NoArgs),
	RunE: runCountSeverity,
}

const (
	FileFlag     = "file"
	ColumnFlag   = "column"
	SeverityFlag = "severity"
	SummaryFlag  = "summary"
)

func runCountSeverity(cmd *cobra.Command, args []string) error {
	file, _ := cmd.Flags().GetString(FileFlag)
	column, _ := cmd.Flags().GetString(ColumnFlag)
	severity, _ := cmd.Flags().GetString(SeverityFlag)
	summary, _ := cmd.Flags().GetBool(SummaryFlag)

	if column == "" {
		config, err := loadConfig()
		if err != nil {
			return err
		}
		column = config.ReportSettings.SeverityColumn
	}

	result, err := severityCountService.Count(file, column, severity)
	if err != nil {
		return err
	}

	fmt.Printf("%d\n", result.Total)
	if summary {
		tablewriterservice.DisplaySeverityTable(severityconstants.Ladder, result.PerSeverity)
	}

	return nil
}

func init() {
	countSeverityCmd.Flags().StringP(FileFlag, "f", "", "the full path of the VA summary report file")
	countSeverityCmd.Flags().StringP(ColumnFlag, "c", "", "the column name containing the severity info (default from configuration)")
	countSeverityCmd.Flags().StringP(SeverityFlag, "s", "", "the lower value of severity to check")
	countSeverityCmd.Flags().Bool(SummaryFlag, false, "print the number of vulnerabilities per severity")
	countSeverityCmd.MarkFlagRequired(FileFlag)
	countSeverityCmd.MarkFlagRequired(SeverityFlag)

	rootCmd.AddCommand(countSeverityCmd)
}
