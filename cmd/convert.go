package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var csvToExcelCmd = &cobra.Command{
	Use:   "csv-to-excel <csv file name> <Excel file name>",
	Short: "read a csv file and save it in Excel format",
	Long: `csv-to-excel saves a csv file as an Excel workbook.

When the csv file is empty or cannot be parsed an empty target file is created.`,
	Args: usageArgs(cobra.ExactArgs(2)),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := excelExportService.ConvertCsv(args[0], args[1]); err != nil {
			return err
		}

		fmt.Print(color.GreenString("\n Your file has been saved to: %s\n", args[1]))
		return nil
	},
}

var csvToHtmlCmd = &cobra.Command{
	Use:   "csv-to-html <csv file name> <html file name>",
	Short: "save a csv file in HTML format",
	Long: `csv-to-html renders a csv file as an HTML table.

When the csv file is empty or cannot be parsed an empty target file is created.`,
	Args: usageArgs(cobra.ExactArgs(2)),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := htmlExportService.ConvertCsv(args[0], args[1]); err != nil {
			return err
		}

		fmt.Print(color.GreenString("\n Your file has been saved to: %s\n", args[1]))
		return nil
	},
}

var textToHtmlCmd = &cobra.Command{
	Use:   "text-to-html <text file name> <html file name>",
	Short: "convert a text file to HTML",
	Args:  usageArgs(cobra.ExactArgs(2)),
	RunE: func(cmd *cobra.Command, args []string) error {
		return htmlExportService.ConvertText(args[0], args[1])
	},
}

func init() {
	rootCmd.AddCommand(csvToExcelCmd)
	rootCmd.AddCommand(csvToHtmlCmd)
	rootCmd.AddCommand(textToHtmlCmd)
}
