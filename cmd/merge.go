package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var mergeThreeCmd = &cobra.Command{
	Use:   "merge3 <file to merge 1> <file to merge 2> <file to merge 3> <target file>",
	Short: "merge 3 VA report csv files and fold duplicate findings",
	Long: `merge3 merges the csv reports of grype, trivy and XRay. For every duplicate
finding (same Vulnerability ID, Package Name, Severity and Locations) the
"Found on" values are merged into the first occurrence and the duplicate is
removed.

Every file must load, otherwise nothing is written and the exit code is 2.`,
	Args: usageArgs(cobra.ExactArgs(4)),
	RunE: runMergeThree,
}

var mergeCmd = &cobra.Command{
	Use:   "merge <file to merge 1> <file to merge 2> ... <file to merge N> <target file>",
	Short: "merge at least 2 VA report csv files",
	Long: `merge concatenates at least 2 VA report csv files, removes duplicate findings
and sorts the result by Severity, Package Name and Vulnerability ID.

Files that are empty or cannot be parsed are skipped with a warning. The
target is always written, as an empty file when no row is left.`,
	Args: usageArgs(cobra.MinimumNArgs(3)),
	RunE: runMerge,
}

var keepDuplicatesFlag bool

func runMergeThree(cmd *cobra.Command, args []string) error {
	summary, err := mergeService.MergeThree(args[:3], args[3])
	if err != nil {
		return err
	}

	fmt.Print(color.GreenString("\n Merged %d rows (%d duplicates removed) into %s\n",
		summary.Rows, summary.Duplicates, summary.Target))
	return nil
}

func runMerge(cmd *cobra.Command, args []string) error {
	last := len(args) - 1
	summary, err := mergeService.MergeAll(args[:last], args[last], keepDuplicatesFlag)
	if err != nil {
		return err
	}

	fmt.Print(color.GreenString("\n Merged %d rows (%d duplicates removed, %d files skipped) into %s\n",
		summary.Rows, summary.Duplicates, len(summary.Skipped), summary.Target))
	return nil
}

func init() {
	mergeCmd.Flags().BoolVarP(&keepDuplicatesFlag, "keep-duplicates", "k", false, "Only concatenate, clean and sort, duplicates are kept")

	rootCmd.AddCommand(mergeThreeCmd)
	rootCmd.AddCommand(mergeCmd)
}
