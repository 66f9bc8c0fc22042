package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var addColumnCmd = &cobra.Command{
	Use:   "add-column <file name> <column name> <column value>",
	Short: "add, on a csv file, a column with a predefined value",
	Long: `add-column sets the column to the same value on every row of the csv file and
rewrites the file in place. An existing column with that name is overwritten.`,
	Args: usageArgs(cobra.ExactArgs(3)),
	RunE: func(cmd *cobra.Command, args []string) error {
		updated, err := columnService.AddColumn(args[0], args[1], args[2])
		if err != nil {
			return err
		}

		if updated {
			fmt.Print(color.GreenString("\n Column '%s' added to %s\n", args[1], args[0]))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addColumnCmd)
}
