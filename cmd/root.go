package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/RobsonDevCode/vareport/internal/clients"
	"github.com/RobsonDevCode/vareport/internal/configuration"
	"github.com/RobsonDevCode/vareport/internal/exitcodes"
	columnservice "github.com/RobsonDevCode/vareport/internal/services/columnService"
	excelexportservice "github.com/RobsonDevCode/vareport/internal/services/excelExportService"
	htmlexportservice "github.com/RobsonDevCode/vareport/internal/services/htmlExportService"
	mergeservice "github.com/RobsonDevCode/vareport/internal/services/mergeService"
	severitycountservice "github.com/RobsonDevCode/vareport/internal/services/severityCountService"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// ScasClientFactory builds the SCAS client once the configuration and the
// certificate flag of the running command are known.
type ScasClientFactory func(config *configuration.Config, checkCertificate bool) (clients.ScasClientService, error)

var (
	mergeService         mergeservice.MergeService
	excelExportService   excelexportservice.ExcelExportService
	htmlExportService    htmlexportservice.HtmlExportService
	columnService        columnservice.ColumnService
	severityCountService severitycountservice.SeverityCountService
	scasClientFactory    ScasClientFactory

	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "vareport",
	Short: "vulnerability assessment report pipeline tools",
	Long: `vareport merges, deduplicates and converts the VA reports produced by
grype, trivy and XRay, and queries SCAS for component STAKO levels.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return exitcodes.Usagef("%v", err)
	})
	rootCmd.PersistentFlags().StringVar(&configPath, "config", configuration.FilePath, "path of the yaml configuration file")
}

// cant DI directly into the commands so we use setters

func SetMergeService(service mergeservice.MergeService) {
	mergeService = service
}

func SetExcelExportService(service excelexportservice.ExcelExportService) {
	excelExportService = service
}

func SetHtmlExportService(service htmlexportservice.HtmlExportService) {
	htmlExportService = service
}

func SetColumnService(service columnservice.ColumnService) {
	columnService = service
}

func SetSeverityCountService(service severitycountservice.SeverityCountService) {
	severityCountService = service
}

func SetScasClientFactory(factory ScasClientFactory) {
	scasClientFactory = factory
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	command, err := rootCmd.ExecuteC()
	if err == nil {
		return 0
	}

	fmt.Fprintln(os.Stderr, color.RedString("%s", err.Error()))

	var exitErr *exitcodes.ExitError
	if errors.As(err, &exitErr) && exitErr.ShowUsage && command != nil {
		command.Usage()
	}

	return exitcodes.Code(err)
}

// loadConfig reads the --config file. Only count-severity and the SCAS
// commands use it.
func loadConfig() (*configuration.Config, error) {
	return configuration.Load(configPath)
}

// usageArgs marks argument count errors so Execute prints the usage.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return exitcodes.Usagef("%v", err)
		}
		return nil
	}
}
