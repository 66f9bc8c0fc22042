package main

import (
	"os"

	"github.com/RobsonDevCode/vareport/cmd"
	cache "github.com/RobsonDevCode/vareport/internal/caching"
	"github.com/RobsonDevCode/vareport/internal/clients"
	"github.com/RobsonDevCode/vareport/internal/configuration"
	columnservice "github.com/RobsonDevCode/vareport/internal/services/columnService"
	excelexportservice "github.com/RobsonDevCode/vareport/internal/services/excelExportService"
	htmlexportservice "github.com/RobsonDevCode/vareport/internal/services/htmlExportService"
	mergeservice "github.com/RobsonDevCode/vareport/internal/services/mergeService"
	reportreaderservice "github.com/RobsonDevCode/vareport/internal/services/reportReaderService"
	reportwriterservice "github.com/RobsonDevCode/vareport/internal/services/reportWriterService"
	severitycountservice "github.com/RobsonDevCode/vareport/internal/services/severityCountService"
)

func main() {

	cacheIntance := cache.Cache{}
	reportReader := reportreaderservice.NewReportReader()
	reportWriter := reportwriterservice.NewReportWriter()

	cmd.SetMergeService(mergeservice.NewMerger(reportReader, reportWriter))
	cmd.SetExcelExportService(excelexportservice.NewExcelExporter(reportReader, reportWriter))
	cmd.SetHtmlExportService(htmlexportservice.NewHtmlExporter(reportReader, reportWriter))
	cmd.SetColumnService(columnservice.NewColumnWriter(reportReader, reportWriter))
	cmd.SetSeverityCountService(severitycountservice.NewSeverityCounter(reportReader))
	cmd.SetScasClientFactory(func(config *configuration.Config, checkCertificate bool) (clients.ScasClientService, error) {
		return clients.NewScasClient(config, &cacheIntance, checkCertificate)
	})

	os.Exit(cmd.Execute())
}
