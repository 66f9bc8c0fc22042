package severitycountservice

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	severityconstants "github.com/RobsonDevCode/vareport/internal/constants/severity"
	"github.com/RobsonDevCode/vareport/internal/exitcodes"
	reportreaderservice "github.com/RobsonDevCode/vareport/internal/services/reportReaderService"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type SeverityCountService interface {
	Count(path string, column string, severity string) (*SeverityCount, error)
}

type SeverityCount struct {
	Threshold   string
	Total       int
	PerSeverity map[string]int
}

type SeverityCounter struct {
	reader reportreaderservice.ReportReaderService
}

func NewSeverityCounter(reader reportreaderservice.ReportReaderService) *SeverityCounter {
	return &SeverityCounter{
		reader: reader,
	}
}

// ValidateSeverity returns severity upper cased when it is on the ladder.
func ValidateSeverity(severity string) (string, error) {
	upper := cases.Upper(language.Und).String(strings.TrimSpace(severity))
	if slices.Contains(severityconstants.Ladder, upper) {
		return upper, nil
	}

	return "", fmt.Errorf("severity '%s' not match to one of the following defined severity: %s",
		severity, strings.Join(severityconstants.Ladder, ", "))
}

// Count returns how many rows of path carry, in column, severity or a
// more severe level.
func (s *SeverityCounter) Count(path string, column string, severity string) (*SeverityCount, error) {
	threshold, err := ValidateSeverity(severity)
	if err != nil {
		return nil, exitcodes.New(exitcodes.Usage, err)
	}

	path = filepath.Clean(path)
	info, err := os.Stat(path)
	if err != nil {
		return nil, exitcodes.Newf(exitcodes.Usage, "enter a valid input file. '%s' not found", path)
	}

	result := &SeverityCount{
		Threshold:   threshold,
		PerSeverity: make(map[string]int),
	}
	if info.Size() == 0 {
		return result, nil
	}

	table, err := s.reader.ReadReport(path, nil)
	if err != nil {
		return nil, exitcodes.Newf(exitcodes.Usage, "error on loading input file: %s, %w", path, err)
	}

	if table.IsEmpty() {
		return result, nil
	}

	if !table.HasColumn(column) {
		return nil, exitcodes.Newf(exitcodes.Usage, "column name '%s' not found on file '%s'", column, path)
	}

	accepted := severityconstants.Ladder[:slices.Index(severityconstants.Ladder, threshold)+1]
	caser := cases.Upper(language.Und)
	for _, row := range table.Rows {
		cell := table.Get(row, column)
		if cell.Null {
			continue
		}

		value := caser.String(strings.TrimSpace(cell.Value))
		if !slices.Contains(severityconstants.Ladder, value) {
			continue
		}

		result.PerSeverity[value]++
		if slices.Contains(accepted, value) {
			result.Total++
		}
	}

	return result, nil
}
