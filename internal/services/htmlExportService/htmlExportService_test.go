package htmlexportservice

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	reportmodels "github.com/RobsonDevCode/vareport/internal/report/models"
	reportreaderservice "github.com/RobsonDevCode/vareport/internal/services/reportReaderService"
	reportwriterservice "github.com/RobsonDevCode/vareport/internal/services/reportWriterService"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newExporter() *HtmlExporter {
	return NewHtmlExporter(reportreaderservice.NewReportReader(), reportwriterservice.NewReportWriter())
}

func TestRenderTable(t *testing.T) {
	table := &reportmodels.Table{
		Header: []string{"Vulnerability ID", "Locations"},
		Rows:   []reportmodels.Row{{reportmodels.NewCell("CVE-1"), reportmodels.NewCell("<script>")}},
	}

	var out bytes.Buffer
	require.NoError(t, newExporter().RenderTable(table, &out))

	rendered := out.String()
	assert.Contains(t, rendered, `<table class="dataframe">`)
	assert.Contains(t, rendered, "Vulnerability ID")
	assert.Contains(t, rendered, "CVE-1")
	assert.Contains(t, rendered, "&lt;script&gt;")
	assert.NotContains(t, rendered, "<script>")
}

func TestConvertCsv(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "merged.csv")
	target := filepath.Join(dir, "merged.html")
	require.NoError(t, os.WriteFile(source, []byte("Vulnerability ID,Severity\nCVE-1,High\n"), 0644))

	require.NoError(t, newExporter().ConvertCsv(source, target))

	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(content), "<table")
	assert.Contains(t, string(content), "High")
}

func TestConvertCsvInvalidSourceLeavesEmptyTarget(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "broken.csv")
	target := filepath.Join(dir, "broken.html")
	require.NoError(t, os.WriteFile(source, []byte("a,b\n1,2,3\n"), 0644))

	require.NoError(t, newExporter().ConvertCsv(source, target))

	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.Zero(t, info.Size())
}

func TestConvertText(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{name: "lines keep their break", content: "first\nsecond\n", expected: "<pre>first\n</pre><pre>second\n</pre>"},
		{name: "last line without break", content: "first\nlast", expected: "<pre>first\n</pre><pre>last</pre>"},
		{name: "markup is escaped", content: "a < b & c\n", expected: "<pre>a &lt; b &amp; c\n</pre>"},
		{name: "empty input", content: "", expected: ""},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			dir := t.TempDir()
			source := filepath.Join(dir, "scan.txt")
			target := filepath.Join(dir, "scan.html")
			require.NoError(t, os.WriteFile(source, []byte(test.content), 0644))

			require.NoError(t, newExporter().ConvertText(source, target))

			content, err := os.ReadFile(target)
			require.NoError(t, err)
			assert.Equal(t, test.expected, string(content))
		})
	}
}

func TestConvertTextMissingSource(t *testing.T) {
	dir := t.TempDir()
	err := newExporter().ConvertText(filepath.Join(dir, "missing.txt"), filepath.Join(dir, "out.html"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
