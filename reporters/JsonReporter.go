package reporters

import (
	"encoding/json"
	"fmt"

	"github.com/reaandrew/boostfindings/core"
	"github.com/reaandrew/boostfindings/reportstorage"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultJsonReport        = "findings.json"
	DefaultJsonSummaryReport = "findings_summary.json"
)

// JsonReport is the document returned from Lambda invocations.
type JsonReport struct {
	Count     int                `json:"count"`
	Findings  []core.FlatRow     `json:"findings"`
	Summaries []core.QueryResult `json:"summaries"`
}

type JsonReporter struct {
	Queries        core.SqlQueries
	ArtifactPrefix string
	OutputDir      string
	Repository     core.FindingRepository
}

// Report writes the detailed rows and the query summaries as two json files.
func (j JsonReporter) Report(table core.ResultTable) error {
	storage, err := reportstorage.CreateFileReportStorage(j.ArtifactPrefix, j.OutputDir)
	if err != nil {
		return err
	}

	rows := table.Rows
	if rows == nil {
		rows = []core.FlatRow{}
	}
	detailed, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal findings to JSON: %w", err)
	}
	path, err := storage.Store(DefaultJsonReport, detailed)
	if err != nil {
		return fmt.Errorf("failed to generate detailed JSON report: %w", err)
	}
	log.Printf("Detailed JSON report generated successfully: %s", path)

	summaries, err := summarise(j.Repository, table, j.Queries)
	if err != nil {
		return fmt.Errorf("failed to build summaries: %w", err)
	}
	if summaries == nil {
		summaries = []core.QueryResult{}
	}
	summaryBytes, err := json.MarshalIndent(summaries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal summary data: %w", err)
	}
	path, err = storage.Store(DefaultJsonSummaryReport, summaryBytes)
	if err != nil {
		return fmt.Errorf("failed to generate summary JSON report: %w", err)
	}
	log.Printf("Summary JSON report generated successfully: %s", path)

	return nil
}

// BuildJsonReport renders rows and summaries into one document without touching the filesystem
// beyond the temporary summary database.
func BuildJsonReport(table core.ResultTable, queries core.SqlQueries, repository core.FindingRepository) ([]byte, error) {
	summaries, err := summarise(repository, table, queries)
	if err != nil {
		return nil, fmt.Errorf("failed to build summaries: %w", err)
	}

	report := JsonReport{
		Count:     table.Len(),
		Findings:  table.Rows,
		Summaries: summaries,
	}
	if report.Findings == nil {
		report.Findings = []core.FlatRow{}
	}
	if report.Summaries == nil {
		report.Summaries = []core.QueryResult{}
	}

	return json.Marshal(report)
}
