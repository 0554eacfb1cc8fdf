package reporters

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/reaandrew/boostfindings/core"
	"github.com/reaandrew/boostfindings/reportstorage"
	log "github.com/sirupsen/logrus"
)

const DefaultCsvReport = "findings.csv"

// CsvReporter writes a single flat csv file, the format Power BI imports directly.
type CsvReporter struct {
	ArtifactPrefix string
	OutputDir      string
}

func (c CsvReporter) Report(table core.ResultTable) error {
	data, err := RenderCsv(table)
	if err != nil {
		return err
	}

	storage, err := reportstorage.CreateFileReportStorage(c.ArtifactPrefix, c.OutputDir)
	if err != nil {
		return err
	}
	path, err := storage.Store(DefaultCsvReport, data)
	if err != nil {
		return err
	}

	log.Printf("CSV report generated successfully: %s", path)
	return nil
}

func RenderCsv(table core.ResultTable) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(table.Columns()); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, row := range table.Rows {
		record := []string{
			row.Timestamp,
			row.FindingId,
			strconv.FormatBool(row.IsViolation),
			row.ProjectName,
			row.Cursor,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write csv row for finding '%s': %w", row.FindingId, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
