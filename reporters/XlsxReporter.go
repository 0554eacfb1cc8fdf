package reporters

import (
	"fmt"
	"strings"

	"github.com/reaandrew/boostfindings/core"
	"github.com/reaandrew/boostfindings/reportstorage"
	"github.com/reaandrew/boostfindings/utils"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

const (
	DefaultXlsxReport = "findings_report.xlsx"
	FindingsSheet     = "Findings"
	findingsTable     = "FindingsTable"
)

// XlsxReporter writes the findings to one sheet and every summary query to its own sheet.
type XlsxReporter struct {
	Queries        core.SqlQueries
	ArtifactPrefix string
	OutputDir      string
	Repository     core.FindingRepository
}

func (x XlsxReporter) Report(table core.ResultTable) error {
	log.Info("Generating XLSX file")

	summaries, err := summarise(x.Repository, table, x.Queries)
	if err != nil {
		return fmt.Errorf("failed to build summaries: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), FindingsSheet); err != nil {
		return fmt.Errorf("failed to rename default sheet: %w", err)
	}
	if err := writeFindingsSheet(f, table); err != nil {
		return err
	}

	sheetNames := map[string]struct{}{strings.ToLower(FindingsSheet): {}}
	for _, summary := range summaries {
		sheet := uniqueSheetName(summary.Name, sheetNames)
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("failed to create sheet '%s': %w", sheet, err)
		}
		err := writeRows(f, sheet, summary.Columns, len(summary.Rows), func(i int) []interface{} {
			return summaryRow(summary, summary.Rows[i])
		})
		if err != nil {
			return err
		}
	}
	f.SetActiveSheet(0)

	storage, err := reportstorage.CreateFileReportStorage(x.ArtifactPrefix, x.OutputDir)
	if err != nil {
		return err
	}
	outputFile := storage.Path(DefaultXlsxReport)
	if err := f.SaveAs(outputFile); err != nil {
		return fmt.Errorf("failed to save XLSX file '%s': %w", outputFile, err)
	}

	log.Printf("XLSX report generated successfully: %s", outputFile)
	return nil
}

func writeFindingsSheet(f *excelize.File, table core.ResultTable) error {
	err := writeRows(f, FindingsSheet, table.Columns(), table.Len(), func(i int) []interface{} {
		return table.Rows[i].Values()
	})
	if err != nil {
		return err
	}
	if table.Len() == 0 {
		return nil
	}

	// Power BI can pick up a named table instead of a raw cell range.
	lastCell, err := excelize.CoordinatesToCellName(len(table.Columns()), table.Len()+1)
	if err != nil {
		return fmt.Errorf("failed to get table range: %w", err)
	}
	if err := f.AddTable(FindingsSheet, &excelize.Table{
		Range:     "A1:" + lastCell,
		Name:      findingsTable,
		StyleName: "TableStyleMedium2",
	}); err != nil {
		return fmt.Errorf("failed to add findings table: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, headers []string, count int, row func(i int) []interface{}) error {
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return fmt.Errorf("failed to set headers for sheet '%s': %w", sheet, err)
	}

	for i := 0; i < count; i++ {
		rowNum := i + 2
		cellAddress, err := excelize.CoordinatesToCellName(1, rowNum)
		if err != nil {
			return fmt.Errorf("failed to get cell address for row %d in sheet '%s': %w", rowNum, sheet, err)
		}
		rowData := row(i)
		if err := f.SetSheetRow(sheet, cellAddress, &rowData); err != nil {
			return fmt.Errorf("failed to set data for row %d in sheet '%s': %w", rowNum, sheet, err)
		}
	}
	return nil
}

// uniqueSheetName keys taken by lower-cased name since excelize matches
// sheet names case-insensitively.
func uniqueSheetName(name string, taken map[string]struct{}) string {
	base := utils.SheetName(name)
	sheet := base
	for n := 2; ; n++ {
		if _, exists := taken[strings.ToLower(sheet)]; !exists {
			break
		}
		suffix := fmt.Sprintf(" %d", n)
		runes := []rune(base)
		if len(runes)+len(suffix) > 31 {
			runes = runes[:31-len(suffix)]
		}
		sheet = string(runes) + suffix
	}
	taken[strings.ToLower(sheet)] = struct{}{}
	return sheet
}
