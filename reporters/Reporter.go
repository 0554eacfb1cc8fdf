package reporters

import (
	"os"
	"path/filepath"

	"github.com/reaandrew/boostfindings/core"
	"github.com/reaandrew/boostfindings/repositories"
	"github.com/reaandrew/boostfindings/utils"
)

// ReporterOptions carries the settings shared by the file based reporters.
type ReporterOptions struct {
	Queries        core.SqlQueries
	ArtifactPrefix string
	OutputDir      string
	BaseUrl        string
}

// summarise runs the summary queries, opening a throwaway SQLite database when
// no repository is supplied.
func summarise(repository core.FindingRepository, table core.ResultTable, queries core.SqlQueries) ([]core.QueryResult, error) {
	if repository == nil {
		dbPath := filepath.Join(os.TempDir(), utils.GenerateRandomFilename("db"))
		repo, err := repositories.NewSqliteFindingRepository(dbPath)
		if err != nil {
			return nil, err
		}
		defer repo.Close()
		repository = repo
	}
	return repositories.Summarise(repository, table, queries)
}

// summaryRow orders a query row by the result's column list.
func summaryRow(result core.QueryResult, row map[string]interface{}) []interface{} {
	values := make([]interface{}, 0, len(result.Columns))
	for _, column := range result.Columns {
		values = append(values, row[column])
	}
	return values
}
