package repositories

import (
	"fmt"

	"github.com/reaandrew/boostfindings/core"
	log "github.com/sirupsen/logrus"
)

// Summarise loads the table into the repository and runs each query in order.
// A failing query is logged and skipped so one bad query does not lose the report.
func Summarise(repository core.FindingRepository, table core.ResultTable, queries core.SqlQueries) ([]core.QueryResult, error) {
	if err := repository.Store(table.Rows); err != nil {
		return nil, fmt.Errorf("failed to store findings: %w", err)
	}

	count, err := repository.Count()
	if err != nil {
		return nil, err
	}
	log.Printf("Total records in Findings table: %d", count)

	if len(queries.Queries) == 0 {
		log.Warn("No SQL queries defined for summary report.")
		return nil, nil
	}

	var results []core.QueryResult
	for _, query := range queries.Queries {
		result, err := repository.Query(query)
		if err != nil {
			log.Printf("Skipping query for '%s': %v", query.Name, err)
			continue
		}
		log.Debugf("Query '%s' returned %d results.", query.Name, len(result.Rows))
		results = append(results, result)
	}
	return results, nil
}
