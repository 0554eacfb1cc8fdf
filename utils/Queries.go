package utils

import (
	"fmt"
	"os"

	"github.com/reaandrew/boostfindings/core"
	"gopkg.in/yaml.v3"
)

// LoadQueries loads summary SQL queries from a YAML file; an empty path yields the defaults.
func LoadQueries(queriesPath string) (core.SqlQueries, error) {
	if queriesPath == "" {
		return core.DefaultSqlQueries, nil
	}

	var queries core.SqlQueries

	fileData, err := os.ReadFile(queriesPath)
	if err != nil {
		return queries, fmt.Errorf("failed to read YAML file '%s': %w", queriesPath, err)
	}

	err = yaml.Unmarshal(fileData, &queries)
	if err != nil {
		return queries, fmt.Errorf("failed to unmarshal YAML data: %w", err)
	}

	for i, query := range queries.Queries {
		if query.Name == "" || query.Query == "" {
			return queries, fmt.Errorf("query %d in '%s' needs both name and query", i, queriesPath)
		}
	}

	return queries, nil
}
