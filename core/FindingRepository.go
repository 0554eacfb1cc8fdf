package core

// QueryResult is the tabular output of one summary query.
type QueryResult struct {
	Name    string                   `json:"name"`
	Columns []string                 `json:"columns"`
	Rows    []map[string]interface{} `json:"rows"`
}

// FindingRepository stores flat rows so summary queries can run over them.
type FindingRepository interface {
	Store(rows []FlatRow) error
	Count() (int, error)
	Query(query SqlQuery) (QueryResult, error)
	Close() error
}
