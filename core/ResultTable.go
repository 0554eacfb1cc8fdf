package core

// Columns lists the ResultTable columns in export order.
var Columns = []string{"timestamp", "findingId", "isViolation", "projectName", "cursor"}

// FlatRow is the projection of an Edge with the nested structure discarded.
type FlatRow struct {
	Timestamp   string `json:"timestamp"`
	FindingId   string `json:"findingId"`
	IsViolation bool   `json:"isViolation"`
	ProjectName string `json:"projectName"`
	Cursor      string `json:"cursor"`
}

// NewFlatRow copies the edge and node fields without transforming them.
func NewFlatRow(edge Edge) FlatRow {
	return FlatRow{
		Timestamp:   edge.Node.Timestamp,
		FindingId:   edge.Node.FindingId,
		IsViolation: edge.Node.IsViolation,
		ProjectName: edge.Node.AnalysisContext.ProjectName,
		Cursor:      edge.Cursor,
	}
}

// Values returns the row cells in the same order as Columns.
func (r FlatRow) Values() []interface{} {
	return []interface{}{r.Timestamp, r.FindingId, r.IsViolation, r.ProjectName, r.Cursor}
}

// ResultTable holds every FlatRow of a run in retrieval order.
type ResultTable struct {
	Rows []FlatRow `json:"rows"`
}

func NewResultTable(edges []Edge) ResultTable {
	rows := make([]FlatRow, 0, len(edges))
	for _, edge := range edges {
		rows = append(rows, NewFlatRow(edge))
	}
	return ResultTable{Rows: rows}
}

func (t ResultTable) Len() int {
	return len(t.Rows)
}

func (t ResultTable) Columns() []string {
	return Columns
}
