package core

// Finding is a single security-scan result as returned by the findings API.
type Finding struct {
	Timestamp       string          `json:"timestamp"`
	FindingId       string          `json:"findingId"`
	IsViolation     bool            `json:"isViolation"`
	AnalysisContext AnalysisContext `json:"analysisContext"`
}

type AnalysisContext struct {
	ProjectName string `json:"projectName"`
}

// Edge pairs a Finding with the opaque cursor identifying its position.
type Edge struct {
	Node   Finding `json:"node"`
	Cursor string  `json:"cursor"`
}

type PageInfo struct {
	HasNextPage bool    `json:"hasNextPage"`
	EndCursor   *string `json:"endCursor"`
}

// Page is one batch of edges returned by a single request.
// TotalCount is -1 when the response omitted it.
type Page struct {
	TotalCount int      `json:"totalCount"`
	PageInfo   PageInfo `json:"pageInfo"`
	Edges      []Edge   `json:"edges"`
}
