package fetchers

// FindingsQuery is the cursor-paginated findings query sent on every page request.
const FindingsQuery = `query ($first: Int, $after: String, $locateFindingId: String) {
  findings(first: $first, after: $after, locateFindingId: $locateFindingId) {
    totalCount
    pageInfo {
      hasNextPage
      endCursor
    }
    edges {
      node {
        timestamp
        findingId
        isViolation
        analysisContext {
          projectName
        }
      }
      cursor
    }
  }
}`

type graphqlRequest struct {
	Query     string            `json:"query"`
	Variables findingsVariables `json:"variables"`
}

// After is always serialised so the first page sends an explicit null.
type findingsVariables struct {
	First           int     `json:"first"`
	After           *string `json:"after"`
	LocateFindingId string  `json:"locateFindingId,omitempty"`
}
