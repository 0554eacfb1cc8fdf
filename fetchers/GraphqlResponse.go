package fetchers

import (
	"encoding/json"
	"fmt"

	"github.com/reaandrew/boostfindings/core"
	log "github.com/sirupsen/logrus"
)

// The wire types use pointers so a missing key can be told apart from a zero value.
type findingsResponse struct {
	Data   *findingsData         `json:"data"`
	Errors []graphqlErrorMessage `json:"errors"`
}

type graphqlErrorMessage struct {
	Message string `json:"message"`
}

type findingsData struct {
	Findings *wireFindings `json:"findings"`
}

type wireFindings struct {
	TotalCount *int          `json:"totalCount"`
	PageInfo   *wirePageInfo `json:"pageInfo"`
	Edges      []wireEdge    `json:"edges"`
}

type wirePageInfo struct {
	HasNextPage *bool   `json:"hasNextPage"`
	EndCursor   *string `json:"endCursor"`
}

type wireEdge struct {
	Node   *wireNode `json:"node"`
	Cursor *string   `json:"cursor"`
}

type wireNode struct {
	Timestamp       *string              `json:"timestamp"`
	FindingId       *string              `json:"findingId"`
	IsViolation     *bool                `json:"isViolation"`
	AnalysisContext *wireAnalysisContext `json:"analysisContext"`
}

type wireAnalysisContext struct {
	ProjectName *string `json:"projectName"`
}

// decodeFindingsPage turns a response body into a core.Page, failing on any missing required key.
func decodeFindingsPage(body []byte) (core.Page, error) {
	var response findingsResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return core.Page{}, &core.MalformedResponseError{Path: "$", Err: err}
	}

	if len(response.Errors) > 0 {
		messages := make([]string, 0, len(response.Errors))
		for _, e := range response.Errors {
			messages = append(messages, e.Message)
		}
		if response.Data == nil || response.Data.Findings == nil {
			return core.Page{}, &core.GraphQLError{Messages: messages}
		}
		log.Warnf("Findings response carried errors alongside data: %v", messages)
	}

	if response.Data == nil {
		return core.Page{}, &core.MalformedResponseError{Path: "data"}
	}
	findings := response.Data.Findings
	if findings == nil {
		return core.Page{}, &core.MalformedResponseError{Path: "data.findings"}
	}
	if findings.PageInfo == nil {
		return core.Page{}, &core.MalformedResponseError{Path: "data.findings.pageInfo"}
	}
	if findings.PageInfo.HasNextPage == nil {
		return core.Page{}, &core.MalformedResponseError{Path: "data.findings.pageInfo.hasNextPage"}
	}
	if findings.Edges == nil {
		return core.Page{}, &core.MalformedResponseError{Path: "data.findings.edges"}
	}

	page := core.Page{
		PageInfo: core.PageInfo{
			HasNextPage: *findings.PageInfo.HasNextPage,
			EndCursor:   findings.PageInfo.EndCursor,
		},
		Edges: make([]core.Edge, 0, len(findings.Edges)),
	}
	if findings.TotalCount != nil {
		page.TotalCount = *findings.TotalCount
	} else {
		page.TotalCount = -1
	}

	for i, edge := range findings.Edges {
		converted, err := convertEdge(edge)
		if err != nil {
			return core.Page{}, &core.MalformedResponseError{
				Path: fmt.Sprintf("data.findings.edges[%d].%s", i, err.Error()),
			}
		}
		page.Edges = append(page.Edges, converted)
	}

	return page, nil
}

type missingField string

func (m missingField) Error() string {
	return string(m)
}

func convertEdge(edge wireEdge) (core.Edge, error) {
	if edge.Cursor == nil {
		return core.Edge{}, missingField("cursor")
	}
	node := edge.Node
	if node == nil {
		return core.Edge{}, missingField("node")
	}
	if node.Timestamp == nil {
		return core.Edge{}, missingField("node.timestamp")
	}
	if node.FindingId == nil {
		return core.Edge{}, missingField("node.findingId")
	}
	if node.IsViolation == nil {
		return core.Edge{}, missingField("node.isViolation")
	}
	if node.AnalysisContext == nil {
		return core.Edge{}, missingField("node.analysisContext")
	}
	if node.AnalysisContext.ProjectName == nil {
		return core.Edge{}, missingField("node.analysisContext.projectName")
	}

	return core.Edge{
		Node: core.Finding{
			Timestamp:   *node.Timestamp,
			FindingId:   *node.FindingId,
			IsViolation: *node.IsViolation,
			AnalysisContext: core.AnalysisContext{
				ProjectName: *node.AnalysisContext.ProjectName,
			},
		},
		Cursor: *edge.Cursor,
	}, nil
}
