package fetchers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/reaandrew/boostfindings/core"
	"github.com/reaandrew/boostfindings/utils"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultEndpoint = "https://api.boostsecurity.io/findings-view/graphql"
	DefaultPageSize = 100
	maxErrorBody    = 512
)

type FindingFetcher struct {
	Endpoint         string
	PageSize         int
	LocateFindingId  string
	StrictPagination bool
	HTTPClient       HttpClient
	ProgressReporter utils.ProgressReporter
}

func NewFindingFetcher(endpoint string, client HttpClient) *FindingFetcher {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &FindingFetcher{
		Endpoint:         endpoint,
		PageSize:         DefaultPageSize,
		HTTPClient:       client,
		ProgressReporter: utils.NoopProgressReporter{},
	}
}

// FetchAllFindings walks every page of the findings query and returns the flattened rows
// in the order the API returned them. Any failing page fails the whole run.
func (f *FindingFetcher) FetchAllFindings(ctx context.Context) (core.ResultTable, error) {
	progress := f.ProgressReporter
	if progress == nil {
		progress = utils.NoopProgressReporter{}
	}

	var cursor *string
	var accumulated []core.Edge
	totalCount := -1
	pages := 0

	for {
		page, err := f.fetchPage(ctx, cursor)
		if err != nil {
			return core.ResultTable{}, fmt.Errorf("failed to fetch findings page %d: %w", pages+1, err)
		}
		pages++

		if pages == 1 {
			totalCount = page.TotalCount
			progress.SetTotal(totalCount)
		}
		log.Debugf("Page %d: %d edges, hasNextPage=%t", pages, len(page.Edges), page.PageInfo.HasNextPage)

		if len(page.Edges) == 0 {
			break
		}

		accumulated = append(accumulated, page.Edges...)
		for range page.Edges {
			progress.Increment()
		}

		endCursor := page.PageInfo.EndCursor
		if endCursor == nil {
			log.Warnf("Page %d returned no endCursor; stopping after %d findings", pages, len(accumulated))
			break
		}
		if cursor != nil && *endCursor == *cursor {
			if f.StrictPagination {
				return core.ResultTable{}, &core.StalledPaginationError{Cursor: *endCursor, Rows: len(accumulated)}
			}
			// TODO: confirm with the API owners whether a repeated endCursor marks the end of the stream.
			log.Warnf("endCursor %q did not advance on page %d; treating as end of results", *endCursor, pages)
			break
		}
		cursor = endCursor
	}

	table := core.NewResultTable(accumulated)
	log.Infof("Fetched %d findings in %d requests", table.Len(), pages)
	if totalCount >= 0 && totalCount != table.Len() {
		log.Warnf("API reported totalCount %d but %d findings were fetched", totalCount, table.Len())
	}
	return table, nil
}

func (f *FindingFetcher) fetchPage(ctx context.Context, after *string) (core.Page, error) {
	pageSize := f.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	payload, err := json.Marshal(graphqlRequest{
		Query: FindingsQuery,
		Variables: findingsVariables{
			First:           pageSize,
			After:           after,
			LocateFindingId: f.LocateFindingId,
		},
	})
	if err != nil {
		return core.Page{}, fmt.Errorf("failed to marshal findings query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return core.Page{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.HTTPClient.Do(req)
	if err != nil {
		return core.Page{}, &core.NetworkError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return core.Page{}, &core.NetworkError{Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		return core.Page{}, &core.HTTPError{StatusCode: resp.StatusCode, Body: string(bytes.TrimSpace(body))}
	}

	return decodeFindingsPage(body)
}
