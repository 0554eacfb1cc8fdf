package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/reaandrew/boostfindings/reporters"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// findingsServer serves two findings on the first page and an empty second page.
func findingsServer(t *testing.T, requests *int, authorization *string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*requests++
		*authorization = r.Header.Get("Authorization")
		_, _ = io.ReadAll(r.Body)

		if *requests == 1 {
			fmt.Fprint(w, `{"data":{"findings":{"totalCount":2,"pageInfo":{"hasNextPage":true,"endCursor":"c2"},"edges":[
				{"node":{"timestamp":"2024-01-01T00:00:00Z","findingId":"f1","isViolation":true,"analysisContext":{"projectName":"api"}},"cursor":"c1"},
				{"node":{"timestamp":"2024-01-02T00:00:00Z","findingId":"f2","isViolation":false,"analysisContext":{"projectName":"web"}},"cursor":"c2"}]}}}`)
			return
		}
		fmt.Fprint(w, `{"data":{"findings":{"totalCount":2,"pageInfo":{"hasNextPage":false,"endCursor":null},"edges":[]}}}`)
	}))
}

func TestHandler_ReturnsFindingsAndSummaries(t *testing.T) {
	var requests int
	var authorization string
	server := findingsServer(t, &requests, &authorization)
	defer server.Close()

	t.Setenv(EndpointEnvVar, server.URL)
	t.Setenv("BOOST_API_KEY", "lambda-key")
	t.Setenv("BOOST_SSM_PARAMETER", "")
	t.Setenv(QueriesPathEnvVar, "")

	response, err := Handler(context.Background(), events.APIGatewayProxyRequest{Body: `{}`})
	require.NoError(t, err)
	require.Equal(t, 200, response.StatusCode, response.Body)

	var report reporters.JsonReport
	require.NoError(t, json.Unmarshal([]byte(response.Body), &report))
	assert.Equal(t, 2, report.Count)
	assert.Equal(t, "f1", report.Findings[0].FindingId)
	assert.Equal(t, "web", report.Findings[1].ProjectName)
	assert.NotEmpty(t, report.Summaries)
	assert.Equal(t, 2, requests)
	assert.Equal(t, "ApiKey lambda-key", authorization)
}

func TestHandler_InvalidBody(t *testing.T) {
	response, err := Handler(context.Background(), events.APIGatewayProxyRequest{Body: `{not json`})
	require.NoError(t, err)
	assert.Equal(t, 400, response.StatusCode)
}

func TestHandler_MissingApiKey(t *testing.T) {
	t.Setenv("BOOST_API_KEY", "")
	t.Setenv("BOOST_SSM_PARAMETER", "")
	t.Setenv(QueriesPathEnvVar, "")

	response, err := Handler(context.Background(), events.APIGatewayProxyRequest{})
	require.NoError(t, err)
	assert.Equal(t, 500, response.StatusCode)
	assert.Contains(t, response.Body, "no API key configured")
}

func TestHandler_UpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	t.Setenv(EndpointEnvVar, server.URL)
	t.Setenv("BOOST_API_KEY", "bad-key")
	t.Setenv("BOOST_SSM_PARAMETER", "")
	t.Setenv(QueriesPathEnvVar, "")

	response, err := Handler(context.Background(), events.APIGatewayProxyRequest{})
	require.NoError(t, err)
	assert.Equal(t, 502, response.StatusCode)
	assert.Contains(t, response.Body, "401")
}
