package main

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/reaandrew/boostfindings/core"
	"github.com/reaandrew/boostfindings/reporters"
	"github.com/reaandrew/boostfindings/utils"
	log "github.com/sirupsen/logrus"
)

const (
	QueriesPathEnvVar  = "BOOST_QUERIES_PATH"
	DefaultQueriesPath = "/var/task/queries.yaml"
)

// LambdaRequest represents the expected JSON structure in the request body
type LambdaRequest struct {
	LocateFindingId  string `json:"locateFindingId"`
	StrictPagination bool   `json:"strictPagination"`
}

// Handler is the Lambda function handler
func Handler(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	var lambdaReq LambdaRequest
	if strings.TrimSpace(request.Body) != "" {
		if err := json.Unmarshal([]byte(request.Body), &lambdaReq); err != nil {
			log.Printf("Error parsing request body: %v", err)
			return errorResponse(400, "Invalid JSON format."), nil
		}
	}

	queries, err := utils.LoadQueries(lambdaQueriesPath())
	if err != nil {
		log.Printf("Error loading queries: %v", err)
		return errorResponse(500, err.Error()), nil
	}

	table, err := FetchFindings(ctx, FetchOptions{
		LocateFindingId:  lambdaReq.LocateFindingId,
		StrictPagination: lambdaReq.StrictPagination,
	})
	if err != nil {
		log.Printf("Error fetching findings: %v", err)
		return errorResponse(statusFor(err), err.Error()), nil
	}

	body, err := reporters.BuildJsonReport(table, queries, nil)
	if err != nil {
		log.Printf("Error building report: %v", err)
		return errorResponse(500, err.Error()), nil
	}

	return toAPIGatewayResponse(200, string(body)), nil
}

// lambdaQueriesPath uses BOOST_QUERIES_PATH, then a queries.yaml bundled with the function,
// then the built-in queries.
func lambdaQueriesPath() string {
	if path := os.Getenv(QueriesPathEnvVar); path != "" {
		return path
	}
	if _, err := os.Stat(DefaultQueriesPath); err == nil {
		return DefaultQueriesPath
	}
	return ""
}

// statusFor maps upstream API failures to 502 and everything else to 500.
func statusFor(err error) int {
	var networkErr *core.NetworkError
	var httpErr *core.HTTPError
	var malformedErr *core.MalformedResponseError
	var graphqlErr *core.GraphQLError
	var stalledErr *core.StalledPaginationError
	switch {
	case errors.As(err, &networkErr), errors.As(err, &httpErr), errors.As(err, &malformedErr),
		errors.As(err, &graphqlErr), errors.As(err, &stalledErr):
		return 502
	}
	return 500
}

func errorResponse(statusCode int, message string) events.APIGatewayProxyResponse {
	body, _ := json.Marshal(map[string]string{"error": message})
	return toAPIGatewayResponse(statusCode, string(body))
}

// toAPIGatewayResponse wraps a JSON body in an API Gateway proxy response
func toAPIGatewayResponse(statusCode int, body string) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode:      statusCode,
		Headers:         map[string]string{"Content-Type": "application/json"},
		Body:            body,
		IsBase64Encoded: false,
	}
}
