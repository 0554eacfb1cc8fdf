package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/reaandrew/boostfindings/core"
	"github.com/reaandrew/boostfindings/fetchers"
	"github.com/reaandrew/boostfindings/secrets"
	"github.com/reaandrew/boostfindings/utils"
	log "github.com/sirupsen/logrus"
)

const (
	EndpointEnvVar = "BOOST_API_URL"
	DefaultTimeout = 60 * time.Second
)

// FetchOptions configures a single fetch of every finding.
type FetchOptions struct {
	Endpoint         string
	PageSize         int
	LocateFindingId  string
	StrictPagination bool
	Timeout          time.Duration
	SsmParameter     string
	UseKeyring       bool
	Progress         utils.ProgressReporter
}

// endpointFromEnv prefers an explicit endpoint, then BOOST_API_URL, then the public API.
func endpointFromEnv(endpoint string) string {
	if endpoint != "" {
		return endpoint
	}
	if value := os.Getenv(EndpointEnvVar); value != "" {
		return value
	}
	return fetchers.DefaultEndpoint
}

func apiKeySources(options FetchOptions) secrets.Chain {
	ssmParameter := options.SsmParameter
	if ssmParameter == "" {
		ssmParameter = os.Getenv(secrets.SsmParameterEnvVar)
	}

	chain := secrets.Chain{
		secrets.EnvSource{Variable: secrets.ApiKeyEnvVar},
		secrets.SsmSource{ParameterName: ssmParameter},
	}
	if options.UseKeyring {
		chain = append(chain, secrets.KeyringSource{})
	}
	return chain
}

// FetchFindings resolves the API key and pulls every finding into a ResultTable.
func FetchFindings(ctx context.Context, options FetchOptions) (core.ResultTable, error) {
	apiKey, err := apiKeySources(options).Lookup(ctx)
	if err != nil {
		return core.ResultTable{}, err
	}

	timeout := options.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	client, err := fetchers.NewApiKeyHttpClient(ctx, apiKey, timeout)
	if err != nil {
		return core.ResultTable{}, err
	}

	endpoint := endpointFromEnv(options.Endpoint)
	fetcher := fetchers.NewFindingFetcher(endpoint, client)
	if options.PageSize > 0 {
		fetcher.PageSize = options.PageSize
	}
	fetcher.LocateFindingId = options.LocateFindingId
	fetcher.StrictPagination = options.StrictPagination
	if options.Progress != nil {
		fetcher.ProgressReporter = options.Progress
	}

	log.Infof("Fetching findings from %s", endpoint)
	table, err := fetcher.FetchAllFindings(ctx)
	if err != nil {
		return core.ResultTable{}, fmt.Errorf("failed to fetch findings: %w", err)
	}
	return table, nil
}
