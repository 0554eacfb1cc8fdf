package fetchers

import (
	"context"
	"net/http"
	"time"

	"github.com/reaandrew/boostfindings/core"
	"golang.org/x/oauth2"
)

const ApiKeyTokenType = "ApiKey"

type HttpClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// NewApiKeyHttpClient returns a client that sends "Authorization: ApiKey <key>" on every request.
func NewApiKeyHttpClient(ctx context.Context, apiKey string, timeout time.Duration) (*http.Client, error) {
	if apiKey == "" {
		return nil, core.ErrMissingApiKey
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: apiKey,
		TokenType:   ApiKeyTokenType,
	})
	client := oauth2.NewClient(ctx, ts)
	client.Timeout = timeout
	return client, nil
}
