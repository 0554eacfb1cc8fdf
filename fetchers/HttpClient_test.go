package fetchers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/reaandrew/boostfindings/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewApiKeyHttpClient_SetsApiKeyAuthorization(t *testing.T) {
	var authorization, contentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authorization = r.Header.Get("Authorization")
		contentType = r.Header.Get("Content-Type")
		_, _ = w.Write([]byte(`{"data":{"findings":{"totalCount":0,"pageInfo":{"hasNextPage":false,"endCursor":null},"edges":[]}}}`))
	}))
	defer server.Close()

	client, err := NewApiKeyHttpClient(context.Background(), "secret-key", 5*time.Second)
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, client.Timeout)

	table, err := NewFindingFetcher(server.URL, client).FetchAllFindings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, table.Len())
	assert.Equal(t, "ApiKey secret-key", authorization)
	assert.Equal(t, "application/json", contentType)
}

func TestNewApiKeyHttpClient_RequiresKey(t *testing.T) {
	_, err := NewApiKeyHttpClient(context.Background(), "", time.Second)
	assert.ErrorIs(t, err, core.ErrMissingApiKey)
}
