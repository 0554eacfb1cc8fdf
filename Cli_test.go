package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/reaandrew/boostfindings/fetchers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportCommand_WritesCsvReport(t *testing.T) {
	var requests int
	var authorization string
	server := findingsServer(t, &requests, &authorization)
	defer server.Close()

	t.Setenv("BOOST_API_KEY", "cli-key")
	t.Setenv("BOOST_SSM_PARAMETER", "")
	dir := t.TempDir()

	cli := &Cli{}
	cmd := cli.rootCommand()
	cmd.SetArgs([]string{"export", "--report", "csv", "--endpoint", server.URL, "--output-dir", dir, "--prefix", "test", "--no-progress"})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(filepath.Join(dir, "test_findings.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, 3)
	assert.Equal(t, "timestamp,findingId,isViolation,projectName,cursor", lines[0])
	assert.Equal(t, 2, requests)
	assert.Equal(t, 1, outputArtifacts("csv", dir))
	assert.Equal(t, 0, outputArtifacts("http", dir))
}

func TestExportCommand_UnknownFormat(t *testing.T) {
	cli := &Cli{}
	cmd := cli.rootCommand()
	cmd.SetArgs([]string{"export", "--report", "pdf", "--no-progress"})
	assert.EqualError(t, cmd.Execute(), "unknown report format: pdf")
}

func TestReadApiKey(t *testing.T) {
	key, err := readApiKey(bytes.NewBufferString("  my-key \n"))
	assert.NoError(t, err)
	assert.Equal(t, "my-key", key)

	key, err = readApiKey(bytes.NewBufferString("no-newline"))
	assert.NoError(t, err)
	assert.Equal(t, "no-newline", key)

	_, err = readApiKey(bytes.NewBufferString("\n"))
	assert.Error(t, err)
}

func TestEndpointFromEnv(t *testing.T) {
	t.Setenv(EndpointEnvVar, "")
	assert.Equal(t, fetchers.DefaultEndpoint, endpointFromEnv(""))

	t.Setenv(EndpointEnvVar, "https://env.example/graphql")
	assert.Equal(t, "https://env.example/graphql", endpointFromEnv(""))
	assert.Equal(t, "https://flag.example/graphql", endpointFromEnv("https://flag.example/graphql"))
}
