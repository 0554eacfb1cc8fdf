package repositories

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/reaandrew/boostfindings/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var rows = []core.FlatRow{
	{Timestamp: "2024-01-01T09:00:00Z", FindingId: "f1", IsViolation: true, ProjectName: "api", Cursor: "c1"},
	{Timestamp: "2024-01-01T10:00:00Z", FindingId: "f2", IsViolation: false, ProjectName: "api", Cursor: "c2"},
	{Timestamp: "2024-01-02T09:00:00Z", FindingId: "f3", IsViolation: true, ProjectName: "web", Cursor: "c3"},
}

func TestSqliteFindingRepository_StoreAndQuery(t *testing.T) {
	repo, err := NewSqliteFindingRepository(":memory:")
	require.NoError(t, err)
	defer repo.Close()

	require.NoError(t, repo.Store(rows))

	count, err := repo.Count()
	assert.NoError(t, err)
	assert.Equal(t, 3, count)

	result, err := repo.Query(core.SqlQuery{Name: "ordered", Query: "SELECT findingId, isViolation FROM Findings ORDER BY id"})
	require.NoError(t, err)
	assert.Equal(t, "ordered", result.Name)
	assert.Equal(t, []string{"findingId", "isViolation"}, result.Columns)
	require.Len(t, result.Rows, 3)
	assert.Equal(t, "f1", result.Rows[0]["findingId"])
	assert.Equal(t, int64(1), result.Rows[0]["isViolation"])
	assert.Equal(t, int64(0), result.Rows[1]["isViolation"])
	assert.Equal(t, "f3", result.Rows[2]["findingId"])
}

func TestSqliteFindingRepository_BadQuery(t *testing.T) {
	repo, err := NewSqliteFindingRepository(":memory:")
	require.NoError(t, err)
	defer repo.Close()

	_, err = repo.Query(core.SqlQuery{Name: "broken", Query: "SELECT nope FROM Missing"})
	assert.ErrorContains(t, err, "broken")
}

func TestSqliteFindingRepository_CloseRemovesDatabaseFile(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "findings.db")
	require.NoError(t, os.WriteFile(dbPath, []byte("stale"), 0644))

	repo, err := NewSqliteFindingRepository(dbPath)
	require.NoError(t, err)
	require.NoError(t, repo.Store(rows[:1]))
	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, repo.Close())
	_, err = os.Stat(dbPath)
	assert.True(t, os.IsNotExist(err))
}

func TestSummarise_RunsDefaultQueries(t *testing.T) {
	repo, err := NewSqliteFindingRepository(":memory:")
	require.NoError(t, err)
	defer repo.Close()

	results, err := Summarise(repo, core.ResultTable{Rows: rows}, core.DefaultSqlQueries)
	require.NoError(t, err)
	require.Len(t, results, len(core.DefaultSqlQueries.Queries))

	violations := results[0]
	assert.Equal(t, "Violations by Project", violations.Name)
	require.Len(t, violations.Rows, 2)
	assert.Equal(t, "api", violations.Rows[0]["projectName"])
	assert.Equal(t, int64(1), violations.Rows[0]["violations"])

	byProject := results[1]
	assert.Equal(t, []string{"projectName", "findings", "violations", "violationPercent"}, byProject.Columns)
	assert.Equal(t, 50.0, byProject.Rows[0]["violationPercent"])

	byDay := results[2]
	require.Len(t, byDay.Rows, 2)
	assert.Equal(t, "2024-01-01", byDay.Rows[0]["day"])
	assert.Equal(t, int64(2), byDay.Rows[0]["findings"])
}

func TestSummarise_SkipsFailingQuery(t *testing.T) {
	repo, err := NewSqliteFindingRepository(":memory:")
	require.NoError(t, err)
	defer repo.Close()

	results, err := Summarise(repo, core.ResultTable{Rows: rows}, core.SqlQueries{Queries: []core.SqlQuery{
		{Name: "broken", Query: "SELECT * FROM Missing"},
		{Name: "count", Query: "SELECT COUNT(*) AS n FROM Findings"},
	}})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "count", results[0].Name)
}
