package engine

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kunwarvivekpratapsingh/dagcritic/internal/datasetio"
	"github.com/kunwarvivekpratapsingh/dagcritic/internal/domain"
)

func TestFileResultStoreListAndGet(t *testing.T) {
	dir := t.TempDir()
	report := domain.RunReport{Summary: domain.RunSummary{DatasetName: "sales", Total: 1, Passed: 1}}
	path := filepath.Join(dir, "eval_results_2026-01-01T00-00-00Z.json")
	require.NoError(t, datasetio.SaveReport(path, report))

	store := NewFileResultStore(dir)

	files := store.List()
	require.Len(t, files, 1)
	assert.Equal(t, "eval_results_2026-01-01T00-00-00Z.json", files[0])

	got, ok := store.Get(files[0])
	require.True(t, ok)
	assert.Equal(t, "sales", got.Summary.DatasetName)
}

func TestFileResultStoreRejectsPathTraversal(t *testing.T) {
	store := NewFileResultStore(t.TempDir())
	_, ok := store.Get("../../etc/passwd")
	assert.False(t, ok)
}

func TestResultsPathSanitizesTimestamp(t *testing.T) {
	path := resultsPath("/tmp/results", "2026-01-01T00:00:00Z")
	assert.Equal(t, "/tmp/results/eval_results_2026-01-01T00-00-00Z.json", path)
}
