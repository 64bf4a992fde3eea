package journal_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seqtools/rnavar/internal/journal"
)

func TestRecordAndCompleted(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "journal.log")

	j, err := journal.Open(path, "sample01")
	require.NoError(t, err)
	assert.NotEmpty(t, j.Run())

	j.Record("fastqc", journal.StatusStarted, nil)
	j.Record("fastqc", journal.StatusCompleted, nil)
	j.Record("trim", journal.StatusStarted, nil)
	j.Record("trim", journal.StatusFailed, assert.AnError)
	require.NoError(t, j.Close())

	completed, err := journal.Completed(path)
	require.NoError(t, err)
	assert.Contains(t, completed, journal.Key("sample01", "fastqc"))
	assert.NotContains(t, completed, journal.Key("sample01", "trim"))
}

func TestCompletedRestartDropsStage(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "journal.log")

	j, err := journal.Open(path, "sample01")
	require.NoError(t, err)
	j.Record("align", journal.StatusStarted, nil)
	j.Record("align", journal.StatusCompleted, nil)
	// a later run relaunched the stage and never finished
	j.Record("align", journal.StatusStarted, nil)
	require.NoError(t, j.Close())

	completed, err := journal.Completed(path)
	require.NoError(t, err)
	assert.Empty(t, completed)
}

func TestCompletedTwoSamplesInterleaved(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "journal.log")

	j1, err := journal.Open(path, "sample01")
	require.NoError(t, err)
	j2, err := journal.Open(path, "sample02")
	require.NoError(t, err)

	j1.Record("fastqc", journal.StatusStarted, nil)
	j2.Record("fastqc", journal.StatusStarted, nil)
	j1.Record("fastqc", journal.StatusCompleted, nil)
	j2.Record("fastqc", journal.StatusFailed, assert.AnError)
	require.NoError(t, j1.Close())
	require.NoError(t, j2.Close())

	completed, err := journal.Completed(path)
	require.NoError(t, err)
	assert.Contains(t, completed, journal.Key("sample01", "fastqc"))
	assert.NotContains(t, completed, journal.Key("sample02", "fastqc"))
}

func TestCompletedMissingFile(t *testing.T) {
	t.Parallel()

	completed, err := journal.Completed(filepath.Join(t.TempDir(), "absent.log"))
	require.NoError(t, err)
	assert.Empty(t, completed)
}

func TestCompletedIgnoresForeignLines(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "journal.log")
	require.NoError(t, os.WriteFile(path, []byte("not json at all\n"), 0o666))

	completed, err := journal.Completed(path)
	require.NoError(t, err)
	assert.Empty(t, completed)
}
