package preflight_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/pgzip"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seqtools/rnavar/internal/preflight"
)

func writeFastqGz(t *testing.T, path, content string) {
	t.Helper()

	file, err := os.Create(path)
	require.NoError(t, err)
	zw := pgzip.NewWriter(file)
	_, err = zw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, file.Close())
}

func TestReferences(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	fasta := filepath.Join(dir, "genome.fa")
	require.NoError(t, os.WriteFile(fasta, []byte(">chr1\nACGT\n"), 0o666))

	assert.NoError(t, preflight.References([]string{fasta}))
}

func TestReferencesMissing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	fasta := filepath.Join(dir, "genome.fa")
	require.NoError(t, os.WriteFile(fasta, []byte(">chr1\nACGT\n"), 0o666))
	absent := filepath.Join(dir, "dbsnp.vcf.gz")

	err := preflight.References([]string{fasta, absent, ""})
	require.Error(t, err)

	var mre *preflight.MissingReferenceError
	require.True(t, errors.As(err, &mre))
	assert.Equal(t, []string{absent}, mre.Missing)
}

func TestFastqGzip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "sample01_1.fq.gz")
	writeFastqGz(t, path, "@read1\nACGT\n+\nFFFF\n")

	assert.NoError(t, preflight.FastqGzip(path))
}

func TestFastqGzipNotGzip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "sample01_1.fq.gz")
	require.NoError(t, os.WriteFile(path, []byte("@read1\nACGT\n+\nFFFF\n"), 0o666))

	err := preflight.FastqGzip(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not valid gzip")
}

func TestFastqGzipTruncatedRecord(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "sample01_1.fq.gz")
	writeFastqGz(t, path, "@read1\nACGT\n")

	err := preflight.FastqGzip(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "truncated")
}

func TestFastqGzipBadHeader(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "sample01_1.fq.gz")
	writeFastqGz(t, path, "read1\nACGT\n+\nFFFF\n")

	err := preflight.FastqGzip(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "header")
}

func TestFastqGzipLengthMismatch(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "sample01_1.fq.gz")
	writeFastqGz(t, path, "@read1\nACGT\n+\nFF\n")

	err := preflight.FastqGzip(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lengths differ")
}

func TestFastqGzipMissingFile(t *testing.T) {
	t.Parallel()

	err := preflight.FastqGzip(filepath.Join(t.TempDir(), "absent.fq.gz"))
	assert.Error(t, err)
}

func TestTools(t *testing.T) {
	t.Parallel()

	statuses := preflight.Tools([]string{"sh", "definitely-not-a-real-tool"})
	require.Len(t, statuses, 2)

	assert.True(t, statuses[0].Found)
	assert.NotEmpty(t, statuses[0].Path)
	assert.False(t, statuses[1].Found)

	assert.Equal(t, []string{"definitely-not-a-real-tool"}, preflight.MissingTools(statuses))
}

func TestToolsMultiWordOverride(t *testing.T) {
	t.Parallel()

	statuses := preflight.Tools([]string{"sh -c picard.jar"})
	require.Len(t, statuses, 1)
	assert.True(t, statuses[0].Found)
}
