package rnaseq_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seqtools/rnavar/pkg/rnaseq"
)

const testConfig = `
threads = 8

[reference]
fasta = "/refs/genome.fa"
gtf = "/refs/genes.gtf"
star_index = "/refs/star"
dbsnp = "/refs/dbsnp.vcf.gz"
known_indels = ["/refs/mills.vcf.gz", "/refs/1kg.vcf.gz"]
annovar_db = "/refs/annovar"

[tools]
picard = "java -jar /opt/picard.jar"
gatk = "/opt/gatk/gatk"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "rnavar.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o666))

	return path
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	cfg, err := rnaseq.LoadConfig(writeConfig(t, testConfig))
	require.NoError(t, err)

	assert.Equal(t, "/refs/genome.fa", cfg.Reference.Fasta)
	assert.Equal(t, "/refs/genes.gtf", cfg.Reference.GTF)
	assert.Equal(t, "/refs/star", cfg.Reference.StarIndex)
	assert.Equal(t, "/refs/dbsnp.vcf.gz", cfg.Reference.DbSNP)
	assert.Equal(t, []string{"/refs/mills.vcf.gz", "/refs/1kg.vcf.gz"}, cfg.Reference.KnownIndels)
	assert.Equal(t, "/refs/annovar", cfg.Reference.AnnovarDB)
	assert.Equal(t, "hg38", cfg.Reference.AnnovarBuild)
	assert.Equal(t, 8, cfg.Threads)

	assert.Equal(t, "java -jar /opt/picard.jar", cfg.Tools.Path(rnaseq.ToolPicard))
	assert.Equal(t, "/opt/gatk/gatk", cfg.Tools.Path(rnaseq.ToolGATK))
	assert.Equal(t, "STAR", cfg.Tools.Path(rnaseq.ToolSTAR))
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := rnaseq.LoadConfig(writeConfig(t, `
[reference]
fasta = "/refs/genome.fa"
gtf = "/refs/genes.gtf"
star_index = "/refs/star"
dbsnp = "/refs/dbsnp.vcf.gz"
annovar_db = "/refs/annovar"
`))
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Threads)
	assert.Equal(t, "hg38", cfg.Reference.AnnovarBuild)
	assert.Empty(t, cfg.Reference.KnownIndels)
}

func TestLoadConfigMissingRequired(t *testing.T) {
	t.Parallel()

	_, err := rnaseq.LoadConfig(writeConfig(t, `
[reference]
fasta = "/refs/genome.fa"
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be set")
}

func TestLoadConfigMissingFile(t *testing.T) {
	t.Parallel()

	_, err := rnaseq.LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestReferenceFiles(t *testing.T) {
	t.Parallel()

	ref := rnaseq.Reference{
		Fasta:       "/refs/genome.fa",
		GTF:         "/refs/genes.gtf",
		StarIndex:   "/refs/star",
		DbSNP:       "/refs/dbsnp.vcf.gz",
		KnownIndels: []string{"/refs/mills.vcf.gz"},
		AnnovarDB:   "/refs/annovar",
	}

	assert.Equal(t, []string{
		"/refs/genome.fa",
		"/refs/genes.gtf",
		"/refs/star",
		"/refs/dbsnp.vcf.gz",
		"/refs/annovar",
		"/refs/mills.vcf.gz",
	}, ref.Files())
}

func TestToolsRequired(t *testing.T) {
	t.Parallel()

	required := rnaseq.Required()
	assert.Equal(t, []string{
		"fastqc", "trim_galore", "STAR", "samtools",
		"picard", "gatk", "table_annovar.pl", "multiqc",
	}, required)

	tools := rnaseq.Tools{"picard": "java -jar picard.jar"}
	resolved := tools.Resolved()
	require.Len(t, resolved, len(required))
	assert.Contains(t, resolved, "java -jar picard.jar")
	assert.NotContains(t, resolved, "picard")
}
