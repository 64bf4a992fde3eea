package rnaseq_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seqtools/rnavar/pkg/rnaseq"
)

func TestLayoutStarPrefix(t *testing.T) {
	t.Parallel()

	l := rnaseq.Layout{Root: "/data/proj"}
	assert.Equal(t, "/data/proj/result/sample01/sample01_STARout", l.StarPrefix("sample01"))
	assert.Equal(t, "/data/proj/result/sample01/sample01_STARoutAligned.sortedByCoord.out.bam", l.AlignedBam("sample01"))
	assert.Equal(t, l.AlignedBam("sample01")+".bai", l.AlignedBai("sample01"))
}

func TestLayoutRawAndWorking(t *testing.T) {
	t.Parallel()

	l := rnaseq.Layout{Root: "/data/proj"}
	assert.Equal(t, "/data/proj/raw_data/sample01_1.fq.gz", l.FastqR1("sample01"))
	assert.Equal(t, "/data/proj/raw_data/sample01_2.fq.gz", l.FastqR2("sample01"))
	assert.Equal(t, "/data/proj/working_data/sample01_1_val_1.fq.gz", l.TrimmedR1("sample01"))
	assert.Equal(t, "/data/proj/working_data/sample01_2_val_2.fq.gz", l.TrimmedR2("sample01"))
	assert.Equal(t, "/data/proj/working_data/sample01_dedup.bam", l.DedupBam("sample01"))
	assert.Equal(t, "/data/proj/working_data/sample01_rg.bam", l.ReadGroupBam("sample01"))
	assert.Equal(t, "/data/proj/working_data/sample01_split.bam", l.SplitBam("sample01"))
}

func TestLayoutRecalBamName(t *testing.T) {
	t.Parallel()

	l := rnaseq.Layout{Root: "/data/proj"}
	recal := l.RecalBam("sample01")
	assert.Equal(t, "/data/proj/working_data/sample01_recal.bam", recal)
	assert.True(t, strings.HasSuffix(recal, ".bam"))
	assert.Equal(t, "/data/proj/working_data/sample01_recal.table", l.RecalTable("sample01"))
}

func TestLayoutResults(t *testing.T) {
	t.Parallel()

	l := rnaseq.Layout{Root: "/data/proj"}
	assert.Equal(t, "/data/proj/result/sample01/sample01.g.vcf.gz", l.GVCF("sample01"))
	assert.Equal(t, "/data/proj/result/sample01/sample01.vcf.gz", l.VCF("sample01"))
	assert.Equal(t, "/data/proj/result/sample01/sample01_filtered.vcf.gz", l.FilteredVCF("sample01"))
	assert.Equal(t, "/data/proj/result/sample01/sample01_anno", l.AnnoPrefix("sample01"))
	assert.Equal(t, "/data/proj/result/sample01/sample01_anno.hg38_multianno.txt", l.AnnoTable("sample01", "hg38"))
	assert.Equal(t, "/data/proj/result/sample01/multiqc/multiqc_report.html", l.MultiQCReport("sample01"))
	assert.Equal(t, "/data/proj/rnavar_journal.log", l.JournalPath())
}

func TestLayoutMkDirs(t *testing.T) {
	t.Parallel()

	l := rnaseq.Layout{Root: t.TempDir()}
	require.NoError(t, l.MkDirs("sample01"))

	for _, dir := range []string{l.WorkingData(), l.FastqcDir("sample01"), l.MultiQCDir("sample01")} {
		assert.DirExists(t, dir)
	}
}
