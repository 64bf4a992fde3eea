package rnaseq

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// Layout maps a working root onto the directory convention the pipeline
// reads and writes: raw_data/ holds the input FASTQ files, working_data/
// the intermediate BAMs and tables, result/<sample>/ the final outputs.
// Every artifact name is sample-qualified, so two samples can share a root.
type Layout struct {
	Root string
}

func (l Layout) RawData() string {
	return filepath.Join(l.Root, "raw_data")
}

func (l Layout) WorkingData() string {
	return filepath.Join(l.Root, "working_data")
}

func (l Layout) ResultDir(sample string) string {
	return filepath.Join(l.Root, "result", sample)
}

// FastqR1 and FastqR2 are the paired-end input reads.
func (l Layout) FastqR1(sample string) string {
	return filepath.Join(l.RawData(), sample+"_1.fq.gz")
}

func (l Layout) FastqR2(sample string) string {
	return filepath.Join(l.RawData(), sample+"_2.fq.gz")
}

// TrimmedR1 and TrimmedR2 follow Trim Galore's val_ naming for paired
// output.
func (l Layout) TrimmedR1(sample string) string {
	return filepath.Join(l.WorkingData(), sample+"_1_val_1.fq.gz")
}

func (l Layout) TrimmedR2(sample string) string {
	return filepath.Join(l.WorkingData(), sample+"_2_val_2.fq.gz")
}

func (l Layout) FastqcDir(sample string) string {
	return filepath.Join(l.ResultDir(sample), "fastqc")
}

func (l Layout) FastqcReportR1(sample string) string {
	return filepath.Join(l.FastqcDir(sample), sample+"_1_fastqc.html")
}

func (l Layout) FastqcReportR2(sample string) string {
	return filepath.Join(l.FastqcDir(sample), sample+"_2_fastqc.html")
}

// StarPrefix is the --outFileNamePrefix handed to the aligner; STAR appends
// its own suffixes to it.
func (l Layout) StarPrefix(sample string) string {
	return filepath.Join(l.ResultDir(sample), sample+"_STARout")
}

func (l Layout) AlignedBam(sample string) string {
	return l.StarPrefix(sample) + "Aligned.sortedByCoord.out.bam"
}

func (l Layout) AlignedBai(sample string) string {
	return l.AlignedBam(sample) + ".bai"
}

func (l Layout) DedupBam(sample string) string {
	return filepath.Join(l.WorkingData(), sample+"_dedup.bam")
}

func (l Layout) DedupMetrics(sample string) string {
	return filepath.Join(l.WorkingData(), sample+"_dedup_metrics.txt")
}

func (l Layout) ReadGroupBam(sample string) string {
	return filepath.Join(l.WorkingData(), sample+"_rg.bam")
}

func (l Layout) SplitBam(sample string) string {
	return filepath.Join(l.WorkingData(), sample+"_split.bam")
}

func (l Layout) RecalTable(sample string) string {
	return filepath.Join(l.WorkingData(), sample+"_recal.table")
}

func (l Layout) RecalBam(sample string) string {
	return filepath.Join(l.WorkingData(), sample+"_recal.bam")
}

func (l Layout) GVCF(sample string) string {
	return filepath.Join(l.ResultDir(sample), sample+".g.vcf.gz")
}

func (l Layout) VCF(sample string) string {
	return filepath.Join(l.ResultDir(sample), sample+".vcf.gz")
}

func (l Layout) FilteredVCF(sample string) string {
	return filepath.Join(l.ResultDir(sample), sample+"_filtered.vcf.gz")
}

// AnnoPrefix is the output prefix handed to the annotator, which appends
// <build>_multianno suffixes to it.
func (l Layout) AnnoPrefix(sample string) string {
	return filepath.Join(l.ResultDir(sample), sample+"_anno")
}

func (l Layout) AnnoTable(sample, build string) string {
	return l.AnnoPrefix(sample) + "." + build + "_multianno.txt"
}

func (l Layout) MultiQCDir(sample string) string {
	return filepath.Join(l.ResultDir(sample), "multiqc")
}

func (l Layout) MultiQCReport(sample string) string {
	return filepath.Join(l.MultiQCDir(sample), "multiqc_report.html")
}

func (l Layout) JournalPath() string {
	return filepath.Join(l.Root, "rnavar_journal.log")
}

// MkDirs creates the output directories for a sample. MkdirAll tolerates
// concurrent invocations for different samples sharing the same root.
func (l Layout) MkDirs(sample string) error {
	for _, dir := range []string{
		l.WorkingData(),
		l.FastqcDir(sample),
		l.MultiQCDir(sample),
	} {
		if err := os.MkdirAll(dir, 0o777); err != nil {
			return errors.Wrapf(err, "unable to create %s", dir)
		}
	}

	return nil
}
