package rnaseq

import (
	"strconv"

	"github.com/pkg/errors"

	"github.com/seqtools/rnavar/internal/execute"
	"github.com/seqtools/rnavar/pkg/pipeline"
	"github.com/seqtools/rnavar/pkg/pipeline/model"
)

// Stage names in execution order.
const (
	StageFastQC     = "fastqc"
	StageTrim       = "trim"
	StageAlign      = "align"
	StageIndex      = "index"
	StageMarkDup    = "mark_duplicates"
	StageReadGroups = "add_read_groups"
	StageSplitReads = "split_reads"
	StageRecal      = "recalibrate"
	StageCall       = "call_variants"
	StageGenotype   = "genotype"
	StageFilter     = "filter_variants"
	StageAnnotate   = "annotate"
	StageMultiQC    = "multiqc"
)

// Build assembles the variant-calling pipeline for one sample. The returned
// pipeline runs with a shell runner by default; callers may swap it for a
// dry-run printer.
func Build(sample string, layout Layout, cfg *Config, opts ...model.PipelineOption) (*pipeline.Pipeline, error) {
	if sample == "" {
		return nil, errors.New("sample must be set")
	}

	err := layout.MkDirs(sample)
	if err != nil {
		return nil, err
	}

	ref := cfg.Reference
	vars := pipeline.Vars{
		"sample":      sample,
		"raw":         layout.RawData(),
		"work":        layout.WorkingData(),
		"res":         layout.ResultDir(sample),
		"fastqc_dir":  layout.FastqcDir(sample),
		"multiqc_dir": layout.MultiQCDir(sample),

		"fasta":         ref.Fasta,
		"gtf":           ref.GTF,
		"star_index":    ref.StarIndex,
		"dbsnp":         ref.DbSNP,
		"known_sites":   ref.knownSitesArgs(),
		"annovar_db":    ref.AnnovarDB,
		"annovar_build": ref.AnnovarBuild,
		"threads":       strconv.Itoa(cfg.Threads),

		"fastqc":      cfg.Tools.Path(ToolFastQC),
		"trim_galore": cfg.Tools.Path(ToolTrimGalore),
		"star":        cfg.Tools.Path(ToolSTAR),
		"samtools":    cfg.Tools.Path(ToolSamtools),
		"picard":      cfg.Tools.Path(ToolPicard),
		"gatk":        cfg.Tools.Path(ToolGATK),
		"annovar":     cfg.Tools.Path(ToolAnnovar),
		"multiqc":     cfg.Tools.Path(ToolMultiQC),
	}

	p, err := pipeline.New("rnavar-"+sample, vars, opts...)
	if err != nil {
		return nil, err
	}
	p.Runner = execute.NewShell(execute.Options{})

	p.Provide(layout.FastqR1(sample), layout.FastqR2(sample))
	p.Provide(ref.Files()...)

	stages := []pipeline.Stage{
		{
			Name: StageFastQC,
			Tool: cfg.Tools.Path(ToolFastQC),
			Command: `{fastqc} {raw}/{sample}_1.fq.gz {raw}/{sample}_2.fq.gz` +
				` --outdir {fastqc_dir}`,
			Inputs:  []string{"{raw}/{sample}_1.fq.gz", "{raw}/{sample}_2.fq.gz"},
			Outputs: []string{"{fastqc_dir}/{sample}_1_fastqc.html", "{fastqc_dir}/{sample}_2_fastqc.html"},
		},
		{
			Name: StageTrim,
			Tool: cfg.Tools.Path(ToolTrimGalore),
			Command: `{trim_galore} --paired --gzip --output_dir {work}` +
				` {raw}/{sample}_1.fq.gz {raw}/{sample}_2.fq.gz`,
			Inputs:  []string{"{raw}/{sample}_1.fq.gz", "{raw}/{sample}_2.fq.gz"},
			Outputs: []string{"{work}/{sample}_1_val_1.fq.gz", "{work}/{sample}_2_val_2.fq.gz"},
		},
		{
			Name: StageAlign,
			Tool: cfg.Tools.Path(ToolSTAR),
			Command: `{star} --runMode alignReads` +
				` --genomeDir {star_index}` +
				` --sjdbGTFfile {gtf}` +
				` --readFilesIn {work}/{sample}_1_val_1.fq.gz {work}/{sample}_2_val_2.fq.gz` +
				` --readFilesCommand zcat` +
				` --runThreadN {threads}` +
				` --twopassMode Basic` +
				` --outSAMtype BAM SortedByCoordinate` +
				` --outFileNamePrefix {res}/{sample}_STARout`,
			Inputs:  []string{"{work}/{sample}_1_val_1.fq.gz", "{work}/{sample}_2_val_2.fq.gz", "{star_index}", "{gtf}"},
			Outputs: []string{"{res}/{sample}_STARoutAligned.sortedByCoord.out.bam"},
		},
		{
			Name:    StageIndex,
			Tool:    cfg.Tools.Path(ToolSamtools),
			Command: `{samtools} index {res}/{sample}_STARoutAligned.sortedByCoord.out.bam`,
			Inputs:  []string{"{res}/{sample}_STARoutAligned.sortedByCoord.out.bam"},
			Outputs: []string{"{res}/{sample}_STARoutAligned.sortedByCoord.out.bam.bai"},
		},
		{
			Name: StageMarkDup,
			Tool: cfg.Tools.Path(ToolPicard),
			Command: `{picard} MarkDuplicates` +
				` INPUT={res}/{sample}_STARoutAligned.sortedByCoord.out.bam` +
				` OUTPUT={work}/{sample}_dedup.bam` +
				` METRICS_FILE={work}/{sample}_dedup_metrics.txt` +
				` ASSUME_SORTED=true VALIDATION_STRINGENCY=LENIENT CREATE_INDEX=true`,
			Inputs: []string{
				"{res}/{sample}_STARoutAligned.sortedByCoord.out.bam",
				"{res}/{sample}_STARoutAligned.sortedByCoord.out.bam.bai",
			},
			Outputs: []string{"{work}/{sample}_dedup.bam", "{work}/{sample}_dedup_metrics.txt"},
		},
		{
			Name: StageReadGroups,
			Tool: cfg.Tools.Path(ToolPicard),
			Command: `{picard} AddOrReplaceReadGroups` +
				` INPUT={work}/{sample}_dedup.bam` +
				` OUTPUT={work}/{sample}_rg.bam` +
				` RGID={sample} RGLB={sample} RGPL=illumina RGPU={sample} RGSM={sample}` +
				` SORT_ORDER=coordinate VALIDATION_STRINGENCY=LENIENT CREATE_INDEX=true`,
			Inputs:  []string{"{work}/{sample}_dedup.bam"},
			Outputs: []string{"{work}/{sample}_rg.bam"},
		},
		{
			Name: StageSplitReads,
			Tool: cfg.Tools.Path(ToolGATK),
			Command: `{gatk} SplitNCigarReads` +
				` -R {fasta}` +
				` -I {work}/{sample}_rg.bam` +
				` -O {work}/{sample}_split.bam`,
			Inputs:  []string{"{work}/{sample}_rg.bam", "{fasta}"},
			Outputs: []string{"{work}/{sample}_split.bam"},
		},
		{
			Name: StageRecal,
			Tool: cfg.Tools.Path(ToolGATK),
			Command: `{gatk} BaseRecalibrator` +
				` -R {fasta}` +
				` -I {work}/{sample}_split.bam` +
				` {known_sites}` +
				` -O {work}/{sample}_recal.table` +
				` && {gatk} ApplyBQSR` +
				` -R {fasta}` +
				` -I {work}/{sample}_split.bam` +
				` --bqsr-recal-file {work}/{sample}_recal.table` +
				` -O {work}/{sample}_recal.bam`,
			Inputs:  []string{"{work}/{sample}_split.bam", "{fasta}", "{dbsnp}"},
			Outputs: []string{"{work}/{sample}_recal.table", "{work}/{sample}_recal.bam"},
		},
		{
			Name: StageCall,
			Tool: cfg.Tools.Path(ToolGATK),
			Command: `{gatk} HaplotypeCaller` +
				` -R {fasta}` +
				` -I {work}/{sample}_recal.bam` +
				` --dont-use-soft-clipped-bases true` +
				` --standard-min-confidence-threshold-for-calling 20.0` +
				` -ERC GVCF` +
				` -O {res}/{sample}.g.vcf.gz`,
			Inputs:  []string{"{work}/{sample}_recal.bam", "{fasta}"},
			Outputs: []string{"{res}/{sample}.g.vcf.gz"},
		},
		{
			Name: StageGenotype,
			Tool: cfg.Tools.Path(ToolGATK),
			Command: `{gatk} GenotypeGVCFs` +
				` -R {fasta}` +
				` -V {res}/{sample}.g.vcf.gz` +
				` -O {res}/{sample}.vcf.gz`,
			Inputs:  []string{"{res}/{sample}.g.vcf.gz", "{fasta}"},
			Outputs: []string{"{res}/{sample}.vcf.gz"},
		},
		{
			Name: StageFilter,
			Tool: cfg.Tools.Path(ToolGATK),
			Command: `{gatk} VariantFiltration` +
				` -R {fasta}` +
				` -V {res}/{sample}.vcf.gz` +
				` --window 35 --cluster 3` +
				` --filter-name FS --filter-expression "FS > 30.0"` +
				` --filter-name QD --filter-expression "QD < 2.0"` +
				` -O {res}/{sample}_filtered.vcf.gz`,
			Inputs:  []string{"{res}/{sample}.vcf.gz", "{fasta}"},
			Outputs: []string{"{res}/{sample}_filtered.vcf.gz"},
		},
		{
			Name: StageAnnotate,
			Tool: cfg.Tools.Path(ToolAnnovar),
			Command: `{annovar} {res}/{sample}_filtered.vcf.gz {annovar_db}` +
				` -buildver {annovar_build}` +
				` -out {res}/{sample}_anno` +
				` -remove -protocol refGene,cytoBand,dbnsfp42a -operation g,r,f` +
				` -nastring . -vcfinput`,
			Inputs:  []string{"{res}/{sample}_filtered.vcf.gz", "{annovar_db}"},
			Outputs: []string{"{res}/{sample}_anno.{annovar_build}_multianno.txt"},
		},
		{
			Name: StageMultiQC,
			Tool: cfg.Tools.Path(ToolMultiQC),
			Command: `{multiqc} --force {fastqc_dir} {work} {res}` +
				` --outdir {multiqc_dir}`,
			Inputs: []string{
				"{fastqc_dir}/{sample}_1_fastqc.html",
				"{fastqc_dir}/{sample}_2_fastqc.html",
				"{work}/{sample}_dedup_metrics.txt",
				"{res}/{sample}_filtered.vcf.gz",
			},
			Outputs: []string{"{multiqc_dir}/multiqc_report.html"},
		},
	}

	for _, stage := range stages {
		err := p.Add(stage)
		if err != nil {
			return nil, err
		}
	}

	err = p.Validate()
	if err != nil {
		return nil, err
	}

	return p, nil
}
