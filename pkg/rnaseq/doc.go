// Package rnaseq assembles the RNA-seq variant-calling workflow: read QC and
// trimming, two-pass STAR alignment, GATK best-practice preprocessing, variant
// calling and filtration, ANNOVAR annotation and a MultiQC report.
//
// The package owns the directory layout and the per-sample artifact naming;
// pkg/pipeline only sees opaque paths.
package rnaseq
