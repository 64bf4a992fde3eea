package rnaseq

// Tool binary names as they appear on PATH. The config file may map any of
// them to an absolute path or wrapper invocation.
const (
	ToolFastQC     = "fastqc"
	ToolTrimGalore = "trim_galore"
	ToolSTAR       = "STAR"
	ToolSamtools   = "samtools"
	ToolPicard     = "picard"
	ToolGATK       = "gatk"
	ToolAnnovar    = "table_annovar.pl"
	ToolMultiQC    = "multiqc"
)

// Tools maps tool names to overridden invocations.
type Tools map[string]string

// Path resolves a tool name to the configured override, or the name itself.
func (t Tools) Path(name string) string {
	if p, ok := t[name]; ok && p != "" {
		return p
	}

	return name
}

// Required lists every binary the pipeline invokes, in stage order.
func Required() []string {
	return []string{
		ToolFastQC,
		ToolTrimGalore,
		ToolSTAR,
		ToolSamtools,
		ToolPicard,
		ToolGATK,
		ToolAnnovar,
		ToolMultiQC,
	}
}

// Resolved applies the overrides in t to every required tool.
func (t Tools) Resolved() []string {
	resolved := make([]string, 0, len(Required()))
	for _, name := range Required() {
		resolved = append(resolved, t.Path(name))
	}

	return resolved
}
