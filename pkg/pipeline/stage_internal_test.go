package pipeline

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	got, err := render("{tool} index {work}/{sample}.bam", Vars{
		"tool":   "samtools",
		"work":   "/data/proj/working_data",
		"sample": "sample01",
	})
	require.NoError(t, err)
	assert.Equal(t, "samtools index /data/proj/working_data/sample01.bam", got)
}

func TestRenderNoPlaceholders(t *testing.T) {
	got, err := render("multiqc --force .", Vars{})
	require.NoError(t, err)
	assert.Equal(t, "multiqc --force .", got)
}

func TestRenderUnknownPlaceholder(t *testing.T) {
	_, err := render("{tool} {missing}", Vars{"tool": "samtools"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownPlaceholder))
	assert.Contains(t, err.Error(), "missing")
}

func TestStageResolve(t *testing.T) {
	stage := Stage{
		Name:    "index",
		Tool:    "samtools",
		Command: "{samtools} index {bam}",
		Inputs:  []string{"{bam}"},
		Outputs: []string{"{bam}.bai"},
	}

	info, err := stage.resolve(Vars{"samtools": "samtools", "bam": "/tmp/a.bam"})
	require.NoError(t, err)
	assert.Equal(t, "index", info.Name)
	assert.Equal(t, "samtools index /tmp/a.bam", info.Command)
	assert.Equal(t, []string{"/tmp/a.bam"}, info.Inputs)
	assert.Equal(t, []string{"/tmp/a.bam.bai"}, info.Outputs)
}

func TestStageResolveBadInputTemplate(t *testing.T) {
	stage := Stage{
		Name:    "index",
		Command: "true",
		Inputs:  []string{"{nope}"},
	}

	_, err := stage.resolve(Vars{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownPlaceholder))
}
