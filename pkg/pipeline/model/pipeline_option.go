package model

import "time"

// PipelineOption defines the interface for pipeline options.
type PipelineOption interface {
	// New initialises the pipeline option.
	New() error

	// PrepareStage runs when a stage is added to the pipeline. parents holds
	// the stages producing the artifacts this stage consumes; it is empty for
	// stages fed only by raw inputs or the reference bundle.
	PrepareStage(parents []*StageInfo, stage *StageInfo) error

	// OnStageStart runs right before the stage command is launched.
	OnStageStart(stage *StageInfo) error

	// OnStageEnd runs after the stage finished, with its final status and the
	// wall-clock time it took.
	OnStageEnd(stage *StageInfo, status StageStatus, elapsed time.Duration) error

	// Finish runs after the pipeline is finished, whatever the outcome.
	Finish() error
}
