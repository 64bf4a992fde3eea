package pipeline

import (
	"time"

	"github.com/seqtools/rnavar/pkg/pipeline/model"
)

// StageResult records what happened to one stage during a run.
type StageResult struct {
	Name     string
	Tool     string
	Status   model.StageStatus
	Attempts int
	Duration time.Duration
	Err      error
}

// Result is the aggregate outcome of a run. The run stops at the first
// failed stage; every stage after it is reported as not run.
type Result struct {
	Pipeline string
	Stages   []StageResult
	Duration time.Duration
}

// OK reports whether every stage either completed or was skipped.
func (r *Result) OK() bool {
	return r.Failed() == nil
}

// Failed returns the stage that aborted the run, or nil.
func (r *Result) Failed() *StageResult {
	for i := range r.Stages {
		if r.Stages[i].Status == model.StatusFailed {
			return &r.Stages[i]
		}
	}

	return nil
}
