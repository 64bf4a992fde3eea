package pipeline

import (
	"context"

	"github.com/seqtools/rnavar/pkg/pipeline/model"
)

// Runner executes a fully rendered stage and blocks until the child process
// exits. Implementations decide how the command is launched; the pipeline
// only sees the returned error, so retry, dry run and journaling sit outside
// tool invocation details.
type Runner interface {
	Run(ctx context.Context, stage *model.StageInfo) error
}

// RunnerFunc adapts a function to the Runner interface.
type RunnerFunc func(ctx context.Context, stage *model.StageInfo) error

func (f RunnerFunc) Run(ctx context.Context, stage *model.StageInfo) error {
	return f(ctx, stage)
}
