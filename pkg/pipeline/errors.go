package pipeline

import (
	"github.com/pkg/errors"
)

var (
	ErrPipelineMustBeSet  = errors.New("p must be set")
	ErrStageMustBeSet     = errors.New("stage name must be set")
	ErrRunnerMustBeSet    = errors.New("runner must be set")
	ErrDuplicateStage     = errors.New("stage name already used")
	ErrNoStages           = errors.New("pipeline has no stages")
	ErrUnknownPlaceholder = errors.New("unknown placeholder")

	// ErrUnboundInput reports a stage input artifact that no earlier stage
	// produces and that was not registered with Provide. The original naming
	// convention made this a silent runtime breakage; here it fails Validate
	// before any process is launched.
	ErrUnboundInput = errors.New("input artifact has no producer")
)
