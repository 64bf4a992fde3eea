package pipeline

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/seqtools/rnavar/pkg/pipeline/model"
)

// Pipeline is an ordered list of stages coupled only through artifact paths
// on the file system. Stages run strictly sequentially: each one blocks until
// its child process exits before the next is launched.
type Pipeline struct {
	// Runner launches a rendered stage. It must be set before Run.
	Runner Runner
	// Skip, when set, is consulted before each stage; a true return records
	// the stage as skipped instead of launching it.
	Skip func(stageName string) bool

	name      string
	vars      Vars
	opts      []model.PipelineOption
	stages    []*model.StageInfo
	retries   map[string]int
	producers map[string]*model.StageInfo
	provided  map[string]struct{}
	startTime time.Time
}

// New creates a new pipeline. vars are substituted into every stage command
// and artifact template added afterwards.
func New(name string, vars Vars, opts ...model.PipelineOption) (*Pipeline, error) {
	pipe := &Pipeline{
		name:      name,
		vars:      vars,
		opts:      opts,
		retries:   map[string]int{},
		producers: map[string]*model.StageInfo{},
		provided:  map[string]struct{}{},
		startTime: time.Now(),
	}

	for _, opt := range opts {
		err := opt.New()
		if err != nil {
			return nil, errors.Wrap(err, "unable to apply pipeline option")
		}
	}

	return pipe, nil
}

// Name returns the pipeline name.
func (p *Pipeline) Name() string {
	return p.name
}

// Stages returns the stages in execution order, fully rendered.
func (p *Pipeline) Stages() []*model.StageInfo {
	return p.stages
}

// Provide registers artifacts that exist before the first stage runs: the
// raw inputs and the read-only reference bundle.
func (p *Pipeline) Provide(paths ...string) {
	for _, path := range paths {
		p.provided[path] = struct{}{}
	}
}

// Add appends a stage. The stage templates are rendered immediately, so a
// bad placeholder is reported here rather than mid-run.
func (p *Pipeline) Add(stage Stage, opts ...StageOption) error {
	if p == nil {
		return ErrPipelineMustBeSet
	}
	if stage.Name == "" {
		return ErrStageMustBeSet
	}

	for _, opt := range opts {
		opt(&stage)
	}

	for _, existing := range p.stages {
		if existing.Name == stage.Name {
			return errors.Wrap(ErrDuplicateStage, stage.Name)
		}
	}

	info, err := stage.resolve(p.vars)
	if err != nil {
		return err
	}

	parents := p.parentsOf(info)
	for _, opt := range p.opts {
		err := opt.PrepareStage(parents, info)
		if err != nil {
			return errors.Wrapf(err, "unable to prepare stage %s", info.Name)
		}
	}

	for _, out := range info.Outputs {
		p.producers[out] = info
	}
	p.retries[info.Name] = stage.Retries
	p.stages = append(p.stages, info)

	return nil
}

// parentsOf returns the distinct stages producing the inputs of info,
// preserving the order stages were added in.
func (p *Pipeline) parentsOf(info *model.StageInfo) []*model.StageInfo {
	seen := map[string]struct{}{}
	parents := []*model.StageInfo{}

	for _, in := range info.Inputs {
		producer, ok := p.producers[in]
		if !ok {
			continue
		}
		if _, dup := seen[producer.Name]; dup {
			continue
		}
		seen[producer.Name] = struct{}{}
		parents = append(parents, producer)
	}

	return parents
}

// Validate checks the artifact hand-off between stages: every input of every
// stage must be produced by an earlier stage or registered with Provide.
func (p *Pipeline) Validate() error {
	if len(p.stages) == 0 {
		return ErrNoStages
	}

	available := map[string]struct{}{}
	for path := range p.provided {
		available[path] = struct{}{}
	}

	for _, stage := range p.stages {
		for _, in := range stage.Inputs {
			if _, ok := available[in]; !ok {
				return errors.Wrapf(ErrUnboundInput, "stage %s: %s", stage.Name, in)
			}
		}
		for _, out := range stage.Outputs {
			available[out] = struct{}{}
		}
	}

	return nil
}

// Run validates the pipeline and executes its stages in order. The first
// stage failure aborts the run: its exit error is wrapped into the returned
// error and every remaining stage is reported as not run. The partial Result
// is returned in both cases.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	if p == nil {
		return nil, ErrPipelineMustBeSet
	}
	if p.Runner == nil {
		return nil, ErrRunnerMustBeSet
	}

	err := p.Validate()
	if err != nil {
		return nil, err
	}

	res := &Result{Pipeline: p.name, Stages: make([]StageResult, 0, len(p.stages))}

	var failed error
	for _, stage := range p.stages {
		if failed != nil {
			res.Stages = append(res.Stages, StageResult{Name: stage.Name, Tool: stage.Tool, Status: model.StatusNotRun})

			continue
		}

		res.Stages = append(res.Stages, p.runStage(ctx, stage))
		last := &res.Stages[len(res.Stages)-1]
		if last.Status == model.StatusFailed {
			failed = errors.Wrap(last.Err, stage.Name)
		}
	}

	res.Duration = time.Since(p.startTime)

	finishErr := p.finishRun()
	if failed != nil {
		return res, failed
	}

	return res, finishErr
}

func (p *Pipeline) runStage(ctx context.Context, stage *model.StageInfo) StageResult {
	sr := StageResult{Name: stage.Name, Tool: stage.Tool}

	if p.Skip != nil && p.Skip(stage.Name) {
		sr.Status = model.StatusSkipped
		p.notifyEnd(stage, model.StatusSkipped, 0)

		return sr
	}

	for _, opt := range p.opts {
		if err := opt.OnStageStart(stage); err != nil {
			sr.Status = model.StatusFailed
			sr.Err = errors.Wrap(err, "unable to run stage start hook")

			return sr
		}
	}

	start := time.Now()
	var err error
	for attempt := 0; attempt <= p.retries[stage.Name]; attempt++ {
		sr.Attempts++

		err = ctx.Err()
		if err != nil {
			break
		}

		err = p.Runner.Run(ctx, stage)
		if err == nil {
			break
		}
	}
	sr.Duration = time.Since(start)

	if err != nil {
		sr.Status = model.StatusFailed
		sr.Err = err
	} else {
		sr.Status = model.StatusDone
	}
	p.notifyEnd(stage, sr.Status, sr.Duration)

	return sr
}

func (p *Pipeline) notifyEnd(stage *model.StageInfo, status model.StageStatus, elapsed time.Duration) {
	for _, opt := range p.opts {
		// end hooks are observers; their errors must not mask the stage outcome
		_ = opt.OnStageEnd(stage, status, elapsed)
	}
}

func (p *Pipeline) finishRun() error {
	for _, opt := range p.opts {
		err := opt.Finish()
		if err != nil {
			return errors.Wrap(err, "unable to finish pipeline option")
		}
	}

	return nil
}
