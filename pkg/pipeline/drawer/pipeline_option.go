package drawer

import (
	"time"

	"github.com/pkg/errors"

	"github.com/seqtools/rnavar/pkg/pipeline/measure"
	"github.com/seqtools/rnavar/pkg/pipeline/model"
)

type pipelineDrawer struct {
	Drawer
	m         measure.Measure
	startTime time.Time
	children  map[string]int
}

func (pd *pipelineDrawer) New() error {
	err := pd.AddStage(model.StartStage.Name)
	if err != nil {
		return errors.Wrap(err, "unable to add start stage to drawer")
	}
	err = pd.AddStage(model.EndStage.Name)
	if err != nil {
		return errors.Wrap(err, "unable to add end stage to drawer")
	}

	return nil
}

func (pd *pipelineDrawer) PrepareStage(parents []*model.StageInfo, stage *model.StageInfo) error {
	err := pd.AddStage(stage.Name)
	if err != nil {
		return err
	}

	pd.children[stage.Name] += 0

	if len(parents) == 0 {
		return pd.AddLink(model.StartStage.Name, stage.Name)
	}

	for _, parent := range parents {
		err := pd.AddLink(parent.Name, stage.Name)
		if err != nil {
			return err
		}
		pd.children[parent.Name]++
	}

	return nil
}

func (pd *pipelineDrawer) OnStageStart(stage *model.StageInfo) error {
	return nil
}

func (pd *pipelineDrawer) OnStageEnd(stage *model.StageInfo, status model.StageStatus, elapsed time.Duration) error {
	return pd.SetStatus(stage.Name, status)
}

func (pd *pipelineDrawer) Finish() error {
	// stages nothing consumes from are the terminal ones
	for name, count := range pd.children {
		if count > 0 {
			continue
		}
		err := pd.AddLink(name, model.EndStage.Name)
		if err != nil {
			return errors.Wrap(err, "unable to link terminal stage")
		}
	}

	err := pd.SetTotalTime(model.EndStage.Name, pd.startTime)
	if err != nil {
		return errors.Wrap(err, "unable to set total time")
	}

	if pd.m != nil {
		err = pd.AddMeasure(pd.m)
		if err != nil {
			return errors.Wrap(err, "unable to add measure")
		}
	}

	err = pd.Draw()
	if err != nil {
		return errors.Wrap(err, "unable to draw pipeline")
	}

	return nil
}

// PipelineDrawer returns a pipeline option that renders the stage graph when
// the run finishes. measure may be nil.
func PipelineDrawer(drawer Drawer, measure measure.Measure) model.PipelineOption {
	return &pipelineDrawer{drawer, measure, time.Now(), map[string]int{}}
}
