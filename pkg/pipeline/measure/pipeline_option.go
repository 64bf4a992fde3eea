package measure

import (
	"time"

	"github.com/seqtools/rnavar/pkg/pipeline/model"
)

type pipelineMeasure struct {
	Measure
	startTime time.Time
}

func (pm *pipelineMeasure) New() error {
	pm.AddMetric(model.StartStage.Name)
	pm.AddMetric(model.EndStage.Name)

	return nil
}

func (pm *pipelineMeasure) PrepareStage(parents []*model.StageInfo, stage *model.StageInfo) error {
	pm.AddMetric(stage.Name)

	return nil
}

func (pm *pipelineMeasure) OnStageStart(stage *model.StageInfo) error {
	return nil
}

func (pm *pipelineMeasure) OnStageEnd(stage *model.StageInfo, status model.StageStatus, elapsed time.Duration) error {
	if status == model.StatusDone || status == model.StatusFailed {
		pm.GetMetric(stage.Name).AddDuration(elapsed)
	}

	return nil
}

func (pm *pipelineMeasure) Finish() error {
	pm.GetMetric(model.EndStage.Name).SetTotalDuration(time.Since(pm.startTime))

	return nil
}

func PipelineMeasure(measure Measure) model.PipelineOption {
	return &pipelineMeasure{measure, time.Now()}
}
