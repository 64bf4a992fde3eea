package journal

import (
	"time"

	"github.com/seqtools/rnavar/pkg/pipeline/model"
)

type pipelineJournal struct {
	j *Journal
}

func (pj *pipelineJournal) New() error {
	return nil
}

func (pj *pipelineJournal) PrepareStage(parents []*model.StageInfo, stage *model.StageInfo) error {
	return nil
}

func (pj *pipelineJournal) OnStageStart(stage *model.StageInfo) error {
	pj.j.Record(stage.Name, StatusStarted, nil)

	return nil
}

func (pj *pipelineJournal) OnStageEnd(stage *model.StageInfo, status model.StageStatus, elapsed time.Duration) error {
	switch status {
	case model.StatusDone:
		pj.j.Record(stage.Name, StatusCompleted, nil)
	case model.StatusSkipped:
		pj.j.Record(stage.Name, StatusSkipped, nil)
	case model.StatusFailed:
		pj.j.Record(stage.Name, StatusFailed, nil)
	case model.StatusNotRun:
	}

	return nil
}

func (pj *pipelineJournal) Finish() error {
	return nil
}

// PipelineJournal returns a pipeline option recording every stage
// transition into j.
func PipelineJournal(j *Journal) model.PipelineOption {
	return &pipelineJournal{j}
}
