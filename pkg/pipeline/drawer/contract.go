package drawer

import (
	"time"

	"github.com/seqtools/rnavar/pkg/pipeline/measure"
	"github.com/seqtools/rnavar/pkg/pipeline/model"
)

// Drawer is an interface that defines the methods for drawing a pipeline.
type Drawer interface {
	// AddStage adds a stage to the pipeline drawer.
	AddStage(stageName string) error
	// AddLink adds a link between parent and child stages.
	AddLink(parentStageName, childStageName string) error
	// SetStatus marks the final status of a stage.
	SetStatus(stageName string, status model.StageStatus) error
	// SetTotalTime sets the total run time on the given stage.
	SetTotalTime(stageName string, startTime time.Time) error
	// AddMeasure adds a measure to the pipeline drawer.
	AddMeasure(measure measure.Measure) error
	// Draw creates a file with the pipeline graph.
	Draw() error
}
