package drawer

import (
	"os"
	"sort"
	"time"

	"github.com/dominikbraun/graph"
	"github.com/dominikbraun/graph/draw"
	"github.com/pkg/errors"
	"gopkg.in/go-playground/colors.v1" //nolint

	"github.com/seqtools/rnavar/internal/store"
	"github.com/seqtools/rnavar/pkg/pipeline/measure"
	"github.com/seqtools/rnavar/pkg/pipeline/model"
)

// DOTDrawer renders the stage graph to a Graphviz DOT file. Stage vertices
// carry their average duration as an external label and are heat-coloured
// from blue (fastest) to red (slowest) when a measure is attached.
type DOTDrawer struct {
	graph       graph.Graph[string, string]
	store       store.CustomStore[string, string]
	dotFileName string
}

// NewDOTDrawer creates a new DOT drawer. The stage graph rejects cycles:
// an artifact produced downstream can never feed an upstream stage.
func NewDOTDrawer(dotFileName string) *DOTDrawer {
	st := store.NewMemoryStore[string, string]()

	return &DOTDrawer{
		dotFileName: dotFileName,
		store:       st,
		graph:       graph.NewWithStore(graph.StringHash, st, graph.Directed(), graph.PreventCycles()),
	}
}

// AddStage adds a stage to the pipeline graph.
func (d *DOTDrawer) AddStage(name string) error {
	err := d.graph.AddVertex(name)
	if err != nil {
		return errors.Wrap(err, "unable to add vertex")
	}

	return nil
}

// AddLink adds a link between parent and child stages.
func (d *DOTDrawer) AddLink(parentName, childName string) error {
	err := d.graph.AddEdge(parentName, childName)
	if err != nil {
		return errors.Wrapf(err, "unable to add edge from %s to %s", parentName, childName)
	}

	return nil
}

// SetStatus marks the final status of a stage on its vertex.
func (d *DOTDrawer) SetStatus(name string, status model.StageStatus) error {
	attrs := map[model.StageStatus]string{
		model.StatusFailed:  "red",
		model.StatusSkipped: "gray",
		model.StatusNotRun:  "gray",
	}

	c, ok := attrs[status]
	if !ok {
		return nil
	}

	d.store.UpdateVertex(name, func(p *graph.VertexProperties) {
		p.Attributes["fontcolor"] = c
		p.Attributes["label"] = name + "\\n(" + string(status) + ")"
	})

	return nil
}

// SetTotalTime sets the total run time for the stage.
func (d *DOTDrawer) SetTotalTime(stageName string, startTime time.Time) error {
	d.store.UpdateVertex(stageName, func(p *graph.VertexProperties) {
		p.Attributes["xlabel"] = time.Since(startTime).String()
	})

	return nil
}

const maxRGB = 240

// AddMeasure adds measure to drawer.
func (d *DOTDrawer) AddMeasure(msr measure.Measure) error {
	durations := []time.Duration{}
	for _, mt := range msr.AllMetrics() {
		if mt.AVGDuration() == 0 {
			continue
		}
		durations = append(durations, mt.AVGDuration())
	}
	if len(durations) == 0 {
		return nil
	}

	sort.Slice(durations, func(i, j int) bool {
		return durations[i] > durations[j]
	})
	maxValue := durations[0]
	minValue := durations[len(durations)-1]

	for name, mt := range msr.AllMetrics() {
		avg := mt.AVGDuration()
		if avg == 0 {
			continue
		}

		fraction := 1.0
		if maxValue > minValue {
			fraction = float64(avg-minValue) / float64(maxValue-minValue)
		}

		red := maxRGB * fraction
		blue := -maxRGB*fraction + maxRGB

		heat, err := colors.RGB(uint8(red), 0, uint8(blue)) //nolint
		if err != nil {
			return errors.Wrap(err, "unable to get colour")
		}

		d.store.UpdateVertex(name, func(p *graph.VertexProperties) {
			p.Attributes["xlabel"] = avg.String()
			p.Attributes["color"] = heat.ToHEX().String()
		})
	}

	return nil
}

// Draw creates a DOT file with the pipeline graph.
func (d *DOTDrawer) Draw() error {
	file, err := os.Create(d.dotFileName)
	if err != nil {
		return errors.Wrapf(err, "unable to create file %s", d.dotFileName)
	}
	defer file.Close()

	err = draw.DOT(d.graph, file)
	if err != nil {
		return errors.Wrapf(err, "unable to create dot file %s", d.dotFileName)
	}

	return nil
}

var _ Drawer = (*DOTDrawer)(nil)
