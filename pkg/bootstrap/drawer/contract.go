package drawer

import (
	"time"

	"github.com/askiada/go-bootstrap/pkg/bootstrap/measure"
)

// Drawer renders a finalized initialization pipeline.
type Drawer interface {
	// AddStep adds a configuration step to the graph.
	AddStep(stepName string) error
	// AddLink links a step to the one applied right after it.
	AddLink(parentStepName, childStepName string) error
	// Draw writes the pipeline graph out.
	Draw() error
	// SetTotalTime labels a step with the elapsed time since startTime.
	SetTotalTime(stepName string, startTime time.Time) error
	// AddMeasure decorates the graph with recorded apply durations.
	AddMeasure(measure measure.Measure) error
}
