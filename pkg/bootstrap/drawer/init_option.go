package drawer

import (
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/go-bootstrap/pkg/bootstrap/measure"
	"github.com/askiada/go-bootstrap/pkg/bootstrap/model"
)

type initDrawer struct {
	Drawer
	m         measure.Measure
	startTime time.Time
}

func (id *initDrawer) New() error {
	err := id.AddStep(model.StartStep.Name)
	if err != nil {
		return errors.Wrap(err, "unable to add start step to drawer")
	}
	err = id.AddStep(model.EndStep.Name)
	if err != nil {
		return errors.Wrap(err, "unable to add end step to drawer")
	}

	return nil
}

func (id *initDrawer) PrepareStep(parentStep, step *model.StepInfo) error {
	err := id.AddStep(step.Name)
	if err != nil {
		return err
	}
	err = id.AddLink(parentStep.Name, step.Name)
	if err != nil {
		return err
	}

	if step == model.BridgeStep {
		err = id.AddLink(step.Name, model.EndStep.Name)
		if err != nil {
			return err
		}
	}

	return nil
}

func (id *initDrawer) OnStepApplied(parentStep, step *model.StepInfo, elapsed time.Duration) error {
	return nil
}

func (id *initDrawer) AfterApply(step *model.StepInfo, total time.Duration) error {
	return nil
}

func (id *initDrawer) Finish() error {
	if id.m != nil {
		err := id.SetTotalTime(model.EndStep.Name, id.startTime)
		if err != nil {
			return errors.Wrap(err, "unable to set total time")
		}
		err = id.AddMeasure(id.m)
		if err != nil {
			return errors.Wrap(err, "unable to add measure")
		}
	}

	err := id.Draw()
	if err != nil {
		return errors.Wrap(err, "unable to draw pipeline")
	}

	return nil
}

// InitDrawer renders the finalized pipeline when the initializer is closed.
// When a measure is given the drawing is decorated with the recorded apply
// durations.
func InitDrawer(drawer Drawer, measure measure.Measure) model.InitOption {
	return &initDrawer{drawer, measure, time.Now()}
}
