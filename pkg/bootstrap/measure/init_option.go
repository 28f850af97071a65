package measure

import (
	"time"

	"github.com/askiada/go-bootstrap/pkg/bootstrap/model"
)

type initMeasure struct {
	Measure
}

func (im *initMeasure) New() error {
	return nil
}

func (im *initMeasure) PrepareStep(parentStep, step *model.StepInfo) error {
	im.AddMetric(step.Name)

	return nil
}

func (im *initMeasure) OnStepApplied(parentStep, step *model.StepInfo, elapsed time.Duration) error {
	im.GetMetric(step.Name).AddDuration(elapsed)

	return nil
}

func (im *initMeasure) AfterApply(step *model.StepInfo, total time.Duration) error {
	im.GetMetric(step.Name).SetTotalDuration(total)

	return nil
}

func (im *initMeasure) Finish() error {
	return nil
}

// InitMeasure records per-step apply durations into the given measure.
func InitMeasure(measure Measure) model.InitOption {
	return &initMeasure{measure}
}
