package model

import "time"

// InitOption observes a finalized initializer. PrepareStep runs once per
// finalize for every snapshot step; the applied hooks run once per step per
// connection and must therefore be safe for concurrent use.
type InitOption interface {
	// New initialises the option before the snapshot is walked.
	New() error
	// PrepareStep runs at finalize time for every step in snapshot order.
	PrepareStep(parentStep, step *StepInfo) error
	// OnStepApplied runs after a step's configurer ran on a connection.
	OnStepApplied(parentStep, step *StepInfo, elapsed time.Duration) error
	// AfterApply runs once a connection's whole snapshot was applied and the
	// bridge stage is installed.
	AfterApply(step *StepInfo, total time.Duration) error
	// Finish runs when the initializer is closed.
	Finish() error
}
