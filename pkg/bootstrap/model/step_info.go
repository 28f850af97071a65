package model

// StepInfo describes a configuration step's place in a finalized snapshot.
type StepInfo struct {
	Name     string
	Position int
}

// Synthetic steps framing the snapshot in options that visualise or measure
// the initialization sequence.
var (
	StartStep  = &StepInfo{Name: "start"}
	BridgeStep = &StepInfo{Name: "bridge"}
	EndStep    = &StepInfo{Name: "end"}
)
