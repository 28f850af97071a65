package measure

import "time"

// Measure collects one metric per configuration step of a finalized
// snapshot.
type Measure interface {
	AddMetric(name string) Metric
	GetMetric(name string) Metric
	AllMetrics() map[string]Metric
}

// Metric aggregates the apply durations of one step across connections.
type Metric interface {
	AddDuration(elapsed time.Duration)
	AVGDuration() time.Duration
	Applications() int64
	SetTotalDuration(total time.Duration)
	GetTotalDuration() time.Duration
}
