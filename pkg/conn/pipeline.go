package conn

import (
	"sync"

	"github.com/pkg/errors"
)

type pipelineEntry struct {
	stage Stage
	name  string
}

// Pipeline is the ordered, named stage list of a single connection.
//
// Lifecycle hooks run outside the internal lock so a hook may re-enter the
// pipeline: the bootstrap initializer installs the bridge stage and removes
// itself from within its own Added hook.
type Pipeline struct {
	conn   Conn
	mu     sync.Mutex
	stages []pipelineEntry
}

// NewPipeline creates the stage pipeline for the given connection.
func NewPipeline(c Conn) *Pipeline {
	return &Pipeline{conn: c}
}

// AddFirst installs a stage at the head of the pipeline.
func (p *Pipeline) AddFirst(name string, s Stage) error {
	return p.insert(0, name, s)
}

// AddLast installs a stage at the tail of the pipeline.
func (p *Pipeline) AddLast(name string, s Stage) error {
	return p.insert(-1, name, s)
}

// AddBefore installs a stage immediately before the stage named base.
func (p *Pipeline) AddBefore(base, name string, s Stage) error {
	if err := checkStage(name, s); err != nil {
		return err
	}

	p.mu.Lock()
	idx := p.index(base)
	if idx < 0 {
		p.mu.Unlock()

		return errors.Wrap(ErrStageNotFound, base)
	}
	if p.index(name) >= 0 {
		p.mu.Unlock()

		return errors.Wrap(ErrDuplicateStage, name)
	}
	p.stages = append(p.stages, pipelineEntry{})
	copy(p.stages[idx+1:], p.stages[idx:])
	p.stages[idx] = pipelineEntry{name: name, stage: s}
	p.mu.Unlock()

	return p.fireAdded(name, s)
}

// Remove uninstalls the stage with the given name.
func (p *Pipeline) Remove(name string) error {
	p.mu.Lock()
	idx := p.index(name)
	if idx < 0 {
		p.mu.Unlock()

		return errors.Wrap(ErrStageNotFound, name)
	}
	entry := p.stages[idx]
	p.stages = append(p.stages[:idx], p.stages[idx+1:]...)
	p.mu.Unlock()

	if lc, ok := entry.stage.(Lifecycle); ok {
		lc.Removed(p.conn)
	}

	return nil
}

// Get returns the stage with the given name, or nil when absent. Absence is
// a normal outcome: steps probe for other stages to make ordering decisions.
func (p *Pipeline) Get(name string) Stage {
	p.mu.Lock()
	defer p.mu.Unlock()

	idx := p.index(name)
	if idx < 0 {
		return nil
	}

	return p.stages[idx].stage
}

// Names returns the stage names in pipeline order.
func (p *Pipeline) Names() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	names := make([]string, len(p.stages))
	for i, entry := range p.stages {
		names[i] = entry.name
	}

	return names
}

// Len returns the number of installed stages.
func (p *Pipeline) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.stages)
}

func (p *Pipeline) insert(at int, name string, s Stage) error {
	if err := checkStage(name, s); err != nil {
		return err
	}

	p.mu.Lock()
	if p.index(name) >= 0 {
		p.mu.Unlock()

		return errors.Wrap(ErrDuplicateStage, name)
	}
	if at < 0 {
		p.stages = append(p.stages, pipelineEntry{name: name, stage: s})
	} else {
		p.stages = append(p.stages, pipelineEntry{})
		copy(p.stages[at+1:], p.stages[at:])
		p.stages[at] = pipelineEntry{name: name, stage: s}
	}
	p.mu.Unlock()

	return p.fireAdded(name, s)
}

// fireAdded notifies the stage it entered the pipeline. A failing hook rolls
// the stage back out before the error is propagated.
func (p *Pipeline) fireAdded(name string, s Stage) error {
	lc, ok := s.(Lifecycle)
	if !ok {
		return nil
	}

	err := lc.Added(p.conn)
	if err != nil {
		_ = p.Remove(name)

		return errors.Wrapf(err, "stage %s rejected installation", name)
	}

	return nil
}

// index must be called with p.mu held.
func (p *Pipeline) index(name string) int {
	for i, entry := range p.stages {
		if entry.name == name {
			return i
		}
	}

	return -1
}

func checkStage(name string, s Stage) error {
	if name == "" {
		return ErrStageNameMustBeSet
	}
	if s == nil {
		return ErrStageMustBeSet
	}

	return nil
}
