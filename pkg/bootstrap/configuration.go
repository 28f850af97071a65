package bootstrap

import "github.com/askiada/go-bootstrap/pkg/conn"

// ConfigurationList is an ordered, name-addressed list of configuration
// steps. It is a value: every mutation returns a new list and never touches
// the receiver, so a list captured as a snapshot stays valid forever.
type ConfigurationList struct {
	steps []Step
}

// NewConfigurationList creates a list holding the given steps in order.
// Later duplicates of a name replace the earlier step in place.
func NewConfigurationList(steps ...Step) *ConfigurationList {
	list := &ConfigurationList{}
	for _, s := range steps {
		list = list.WithUpserted(s)
	}

	return list
}

// WithUpserted returns a copy of the list with the step registered. When a
// step with the same name exists its configurer is replaced in place,
// preserving the original position; otherwise the step is appended.
func (l *ConfigurationList) WithUpserted(step Step) *ConfigurationList {
	steps := l.copySteps()
	for i := range steps {
		if steps[i].Name == step.Name {
			steps[i] = step

			return &ConfigurationList{steps: steps}
		}
	}

	return &ConfigurationList{steps: append(steps, step)}
}

// WithRemoved returns a copy of the list without the named step, preserving
// the order of the rest. Removing an absent name is a no-op returning the
// receiver unchanged.
func (l *ConfigurationList) WithRemoved(name string) *ConfigurationList {
	for i := range l.steps {
		if l.steps[i].Name == name {
			steps := l.copySteps()

			return &ConfigurationList{steps: append(steps[:i], steps[i+1:]...)}
		}
	}

	return l
}

// Find returns the configurer of the first step matching the predicate.
// Absence is a normal outcome, not an error.
func (l *ConfigurationList) Find(pred func(Step) bool) (Configurer, bool) {
	if l == nil {
		return nil, false
	}
	for _, s := range l.steps {
		if pred(s) {
			return s.Configurer, true
		}
	}

	return nil, false
}

// Steps returns a copy of the steps in registration order.
func (l *ConfigurationList) Steps() []Step {
	if l == nil {
		return nil
	}

	return l.copySteps()
}

// Len returns the number of registered steps.
func (l *ConfigurationList) Len() int {
	if l == nil {
		return 0
	}

	return len(l.steps)
}

// Names returns the step names in registration order.
func (l *ConfigurationList) Names() []string {
	if l == nil {
		return nil
	}
	names := make([]string, len(l.steps))
	for i, s := range l.steps {
		names[i] = s.Name
	}

	return names
}

func (l *ConfigurationList) copySteps() []Step {
	if l == nil || len(l.steps) == 0 {
		return nil
	}
	steps := make([]Step, len(l.steps))
	copy(steps, l.steps)

	return steps
}

// HandleConn implements Handler. A list is configuration-time data; serving
// connections requires finalizing the template first.
func (l *ConfigurationList) HandleConn(conn.Conn) error {
	return ErrNotFinalized
}

func (l *ConfigurationList) handlerVariant() {}
