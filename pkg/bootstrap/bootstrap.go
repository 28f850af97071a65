package bootstrap

import (
	"github.com/askiada/go-bootstrap/pkg/bootstrap/model"
	"github.com/askiada/go-bootstrap/pkg/conn"
)

// Update registers the configurer against the template under a unique name.
// Registering an existing name replaces its configurer in place; a new name
// is appended. The step runs on every connection opened through the template
// after it is finalized.
func Update(t Template, name string, c Configurer) error {
	if t == nil {
		return ErrTemplateMustBeSet
	}
	if err := checkStep(name, c); err != nil {
		return err
	}
	t.SetHandler(upsert(t.Handler(), Step{Name: name, Configurer: c}))

	return nil
}

// UpdateChild is Update for the accepted-connection side of a server
// template.
func UpdateChild(t ServerTemplate, name string, c Configurer) error {
	if t == nil {
		return ErrTemplateMustBeSet
	}
	if err := checkStep(name, c); err != nil {
		return err
	}
	t.SetChildHandler(upsert(t.ChildHandler(), Step{Name: name, Configurer: c}))

	return nil
}

// Remove unregisters the named step from the template. Removing a name that
// was never registered is a no-op.
func Remove(t Template, name string) error {
	if t == nil {
		return ErrTemplateMustBeSet
	}
	if name == "" {
		return ErrNameMustBeSet
	}
	t.SetHandler(remove(t.Handler(), name))

	return nil
}

// RemoveChild is Remove for the accepted-connection side of a server
// template.
func RemoveChild(t ServerTemplate, name string) error {
	if t == nil {
		return ErrTemplateMustBeSet
	}
	if name == "" {
		return ErrNameMustBeSet
	}
	t.SetChildHandler(remove(t.ChildHandler(), name))

	return nil
}

// AttachOperationsFactory stores the factory on the template for whoever
// finalizes it into service.
func AttachOperationsFactory(t OperationsHolder, factory OperationsFactory) error {
	if t == nil {
		return ErrTemplateMustBeSet
	}
	if factory == nil {
		return ErrFactoryMustBeSet
	}
	t.SetOperationsFactory(factory)

	return nil
}

// TakeOperationsFactory consumes the pending factory. A second take before a
// new attach reports absence.
func TakeOperationsFactory(t OperationsHolder) (OperationsFactory, bool) {
	if t == nil {
		return nil, false
	}

	return t.TakeOperationsFactory()
}

// Finalize captures the template's accumulated configuration as an immutable
// snapshot, wraps it with the listener into an Initializer and installs that
// as the template's connection handler. When nothing was ever registered
// through this package the template's existing handler is left untouched and
// Finalize returns nil, nil.
//
// All configuration calls for the template must complete before Finalize;
// later configuration only changes the template's stored attribute, never an
// already produced initializer.
func Finalize(t Template, listener conn.EventListener, opts ...model.InitOption) (*Initializer, error) {
	if t == nil {
		return nil, ErrTemplateMustBeSet
	}
	if listener == nil {
		return nil, ErrListenerMustBeSet
	}

	list, ok := t.Handler().(*ConfigurationList)
	if !ok {
		return nil, nil
	}
	ini, err := newInitializer(list, listener, opts)
	if err != nil {
		return nil, err
	}
	t.SetHandler(ini)

	return ini, nil
}

// FinalizeChild is Finalize for the accepted-connection side of a server
// template.
func FinalizeChild(t ServerTemplate, listener conn.EventListener, opts ...model.InitOption) (*Initializer, error) {
	if t == nil {
		return nil, ErrTemplateMustBeSet
	}
	if listener == nil {
		return nil, ErrListenerMustBeSet
	}

	list, ok := t.ChildHandler().(*ConfigurationList)
	if !ok {
		return nil, nil
	}
	ini, err := newInitializer(list, listener, opts)
	if err != nil {
		return nil, err
	}
	t.SetChildHandler(ini)

	return ini, nil
}

func checkStep(name string, c Configurer) error {
	if name == "" {
		return ErrNameMustBeSet
	}
	if c == nil {
		return ErrConfigurerMustBeSet
	}

	return nil
}
