package bootstrap

import "github.com/askiada/go-bootstrap/pkg/conn"

// Handler is the connection handler attribute a template stores. The set of
// variants is sealed: nil (nothing registered), a user handler installed
// directly by the caller, a ConfigurationList still being built, or an
// Initializer produced by Finalize. Every structural operation on a template
// is an exhaustive switch over these variants.
type Handler interface {
	// HandleConn is invoked by a hosting transport once per new connection.
	HandleConn(c conn.Conn) error

	handlerVariant()
}

// UserHandler wraps a bare configurer as a template handler. When a named
// step is later registered against the template, the wrapped configurer is
// preserved under UserStepName and keeps running first.
func UserHandler(c Configurer) Handler {
	return &userHandler{configurer: c}
}

type userHandler struct {
	configurer Configurer
}

// HandleConn applies the wrapped configurer directly; a bare user handler
// has no snapshot and no bridge.
func (u *userHandler) HandleConn(c conn.Conn) error {
	return u.configurer.Configure(c)
}

func (u *userHandler) handlerVariant() {}

// upsert builds the configuration list resulting from registering step over
// the current handler attribute.
func upsert(h Handler, step Step) *ConfigurationList {
	switch h := h.(type) {
	case nil:
		return NewConfigurationList(step)
	case *userHandler:
		// Wrap-once: keep the previously installed bare handler as the
		// first step before registering the new one.
		list := NewConfigurationList(Step{Name: UserStepName, Configurer: h.configurer})

		return list.WithUpserted(step)
	case *ConfigurationList:
		return h.WithUpserted(step)
	case *Initializer:
		// Configuration after finalize resumes from the finalized snapshot.
		// The initializer itself keeps its own immutable copy.
		return h.snapshot.WithUpserted(step)
	}

	// The variant set is sealed; this is unreachable.
	return NewConfigurationList(step)
}

// remove builds the handler resulting from removing the named step from the
// current handler attribute. Handlers that carry no list are untouched.
func remove(h Handler, name string) Handler {
	switch h := h.(type) {
	case *ConfigurationList:
		return h.WithRemoved(name)
	case *Initializer:
		return h.snapshot.WithRemoved(name)
	default:
		return h
	}
}

// FindConfiguration returns the first registered configurer of type C, or
// false when the handler is not a configuration list or carries none.
// Callers use it to recover a previously registered, strongly typed
// configuration object.
func FindConfiguration[C any](h Handler) (C, bool) {
	var zero C
	list, ok := h.(*ConfigurationList)
	if !ok {
		return zero, false
	}
	for _, s := range list.steps {
		if c, ok := s.Configurer.(C); ok {
			return c, true
		}
	}

	return zero, false
}
