package bootstrap

import (
	"sync"

	"github.com/askiada/go-bootstrap/pkg/conn"
)

// OperationsFactory creates the application-facing operations of a new
// connection. The factory is attached to a template once and consumed,
// take-once, by whoever finalizes the template into service.
type OperationsFactory func(c conn.Conn, listener conn.EventListener) (conn.Operations, error)

// OperationsHolder is the typed take-once slot templates expose for the
// operations factory handoff.
type OperationsHolder interface {
	// SetOperationsFactory stores the factory, replacing a pending one.
	SetOperationsFactory(factory OperationsFactory)
	// TakeOperationsFactory atomically reads and clears the slot. A second
	// take before a new attach reports absence.
	TakeOperationsFactory() (OperationsFactory, bool)
}

// Template is a caller-owned configuration object for connections opened
// through it (the client side).
type Template interface {
	OperationsHolder

	Handler() Handler
	SetHandler(h Handler)
}

// ServerTemplate is a caller-owned configuration object for connections
// accepted through it. The child handler applies to every accepted
// connection, not to the listener itself.
type ServerTemplate interface {
	OperationsHolder

	ChildHandler() Handler
	SetChildHandler(h Handler)
}

type factorySlot struct {
	mu      sync.Mutex
	factory OperationsFactory
}

func (s *factorySlot) SetOperationsFactory(factory OperationsFactory) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.factory = factory
}

func (s *factorySlot) TakeOperationsFactory() (OperationsFactory, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	factory := s.factory
	s.factory = nil

	return factory, factory != nil
}

// Bootstrap is the stock client template.
type Bootstrap struct {
	factorySlot

	mu      sync.Mutex
	handler Handler
}

// New creates an empty client template.
func New() *Bootstrap {
	return &Bootstrap{}
}

// Handler returns the current connection handler attribute.
func (b *Bootstrap) Handler() Handler {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.handler
}

// SetHandler replaces the connection handler attribute.
func (b *Bootstrap) SetHandler(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handler = h
}

// ServerBootstrap is the stock server template.
type ServerBootstrap struct {
	factorySlot

	mu           sync.Mutex
	childHandler Handler
}

// NewServer creates an empty server template.
func NewServer() *ServerBootstrap {
	return &ServerBootstrap{}
}

// ChildHandler returns the current child connection handler attribute.
func (b *ServerBootstrap) ChildHandler() Handler {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.childHandler
}

// SetChildHandler replaces the child connection handler attribute.
func (b *ServerBootstrap) SetChildHandler(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.childHandler = h
}

var (
	_ Template       = (*Bootstrap)(nil)
	_ ServerTemplate = (*ServerBootstrap)(nil)
)
