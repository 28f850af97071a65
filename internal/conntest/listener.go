package conntest

import (
	"sync"

	"github.com/askiada/go-bootstrap/pkg/conn"
)

// Listener records every lifecycle notification it receives.
type Listener struct {
	mu     sync.Mutex
	setup  []conn.Conn
	closed []conn.Conn
	errs   []error
}

func NewListener() *Listener { return &Listener{} }

func (l *Listener) OnSetup(c conn.Conn) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.setup = append(l.setup, c)
}

func (l *Listener) OnClose(c conn.Conn) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = append(l.closed, c)
}

func (l *Listener) OnError(c conn.Conn, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errs = append(l.errs, err)
}

// SetupCount returns how many connections completed their setup.
func (l *Listener) SetupCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.setup)
}

// Errors returns a copy of the recorded fatal errors.
func (l *Listener) Errors() []error {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([]error(nil), l.errs...)
}

var _ conn.EventListener = (*Listener)(nil)
