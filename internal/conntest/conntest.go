// Package conntest provides an in-memory conn.Conn used by the test suites.
// It buffers reads/writes locally and keeps every fatal signal observable
// through the error channel.
package conntest

import (
	"bytes"
	"sync"

	"github.com/google/uuid"

	"github.com/askiada/go-bootstrap/pkg/conn"
)

// Conn is an in-memory connection. Reads and writes go to a local buffer.
type Conn struct {
	id       string
	pipeline *conn.Pipeline
	errs     chan error

	mu     sync.Mutex
	buf    bytes.Buffer
	closed bool
}

// New creates an in-memory connection with a random ID.
func New() *Conn {
	c := &Conn{
		id:   uuid.NewString(),
		errs: make(chan error, 8),
	}
	c.pipeline = conn.NewPipeline(c)

	return c
}

func (c *Conn) ID() string { return c.id }

func (c *Conn) Pipeline() *conn.Pipeline { return c.pipeline }

func (c *Conn) Read(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.buf.Read(p)
}

func (c *Conn) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.buf.Write(p)
}

func (c *Conn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true

	return nil
}

// Closed reports whether Close was called.
func (c *Conn) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.closed
}

// FireError records a fatal signal. The channel is buffered so firing never
// blocks a test.
func (c *Conn) FireError(err error) {
	select {
	case c.errs <- err:
	default:
	}
}

func (c *Conn) Errors() <-chan error { return c.errs }

var _ conn.Conn = (*Conn)(nil)
