package tcp

import (
	"net"
	"sync"

	"github.com/google/uuid"

	"github.com/askiada/go-bootstrap/pkg/conn"
)

// tcpConn adapts a net.Conn to the conn.Conn collaborator contract.
type tcpConn struct {
	net.Conn

	id       string
	pipeline *conn.Pipeline
	errs     chan error
	once     sync.Once
}

func newConn(nc net.Conn) *tcpConn {
	c := &tcpConn{
		Conn: nc,
		id:   uuid.NewString(),
		errs: make(chan error, 1),
	}
	c.pipeline = conn.NewPipeline(c)

	return c
}

func (c *tcpConn) ID() string { return c.id }

func (c *tcpConn) Pipeline() *conn.Pipeline { return c.pipeline }

// FireError signals a fatal condition. Only the first signal is kept; the
// connection is going down either way.
func (c *tcpConn) FireError(err error) {
	select {
	case c.errs <- err:
	default:
	}
}

func (c *tcpConn) Errors() <-chan error { return c.errs }

func (c *tcpConn) Close() error {
	var err error
	c.once.Do(func() {
		err = c.Conn.Close()
	})

	return err
}

var _ conn.Conn = (*tcpConn)(nil)
