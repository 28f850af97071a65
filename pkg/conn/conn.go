package conn

import (
	"context"
	"io"
)

// Stage is a named unit installed into a connection's processing path.
// Stages are opaque to this package; a stage that needs lifecycle
// notifications additionally implements Lifecycle.
type Stage interface{}

// Lifecycle is implemented by stages that want to know when they enter or
// leave a pipeline. Added runs right after the stage is inserted; returning
// an error rolls the stage back out. Removed runs after the stage left the
// pipeline, whichever path removed it.
type Lifecycle interface {
	Added(c Conn) error
	Removed(c Conn)
}

// Conn is a single established connection as seen by configuration steps.
// The hosting transport owns the underlying socket and its goroutines.
type Conn interface {
	io.ReadWriteCloser

	// ID identifies the connection for logging purposes.
	ID() string
	// Pipeline is the connection's ordered stage list.
	Pipeline() *Pipeline
	// FireError signals a fatal condition on the connection. The transport
	// is expected to consume Errors and tear the connection down.
	FireError(err error)
	// Errors is the connection-level error channel fed by FireError.
	Errors() <-chan error
}

// EventListener is notified of connection lifecycle events. It is passed
// through unmodified from finalization into the terminal bridge stage.
type EventListener interface {
	// OnSetup runs once per connection, after every configuration step was
	// applied and the bridge stage is in place.
	OnSetup(c Conn)
	// OnClose runs when the connection is torn down.
	OnClose(c Conn)
	// OnError runs when a fatal error was signalled on the connection.
	OnError(c Conn, err error)
}

// Operations is the application-facing side of a connection, created by the
// operations factory a transport took from its template.
type Operations interface {
	Serve(ctx context.Context) error
}
