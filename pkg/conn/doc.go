// Package conn defines the connection-side collaborators of the bootstrap
// mechanism: the Conn abstraction owned by a hosting transport, the ordered
// named stage Pipeline that configuration steps install into, and the
// EventListener notified of connection lifecycle events.
//
// Nothing in this package performs network I/O. A transport (see pkg/tcp)
// owns the sockets; this package only models the in-process composition of a
// connection's processing path.
package conn
