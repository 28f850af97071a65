// Package tcp is a small hosting transport for bootstrap templates. It owns
// the sockets and goroutines, finalizes its template into service, runs the
// finalized initializer once per connection and translates fatal signals on a
// connection's error channel into teardown.
//
// It exists to prove the bootstrap contract end to end; the registry in
// pkg/bootstrap performs no I/O itself.
package tcp
