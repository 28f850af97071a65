// Package bootstrap composes the one-shot initialization pipeline of new
// connections.
//
// Independent callers register named configuration steps against a template
// (Update, Remove). Every mutation builds a fresh ConfigurationList, so
// snapshots already handed out never change under a reader. Once configured,
// the template is finalized: the accumulated list is captured as an immutable
// snapshot inside an Initializer, which the template then serves as its
// active connection handler. For every connection accepted or opened through
// that template the initializer applies the snapshot's steps exactly once, in
// registration order, installs the terminal bridge stage, and detaches.
//
// Configuration is expected to happen during startup from a single goroutine.
// The package-level read-compute-write cycle of Update and Remove is not
// synchronised across callers; concurrent configuration of one template is a
// caller responsibility.
package bootstrap
