package tcp

import (
	"context"
	"net"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/askiada/go-bootstrap/pkg/bootstrap"
	"github.com/askiada/go-bootstrap/pkg/conn"
)

// Client opens TCP connections and runs its template's finalized handler on
// each of them.
type Client struct {
	template bootstrap.Template
	events   conn.EventListener
	log      *zap.Logger

	factoryOnce sync.Once
	factory     bootstrap.OperationsFactory
}

// ClientOption configures a Client.
type ClientOption func(c *Client)

// WithClientLogger sets the transport logger.
func WithClientLogger(log *zap.Logger) ClientOption {
	return func(c *Client) {
		c.log = log
	}
}

// NewClient creates a client dialing through the given template.
func NewClient(template bootstrap.Template, events conn.EventListener, opts ...ClientOption) (*Client, error) {
	if template == nil {
		return nil, ErrTemplateMustBeSet
	}
	if events == nil {
		return nil, ErrListenerMustBeSet
	}

	cli := &Client{
		template: template,
		events:   events,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(cli)
	}

	return cli, nil
}

// Dial opens a connection, initializes it through the template's handler and
// hands it to the pending operations factory. The returned operations value
// is nil when no factory was attached.
func (cl *Client) Dial(ctx context.Context, network, address string) (conn.Conn, conn.Operations, error) {
	_, err := bootstrap.Finalize(cl.template, cl.events)
	if err != nil {
		return nil, nil, errors.Wrap(err, "unable to finalize template")
	}

	handler := cl.template.Handler()
	if handler == nil {
		return nil, nil, ErrNoHandler
	}

	var dialer net.Dialer
	nc, err := dialer.DialContext(ctx, network, address)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "unable to dial %s", address)
	}

	c := newConn(nc)
	cl.log.Debug("connection opened",
		zap.String("conn", c.ID()),
		zap.String("remote", nc.RemoteAddr().String()),
	)

	err = handler.HandleConn(c)
	if err != nil {
		_ = c.Close()

		return nil, nil, errors.Wrap(err, "connection initialization failed")
	}

	// The factory slot is take-once; cache it so every dialed connection
	// goes through the same factory.
	cl.factoryOnce.Do(func() {
		cl.factory, _ = bootstrap.TakeOperationsFactory(cl.template)
	})
	if cl.factory == nil {
		return c, nil, nil
	}

	ops, err := cl.factory(c, cl.events)
	if err != nil {
		_ = c.Close()

		return nil, nil, errors.Wrap(err, "unable to create operations")
	}

	return c, ops, nil
}
