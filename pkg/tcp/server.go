package tcp

import (
	"context"
	"net"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/askiada/go-bootstrap/pkg/bootstrap"
	"github.com/askiada/go-bootstrap/pkg/conn"
)

var (
	ErrTemplateMustBeSet = errors.New("template must be set")
	ErrListenerMustBeSet = errors.New("listener must be set")
	ErrNoHandler         = errors.New("template has no connection handler")
)

// Server accepts TCP connections and runs its template's finalized handler on
// each of them.
type Server struct {
	template bootstrap.ServerTemplate
	events   conn.EventListener
	log      *zap.Logger
}

// ServerOption configures a Server.
type ServerOption func(s *Server)

// WithServerLogger sets the transport logger.
func WithServerLogger(log *zap.Logger) ServerOption {
	return func(s *Server) {
		s.log = log
	}
}

// NewServer creates a server hosting the given template. The listener is
// bound into the template's initializer at finalize time.
func NewServer(template bootstrap.ServerTemplate, events conn.EventListener, opts ...ServerOption) (*Server, error) {
	if template == nil {
		return nil, ErrTemplateMustBeSet
	}
	if events == nil {
		return nil, ErrListenerMustBeSet
	}

	srv := &Server{
		template: template,
		events:   events,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(srv)
	}

	return srv, nil
}

// Serve finalizes the template, takes the pending operations factory and
// accepts connections until the context is cancelled or the listener fails.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	ini, err := bootstrap.FinalizeChild(s.template, s.events)
	if err != nil {
		return errors.Wrap(err, "unable to finalize template")
	}
	if ini != nil {
		defer func() {
			closeErr := ini.Close()
			if closeErr != nil {
				s.log.Warn("unable to close initializer", zap.Error(closeErr))
			}
		}()
	}

	handler := s.template.ChildHandler()
	if handler == nil {
		return ErrNoHandler
	}

	factory, _ := bootstrap.TakeOperationsFactory(s.template)

	grp, gCtx := errgroup.WithContext(ctx)
	grp.Go(func() error {
		<-gCtx.Done()

		return ln.Close()
	})

	grp.Go(func() error {
		for {
			nc, acceptErr := ln.Accept()
			if acceptErr != nil {
				if gCtx.Err() != nil {
					return nil
				}

				return errors.Wrap(acceptErr, "unable to accept connection")
			}

			c := newConn(nc)
			s.log.Debug("connection accepted",
				zap.String("conn", c.ID()),
				zap.String("remote", nc.RemoteAddr().String()),
			)

			grp.Go(func() error {
				s.serveConn(gCtx, handler, factory, c)

				return nil
			})
		}
	})

	err = grp.Wait()
	if err != nil {
		return err
	}

	return nil
}

// serveConn drives one connection: initialization, operations, teardown.
// Connection failures never take the server down.
func (s *Server) serveConn(ctx context.Context, handler bootstrap.Handler, factory bootstrap.OperationsFactory, c *tcpConn) {
	defer func() {
		closeErr := c.Close()
		if closeErr != nil {
			s.log.Debug("unable to close connection", zap.String("conn", c.ID()), zap.Error(closeErr))
		}
	}()

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go s.watchErrors(watchCtx, c)

	err := handler.HandleConn(c)
	if err != nil {
		s.log.Error("connection initialization failed", zap.String("conn", c.ID()), zap.Error(err))

		return
	}

	if factory == nil {
		return
	}

	ops, err := factory(c, s.events)
	if err != nil {
		s.log.Error("unable to create operations", zap.String("conn", c.ID()), zap.Error(err))
		c.FireError(err)

		return
	}

	err = ops.Serve(ctx)
	if err != nil {
		s.log.Debug("operations finished", zap.String("conn", c.ID()), zap.Error(err))
	}
}

// watchErrors turns the first fatal signal on the connection's error channel
// into teardown.
func (s *Server) watchErrors(ctx context.Context, c *tcpConn) {
	select {
	case <-ctx.Done():
	case err := <-c.Errors():
		s.log.Error("fatal connection error", zap.String("conn", c.ID()), zap.Error(err))
		s.events.OnError(c, err)
		_ = c.Close()
	}
}
