package bootstrap

import (
	"github.com/pkg/errors"

	"github.com/askiada/go-bootstrap/pkg/conn"
)

// LogConfigurer installs traffic logging on a connection. It is a named type
// so callers can recover the registered handler later through
// FindConfiguration.
type LogConfigurer struct {
	handler *conn.LogHandler
}

// Handler returns the logging stage this configurer installs.
func (lc *LogConfigurer) Handler() *conn.LogHandler {
	return lc.handler
}

// Configure installs the logging stage at its well-known position. When the
// logger is verbose enough and a TLS stage is already present on the
// connection, an extra trace logger is inserted immediately before TLS, so
// the handshake bytes are visible too. This decision depends on the steps
// registered before this one having already run.
func (lc *LogConfigurer) Configure(c conn.Conn) error {
	err := c.Pipeline().AddLast(conn.LoggingStage, lc.handler)
	if err != nil {
		return errors.Wrap(err, "unable to install logging stage")
	}

	if lc.handler.TraceEnabled() && c.Pipeline().Get(conn.TLSStage) != nil {
		trace := conn.NewLogHandler(lc.handler.Logger().Named("tls"))
		err = c.Pipeline().AddBefore(conn.TLSStage, conn.TLSLoggingStage, trace)
		if err != nil {
			return errors.Wrap(err, "unable to install tls logging stage")
		}
	}

	return nil
}

// LogConfiguration creates the configuration step installing the given
// logging stage.
func LogConfiguration(handler *conn.LogHandler) *LogConfigurer {
	return &LogConfigurer{handler: handler}
}

// UpdateLogSupport registers traffic logging on the template under the
// logging stage name.
func UpdateLogSupport(t Template, handler *conn.LogHandler) error {
	if handler == nil {
		return ErrLoggerMustBeSet
	}

	return Update(t, conn.LoggingStage, LogConfiguration(handler))
}

// UpdateChildLogSupport registers traffic logging for every connection
// accepted through the server template.
func UpdateChildLogSupport(t ServerTemplate, handler *conn.LogHandler) error {
	if handler == nil {
		return ErrLoggerMustBeSet
	}

	return UpdateChild(t, conn.LoggingStage, LogConfiguration(handler))
}
