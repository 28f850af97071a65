package conn

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogHandler is a stage that logs connection lifecycle events through a
// structured logger. Transports may additionally hand it traffic events.
type LogHandler struct {
	log *zap.Logger
}

// NewLogHandler creates a logging stage around the given logger.
func NewLogHandler(log *zap.Logger) *LogHandler {
	if log == nil {
		log = zap.NewNop()
	}

	return &LogHandler{log: log}
}

// Logger exposes the wrapped logger so transports can log traffic with the
// same fields.
func (h *LogHandler) Logger() *zap.Logger {
	return h.log
}

// TraceEnabled reports whether the wrapped logger emits at debug level.
func (h *LogHandler) TraceEnabled() bool {
	return h.log.Core().Enabled(zapcore.DebugLevel)
}

// Added implements Lifecycle.
func (h *LogHandler) Added(c Conn) error {
	h.log.Debug("logging stage installed", zap.String("conn", c.ID()))

	return nil
}

// Removed implements Lifecycle.
func (h *LogHandler) Removed(c Conn) {
	h.log.Debug("logging stage removed", zap.String("conn", c.ID()))
}
