package conn

import "crypto/tls"

// TLSHandler is a stage carrying the TLS configuration of a connection. The
// handshake itself belongs to the hosting transport; the stage only marks the
// position of TLS in the pipeline and hands the transport its config.
type TLSHandler struct {
	config *tls.Config
}

// NewTLSHandler creates a TLS stage around the given config.
func NewTLSHandler(config *tls.Config) *TLSHandler {
	return &TLSHandler{config: config}
}

// Config returns the TLS configuration the transport should handshake with.
func (h *TLSHandler) Config() *tls.Config {
	return h.config
}
