package bootstrap

import (
	"crypto/tls"

	"github.com/pkg/errors"

	"github.com/askiada/go-bootstrap/pkg/conn"
)

// TLSConfigurer installs the TLS stage at the head of a connection's
// pipeline. Like LogConfigurer it is a named type so a registered TLS config
// can be recovered through FindConfiguration.
type TLSConfigurer struct {
	config *tls.Config
}

// Config returns the TLS configuration this step installs.
func (tc *TLSConfigurer) Config() *tls.Config {
	return tc.config
}

// Configure implements Configurer.
func (tc *TLSConfigurer) Configure(c conn.Conn) error {
	err := c.Pipeline().AddFirst(conn.TLSStage, conn.NewTLSHandler(tc.config))

	return errors.Wrap(err, "unable to install tls stage")
}

// TLSConfiguration creates the configuration step installing TLS support.
func TLSConfiguration(config *tls.Config) *TLSConfigurer {
	return &TLSConfigurer{config: config}
}

// UpdateTLSSupport registers TLS support on the template under the TLS stage
// name.
func UpdateTLSSupport(t Template, config *tls.Config) error {
	if config == nil {
		return ErrTLSConfigMustBeSet
	}

	return Update(t, conn.TLSStage, TLSConfiguration(config))
}

// UpdateChildTLSSupport registers TLS support for every connection accepted
// through the server template.
func UpdateChildTLSSupport(t ServerTemplate, config *tls.Config) error {
	if config == nil {
		return ErrTLSConfigMustBeSet
	}

	return UpdateChild(t, conn.TLSStage, TLSConfiguration(config))
}
