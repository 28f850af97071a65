package bootstrap

import "github.com/pkg/errors"

var (
	ErrTemplateMustBeSet   = errors.New("template must be set")
	ErrNameMustBeSet       = errors.New("name must be set")
	ErrConfigurerMustBeSet = errors.New("configurer must be set")
	ErrListenerMustBeSet   = errors.New("listener must be set")
	ErrFactoryMustBeSet    = errors.New("operations factory must be set")
	ErrLoggerMustBeSet     = errors.New("logger must be set")
	ErrTLSConfigMustBeSet  = errors.New("tls config must be set")

	// ErrNotFinalized reports a configuration list that was asked to handle a
	// connection before its template was finalized.
	ErrNotFinalized = errors.New("template was not finalized")
)
