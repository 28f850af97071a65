package bootstrap_test

import (
	"testing"

	"github.com/askiada/go-bootstrap/pkg/bootstrap"
	"github.com/askiada/go-bootstrap/pkg/conn"
)

func recordStep(t *testing.T, name string, applied *[]string) bootstrap.Step {
	t.Helper()

	return bootstrap.Step{
		Name: name,
		Configurer: bootstrap.ConfigurerFunc(func(conn.Conn) error {
			*applied = append(*applied, name)

			return nil
		}),
	}
}

func noopConfigurer(t *testing.T) bootstrap.Configurer {
	t.Helper()

	return bootstrap.ConfigurerFunc(func(conn.Conn) error {
		return nil
	})
}

// taggedConfigurer is a distinct pointer type so tests can assert identity of
// a recovered configurer.
type taggedConfigurer struct {
	tag string
}

func (tc *taggedConfigurer) Configure(conn.Conn) error {
	return nil
}

func recordConfigurer(t *testing.T, name string, applied *[]string) bootstrap.Configurer {
	t.Helper()

	return recordStep(t, name, applied).Configurer
}
