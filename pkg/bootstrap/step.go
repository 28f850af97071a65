package bootstrap

import "github.com/askiada/go-bootstrap/pkg/conn"

// Configurer installs configuration on a connection while its initialization
// pipeline runs. Implementations must not block: a step that needs
// asynchronous work defers it to the hosting transport.
type Configurer interface {
	Configure(c conn.Conn) error
}

// ConfigurerFunc adapts a function to the Configurer interface.
type ConfigurerFunc func(c conn.Conn) error

// Configure implements Configurer.
func (f ConfigurerFunc) Configure(c conn.Conn) error {
	return f(c)
}

// Step pairs a unique name with the configurer applied on connection init.
// The name is the step's logical identity within a ConfigurationList.
type Step struct {
	Configurer Configurer
	Name       string
}

// UserStepName is the reserved name under which a bare handler previously
// installed on a template is preserved when the first named step arrives.
const UserStepName = "user"
