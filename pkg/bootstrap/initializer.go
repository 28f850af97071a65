package bootstrap

import (
	"sync/atomic"
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/go-bootstrap/pkg/bootstrap/model"
	"github.com/askiada/go-bootstrap/pkg/conn"
)

// Initializer is a template's finalized connection handler. It carries an
// immutable snapshot of the configuration list and the event listener, and is
// shared read-only across every connection served through the template. Each
// connection gets its own one-shot run through the snapshot.
type Initializer struct {
	snapshot *ConfigurationList
	listener conn.EventListener
	infos    []*model.StepInfo
	opts     []model.InitOption
}

func newInitializer(snapshot *ConfigurationList, listener conn.EventListener, opts []model.InitOption) (*Initializer, error) {
	ini := &Initializer{
		snapshot: snapshot,
		listener: listener,
		opts:     opts,
	}

	for _, opt := range opts {
		err := opt.New()
		if err != nil {
			return nil, errors.Wrap(err, "unable to apply init option")
		}
	}

	parent := model.StartStep
	for i, s := range snapshot.Steps() {
		info := &model.StepInfo{Name: s.Name, Position: i}
		ini.infos = append(ini.infos, info)
		for _, opt := range opts {
			err := opt.PrepareStep(parent, info)
			if err != nil {
				return nil, errors.Wrap(err, "unable to prepare step")
			}
		}
		parent = info
	}
	for _, opt := range opts {
		err := opt.PrepareStep(parent, model.BridgeStep)
		if err != nil {
			return nil, errors.Wrap(err, "unable to prepare bridge step")
		}
	}

	return ini, nil
}

// Snapshot returns the immutable configuration list captured at finalize
// time.
func (in *Initializer) Snapshot() *ConfigurationList {
	return in.snapshot
}

// HandleConn installs the one-shot init stage on the connection's pipeline.
// Installation triggers the run: every snapshot step is applied in order, the
// terminal bridge stage is added last and the init stage removes itself so it
// can never run again for this connection.
func (in *Initializer) HandleConn(c conn.Conn) error {
	run := &initRun{ini: in}

	return c.Pipeline().AddLast(conn.InitStage, run)
}

// Close runs the Finish hook of every init option. Transports call it when
// the template goes out of service.
func (in *Initializer) Close() error {
	for _, opt := range in.opts {
		err := opt.Finish()
		if err != nil {
			return errors.Wrap(err, "unable to finish init option")
		}
	}

	return nil
}

func (in *Initializer) handlerVariant() {}

// Per-connection initialization states.
const (
	statePending int32 = iota
	stateApplying
	stateDetached
)

// initRun is the per-connection one-shot application of a snapshot. Two paths
// race towards detachment: the run's own self-removal after applying, and an
// external removal by the transport's lifecycle. The atomic state transition
// makes them converge without a second application.
type initRun struct {
	ini   *Initializer
	state atomic.Int32
}

// Added implements conn.Lifecycle. It fires when the init stage enters the
// connection's pipeline.
func (r *initRun) Added(c conn.Conn) error {
	if !r.state.CompareAndSwap(statePending, stateApplying) {
		return nil
	}

	start := time.Now()
	parent := model.StartStep
	for i, s := range r.ini.snapshot.steps {
		stepStart := time.Now()
		err := s.Configurer.Configure(c)
		if err != nil {
			// Abort: later steps and the bridge are not installed, stages
			// applied so far stay in place. The error crosses into the
			// connection's own error path; no caller is waiting here.
			r.state.Store(stateDetached)
			err = errors.Wrapf(err, "configuration step %s failed", s.Name)
			c.FireError(err)

			return err
		}
		if len(r.ini.infos) > i {
			info := r.ini.infos[i]
			for _, opt := range r.ini.opts {
				optErr := opt.OnStepApplied(parent, info, time.Since(stepStart))
				if optErr != nil {
					r.state.Store(stateDetached)
					optErr = errors.Wrapf(optErr, "init option failed after step %s", s.Name)
					c.FireError(optErr)

					return optErr
				}
			}
			parent = info
		}
	}

	err := c.Pipeline().AddLast(conn.BridgeStage, newOperationsHandler(r.ini.listener))
	if err != nil {
		r.state.Store(stateDetached)
		err = errors.Wrap(err, "unable to install bridge stage")
		c.FireError(err)

		return err
	}

	r.state.Store(stateDetached)
	for _, opt := range r.ini.opts {
		optErr := opt.AfterApply(model.BridgeStep, time.Since(start))
		if optErr != nil {
			c.FireError(errors.Wrap(optErr, "init option failed after apply"))
		}
	}
	_ = c.Pipeline().Remove(conn.InitStage)

	return nil
}

// Removed implements conn.Lifecycle. An external removal detaches the run
// without re-running any step.
func (r *initRun) Removed(conn.Conn) {
	r.state.Store(stateDetached)
}

// operationsHandler is the terminal bridge stage hooking the initialized
// pipeline up to the application. It only carries the listener; the
// application side is created by the operations factory the transport took
// from its template.
type operationsHandler struct {
	listener conn.EventListener
}

func newOperationsHandler(listener conn.EventListener) *operationsHandler {
	return &operationsHandler{listener: listener}
}

// Added implements conn.Lifecycle.
func (h *operationsHandler) Added(c conn.Conn) error {
	h.listener.OnSetup(c)

	return nil
}

// Removed implements conn.Lifecycle.
func (h *operationsHandler) Removed(c conn.Conn) {
	h.listener.OnClose(c)
}
