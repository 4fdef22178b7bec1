package core

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/librescoot/librefsm"

	"mover-service/internal/fsm"
	"mover-service/internal/hardware"
	"mover-service/internal/logger"
	"mover-service/internal/types"
)

// ErrModeMachineStopped is returned by SetMode once the machine context is done.
var ErrModeMachineStopped = errors.New("mode machine stopped")

// Ensure ModeController implements fsm.Actions
var _ fsm.Actions = (*ModeController)(nil)

// ModeController owns the publish mode. Transitions run through the
// librefsm machine; Mode returns the last completed transition.
type ModeController struct {
	machine   *librefsm.Machine
	ctx       context.Context
	io        HardwareIO
	publisher ModePublisher
	logger    *logger.Logger

	// setMu serializes transitions; mu only guards mode.
	setMu   sync.Mutex
	mu      sync.RWMutex
	mode    types.Mode
	changed chan struct{}
}

func NewModeController(io HardwareIO, publisher ModePublisher, l *logger.Logger) *ModeController {
	return &ModeController{
		io:        io,
		publisher: publisher,
		logger:    l,
		mode:      types.ModeHalted,
		changed:   make(chan struct{}, 1),
	}
}

func stateIDToMode(id librefsm.StateID) types.Mode {
	switch id {
	case fsm.StateDirectGoal:
		return types.ModeDirectGoal
	case fsm.StateAvoidGuided:
		return types.ModeAvoidGuided
	default:
		return types.ModeHalted
	}
}

func eventForMode(mode types.Mode) (librefsm.EventID, error) {
	switch mode {
	case types.ModeHalted:
		return fsm.EvStop, nil
	case types.ModeDirectGoal:
		return fsm.EvStartDirect, nil
	case types.ModeAvoidGuided:
		return fsm.EvStartAvoidance, nil
	default:
		return "", fmt.Errorf("unknown mode: %q", mode)
	}
}

// Start builds and starts the state machine in Halted.
func (m *ModeController) Start(ctx context.Context) error {
	def := fsm.NewDefinition(m)
	machine, err := def.Build()
	if err != nil {
		return err
	}
	m.machine = machine
	m.ctx = ctx

	m.machine.OnStateChange(func(from, to librefsm.StateID) {
		m.logger.Infof("Mode transition: %s -> %s", stateIDToMode(from), stateIDToMode(to))

		if m.publisher != nil {
			if err := m.publisher.PublishMode(stateIDToMode(to)); err != nil {
				m.logger.Errorf("Failed to publish mode: %v", err)
			}
		}
	})

	m.setIndicators(false, false)

	if err := m.machine.Start(ctx); err != nil {
		return err
	}

	m.logger.Infof("librefsm mode machine started")
	return nil
}

// Mode returns a snapshot of the current mode.
func (m *ModeController) Mode() types.Mode {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.mode
}

// Changed is signalled after every completed transition.
func (m *ModeController) Changed() <-chan struct{} {
	return m.changed
}

// SetMode moves the machine to mode. Setting the current mode is a no-op.
// Readers of Mode are not blocked while entry actions and the mode
// publication run.
func (m *ModeController) SetMode(mode types.Mode) error {
	event, err := eventForMode(mode)
	if err != nil {
		return err
	}

	m.setMu.Lock()
	defer m.setMu.Unlock()

	if m.Mode() == mode {
		return nil
	}
	if m.machine == nil {
		return fmt.Errorf("mode machine not started")
	}
	if m.ctx.Err() != nil {
		return ErrModeMachineStopped
	}

	// The event loop exits with its context, so a queued event would never
	// be answered after cancellation.
	done := make(chan error, 1)
	go func() {
		done <- m.machine.SendSync(librefsm.Event{ID: event})
	}()
	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to enter %s: %w", mode, err)
		}
	case <-m.ctx.Done():
		return ErrModeMachineStopped
	}

	m.mu.Lock()
	m.mode = mode
	m.mu.Unlock()

	select {
	case m.changed <- struct{}{}:
	default:
	}
	return nil
}

// === State Entry Actions ===

func (m *ModeController) EnterHalted(c *librefsm.Context) error {
	m.logger.Debugf("FSM: EnterHalted")
	m.setIndicators(false, false)
	return nil
}

func (m *ModeController) EnterDirectGoal(c *librefsm.Context) error {
	m.logger.Debugf("FSM: EnterDirectGoal")
	m.setIndicators(true, false)
	return nil
}

func (m *ModeController) EnterAvoidGuided(c *librefsm.Context) error {
	m.logger.Debugf("FSM: EnterAvoidGuided")
	m.setIndicators(true, true)
	return nil
}

// Indicator failures never block a transition.
func (m *ModeController) setIndicators(publishing, avoiding bool) {
	if m.io == nil {
		return
	}
	if err := m.io.WriteDigitalOutput(hardware.OutputPublishEnable, publishing); err != nil {
		m.logger.Warnf("Failed to set %s: %v", hardware.OutputPublishEnable, err)
	}
	if err := m.io.WriteDigitalOutput(hardware.OutputAvoidanceActive, avoiding); err != nil {
		m.logger.Warnf("Failed to set %s: %v", hardware.OutputAvoidanceActive, err)
	}
}
