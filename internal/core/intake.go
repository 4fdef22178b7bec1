package core

import (
	"mover-service/internal/types"
)

// handleTelemetry runs the avoider on every telemetry sample (including our
// own) and stores a fresh correction, replacing any that was not yet sent.
func (m *Mover) handleTelemetry(telem types.Telemetry) error {
	var candidate types.Command
	if m.cfg.Testing {
		candidate = m.store.Goal()
	} else {
		candidate = m.avoider.Avoid(telem)
	}

	d := types.Decode(candidate)
	if d.Kind != types.DirectiveNavigate {
		m.logger.Debugf("No correction from telemetry of plane %d (%s)", telem.PlaneID, d.Kind)
		return nil
	}

	m.store.PushAvoidance(d.Command)
	return nil
}

// handleCommand applies an operator command addressed to this plane: a
// meta command changes mode, anything else becomes the new goal.
func (m *Mover) handleCommand(cmd types.Command) error {
	if cmd.PlaneID != m.planeID {
		return nil
	}

	d := types.Decode(cmd)
	switch d.Kind {
	case types.DirectiveModeChange:
		m.logger.Infof("Operator requested mode %s", d.Mode)
		return m.modes.SetMode(d.Mode)

	case types.DirectiveNavigate:
		m.logger.Infof("Received new goal lat=%f lon=%f alt=%f", cmd.Latitude, cmd.Longitude, cmd.Altitude)
		m.store.SetGoal(d.Command)
		m.avoider.SetGoal(d.Command)

	default:
		m.logger.Debugf("Ignoring operator command %+v", cmd)
	}
	return nil
}
