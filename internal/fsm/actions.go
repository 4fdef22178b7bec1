package fsm

import "github.com/librescoot/librefsm"

// Actions defines the interface for mover state machine actions.
// ModeController implements this interface to drive indicator outputs
// on state entry.
type Actions interface {
	EnterHalted(c *librefsm.Context) error
	EnterDirectGoal(c *librefsm.Context) error
	EnterAvoidGuided(c *librefsm.Context) error
}
