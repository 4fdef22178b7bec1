package fsm

import (
	"github.com/librescoot/librefsm"
)

// NewDefinition creates the mover FSM definition. Every mode is reachable
// from every other mode; there are no timers.
func NewDefinition(actions Actions) *librefsm.Definition {
	return librefsm.NewDefinition().
		State(StateHalted,
			librefsm.WithOnEnter(actions.EnterHalted),
		).
		State(StateDirectGoal,
			librefsm.WithOnEnter(actions.EnterDirectGoal),
		).
		State(StateAvoidGuided,
			librefsm.WithOnEnter(actions.EnterAvoidGuided),
		).

		// From Halted
		Transition(StateHalted, EvStartDirect, StateDirectGoal).
		Transition(StateHalted, EvStartAvoidance, StateAvoidGuided).

		// From DirectGoal
		Transition(StateDirectGoal, EvStop, StateHalted).
		Transition(StateDirectGoal, EvStartAvoidance, StateAvoidGuided).

		// From AvoidGuided
		Transition(StateAvoidGuided, EvStop, StateHalted).
		Transition(StateAvoidGuided, EvStartDirect, StateDirectGoal).

		Initial(StateHalted)
}
