package fsm

import "github.com/librescoot/librefsm"

// Mover states
const (
	StateHalted      librefsm.StateID = "halted"
	StateDirectGoal  librefsm.StateID = "direct-goal"
	StateAvoidGuided librefsm.StateID = "avoid-guided"
)

// Mover events, raised by operator meta commands
const (
	EvStartAvoidance librefsm.EventID = "start-avoidance"
	EvStop           librefsm.EventID = "stop"
	EvStartDirect    librefsm.EventID = "start-direct"
)
