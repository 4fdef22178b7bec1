package types

type Mode string

const (
	ModeHalted      Mode = "halted"
	ModeDirectGoal  Mode = "direct-goal"
	ModeAvoidGuided Mode = "avoid-guided"
)

// Active reports whether commands are published in this mode.
func (m Mode) Active() bool {
	return m == ModeDirectGoal || m == ModeAvoidGuided
}
