package core

import (
	"time"

	"mover-service/internal/store"
	"mover-service/internal/types"
)

func newStoreWithGoal(goal types.Command) *store.CommandStore {
	return store.New(goal)
}

// eventually polls cond for up to 500ms; FSM entry actions may complete
// after SendSync returns.
func eventually(cond func() bool) bool {
	deadline := time.Now().Add(500 * time.Millisecond)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return cond()
}
