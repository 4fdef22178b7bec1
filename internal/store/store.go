// Package store holds the commands shared between the message dispatch path
// and the publish loop.
package store

import (
	"sync"

	"mover-service/internal/types"
)

// CommandStore keeps the latest operator goal and a single-slot mailbox for
// the latest avoidance correction. Goal and mailbox are guarded by separate
// mutexes and no method holds both.
type CommandStore struct {
	goalMu sync.RWMutex
	goal   types.Command

	avoidMu   sync.Mutex
	avoidance []types.Command
}

func New(goal types.Command) *CommandStore {
	return &CommandStore{
		goal:      goal,
		avoidance: make([]types.Command, 0, 1),
	}
}

func (s *CommandStore) SetGoal(c types.Command) {
	s.goalMu.Lock()
	s.goal = c
	s.goalMu.Unlock()
}

func (s *CommandStore) Goal() types.Command {
	s.goalMu.RLock()
	defer s.goalMu.RUnlock()
	return s.goal
}

// PushAvoidance replaces any pending correction with c.
func (s *CommandStore) PushAvoidance(c types.Command) {
	s.avoidMu.Lock()
	s.avoidance = append(s.avoidance[:0], c)
	s.avoidMu.Unlock()
}

// PopAvoidance removes and returns the pending correction, if any.
func (s *CommandStore) PopAvoidance() (types.Command, bool) {
	s.avoidMu.Lock()
	defer s.avoidMu.Unlock()
	if len(s.avoidance) == 0 {
		return types.Command{}, false
	}
	c := s.avoidance[0]
	s.avoidance = s.avoidance[:0]
	return c, true
}
