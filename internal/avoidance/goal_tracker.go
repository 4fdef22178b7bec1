// Package avoidance provides the default Avoider used when no collision
// avoidance algorithm is linked in.
package avoidance

import (
	"sync"

	"mover-service/internal/types"
)

// GoalTracker never corrects course. For telemetry from its own plane it
// returns the current goal whenever the plane is not already heading there;
// every other sample yields the invalid-position marker.
type GoalTracker struct {
	mu      sync.Mutex
	planeID int
	goal    types.Command
	hasGoal bool
}

func NewGoalTracker() *GoalTracker {
	return &GoalTracker{}
}

func (g *GoalTracker) Init(planeID int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.planeID = planeID
	g.hasGoal = false
}

func (g *GoalTracker) SetGoal(c types.Command) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.goal = c
	g.hasGoal = true
}

func (g *GoalTracker) Avoid(t types.Telemetry) types.Command {
	g.mu.Lock()
	defer g.mu.Unlock()

	if t.PlaneID != g.planeID || !g.hasGoal {
		return types.InvalidCommand(g.planeID)
	}
	if t.DestLatitude == g.goal.Latitude && t.DestLongitude == g.goal.Longitude && t.DestAltitude == g.goal.Altitude {
		return types.InvalidCommand(g.planeID)
	}
	return g.goal
}
