package avoidance

import (
	"testing"

	"mover-service/internal/types"
)

func TestGoalTrackerWithoutGoal(t *testing.T) {
	g := NewGoalTracker()
	g.Init(7)

	c := g.Avoid(types.Telemetry{PlaneID: 7})
	if types.Decode(c).Kind != types.DirectiveIgnore {
		t.Errorf("Expected no correction before a goal is set, got %+v", c)
	}
}

func TestGoalTrackerForeignTelemetry(t *testing.T) {
	g := NewGoalTracker()
	g.Init(7)
	g.SetGoal(types.Command{PlaneID: 7, Latitude: 1, Longitude: 2, Altitude: 3})

	c := g.Avoid(types.Telemetry{PlaneID: 8})
	if types.Decode(c).Kind != types.DirectiveIgnore {
		t.Errorf("Expected no correction for foreign plane, got %+v", c)
	}
}

func TestGoalTrackerRedirectsToGoal(t *testing.T) {
	g := NewGoalTracker()
	g.Init(7)
	goal := types.Command{PlaneID: 7, Latitude: 1, Longitude: 2, Altitude: 3}
	g.SetGoal(goal)

	c := g.Avoid(types.Telemetry{PlaneID: 7, DestLatitude: 9, DestLongitude: 9, DestAltitude: 9})
	if c != goal {
		t.Errorf("Expected goal %+v, got %+v", goal, c)
	}

	onCourse := types.Telemetry{PlaneID: 7, DestLatitude: 1, DestLongitude: 2, DestAltitude: 3}
	if types.Decode(g.Avoid(onCourse)).Kind != types.DirectiveIgnore {
		t.Error("Expected no correction when already heading to goal")
	}
}
