package types

import "testing"

func TestDecodeMetaCommands(t *testing.T) {
	cases := []struct {
		code int
		want Mode
	}{
		{MetaStartAvoidanceLon, ModeAvoidGuided},
		{MetaStopLon, ModeHalted},
		{MetaStartDirectLon, ModeDirectGoal},
	}

	for _, tc := range cases {
		d := Decode(MetaCommand(7, tc.code))
		if d.Kind != DirectiveModeChange {
			t.Errorf("code %d: expected mode-change, got %v", tc.code, d.Kind)
			continue
		}
		if d.Mode != tc.want {
			t.Errorf("code %d: expected mode %s, got %s", tc.code, tc.want, d.Mode)
		}
	}
}

func TestDecodeUnknownMetaCodeIgnored(t *testing.T) {
	d := Decode(MetaCommand(7, 42))
	if d.Kind != DirectiveIgnore {
		t.Errorf("Expected ignore for unknown meta code, got %v", d.Kind)
	}
}

func TestDecodeMetaCheckedFirst(t *testing.T) {
	// Altitude carries the invalid marker but the latitude says meta.
	c := Command{PlaneID: 7, Latitude: EmergencyProtocolLat, Longitude: MetaStopLon, Altitude: InvalidCoordinate}
	d := Decode(c)
	if d.Kind != DirectiveModeChange || d.Mode != ModeHalted {
		t.Errorf("Expected halt mode-change, got %v/%s", d.Kind, d.Mode)
	}
}

func TestDecodeInvalidPosition(t *testing.T) {
	d := Decode(InvalidCommand(7))
	if d.Kind != DirectiveIgnore {
		t.Errorf("Expected ignore, got %v", d.Kind)
	}

	// A single invalid field is still a navigation command.
	partial := Command{PlaneID: 7, Latitude: InvalidCoordinate, Longitude: 2, Altitude: 3}
	if d := Decode(partial); d.Kind != DirectiveNavigate {
		t.Errorf("Expected navigate for partially invalid command, got %v", d.Kind)
	}
}

func TestDecodeNavigate(t *testing.T) {
	c := Command{PlaneID: 7, Latitude: 1, Longitude: 2, Altitude: 3, CommandID: CommandWaypoint}
	d := Decode(c)
	if d.Kind != DirectiveNavigate {
		t.Fatalf("Expected navigate, got %v", d.Kind)
	}
	if d.Command != c {
		t.Errorf("Decoded command changed: %+v", d.Command)
	}
}

func TestIdentityHoldCommand(t *testing.T) {
	id := Identity{PlaneID: 7, InitialLatitude: 32.6, InitialLongitude: -85.4, InitialAltitude: 120}
	hold := id.HoldCommand()

	if hold.Altitude != 120 {
		t.Errorf("Altitude should come from the identity altitude, got %f", hold.Altitude)
	}
	if hold.CommandID != CommandHold || hold.Param != HoldParam {
		t.Errorf("Expected hold command, got %+v", hold)
	}
	if hold.PlaneID != 7 || hold.Latitude != 32.6 || hold.Longitude != -85.4 {
		t.Errorf("Unexpected hold position: %+v", hold)
	}
}

func TestModeActive(t *testing.T) {
	if ModeHalted.Active() {
		t.Error("Halted must not be active")
	}
	if !ModeDirectGoal.Active() || !ModeAvoidGuided.Active() {
		t.Error("DirectGoal and AvoidGuided must be active")
	}
}
