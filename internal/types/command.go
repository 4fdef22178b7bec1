package types

// Reserved coordinate values overloading the Command wire type.
const (
	InvalidCoordinate    = -1000.0
	EmergencyProtocolLat = 1000.0
)

// Meta command codes carried in the longitude field when the latitude is
// EmergencyProtocolLat.
const (
	MetaStopLon           = 0
	MetaStartAvoidanceLon = 1
	MetaStartDirectLon    = 2
)

// Command kinds understood by the flight controller.
const (
	CommandWaypoint = 1
	CommandHold     = 2
)

// HoldParam is the parameter sent with the startup hold-position goal.
const HoldParam = 2

// Command is a navigation instruction as carried on the bus.
type Command struct {
	PlaneID   int     `json:"plane_id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Altitude  float64 `json:"altitude"`
	Param     float64 `json:"param"`
	CommandID int     `json:"command_id"`
}

// InvalidCommand returns the "no correction" marker for the given plane.
func InvalidCommand(planeID int) Command {
	return Command{
		PlaneID:   planeID,
		Latitude:  InvalidCoordinate,
		Longitude: InvalidCoordinate,
		Altitude:  InvalidCoordinate,
	}
}

// MetaCommand builds a mode-change request addressed to planeID.
func MetaCommand(planeID int, code int) Command {
	return Command{
		PlaneID:   planeID,
		Latitude:  EmergencyProtocolLat,
		Longitude: float64(code),
	}
}

// Telemetry is a vehicle's reported state.
type Telemetry struct {
	PlaneID               int     `json:"plane_id"`
	Latitude              float64 `json:"latitude"`
	Longitude             float64 `json:"longitude"`
	Altitude              float64 `json:"altitude"`
	DestLatitude          float64 `json:"dest_latitude"`
	DestLongitude         float64 `json:"dest_longitude"`
	DestAltitude          float64 `json:"dest_altitude"`
	GroundSpeed           float64 `json:"ground_speed"`
	TargetBearing         float64 `json:"target_bearing"`
	CurrentWaypointIndex  int     `json:"current_waypoint_index"`
	DistanceToDestination float64 `json:"distance_to_destination"`
}

// Identity is the identity service's answer at startup.
type Identity struct {
	PlaneID          int     `json:"plane_id"`
	InitialLatitude  float64 `json:"initial_latitude"`
	InitialLongitude float64 `json:"initial_longitude"`
	InitialAltitude  float64 `json:"initial_altitude"`
}

// HoldCommand is the hold-position goal seeded from an identity response.
func (id Identity) HoldCommand() Command {
	return Command{
		PlaneID:   id.PlaneID,
		Latitude:  id.InitialLatitude,
		Longitude: id.InitialLongitude,
		Altitude:  id.InitialAltitude,
		Param:     HoldParam,
		CommandID: CommandHold,
	}
}
