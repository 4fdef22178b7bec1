package core

import (
	"time"

	"mover-service/internal/messaging"
	"mover-service/internal/types"
)

// MessagingClient defines the bus operations needed by Mover
type MessagingClient interface {
	SetCallbacks(callbacks messaging.Callbacks)
	Connect() error
	StartListening() error
	Close() error

	// Bootstrap
	RequestIdentity(timeout time.Duration) (types.Identity, error)
	PublishPlaneID(planeID int) error

	// Mode reporting
	PublishMode(mode types.Mode) error

	// Outbound commands
	PublishCommand(cmd types.Command) error
}

// HardwareIO defines the indicator outputs driven on mode changes
type HardwareIO interface {
	Initialize() error
	Cleanup()
	WriteDigitalOutput(channel string, value bool) error
}

// Avoider is the collision avoidance algorithm. Avoid returns the
// invalid-position marker when no correction is needed.
type Avoider interface {
	Init(planeID int)
	Avoid(telem types.Telemetry) types.Command
	SetGoal(cmd types.Command)
}

// CommandSink receives every command the publish loop emits.
type CommandSink interface {
	PublishCommand(cmd types.Command) error
}

// ModePublisher reports mode transitions outside the process.
type ModePublisher interface {
	PublishMode(mode types.Mode) error
}
