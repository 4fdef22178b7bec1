package hardware

// Indicator output names.
const (
	OutputPublishEnable   = "publish_enable"
	OutputAvoidanceActive = "avoidance_active"
)
