package types

import "fmt"

type DirectiveKind int

const (
	DirectiveIgnore DirectiveKind = iota
	DirectiveNavigate
	DirectiveModeChange
)

func (k DirectiveKind) String() string {
	switch k {
	case DirectiveIgnore:
		return "ignore"
	case DirectiveNavigate:
		return "navigate"
	case DirectiveModeChange:
		return "mode-change"
	default:
		return fmt.Sprintf("DirectiveKind(%d)", int(k))
	}
}

// Directive is a Command with its sentinel encoding resolved. Only the
// field matching Kind is meaningful.
type Directive struct {
	Kind    DirectiveKind
	Command Command
	Mode    Mode
}

// Decode interprets a raw Command. Meta encoding is checked before the
// invalid-position marker; an unknown meta code decodes to DirectiveIgnore.
func Decode(c Command) Directive {
	if c.Latitude == EmergencyProtocolLat {
		var mode Mode
		switch int(c.Longitude) {
		case MetaStartAvoidanceLon:
			mode = ModeAvoidGuided
		case MetaStopLon:
			mode = ModeHalted
		case MetaStartDirectLon:
			mode = ModeDirectGoal
		default:
			return Directive{Kind: DirectiveIgnore, Command: c}
		}
		return Directive{Kind: DirectiveModeChange, Command: c, Mode: mode}
	}

	if c.Latitude == InvalidCoordinate && c.Longitude == InvalidCoordinate && c.Altitude == InvalidCoordinate {
		return Directive{Kind: DirectiveIgnore, Command: c}
	}

	return Directive{Kind: DirectiveNavigate, Command: c}
}
