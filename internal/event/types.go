package event

// Type names a kind of pointer event.
type Type string

// Event types delivered by input surfaces.
const (
	TypeMouseDown   Type = "mousedown"
	TypeMouseMove   Type = "mousemove"
	TypeMouseUp     Type = "mouseup"
	TypeContextMenu Type = "contextmenu"
)

// String returns the type name.
func (t Type) String() string {
	return string(t)
}

// Phase is the propagation phase an event is currently in.
type Phase int

const (
	// PhaseNone means the event is not being dispatched.
	PhaseNone Phase = iota
	// PhaseCapturing means the event is travelling from the root toward
	// the target; only capture listeners run.
	PhaseCapturing
	// PhaseAtTarget means the event has reached its target; capture
	// listeners run first, then the others.
	PhaseAtTarget
	// PhaseBubbling means the event is travelling back toward the root;
	// only non-capture listeners run.
	PhaseBubbling
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseCapturing:
		return "capturing"
	case PhaseAtTarget:
		return "at-target"
	case PhaseBubbling:
		return "bubbling"
	default:
		return "none"
	}
}
