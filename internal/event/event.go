package event

import (
	"time"

	"github.com/dshills/dragstream/internal/input/button"
)

// MouseEvent is a pointer event as delivered to listeners.
//
// ClientX and ClientY are relative to the surface viewport. Consumers that
// need element-relative coordinates subtract the element's bounding rect.
type MouseEvent struct {
	Type Type

	// Button is the button whose state changed. Meaningless for moves.
	Button button.Button

	// Buttons is the full set of buttons held after the event.
	Buttons button.Mask

	ScreenX, ScreenY float64
	ClientX, ClientY float64

	CtrlKey  bool
	ShiftKey bool
	AltKey   bool
	MetaKey  bool

	// RelatedTarget and Region are passed through from the source.
	RelatedTarget Target
	Region        string

	Timestamp time.Time

	// Dispatch bookkeeping, maintained by the surface.
	Target        Target
	CurrentTarget Target
	Phase         Phase

	defaultPrevented bool
	stopped          bool
}

// PreventDefault cancels the surface's default action for the event.
func (e *MouseEvent) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented reports whether PreventDefault was called.
func (e *MouseEvent) DefaultPrevented() bool {
	return e.defaultPrevented
}

// StopPropagation prevents the event from reaching further targets.
// Remaining listeners on the current target still run.
func (e *MouseEvent) StopPropagation() {
	e.stopped = true
}

// PropagationStopped reports whether StopPropagation was called.
func (e *MouseEvent) PropagationStopped() bool {
	return e.stopped
}
