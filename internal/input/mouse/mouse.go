package mouse

import (
	"github.com/dshills/dragstream/internal/event"
	"github.com/dshills/dragstream/internal/input/button"
	"github.com/dshills/dragstream/internal/surface"
)

// Sample describes one move during an active drag.
// The JSON names are the contract consumers read.
type Sample struct {
	// Button is the button whose state most recently changed, as reported
	// by the source event.
	Button button.Button `json:"button"`

	// Buttons is the full set of held buttons.
	Buttons button.Mask `json:"buttons"`

	ScreenX float64 `json:"screenX"`
	ScreenY float64 `json:"screenY"`

	// ClientX and ClientY are relative to the container, not the viewport.
	ClientX float64 `json:"clientX"`
	ClientY float64 `json:"clientY"`

	// Dx and Dy are the deltas from the previous sample of the same drag.
	Dx float64 `json:"dx"`
	Dy float64 `json:"dy"`

	CtrlKey  bool `json:"ctrlKey"`
	ShiftKey bool `json:"shiftKey"`
	AltKey   bool `json:"altKey"`
	MetaKey  bool `json:"metaKey"`

	RelatedTarget event.Target `json:"relatedTarget"`
	Region        string       `json:"region"`
}

// GestureSink receives drag samples. HandleDrag is called synchronously
// from the event loop and must not retain the listener across goroutines.
type GestureSink interface {
	HandleDrag(s Sample)
}

// SinkFunc adapts a function to GestureSink.
type SinkFunc func(s Sample)

// HandleDrag calls f(s).
func (f SinkFunc) HandleDrag(s Sample) {
	f(s)
}

// MultiSink fans samples out to every non-nil sink in order.
func MultiSink(sinks ...GestureSink) GestureSink {
	out := make(multiSink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

type multiSink []GestureSink

func (m multiSink) HandleDrag(s Sample) {
	for _, sink := range m {
		sink.HandleDrag(s)
	}
}

// Container is the element a DragListener watches.
type Container interface {
	event.Target

	// BoundingClientRect returns the container's viewport rectangle.
	BoundingClientRect() surface.Rect

	// Global returns the window-level scope the container lives in.
	Global() event.Target
}

// Capturer is implemented by containers with native capture support.
type Capturer interface {
	SetCapture()
	ReleaseCapture()
}

// State is the drag state of a listener.
type State uint8

const (
	// StateIdle means no drag is in progress.
	StateIdle State = iota
	// StateDragging means at least one button is held after a press.
	StateDragging
)

// String returns a string representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDragging:
		return "dragging"
	default:
		return "unknown"
	}
}
