package mouse

import "github.com/dshills/dragstream/internal/event"

// capture is the strategy a drag uses to keep receiving events when the
// pointer leaves the container. It is chosen once per press.
type capture interface {
	// Target is where drag listeners are installed.
	Target() event.Target
	// Release undoes whatever engaging the capture did.
	Release()
	// Native reports whether the container itself holds capture.
	Native() bool
}

// engageCapture selects and engages the capture strategy for c.
func engageCapture(c Container) capture {
	if cc, ok := c.(Capturer); ok {
		cc.SetCapture()
		return nativeCapture{container: c, capturer: cc}
	}
	return globalCapture{global: c.Global()}
}

// nativeCapture routes events through the container's own capture.
type nativeCapture struct {
	container Container
	capturer  Capturer
}

func (n nativeCapture) Target() event.Target { return n.container }
func (n nativeCapture) Release()             { n.capturer.ReleaseCapture() }
func (n nativeCapture) Native() bool         { return true }

// globalCapture listens on the global scope instead.
type globalCapture struct {
	global event.Target
}

func (g globalCapture) Target() event.Target { return g.global }
func (g globalCapture) Release()             {}
func (g globalCapture) Native() bool         { return false }
