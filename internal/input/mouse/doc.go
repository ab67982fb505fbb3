// Package mouse turns raw pointer events on a container into a normalized
// drag-gesture stream.
//
// # Drag Listener
//
// A DragListener owns a container and a GestureSink. While idle it listens
// for a press on the container. A press starts a drag: the listener moves
// its move/release listeners to the capture target and reports every move
// made with at least one button held as a Sample, with coordinates
// relative to the container and deltas against the previous sample:
//
//	dl := mouse.NewDragListener(box, mouse.SinkFunc(func(s mouse.Sample) {
//	    pan(s.Dx, s.Dy)
//	}))
//	defer dl.Disable()
//
// The drag ends when every button is released. Some sources never report
// the release when several buttons go up together; a move with no buttons
// held is therefore treated as the release.
//
// # Capture
//
// If the container supports native capture (implements Capturer) it is
// captured for the duration of the drag and receives every event itself.
// Otherwise the listener falls back to the container's global scope so
// the drag keeps tracking after the pointer leaves the container.
//
// # Context Menu
//
// Releasing the right button at the end of a right-drag would normally pop
// up a context menu. The listener suppresses context-menu events that
// arrive within a short cooldown (100ms by default) after a right-button
// release. This listener is independent of drag state.
//
// # Thread Safety
//
// DragListener is not synchronized. Construct it and feed its container
// events from the same event-loop goroutine.
package mouse
