// Package surface provides an in-memory input surface: a Window that acts
// as the global event scope and rectangular Elements placed on it.
//
// Dispatch follows the usual three-phase model. An event is hit-tested to
// its target (the capturing element if one holds capture, otherwise the
// topmost element under the pointer, otherwise the window), then delivered
// to capture listeners on the window, to every listener on the target, and
// finally to non-capture listeners on the window.
//
// Elements come in two variants. Element has no native capture support.
// CaptureElement adds SetCapture and ReleaseCapture, which route every
// subsequent event to it regardless of pointer position.
//
// Like the rest of the input stack, a Window and its elements must be
// driven from a single goroutine.
package surface

import (
	"github.com/dshills/dragstream/internal/event"
)

// Rect is an axis-aligned rectangle in viewport coordinates.
type Rect struct {
	Left, Top     float64
	Width, Height float64
}

// Right returns the exclusive right edge.
func (r Rect) Right() float64 {
	return r.Left + r.Width
}

// Bottom returns the exclusive bottom edge.
func (r Rect) Bottom() float64 {
	return r.Top + r.Height
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.Left && x < r.Right() && y >= r.Top && y < r.Bottom()
}

// Window is the root of a surface and its global event scope.
type Window struct {
	listeners event.ListenerList
	elements  []*Element
	captured  *Element
}

// NewWindow creates an empty window.
func NewWindow() *Window {
	return &Window{}
}

// AddEventListener implements event.Target.
func (w *Window) AddEventListener(typ event.Type, l *event.Listener, useCapture bool) {
	w.listeners.Add(typ, l, useCapture)
}

// RemoveEventListener implements event.Target.
func (w *Window) RemoveEventListener(typ event.Type, l *event.Listener, useCapture bool) {
	w.listeners.Remove(typ, l, useCapture)
}

// ListenerCount returns the number of window listeners for typ.
func (w *Window) ListenerCount(typ event.Type) int {
	return w.listeners.Count(typ)
}

// String implements fmt.Stringer.
func (w *Window) String() string {
	return "window"
}

// NewElement places a new element without native capture support on top
// of the existing ones.
func (w *Window) NewElement(name string, bounds Rect) *Element {
	e := &Element{name: name, bounds: bounds, window: w}
	w.elements = append(w.elements, e)
	return e
}

// NewCaptureElement places a new element with native capture support on
// top of the existing ones.
func (w *Window) NewCaptureElement(name string, bounds Rect) *CaptureElement {
	return &CaptureElement{Element: w.NewElement(name, bounds)}
}

// Captured returns the element holding capture, or nil.
func (w *Window) Captured() *Element {
	return w.captured
}

// ReleaseCapture releases capture held by any element.
func (w *Window) ReleaseCapture() {
	w.captured = nil
}

// HitTest returns the target an event at (x, y) would be delivered to.
func (w *Window) HitTest(x, y float64) event.Target {
	if w.captured != nil {
		return w.captured
	}
	for i := len(w.elements) - 1; i >= 0; i-- {
		if w.elements[i].bounds.Contains(x, y) {
			return w.elements[i]
		}
	}
	return w
}

// Dispatch delivers ev and reports whether the default action should
// proceed, i.e. no listener called PreventDefault.
func (w *Window) Dispatch(ev *event.MouseEvent) bool {
	target := w.HitTest(ev.ClientX, ev.ClientY)
	ev.Target = target

	if target == event.Target(w) {
		w.deliver(ev, event.PhaseAtTarget)
	} else {
		elem := target.(*Element)
		w.deliver(ev, event.PhaseCapturing)
		if !ev.PropagationStopped() {
			ev.CurrentTarget = elem
			ev.Phase = event.PhaseAtTarget
			elem.listeners.Invoke(ev)
		}
		if !ev.PropagationStopped() {
			w.deliver(ev, event.PhaseBubbling)
		}
	}

	ev.CurrentTarget = nil
	ev.Phase = event.PhaseNone
	return !ev.DefaultPrevented()
}

func (w *Window) deliver(ev *event.MouseEvent, phase event.Phase) {
	ev.CurrentTarget = w
	ev.Phase = phase
	w.listeners.Invoke(ev)
}

// Element is a rectangular region of a window that receives events.
type Element struct {
	name      string
	bounds    Rect
	window    *Window
	listeners event.ListenerList
}

// AddEventListener implements event.Target.
func (e *Element) AddEventListener(typ event.Type, l *event.Listener, useCapture bool) {
	e.listeners.Add(typ, l, useCapture)
}

// RemoveEventListener implements event.Target.
func (e *Element) RemoveEventListener(typ event.Type, l *event.Listener, useCapture bool) {
	e.listeners.Remove(typ, l, useCapture)
}

// ListenerCount returns the number of element listeners for typ.
func (e *Element) ListenerCount(typ event.Type) int {
	return e.listeners.Count(typ)
}

// BoundingClientRect returns the element's bounds in viewport coordinates.
func (e *Element) BoundingClientRect() Rect {
	return e.bounds
}

// SetBounds moves or resizes the element.
func (e *Element) SetBounds(r Rect) {
	e.bounds = r
}

// Global returns the window that owns the element.
func (e *Element) Global() event.Target {
	return e.window
}

// Window returns the owning window.
func (e *Element) Window() *Window {
	return e.window
}

// String implements fmt.Stringer.
func (e *Element) String() string {
	return e.name
}

// CaptureElement is an Element with native capture support.
type CaptureElement struct {
	*Element
}

// SetCapture routes all subsequent events on the window to the element
// until capture is released.
func (c *CaptureElement) SetCapture() {
	c.window.captured = c.Element
}

// ReleaseCapture releases capture if the element holds it.
func (c *CaptureElement) ReleaseCapture() {
	if c.window.captured == c.Element {
		c.window.captured = nil
	}
}

// HasCapture reports whether the element currently holds capture.
func (c *CaptureElement) HasCapture() bool {
	return c.window.captured == c.Element
}
