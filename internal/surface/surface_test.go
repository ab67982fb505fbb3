package surface

import (
	"reflect"
	"testing"

	"github.com/dshills/dragstream/internal/event"
)

func TestRectContains(t *testing.T) {
	r := Rect{Left: 10, Top: 5, Width: 20, Height: 10}

	tests := []struct {
		x, y float64
		want bool
	}{
		{10, 5, true},
		{29.5, 14.5, true},
		{30, 5, false},
		{10, 15, false},
		{9.9, 6, false},
	}

	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestHitTest(t *testing.T) {
	w := NewWindow()
	below := w.NewElement("below", Rect{Left: 0, Top: 0, Width: 50, Height: 50})
	above := w.NewElement("above", Rect{Left: 10, Top: 10, Width: 10, Height: 10})

	if got := w.HitTest(15, 15); got != event.Target(above) {
		t.Errorf("HitTest(15,15) = %v, want above", got)
	}
	if got := w.HitTest(40, 40); got != event.Target(below) {
		t.Errorf("HitTest(40,40) = %v, want below", got)
	}
	if got := w.HitTest(80, 80); got != event.Target(w) {
		t.Errorf("HitTest(80,80) = %v, want window", got)
	}
}

func TestDispatchOrder(t *testing.T) {
	w := NewWindow()
	elem := w.NewElement("box", Rect{Width: 10, Height: 10})
	var calls []string

	record := func(name string) *event.Listener {
		return event.NewListener(func(e *event.MouseEvent) {
			calls = append(calls, name+":"+e.Phase.String())
		})
	}

	w.AddEventListener(event.TypeMouseDown, record("window-capture"), true)
	w.AddEventListener(event.TypeMouseDown, record("window-bubble"), false)
	elem.AddEventListener(event.TypeMouseDown, record("elem-bubble"), false)
	elem.AddEventListener(event.TypeMouseDown, record("elem-capture"), true)

	ev := &event.MouseEvent{Type: event.TypeMouseDown, ClientX: 5, ClientY: 5}
	if !w.Dispatch(ev) {
		t.Error("Dispatch() = false, want true")
	}

	want := []string{
		"window-capture:capturing",
		"elem-capture:at-target",
		"elem-bubble:at-target",
		"window-bubble:bubbling",
	}
	if !reflect.DeepEqual(calls, want) {
		t.Errorf("calls = %v, want %v", calls, want)
	}
	if ev.Target != event.Target(elem) {
		t.Errorf("Target = %v, want box", ev.Target)
	}
	if ev.Phase != event.PhaseNone || ev.CurrentTarget != nil {
		t.Error("dispatch bookkeeping not reset")
	}
}

func TestDispatchOnWindow(t *testing.T) {
	w := NewWindow()
	var calls []string

	w.AddEventListener(event.TypeMouseMove, event.NewListener(func(e *event.MouseEvent) {
		calls = append(calls, "capture:"+e.Phase.String())
	}), true)
	w.AddEventListener(event.TypeMouseMove, event.NewListener(func(e *event.MouseEvent) {
		calls = append(calls, "bubble:"+e.Phase.String())
	}), false)

	w.Dispatch(&event.MouseEvent{Type: event.TypeMouseMove, ClientX: 100, ClientY: 100})

	want := []string{"capture:at-target", "bubble:at-target"}
	if !reflect.DeepEqual(calls, want) {
		t.Errorf("calls = %v, want %v", calls, want)
	}
}

func TestDispatchPreventDefault(t *testing.T) {
	w := NewWindow()
	w.AddEventListener(event.TypeContextMenu, event.NewListener(func(e *event.MouseEvent) {
		e.PreventDefault()
	}), true)

	if w.Dispatch(&event.MouseEvent{Type: event.TypeContextMenu}) {
		t.Error("Dispatch() = true, want false after PreventDefault")
	}
}

func TestDispatchStopPropagation(t *testing.T) {
	w := NewWindow()
	elem := w.NewElement("box", Rect{Width: 10, Height: 10})
	reached := false

	w.AddEventListener(event.TypeMouseUp, event.NewListener(func(e *event.MouseEvent) {
		e.StopPropagation()
	}), true)
	elem.AddEventListener(event.TypeMouseUp, event.NewListener(func(*event.MouseEvent) {
		reached = true
	}), false)

	w.Dispatch(&event.MouseEvent{Type: event.TypeMouseUp, ClientX: 1, ClientY: 1})
	if reached {
		t.Error("element listener ran after StopPropagation")
	}
}

func TestCapture(t *testing.T) {
	w := NewWindow()
	box := w.NewCaptureElement("box", Rect{Width: 10, Height: 10})
	other := w.NewElement("other", Rect{Left: 20, Width: 10, Height: 10})

	box.SetCapture()
	if !box.HasCapture() || w.Captured() != box.Element {
		t.Fatal("capture not engaged")
	}
	if got := w.HitTest(25, 5); got != event.Target(box.Element) {
		t.Errorf("HitTest while captured = %v, want box", got)
	}

	box.ReleaseCapture()
	if box.HasCapture() {
		t.Error("capture still held after ReleaseCapture")
	}
	if got := w.HitTest(25, 5); got != event.Target(other) {
		t.Errorf("HitTest after release = %v, want other", got)
	}

	box.SetCapture()
	w.ReleaseCapture()
	if w.Captured() != nil {
		t.Error("window ReleaseCapture did not clear capture")
	}
}

func TestElementAccessors(t *testing.T) {
	w := NewWindow()
	e := w.NewElement("panel", Rect{Left: 1, Top: 2, Width: 3, Height: 4})

	if e.Global() != event.Target(w) || e.Window() != w {
		t.Error("element not attached to its window")
	}
	if e.String() != "panel" || w.String() != "window" {
		t.Errorf("names = %q, %q", e.String(), w.String())
	}

	e.SetBounds(Rect{Width: 9, Height: 9})
	if got := e.BoundingClientRect(); got != (Rect{Width: 9, Height: 9}) {
		t.Errorf("BoundingClientRect() = %+v", got)
	}

	l := event.NewListener(nil)
	e.AddEventListener(event.TypeMouseDown, l, false)
	w.AddEventListener(event.TypeMouseDown, l, false)
	if e.ListenerCount(event.TypeMouseDown) != 1 || w.ListenerCount(event.TypeMouseDown) != 1 {
		t.Error("listener counts wrong after add")
	}
	e.RemoveEventListener(event.TypeMouseDown, l, false)
	w.RemoveEventListener(event.TypeMouseDown, l, false)
	if e.ListenerCount(event.TypeMouseDown) != 0 || w.ListenerCount(event.TypeMouseDown) != 0 {
		t.Error("listener counts wrong after remove")
	}
}
