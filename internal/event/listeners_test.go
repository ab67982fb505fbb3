package event

import (
	"reflect"
	"testing"
)

func TestListenerList_IgnoresDuplicatesAndNil(t *testing.T) {
	var ll ListenerList
	l := NewListener(nil)

	ll.Add(TypeMouseDown, l, false)
	ll.Add(TypeMouseDown, l, false)
	ll.Add(TypeMouseDown, nil, false)

	if ll.Len() != 1 {
		t.Errorf("Len() = %d, want 1", ll.Len())
	}

	// Capture flag is part of the key.
	ll.Add(TypeMouseDown, l, true)
	if ll.Len() != 2 {
		t.Errorf("Len() = %d, want 2", ll.Len())
	}
}

func TestListenerList_RemoveMissing(t *testing.T) {
	var ll ListenerList
	ll.Remove(TypeMouseUp, NewListener(nil), false)
	if ll.Len() != 0 {
		t.Errorf("Len() = %d, want 0", ll.Len())
	}
}

func TestListenerList_InvokePhases(t *testing.T) {
	var ll ListenerList
	var calls []string

	ll.Add(TypeMouseMove, NewListener(func(*MouseEvent) { calls = append(calls, "bubble") }), false)
	ll.Add(TypeMouseMove, NewListener(func(*MouseEvent) { calls = append(calls, "capture") }), true)
	ll.Add(TypeMouseUp, NewListener(func(*MouseEvent) { calls = append(calls, "other") }), false)

	tests := []struct {
		phase Phase
		want  []string
	}{
		{PhaseCapturing, []string{"capture"}},
		{PhaseBubbling, []string{"bubble"}},
		{PhaseAtTarget, []string{"capture", "bubble"}},
		{PhaseNone, nil},
	}

	for _, tt := range tests {
		t.Run(tt.phase.String(), func(t *testing.T) {
			calls = nil
			ll.Invoke(&MouseEvent{Type: TypeMouseMove, Phase: tt.phase})
			if !reflect.DeepEqual(calls, tt.want) {
				t.Errorf("calls = %v, want %v", calls, tt.want)
			}
		})
	}
}

func TestListenerList_MutationDuringInvoke(t *testing.T) {
	var ll ListenerList
	var calls []string

	late := NewListener(func(*MouseEvent) { calls = append(calls, "late") })
	second := NewListener(func(*MouseEvent) { calls = append(calls, "second") })
	first := NewListener(func(*MouseEvent) {
		calls = append(calls, "first")
		ll.Remove(TypeMouseDown, second, false)
		ll.Add(TypeMouseDown, late, false)
	})

	ll.Add(TypeMouseDown, first, false)
	ll.Add(TypeMouseDown, second, false)

	ll.Invoke(&MouseEvent{Type: TypeMouseDown, Phase: PhaseAtTarget})
	if want := []string{"first"}; !reflect.DeepEqual(calls, want) {
		t.Errorf("first dispatch calls = %v, want %v", calls, want)
	}

	calls = nil
	ll.Invoke(&MouseEvent{Type: TypeMouseDown, Phase: PhaseAtTarget})
	if want := []string{"first", "late"}; !reflect.DeepEqual(calls, want) {
		t.Errorf("second dispatch calls = %v, want %v", calls, want)
	}
}

func TestMouseEvent_Flags(t *testing.T) {
	ev := &MouseEvent{Type: TypeContextMenu}
	if ev.DefaultPrevented() || ev.PropagationStopped() {
		t.Fatal("new event should have no flags set")
	}
	ev.PreventDefault()
	ev.StopPropagation()
	if !ev.DefaultPrevented() || !ev.PropagationStopped() {
		t.Error("flags not recorded")
	}
}
