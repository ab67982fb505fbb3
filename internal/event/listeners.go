package event

// entry is one stored registration. removed is set when the entry is
// detached so that in-flight snapshots skip it.
type entry struct {
	typ     Type
	l       *Listener
	capture bool
	removed bool
}

// ListenerList stores the listeners registered on a single target.
// The zero value is ready to use.
type ListenerList struct {
	entries []*entry
}

// Add registers l for typ. Nil listeners and exact duplicates are ignored.
func (ll *ListenerList) Add(typ Type, l *Listener, capture bool) {
	if l == nil {
		return
	}
	if ll.find(typ, l, capture) >= 0 {
		return
	}
	ll.entries = append(ll.entries, &entry{typ: typ, l: l, capture: capture})
}

// Remove detaches the exact (typ, l, capture) registration if present.
func (ll *ListenerList) Remove(typ Type, l *Listener, capture bool) {
	i := ll.find(typ, l, capture)
	if i < 0 {
		return
	}
	ll.entries[i].removed = true
	ll.entries = append(ll.entries[:i], ll.entries[i+1:]...)
}

// Count returns the number of listeners registered for typ.
func (ll *ListenerList) Count(typ Type) int {
	n := 0
	for _, e := range ll.entries {
		if e.typ == typ {
			n++
		}
	}
	return n
}

// Len returns the total number of registrations.
func (ll *ListenerList) Len() int {
	return len(ll.entries)
}

// Invoke delivers ev to the listeners matching ev.Type and the event's
// current phase: capture listeners while capturing, non-capture listeners
// while bubbling, and both (capture first) at the target.
func (ll *ListenerList) Invoke(ev *MouseEvent) {
	snapshot := make([]*entry, 0, len(ll.entries))
	for _, e := range ll.entries {
		if e.typ == ev.Type {
			snapshot = append(snapshot, e)
		}
	}
	if len(snapshot) == 0 {
		return
	}

	switch ev.Phase {
	case PhaseCapturing:
		invoke(snapshot, ev, true)
	case PhaseBubbling:
		invoke(snapshot, ev, false)
	case PhaseAtTarget:
		invoke(snapshot, ev, true)
		invoke(snapshot, ev, false)
	}
}

func invoke(snapshot []*entry, ev *MouseEvent, capture bool) {
	for _, e := range snapshot {
		if e.removed || e.capture != capture {
			continue
		}
		e.l.Handle(ev)
	}
}

func (ll *ListenerList) find(typ Type, l *Listener, capture bool) int {
	for i, e := range ll.entries {
		if e.typ == typ && e.l == l && e.capture == capture {
			return i
		}
	}
	return -1
}
