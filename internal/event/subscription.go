package event

import "github.com/google/uuid"

// HandlerFunc handles a delivered event.
type HandlerFunc func(e *MouseEvent)

// Listener wraps a handler with a stable identity. Targets compare
// listeners by pointer, which is what makes exact removal possible.
type Listener struct {
	id string
	fn HandlerFunc
}

// NewListener wraps fn in a new Listener.
func NewListener(fn HandlerFunc) *Listener {
	return &Listener{
		id: uuid.NewString(),
		fn: fn,
	}
}

// ID returns the listener's unique identifier.
func (l *Listener) ID() string {
	return l.id
}

// Handle invokes the wrapped handler. A nil handler is ignored.
func (l *Listener) Handle(e *MouseEvent) {
	if l.fn != nil {
		l.fn(e)
	}
}

// Target is anything that accepts listener registrations.
//
// Implementations must treat (typ, l, useCapture) as the registration key:
// adding an existing key is a no-op, and removing a key that is not
// registered is a no-op.
type Target interface {
	AddEventListener(typ Type, l *Listener, useCapture bool)
	RemoveEventListener(typ Type, l *Listener, useCapture bool)
}

// Registration describes one active subscription. It holds everything
// needed to detach exactly that subscription later.
type Registration struct {
	Target     Target
	Type       Type
	Listener   *Listener
	UseCapture bool
}

// Subscribe registers l on target for typ and returns the registration.
func Subscribe(target Target, typ Type, l *Listener, useCapture bool) Registration {
	target.AddEventListener(typ, l, useCapture)
	return Registration{
		Target:     target,
		Type:       typ,
		Listener:   l,
		UseCapture: useCapture,
	}
}

// Unsubscribe removes exactly the subscription described by reg and
// returns it unchanged. Calling it again is a no-op on conforming targets.
func Unsubscribe(reg Registration) Registration {
	reg.Target.RemoveEventListener(reg.Type, reg.Listener, reg.UseCapture)
	return reg
}
