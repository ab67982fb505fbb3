package event

// Registry is an ordered group of registrations that are torn down
// together. The zero value is an empty registry ready to use.
type Registry struct {
	regs []Registration
}

// Add appends registrations to the registry.
func (r *Registry) Add(regs ...Registration) {
	r.regs = append(r.regs, regs...)
}

// Len returns the number of registrations held.
func (r *Registry) Len() int {
	return len(r.regs)
}

// Registrations returns a copy of the held registrations in order.
func (r *Registry) Registrations() []Registration {
	out := make([]Registration, len(r.regs))
	copy(out, r.regs)
	return out
}

// ClearAll unsubscribes every registration in r, in insertion order, and
// then empties r. An empty registry is left untouched.
func ClearAll(r *Registry) {
	if len(r.regs) == 0 {
		return
	}
	for _, reg := range r.regs {
		Unsubscribe(reg)
	}
	clear(r.regs)
	r.regs = r.regs[:0]
}
