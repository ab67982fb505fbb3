// Package event provides pointer event payloads and the listener
// registration plumbing that input targets share.
//
// The model follows the familiar add/remove listener contract: a Target
// accepts a (type, listener, capture) triple and removes exactly the same
// triple later. Listener identity is the *Listener pointer, so the same
// handler function wrapped twice yields two distinct registrations.
//
// # Registrations
//
// Subscribe attaches a listener and returns a Registration that carries
// the four values verbatim; Unsubscribe detaches it again:
//
//	reg := event.Subscribe(elem, event.TypeMouseDown, l, false)
//	defer event.Unsubscribe(reg)
//
// Related registrations are grouped in a Registry so that a whole group can
// be torn down at once with ClearAll:
//
//	var group event.Registry
//	group.Add(event.Subscribe(elem, event.TypeMouseMove, move, false))
//	group.Add(event.Subscribe(elem, event.TypeMouseUp, up, false))
//	event.ClearAll(&group)
//
// # Listener Lists
//
// ListenerList is the storage a Target implementation embeds. It ignores
// duplicate and nil registrations and snapshots its entries before
// invoking them, so listeners added while an event is being delivered to
// a target do not see that event, and listeners removed mid-delivery are
// skipped.
//
// # Thread Safety
//
// Nothing in this package is synchronized. Targets and registries are
// meant to be driven from a single event-loop goroutine.
package event
