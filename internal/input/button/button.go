// Package button defines pointer button bitmasks and the helpers used to
// name them and diff them between samples.
package button

import "strings"

// Mask is a bitmask of currently pressed pointer buttons.
// Any combination of bits may be set at once.
type Mask uint16

const (
	// MaskNone means no button is held.
	MaskNone Mask = 0
	// MaskLeft is the primary (left) button.
	MaskLeft Mask = 1
	// MaskRight is the secondary (right) button.
	MaskRight Mask = 2
	// MaskMiddle is the auxiliary (middle) button.
	MaskMiddle Mask = 4
	// MaskBack is the back navigation button.
	MaskBack Mask = 8
	// MaskForward is the forward navigation button.
	MaskForward Mask = 16
)

// table is the canonical ordering of named buttons. NamesForMask and
// Mask.String iterate it in this order.
var table = []struct {
	name string
	bit  Mask
}{
	{"left", MaskLeft},
	{"right", MaskRight},
	{"middle", MaskMiddle},
	{"back", MaskBack},
	{"forward", MaskForward},
}

// Bits maps each canonical button name to its bit. Read-only.
var Bits = func() map[string]Mask {
	m := make(map[string]Mask, len(table))
	for _, e := range table {
		m[e.name] = e.bit
	}
	return m
}()

// Names maps each single bit to its canonical name. Read-only.
var Names = func() map[Mask]string {
	m := make(map[Mask]string, len(table))
	for _, e := range table {
		m[e.bit] = e.name
	}
	return m
}()

// NamesForMask returns the name of every named bit set in mask, in table
// order. A zero mask yields an empty slice.
func NamesForMask(mask Mask) []string {
	names := make([]string, 0, len(table))
	for _, e := range table {
		if mask&e.bit != 0 {
			names = append(names, e.name)
		}
	}
	return names
}

// ChangedBits returns the bits set in exactly one of current and previous.
func ChangedBits(current, previous Mask) Mask {
	return (current &^ previous) | (previous &^ current)
}

// Has reports whether every bit of b is set in m.
func (m Mask) Has(b Mask) bool {
	return m&b == b
}

// String returns the pipe-separated names of the set bits, or "none".
func (m Mask) String() string {
	names := NamesForMask(m)
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}

// Button identifies the single button whose state changed in an event.
// Values follow the usual pointer-event numbering, which differs from the
// bit order of Mask (middle and right are swapped).
type Button int

const (
	// ButtonMain is the primary (left) button.
	ButtonMain Button = iota
	// ButtonAuxiliary is the middle button.
	ButtonAuxiliary
	// ButtonSecondary is the right button.
	ButtonSecondary
	// ButtonBack is the back navigation button.
	ButtonBack
	// ButtonForward is the forward navigation button.
	ButtonForward
)

// Mask returns the bitmask bit for b, or MaskNone for unknown values.
func (b Button) Mask() Mask {
	switch b {
	case ButtonMain:
		return MaskLeft
	case ButtonAuxiliary:
		return MaskMiddle
	case ButtonSecondary:
		return MaskRight
	case ButtonBack:
		return MaskBack
	case ButtonForward:
		return MaskForward
	default:
		return MaskNone
	}
}

// String returns the canonical name of the button.
func (b Button) String() string {
	if name, ok := Names[b.Mask()]; ok {
		return name
	}
	return "unknown"
}

// FromMask returns the Button for a single-bit mask. The second result is
// false when bit is zero, has more than one bit set, or is not named.
func FromMask(bit Mask) (Button, bool) {
	switch bit {
	case MaskLeft:
		return ButtonMain, true
	case MaskMiddle:
		return ButtonAuxiliary, true
	case MaskRight:
		return ButtonSecondary, true
	case MaskBack:
		return ButtonBack, true
	case MaskForward:
		return ButtonForward, true
	default:
		return ButtonMain, false
	}
}

// Each calls fn for every named bit set in m, in table order.
func (m Mask) Each(fn func(bit Mask)) {
	for _, e := range table {
		if m&e.bit != 0 {
			fn(e.bit)
		}
	}
}

// Count returns the number of named bits set in m.
func (m Mask) Count() int {
	n := 0
	m.Each(func(Mask) { n++ })
	return n
}
