// Package terminal feeds tcell mouse reports into a surface.Window.
//
// Terminal mouse protocols report the full button state with every event
// rather than discrete press and release notifications. The Driver diffs
// consecutive reports and synthesizes mousedown, mouseup and mousemove
// events from them, plus contextmenu events for the right button.
package terminal

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/dragstream/internal/event"
	"github.com/dshills/dragstream/internal/input/button"
	"github.com/dshills/dragstream/internal/logging"
	"github.com/dshills/dragstream/internal/surface"
)

// ContextMenuTrigger selects when a contextmenu event is synthesized.
type ContextMenuTrigger int

const (
	// ContextMenuOnRelease emits contextmenu after the right button is
	// released.
	ContextMenuOnRelease ContextMenuTrigger = iota
	// ContextMenuOnPress emits contextmenu right after the right button
	// is pressed.
	ContextMenuOnPress
)

// String returns the configuration name of the trigger.
func (t ContextMenuTrigger) String() string {
	switch t {
	case ContextMenuOnRelease:
		return "release"
	case ContextMenuOnPress:
		return "press"
	default:
		return "unknown"
	}
}

// ParseContextMenuTrigger parses "release" or "press".
func ParseContextMenuTrigger(s string) (ContextMenuTrigger, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "release", "":
		return ContextMenuOnRelease, nil
	case "press":
		return ContextMenuOnPress, nil
	default:
		return ContextMenuOnRelease, fmt.Errorf("%w: %q", ErrInvalidTrigger, s)
	}
}

// Option configures a Driver.
type Option func(*Driver)

// WithContextMenuTrigger sets when contextmenu events are synthesized.
func WithContextMenuTrigger(t ContextMenuTrigger) Option {
	return func(d *Driver) {
		d.trigger = t
	}
}

// WithContextMenuHandler sets the default action run for a contextmenu
// event that no listener prevented.
func WithContextMenuHandler(fn func(x, y int)) Option {
	return func(d *Driver) {
		d.onContextMenu = fn
	}
}

// WithLogger sets the driver's logger.
func WithLogger(l *logging.Logger) Option {
	return func(d *Driver) {
		d.logger = l.WithComponent("terminal")
	}
}

// Driver translates tcell mouse events into surface events.
type Driver struct {
	window        *surface.Window
	trigger       ContextMenuTrigger
	onContextMenu func(x, y int)
	logger        *logging.Logger

	last         button.Mask
	lastX, lastY int
}

// NewDriver creates a driver dispatching into window.
func NewDriver(window *surface.Window, opts ...Option) *Driver {
	d := &Driver{
		window: window,
		lastX:  -1,
		lastY:  -1,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Buttons returns the button state seen in the last report.
func (d *Driver) Buttons() button.Mask {
	return d.last
}

// ContextMenuTrigger returns when contextmenu events are synthesized.
func (d *Driver) ContextMenuTrigger() ContextMenuTrigger {
	return d.trigger
}

// SetContextMenuTrigger changes when contextmenu events are synthesized.
func (d *Driver) SetContextMenuTrigger(t ContextMenuTrigger) {
	d.trigger = t
}

// HandleEvent dispatches ev if it is a mouse event and reports whether it
// was one.
func (d *Driver) HandleEvent(ev tcell.Event) bool {
	me, ok := ev.(*tcell.EventMouse)
	if !ok {
		return false
	}
	for _, e := range d.Translate(me) {
		allowed := d.window.Dispatch(e)
		if e.Type != event.TypeContextMenu {
			continue
		}
		if !allowed {
			d.logger.Debug("context menu prevented at %g,%g", e.ClientX, e.ClientY)
			continue
		}
		if d.onContextMenu != nil {
			d.onContextMenu(int(e.ClientX), int(e.ClientY))
		}
	}
	return true
}

// Translate converts one report into the events it implies and advances
// the driver's view of the button state.
//
// Releases are emitted before presses. When every held button goes up in
// a single report and more than one was held, the report cannot be
// attributed to a single button and is emitted as a buttonless move.
func (d *Driver) Translate(ev *tcell.EventMouse) []*event.MouseEvent {
	x, y := ev.Position()
	mask := convertButtons(ev.Buttons())
	mods := ev.Modifiers()

	mk := func(typ event.Type, b button.Button, held button.Mask) *event.MouseEvent {
		return &event.MouseEvent{
			Type:      typ,
			Button:    b,
			Buttons:   held,
			ScreenX:   float64(x),
			ScreenY:   float64(y),
			ClientX:   float64(x),
			ClientY:   float64(y),
			CtrlKey:   mods&tcell.ModCtrl != 0,
			ShiftKey:  mods&tcell.ModShift != 0,
			AltKey:    mods&tcell.ModAlt != 0,
			MetaKey:   mods&tcell.ModMeta != 0,
			Timestamp: ev.When(),
		}
	}

	var out []*event.MouseEvent
	released := d.last &^ mask
	pressed := mask &^ d.last
	held := d.last

	if released.Count() > 1 && held&^released == 0 {
		held = 0
		out = append(out, mk(event.TypeMouseMove, button.ButtonMain, held))
	} else {
		released.Each(func(bit button.Mask) {
			held &^= bit
			b, _ := button.FromMask(bit)
			out = append(out, mk(event.TypeMouseUp, b, held))
		})
	}
	if released&button.MaskRight != 0 && d.trigger == ContextMenuOnRelease {
		out = append(out, mk(event.TypeContextMenu, button.ButtonSecondary, held))
	}

	pressed.Each(func(bit button.Mask) {
		held |= bit
		b, _ := button.FromMask(bit)
		out = append(out, mk(event.TypeMouseDown, b, held))
		if bit == button.MaskRight && d.trigger == ContextMenuOnPress {
			out = append(out, mk(event.TypeContextMenu, button.ButtonSecondary, held))
		}
	})

	if released == 0 && pressed == 0 && (x != d.lastX || y != d.lastY) {
		out = append(out, mk(event.TypeMouseMove, button.ButtonMain, mask))
	}

	d.last = mask
	d.lastX, d.lastY = x, y
	return out
}

// convertButtons maps tcell's button bits onto button.Mask. Wheel bits
// are dropped.
func convertButtons(b tcell.ButtonMask) button.Mask {
	var m button.Mask
	if b&tcell.Button1 != 0 {
		m |= button.MaskLeft
	}
	if b&tcell.Button2 != 0 {
		m |= button.MaskRight
	}
	if b&tcell.Button3 != 0 {
		m |= button.MaskMiddle
	}
	if b&tcell.Button4 != 0 {
		m |= button.MaskBack
	}
	if b&tcell.Button5 != 0 {
		m |= button.MaskForward
	}
	return m
}
