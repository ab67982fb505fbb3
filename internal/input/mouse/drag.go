package mouse

import (
	"time"

	"github.com/dshills/dragstream/internal/event"
	"github.com/dshills/dragstream/internal/input/button"
	"github.com/dshills/dragstream/internal/logging"
)

// DefaultContextMenuCooldown is how long after a right-button release a
// context-menu event is suppressed.
const DefaultContextMenuCooldown = 100 * time.Millisecond

// Option configures a DragListener.
type Option func(*DragListener)

// WithContextMenuCooldown sets the context-menu suppression window.
func WithContextMenuCooldown(d time.Duration) Option {
	return func(l *DragListener) {
		l.contextMenuCooldown = d
	}
}

// WithClock sets the time source used for context-menu suppression.
func WithClock(now func() time.Time) Option {
	return func(l *DragListener) {
		l.now = now
	}
}

// WithLogger sets the logger for drag lifecycle messages.
func WithLogger(logger *logging.Logger) Option {
	return func(l *DragListener) {
		l.logger = logger.WithComponent("drag")
	}
}

// DragListener converts presses, moves and releases on a container into
// Samples delivered to a GestureSink.
type DragListener struct {
	container Container
	sink      GestureSink
	logger    *logging.Logger
	now       func() time.Time

	// mouseListeners holds either the idle listener or the drag
	// listeners; contextListeners holds the context-menu listener.
	mouseListeners   event.Registry
	contextListeners event.Registry

	contextMenuCooldown time.Duration
	lastRightRelease    time.Time // zero until the first right release

	lastButtons              button.Mask
	lastClientX, lastClientY float64

	state   State
	capture capture

	onMouseDown   *event.Listener
	onMouseMove   *event.Listener
	onMouseUp     *event.Listener
	onContextMenu *event.Listener
}

// NewDragListener creates a listener on container and enables it. sink may
// be nil, in which case drag state is tracked but nothing is delivered.
func NewDragListener(container Container, sink GestureSink, opts ...Option) *DragListener {
	l := &DragListener{
		container:           container,
		sink:                sink,
		now:                 time.Now,
		contextMenuCooldown: DefaultContextMenuCooldown,
	}
	for _, opt := range opts {
		opt(l)
	}

	l.onMouseDown = event.NewListener(l.handleMouseDown)
	l.onMouseMove = event.NewListener(l.handleMouseMove)
	l.onMouseUp = event.NewListener(l.handleMouseUp)
	l.onContextMenu = event.NewListener(l.handleContextMenu)

	l.Enable()
	return l
}

// Enable installs whichever listener sets are missing. Calling it while
// enabled does nothing. Drag bookkeeping is preserved.
func (l *DragListener) Enable() {
	if l.mouseListeners.Len() == 0 {
		l.registerIdle()
	}
	if l.contextListeners.Len() == 0 {
		l.contextListeners.Add(event.Subscribe(l.container.Global(), event.TypeContextMenu, l.onContextMenu, true))
	}
}

// Disable removes every listener. A drag in progress is abandoned without
// a final sample; native capture, if held, is released.
func (l *DragListener) Disable() {
	event.ClearAll(&l.mouseListeners)
	event.ClearAll(&l.contextListeners)
	if l.capture != nil {
		l.capture.Release()
		l.capture = nil
	}
	if l.state == StateDragging {
		l.logger.Debug("drag abandoned")
	}
	l.state = StateIdle
}

// Enabled reports whether any listener is installed.
func (l *DragListener) Enabled() bool {
	return l.mouseListeners.Len() > 0 || l.contextListeners.Len() > 0
}

// State returns the current drag state.
func (l *DragListener) State() State {
	return l.state
}

// ContextMenuCooldown returns the context-menu suppression window.
func (l *DragListener) ContextMenuCooldown() time.Duration {
	return l.contextMenuCooldown
}

// SetContextMenuCooldown changes the context-menu suppression window.
func (l *DragListener) SetContextMenuCooldown(d time.Duration) {
	l.contextMenuCooldown = d
}

// Container returns the watched container.
func (l *DragListener) Container() Container {
	return l.container
}

func (l *DragListener) registerIdle() {
	l.mouseListeners.Add(event.Subscribe(l.container, event.TypeMouseDown, l.onMouseDown, false))
}

func (l *DragListener) registerDrag(target event.Target) {
	l.mouseListeners.Add(
		event.Subscribe(target, event.TypeMouseDown, l.onMouseDown, false),
		event.Subscribe(target, event.TypeMouseMove, l.onMouseMove, false),
		event.Subscribe(target, event.TypeMouseUp, l.onMouseUp, false),
	)
}

// relative converts viewport coordinates to container coordinates.
func (l *DragListener) relative(e *event.MouseEvent) (x, y float64) {
	rect := l.container.BoundingClientRect()
	return e.ClientX - rect.Left, e.ClientY - rect.Top
}

func (l *DragListener) handleMouseDown(e *event.MouseEvent) {
	event.ClearAll(&l.mouseListeners)
	l.capture = engageCapture(l.container)
	l.registerDrag(l.capture.Target())

	l.lastClientX, l.lastClientY = l.relative(e)
	l.lastButtons = e.Buttons

	if l.state != StateDragging {
		l.logger.WithFields(map[string]any{
			"buttons": e.Buttons,
			"native":  l.capture.Native(),
		}).Debug("drag started at %g,%g", l.lastClientX, l.lastClientY)
	}
	l.state = StateDragging
}

func (l *DragListener) handleMouseMove(e *event.MouseEvent) {
	// Some sources drop the release when several buttons go up at once;
	// the first buttonless move stands in for it.
	if e.Buttons == 0 {
		l.handleMouseUp(e)
		return
	}

	x, y := l.relative(e)
	if l.sink != nil {
		l.sink.HandleDrag(Sample{
			Button:        e.Button,
			Buttons:       e.Buttons,
			ScreenX:       e.ScreenX,
			ScreenY:       e.ScreenY,
			ClientX:       x,
			ClientY:       y,
			Dx:            x - l.lastClientX,
			Dy:            y - l.lastClientY,
			CtrlKey:       e.CtrlKey,
			ShiftKey:      e.ShiftKey,
			AltKey:        e.AltKey,
			MetaKey:       e.MetaKey,
			RelatedTarget: e.RelatedTarget,
			Region:        e.Region,
		})
	}
	l.lastClientX, l.lastClientY = x, y
	l.lastButtons = e.Buttons
}

func (l *DragListener) handleMouseUp(e *event.MouseEvent) {
	changed := button.ChangedBits(e.Buttons, l.lastButtons)
	if changed&button.MaskRight != 0 {
		l.lastRightRelease = l.now()
	}

	if e.Buttons == 0 {
		if l.capture != nil {
			l.capture.Release()
			l.capture = nil
		}
		event.ClearAll(&l.mouseListeners)
		l.registerIdle()
		l.state = StateIdle
		l.logger.WithField("released", changed).Debug("drag ended")
	}

	l.lastButtons = e.Buttons
}

func (l *DragListener) handleContextMenu(e *event.MouseEvent) {
	if l.lastRightRelease.IsZero() {
		return
	}
	if elapsed := l.now().Sub(l.lastRightRelease); elapsed < l.contextMenuCooldown {
		e.PreventDefault()
		l.logger.Debug("context menu suppressed %s after right release", elapsed)
	}
}
