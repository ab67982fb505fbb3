package lua

import (
	"fmt"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/dragstream/internal/input/button"
	"github.com/dshills/dragstream/internal/input/mouse"
	"github.com/dshills/dragstream/internal/logging"
)

// Default sink settings.
const (
	DefaultFunction    = "on_drag"
	DefaultCallTimeout = 50 * time.Millisecond
)

// SinkOption configures a Sink.
type SinkOption func(*Sink)

// WithFunction sets the global function called per sample.
func WithFunction(name string) SinkOption {
	return func(s *Sink) {
		s.fn = name
	}
}

// WithCallTimeout bounds each per-sample call.
func WithCallTimeout(d time.Duration) SinkOption {
	return func(s *Sink) {
		s.timeout = d
	}
}

// WithSinkLogger sets the logger for script failures.
func WithSinkLogger(l *logging.Logger) SinkOption {
	return func(s *Sink) {
		s.logger = l.WithComponent("lua-sink")
	}
}

// Sink is a mouse.GestureSink that passes each sample to a Lua function
// as a table keyed by the sample's JSON names.
//
// A failing call is logged and remembered; it does not stop later
// samples from being delivered.
type Sink struct {
	state   *State
	fn      string
	timeout time.Duration
	logger  *logging.Logger

	calls   int
	failed  int
	lastErr error
}

var _ mouse.GestureSink = (*Sink)(nil)

// NewSink creates a sink calling into state.
func NewSink(state *State, opts ...SinkOption) *Sink {
	s := &Sink{
		state:   state,
		fn:      DefaultFunction,
		timeout: DefaultCallTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoadSink runs the script at path in a fresh state and returns a sink
// that owns it. The script must define the sink's function.
func LoadSink(path string, stateOpts []StateOption, opts ...SinkOption) (*Sink, error) {
	state := NewState(stateOpts...)
	if err := state.DoFile(path); err != nil {
		state.Close()
		return nil, fmt.Errorf("loading script %s: %w", path, err)
	}

	s := NewSink(state, opts...)
	if !state.HasFunction(s.fn) {
		state.Close()
		return nil, fmt.Errorf("%w: %s does not define %q", ErrFunctionNotFound, path, s.fn)
	}
	return s, nil
}

// HandleDrag implements mouse.GestureSink.
func (s *Sink) HandleDrag(sample mouse.Sample) {
	s.calls++
	_, err := s.state.CallTimeout(s.timeout, s.fn, s.sampleTable(sample))
	if err != nil {
		s.failed++
		s.lastErr = err
		s.logger.Warn("%s failed: %v", s.fn, err)
	}
}

// Err returns the most recent call error, or nil.
func (s *Sink) Err() error {
	return s.lastErr
}

// Stats returns the number of calls and failed calls.
func (s *Sink) Stats() (calls, failed int) {
	return s.calls, s.failed
}

// Close closes the underlying state.
func (s *Sink) Close() error {
	return s.state.Close()
}

func (s *Sink) sampleTable(sample mouse.Sample) *lua.LTable {
	L := s.state.L
	t := L.NewTable()
	t.RawSetString("button", lua.LNumber(sample.Button))
	t.RawSetString("buttons", lua.LNumber(sample.Buttons))
	t.RawSetString("screenX", lua.LNumber(sample.ScreenX))
	t.RawSetString("screenY", lua.LNumber(sample.ScreenY))
	t.RawSetString("clientX", lua.LNumber(sample.ClientX))
	t.RawSetString("clientY", lua.LNumber(sample.ClientY))
	t.RawSetString("dx", lua.LNumber(sample.Dx))
	t.RawSetString("dy", lua.LNumber(sample.Dy))
	t.RawSetString("ctrlKey", lua.LBool(sample.CtrlKey))
	t.RawSetString("shiftKey", lua.LBool(sample.ShiftKey))
	t.RawSetString("altKey", lua.LBool(sample.AltKey))
	t.RawSetString("metaKey", lua.LBool(sample.MetaKey))
	if sample.RelatedTarget != nil {
		t.RawSetString("relatedTarget", lua.LString(fmt.Sprint(sample.RelatedTarget)))
	}
	t.RawSetString("region", lua.LString(sample.Region))

	names := L.NewTable()
	for _, name := range button.NamesForMask(sample.Buttons) {
		names.Append(lua.LString(name))
	}
	t.RawSetString("buttonNames", names)
	return t
}
