package lua

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	glua "github.com/yuin/gopher-lua"

	"github.com/dshills/dragstream/internal/input/button"
	"github.com/dshills/dragstream/internal/input/mouse"
	"github.com/dshills/dragstream/internal/logging"
	"github.com/dshills/dragstream/internal/surface"
)

func TestStateDoString(t *testing.T) {
	state := NewState()
	defer state.Close()

	if err := state.DoString(`x = 1 + 1`); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}
	if v := state.GetGlobal("x"); v.String() != "2" {
		t.Errorf("x = %v, want 2", v)
	}
}

func TestStateSandbox(t *testing.T) {
	state := NewState()
	defer state.Close()

	for _, name := range []string{"os", "io", "debug", "dofile", "loadfile", "load", "require"} {
		if v := state.GetGlobal(name); v != glua.LNil {
			t.Errorf("%s = %v, want nil", name, v.Type())
		}
	}
	for _, name := range []string{"string", "table", "math", "pairs"} {
		if v := state.GetGlobal(name); v == glua.LNil {
			t.Errorf("%s missing", name)
		}
	}
}

func TestStatePrintGoesToLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Config{Level: logging.LevelInfo, Output: &buf})
	state := NewState(WithLogger(logger))
	defer state.Close()

	if err := state.DoString(`print("hello", 42)`); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}
	if !strings.Contains(buf.String(), "hello\t42") {
		t.Errorf("log = %q, want print output", buf.String())
	}
}

func TestStateCall(t *testing.T) {
	state := NewState()
	defer state.Close()

	if err := state.DoString(`function add(a, b) return a + b end
function nothing() end`); err != nil {
		t.Fatal(err)
	}

	results, err := state.Call("add", glua.LNumber(2), glua.LNumber(3))
	if err != nil {
		t.Fatalf("Call() error = %v", err)
	}
	if len(results) != 1 || results[0].String() != "5" {
		t.Errorf("Call() = %v, want [5]", results)
	}

	results, err = state.Call("nothing")
	if err != nil || results == nil || len(results) != 0 {
		t.Errorf("Call(nothing) = %v, %v, want empty non-nil", results, err)
	}

	if _, err := state.Call("missing"); !errors.Is(err, ErrFunctionNotFound) {
		t.Errorf("Call(missing) error = %v, want ErrFunctionNotFound", err)
	}
}

func TestStateTimeout(t *testing.T) {
	state := NewState()
	defer state.Close()

	if err := state.DoString(`function spin() while true do end end`); err != nil {
		t.Fatal(err)
	}

	_, err := state.CallTimeout(20*time.Millisecond, "spin")
	if !errors.Is(err, ErrExecutionTimeout) {
		t.Errorf("CallTimeout() error = %v, want ErrExecutionTimeout", err)
	}

	// The state stays usable.
	if err := state.DoString(`y = 1`); err != nil {
		t.Errorf("DoString() after timeout error = %v", err)
	}
}

func TestStateClosed(t *testing.T) {
	state := NewState()
	if err := state.Close(); err != nil {
		t.Fatal(err)
	}
	if !state.IsClosed() {
		t.Error("IsClosed() = false after Close")
	}
	if err := state.DoString(`x = 1`); !errors.Is(err, ErrStateClosed) {
		t.Errorf("DoString() error = %v, want ErrStateClosed", err)
	}
	if err := state.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

func TestSinkPassesWireNames(t *testing.T) {
	state := NewState()
	defer state.Close()

	if err := state.DoString(`
got = nil
function on_drag(s) got = s end
`); err != nil {
		t.Fatal(err)
	}

	w := surface.NewWindow()
	sink := NewSink(state)
	sink.HandleDrag(mouse.Sample{
		Button:        button.ButtonMain,
		Buttons:       button.MaskLeft | button.MaskMiddle,
		ClientX:       4,
		ClientY:       2,
		Dx:            1.5,
		Dy:            -1,
		ShiftKey:      true,
		RelatedTarget: w,
		Region:        "canvas",
	})

	if err := sink.Err(); err != nil {
		t.Fatalf("Err() = %v", err)
	}
	got, ok := state.GetGlobal("got").(*glua.LTable)
	if !ok {
		t.Fatal("on_drag did not receive a table")
	}

	checks := map[string]string{
		"button":        "0",
		"buttons":       "5",
		"clientX":       "4",
		"clientY":       "2",
		"dx":            "1.5",
		"dy":            "-1",
		"shiftKey":      "true",
		"ctrlKey":       "false",
		"relatedTarget": "window",
		"region":        "canvas",
	}
	for key, want := range checks {
		if v := got.RawGetString(key); v.String() != want {
			t.Errorf("%s = %v, want %s", key, v, want)
		}
	}

	names, ok := got.RawGetString("buttonNames").(*glua.LTable)
	if !ok || names.Len() != 2 || names.RawGetInt(1).String() != "left" || names.RawGetInt(2).String() != "middle" {
		t.Errorf("buttonNames = %v, want {left, middle}", got.RawGetString("buttonNames"))
	}
}

func TestSinkRecordsErrors(t *testing.T) {
	state := NewState()
	defer state.Close()

	if err := state.DoString(`function on_drag(s) error("boom") end`); err != nil {
		t.Fatal(err)
	}

	sink := NewSink(state)
	sink.HandleDrag(mouse.Sample{})
	sink.HandleDrag(mouse.Sample{})

	calls, failed := sink.Stats()
	if calls != 2 || failed != 2 {
		t.Errorf("Stats() = %d, %d, want 2, 2", calls, failed)
	}
	if err := sink.Err(); err == nil || !strings.Contains(err.Error(), "boom") {
		t.Errorf("Err() = %v, want boom", err)
	}
}

func TestLoadSink(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.lua")
	if err := os.WriteFile(good, []byte(`count = 0
function track(s) count = count + 1 end`), 0644); err != nil {
		t.Fatal(err)
	}

	sink, err := LoadSink(good, nil, WithFunction("track"), WithCallTimeout(time.Second))
	if err != nil {
		t.Fatalf("LoadSink() error = %v", err)
	}
	defer sink.Close()

	sink.HandleDrag(mouse.Sample{})
	if v := sink.state.GetGlobal("count"); v.String() != "1" {
		t.Errorf("count = %v, want 1", v)
	}

	if _, err := LoadSink(good, nil); !errors.Is(err, ErrFunctionNotFound) {
		t.Errorf("LoadSink() without on_drag error = %v, want ErrFunctionNotFound", err)
	}
	if _, err := LoadSink(filepath.Join(dir, "absent.lua"), nil); err == nil {
		t.Error("LoadSink() of missing file succeeded")
	}
}
