package app

import (
	"io"

	"github.com/dshills/dragstream/internal/config"
	"github.com/dshills/dragstream/internal/input/mouse"
	"github.com/dshills/dragstream/internal/logging"
	"github.com/dshills/dragstream/internal/plugin/lua"
	"github.com/dshills/dragstream/internal/trace"
)

// Replay feeds a recorded trace through the configured script, if any,
// and re-encodes every sample to out. It returns the number of samples
// replayed.
func Replay(cfg *config.Config, in io.Reader, out io.Writer, logger *logging.Logger) (int, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	recorder := trace.NewRecorder(out)
	sinks := []mouse.GestureSink{recorder}

	if path := cfg.Script.Path; path != "" {
		script, err := lua.LoadSink(path,
			[]lua.StateOption{lua.WithLogger(logger)},
			lua.WithFunction(cfg.Script.Function),
			lua.WithCallTimeout(cfg.Script.Timeout.Std()),
			lua.WithSinkLogger(logger),
		)
		if err != nil {
			return 0, &ComponentError{Component: "script", Err: err}
		}
		defer script.Close()
		sinks = append(sinks, script)
	}

	n, err := trace.Replay(in, mouse.MultiSink(sinks...))
	if err != nil {
		return n, &ComponentError{Component: "replay", Err: err}
	}
	if err := recorder.Flush(); err != nil {
		return n, &ComponentError{Component: "replay", Err: err}
	}
	logger.WithComponent("replay").Info("replayed %d samples", n)
	return n, nil
}
