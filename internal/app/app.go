package app

import (
	"bufio"
	"context"
	"errors"
	"os"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/dragstream/internal/config"
	"github.com/dshills/dragstream/internal/config/watcher"
	"github.com/dshills/dragstream/internal/input/mouse"
	"github.com/dshills/dragstream/internal/logging"
	"github.com/dshills/dragstream/internal/plugin/lua"
	"github.com/dshills/dragstream/internal/surface"
	"github.com/dshills/dragstream/internal/surface/terminal"
	"github.com/dshills/dragstream/internal/trace"
)

// Options configures the application.
type Options struct {
	// Config is the resolved configuration. Nil means config.Default().
	Config *config.Config

	// ConfigPath is watched for live reload when non-empty.
	ConfigPath string

	// Logger receives application logs. Nil discards them.
	Logger *logging.Logger
}

// dragSurface is the container the drag listener watches.
type dragSurface interface {
	mouse.Container
	SetBounds(surface.Rect)
}

// Application runs a drag surface in a terminal.
//
// Everything except Shutdown must be called from the goroutine running
// Loop; config reloads are posted to that goroutine as interrupt events.
type Application struct {
	cfg        *config.Config
	configPath string
	logger     *logging.Logger

	screen tcell.Screen
	window *surface.Window
	box    dragSurface
	drag   *mouse.DragListener
	driver *terminal.Driver

	trail     *Trail
	recorder  *trace.Recorder
	traceFile *os.File
	script    *lua.Sink

	last    mouse.Sample
	hasLast bool
	menu    *menuPopup

	running atomic.Bool
}

// reloadEvent carries a reloaded config to the event loop.
type reloadEvent struct {
	cfg *config.Config
}

// quitEvent asks the event loop to stop.
type quitEvent struct{}

// New builds the application. Trace and script files named in the config
// are opened here.
func New(opts Options) (*Application, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	app := &Application{
		cfg:        cfg,
		configPath: opts.ConfigPath,
		logger:     opts.Logger.WithComponent("app"),
		window:     surface.NewWindow(),
		trail:      NewTrail(DefaultTrailLength),
	}

	if cfg.Terminal.NativeCapture {
		app.box = app.window.NewCaptureElement("box", surface.Rect{})
	} else {
		app.box = app.window.NewElement("box", surface.Rect{})
	}

	if err := app.openSinks(opts.Logger); err != nil {
		app.closeSinks()
		return nil, err
	}

	sinks := []mouse.GestureSink{app.trail, mouse.SinkFunc(app.remember)}
	if app.recorder != nil {
		sinks = append(sinks, app.recorder)
	}
	if app.script != nil {
		sinks = append(sinks, app.script)
	}

	app.drag = mouse.NewDragListener(app.box, mouse.MultiSink(sinks...),
		mouse.WithContextMenuCooldown(cfg.Drag.ContextMenuCooldown.Std()),
		mouse.WithLogger(opts.Logger),
	)
	app.driver = terminal.NewDriver(app.window,
		terminal.WithContextMenuTrigger(cfg.ContextMenuTrigger()),
		terminal.WithContextMenuHandler(app.showMenu),
		terminal.WithLogger(opts.Logger),
	)
	return app, nil
}

func (app *Application) openSinks(logger *logging.Logger) error {
	if path := app.cfg.Trace.Path; path != "" {
		f, err := os.Create(path)
		if err != nil {
			return &ComponentError{Component: "trace", Err: err}
		}
		app.traceFile = f
		app.recorder = trace.NewRecorder(bufio.NewWriter(f))
	}

	if path := app.cfg.Script.Path; path != "" {
		sink, err := lua.LoadSink(path,
			[]lua.StateOption{lua.WithLogger(logger)},
			lua.WithFunction(app.cfg.Script.Function),
			lua.WithCallTimeout(app.cfg.Script.Timeout.Std()),
			lua.WithSinkLogger(logger),
		)
		if err != nil {
			return &ComponentError{Component: "script", Err: err}
		}
		app.script = sink
	}
	return nil
}

func (app *Application) closeSinks() {
	if app.recorder != nil {
		if err := app.recorder.Flush(); err != nil {
			app.logger.Error("trace: %v", err)
		}
		app.logger.Info("recorded %d samples", app.recorder.Count())
	}
	if app.traceFile != nil {
		if err := app.traceFile.Close(); err != nil {
			app.logger.Error("closing trace: %v", err)
		}
		app.traceFile = nil
	}
	if app.script != nil {
		if calls, failed := app.script.Stats(); failed > 0 {
			app.logger.Warn("script failed %d of %d calls", failed, calls)
		}
		app.script.Close()
		app.script = nil
	}
}

// Attach initializes screen and lays out the drag surface on it.
func (app *Application) Attach(screen tcell.Screen) error {
	if err := screen.Init(); err != nil {
		return &ComponentError{Component: "screen", Err: err}
	}
	screen.EnableMouse()
	screen.HideCursor()
	app.screen = screen
	app.layout()
	app.draw()
	return nil
}

// Run attaches screen and processes events until quit.
func (app *Application) Run(ctx context.Context, screen tcell.Screen) error {
	if err := app.Attach(screen); err != nil {
		return err
	}
	return app.Loop(ctx)
}

// Loop processes events until the user quits, ctx is done or Shutdown is
// called. It finalizes the screen and closes the trace and script on
// return.
func (app *Application) Loop(ctx context.Context) error {
	if app.screen == nil {
		return ErrNotAttached
	}
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)
	defer app.closeSinks()
	defer app.screen.Fini()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if app.configPath != "" {
		if err := app.watchConfig(ctx); err != nil {
			app.logger.Warn("config watch disabled: %v", err)
		}
	}

	go func() {
		<-ctx.Done()
		app.screen.PostEvent(tcell.NewEventInterrupt(quitEvent{}))
	}()

	for {
		ev := app.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if err := app.handleEvent(ev); err != nil {
			if errors.Is(err, ErrQuit) {
				return nil
			}
			return err
		}
		app.draw()
	}
}

// Shutdown asks a running Loop to return. Safe from any goroutine.
func (app *Application) Shutdown() {
	if app.screen != nil && app.running.Load() {
		app.screen.PostEvent(tcell.NewEventInterrupt(quitEvent{}))
	}
}

func (app *Application) watchConfig(ctx context.Context) error {
	w, err := watcher.New(app.configPath, func(cfg *config.Config) {
		app.screen.PostEvent(tcell.NewEventInterrupt(reloadEvent{cfg: cfg}))
	}, watcher.WithLogger(app.logger))
	if err != nil {
		return err
	}
	go func() {
		defer w.Close()
		if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			app.logger.Warn("config watcher stopped: %v", err)
		}
	}()
	return nil
}

func (app *Application) handleEvent(ev tcell.Event) error {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		app.screen.Sync()
		app.layout()
	case *tcell.EventKey:
		return app.handleKey(ev)
	case *tcell.EventMouse:
		if app.menu != nil && ev.Buttons()&(tcell.Button1|tcell.Button2|tcell.Button3) != 0 {
			app.menu = nil
		}
		app.driver.HandleEvent(ev)
	case *tcell.EventInterrupt:
		switch data := ev.Data().(type) {
		case quitEvent:
			return ErrQuit
		case reloadEvent:
			app.applyConfig(data.cfg)
		}
	}
	return nil
}

func (app *Application) handleKey(ev *tcell.EventKey) error {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ErrQuit
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return ErrQuit
		case 'c':
			app.trail.Clear()
			app.menu = nil
		}
	}
	return nil
}

// applyConfig updates the settings that can change while running.
func (app *Application) applyConfig(cfg *config.Config) {
	app.drag.SetContextMenuCooldown(cfg.Drag.ContextMenuCooldown.Std())
	app.driver.SetContextMenuTrigger(cfg.ContextMenuTrigger())
	app.logger.SetLevel(cfg.LogLevel())

	if cfg.Terminal.NativeCapture != app.cfg.Terminal.NativeCapture {
		app.logger.Warn("native_capture change takes effect on restart")
	}
	if cfg.Trace.Path != app.cfg.Trace.Path || cfg.Script != app.cfg.Script {
		app.logger.Warn("trace and script changes take effect on restart")
	}
	app.cfg = cfg
	app.logger.Info("context menu cooldown %s, trigger %s",
		cfg.Drag.ContextMenuCooldown, app.driver.ContextMenuTrigger())
}

func (app *Application) remember(s mouse.Sample) {
	app.last = s
	app.hasLast = true
}

func (app *Application) showMenu(x, y int) {
	app.menu = &menuPopup{x: x, y: y}
	app.logger.Debug("context menu at %d,%d", x, y)
}

// Drag returns the drag listener.
func (app *Application) Drag() *mouse.DragListener {
	return app.drag
}

// Trail returns the painted trail.
func (app *Application) Trail() *Trail {
	return app.trail
}

// LastSample returns the most recent sample and whether there is one.
func (app *Application) LastSample() (mouse.Sample, bool) {
	return app.last, app.hasLast
}

// MenuOpen reports whether the context menu popup is showing.
func (app *Application) MenuOpen() bool {
	return app.menu != nil
}

// Config returns the configuration in effect.
func (app *Application) Config() *config.Config {
	return app.cfg
}
