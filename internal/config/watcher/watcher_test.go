package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/dragstream/internal/config"
)

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func startWatcher(t *testing.T, w *Watcher) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
		w.Close()
	})
}

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dragstream.toml")
	writeConfig(t, path, "[drag]\ncontext_menu_cooldown = \"100ms\"\n")

	changes := make(chan *config.Config, 4)
	w, err := New(path, func(c *config.Config) {
		select {
		case changes <- c:
		default:
		}
	}, WithDebounce(10*time.Millisecond))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	startWatcher(t, w)

	writeConfig(t, path, "[drag]\ncontext_menu_cooldown = \"400ms\"\n")

	// A save can surface as more than one reload; wait for the final one.
	timeout := time.After(5 * time.Second)
	for {
		select {
		case cfg := <-changes:
			if cfg.Drag.ContextMenuCooldown.Std() == 400*time.Millisecond {
				return
			}
		case <-timeout:
			t.Fatal("timed out waiting for reload")
		}
	}
}

func TestWatcher_ReportsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dragstream.toml")
	writeConfig(t, path, "")

	errs := make(chan error, 4)
	w, err := New(path, nil, WithDebounce(10*time.Millisecond), WithErrorHandler(func(err error) {
		select {
		case errs <- err:
		default:
		}
	}))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	startWatcher(t, w)

	writeConfig(t, path, "[drag\n")

	select {
	case err := <-errs:
		var pe *config.ParseError
		if !errors.As(err, &pe) {
			t.Errorf("error = %v, want *config.ParseError", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload error")
	}
}

func TestWatcher_Relevant(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dragstream.toml")
	w, err := New(path, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Close()

	dir := filepath.Dir(w.Path())
	tests := []struct {
		name string
		op   fsnotify.Op
		want bool
	}{
		{"dragstream.toml", fsnotify.Write, true},
		{"dragstream.toml", fsnotify.Create, true},
		{"dragstream.toml", fsnotify.Remove, false},
		{"dragstream.toml", fsnotify.Chmod, false},
		{"other.toml", fsnotify.Write, false},
		{"dragstream.toml.swp", fsnotify.Create, false},
	}

	for _, tt := range tests {
		ev := fsnotify.Event{Name: filepath.Join(dir, tt.name), Op: tt.op}
		if got := w.relevant(ev); got != tt.want {
			t.Errorf("relevant(%s %s) = %v, want %v", tt.name, tt.op, got, tt.want)
		}
	}
}

func TestWatcher_CustomLoader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dragstream.toml")
	var loaded string
	w, err := New(path, nil, WithLoader(func(p string) (*config.Config, error) {
		loaded = p
		return config.Default(), nil
	}))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Close()

	w.reload()
	if loaded != w.Path() {
		t.Errorf("loader called with %q, want %q", loaded, w.Path())
	}
}

func TestWatcher_RunAfterClose(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "dragstream.toml"), nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if err := w.Run(context.Background()); !errors.Is(err, ErrWatcherClosed) {
		t.Errorf("Run() error = %v, want ErrWatcherClosed", err)
	}
}

func TestNew_MissingDirectory(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "absent", "dragstream.toml"), nil)
	if err == nil {
		t.Error("New() succeeded for a missing directory")
	}
}
