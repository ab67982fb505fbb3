// Package app wires the drag listener to a tcell terminal.
package app

import (
	"errors"
	"fmt"
)

// Application errors.
var (
	// ErrQuit signals that the application should exit normally.
	ErrQuit = errors.New("quit requested")

	// ErrAlreadyRunning indicates the application is already running.
	ErrAlreadyRunning = errors.New("application already running")

	// ErrNotAttached indicates Loop was called before Attach.
	ErrNotAttached = errors.New("no screen attached")
)

// ComponentError represents a failure to set up one component.
type ComponentError struct {
	Component string // e.g. "trace", "script", "screen"
	Err       error
}

func (e *ComponentError) Error() string {
	return fmt.Sprintf("%s: %v", e.Component, e.Err)
}

func (e *ComponentError) Unwrap() error {
	return e.Err
}
