package hotspot

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyActive rejects Start while a session is starting,
	// running or stopping.
	ErrAlreadyActive = errors.New("a hotspot session is already active")

	// ErrInvalidState rejects operations that need a running session.
	ErrInvalidState = errors.New("no running hotspot session")

	// ErrPermissionDenied means the elevation prompt was dismissed or
	// authorization failed.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrStartTimeout means the helper produced no readiness marker
	// within the start timeout.
	ErrStartTimeout = errors.New("hotspot did not become ready in time")

	// ErrUnexpectedExit marks a helper that died while the hotspot was
	// running. The session turns Failed and is never restarted.
	ErrUnexpectedExit = errors.New("helper exited unexpectedly")
)

// ValidationError rejects a malformed hotspot config before any side
// effect takes place.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// StartError reports a failed hotspot start. ExitCode is -1 when the
// helper never exited; Output holds the captured helper output tail.
type StartError struct {
	Err      error
	ExitCode int
	Output   string
}

func (e *StartError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("hotspot start failed: %v", e.Err)
	}
	return "hotspot start failed"
}

func (e *StartError) Unwrap() error { return e.Err }

// StopError reports a helper that could not be torn down.
type StopError struct {
	Err error
}

func (e *StopError) Error() string {
	return fmt.Sprintf("hotspot stop failed: %v", e.Err)
}

func (e *StopError) Unwrap() error { return e.Err }
