package driver

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyConnected implies CreateSession was called while a session
	// is already open. The active session id is never overwritten.
	ErrAlreadyConnected = errors.New("driver session already created")

	// ErrNotConnected implies an operation that requires an open session
	// was attempted without one, or after the session was closed.
	ErrNotConnected = errors.New("no active driver session")

	// ErrDriverNotInstalled implies the driver executable was not found at
	// its configured path. Callers degrade to coordinate injection.
	ErrDriverNotInstalled = errors.New("driver executable not found")
)

// SessionCreationError implies the driver was reachable but rejected or
// failed session creation. Non-fatal: callers fall back to
// coordinate-only mode for the run.
type SessionCreationError struct {
	Status  int
	Message string
}

func (e *SessionCreationError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("session creation failed: status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("session creation failed: %s", e.Message)
}

// TransportError implies a network failure, timeout, or malformed
// response on an established session. Whether it propagates or triggers
// coordinate fallback is decided by the caller's fallback policy.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("driver transport: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ProcessError implies the driver executable failed to spawn or exited
// abnormally. Logged and non-fatal.
type ProcessError struct {
	Path string
	Err  error
}

func (e *ProcessError) Error() string {
	return fmt.Sprintf("driver process %s: %v", e.Path, e.Err)
}

func (e *ProcessError) Unwrap() error {
	return e.Err
}
