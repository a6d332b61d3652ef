package model

import (
	"fmt"
)

// Action is the lifecycle action selected by the user's command token.
// Each subcommand binds its token to one Action constant, and a token
// that fails subcommand routing is decoded by ParseAction; all
// branching happens over this tagged value rather than the raw string.
type Action string

const (
	// ActionStart brings up both managed units in the background,
	// building the application image only if it does not exist yet.
	ActionStart Action = "start"

	// ActionStop tears down both managed units and releases the
	// compose project's network.
	ActionStop Action = "stop"

	// ActionRestart restarts the application unit in place. It does
	// not rebuild the image; a changed artifact is only picked up by
	// ActionBuild or the build-if-needed path of ActionStart.
	ActionRestart Action = "restart"

	// ActionBuild rebuilds the application image without starting
	// any unit.
	ActionBuild Action = "build"

	// ActionLogs attaches to the application unit's log stream and
	// follows it until externally interrupted.
	ActionLogs Action = "logs"

	// ActionStatus reports the running/stopped state of both managed
	// units.
	ActionStatus Action = "status"

	// ActionClearCache flushes the monitor's Redis database. This is
	// the only action that talks to a managed unit directly instead
	// of going through the orchestration backend.
	ActionClearCache Action = "clear-cache"
)

// String returns the command token for the action, satisfying
// fmt.Stringer for use in diagnostics and log fields.
func (a Action) String() string {
	return string(a)
}

// IsValid reports whether the Action is one of the recognized values.
func (a Action) IsValid() bool {
	switch a {
	case ActionStart, ActionStop, ActionRestart, ActionBuild,
		ActionLogs, ActionStatus, ActionClearCache:
		return true
	default:
		return false
	}
}

// UnknownCommandError reports a command token outside the closed
// action vocabulary. The CLI layer detects it by type to decide when
// to append the command reference to the diagnostic.
type UnknownCommandError struct {
	// Token is the rejected command token, verbatim.
	Token string
}

// Error satisfies the error interface.
func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown command %q", e.Token)
}

// ParseAction decodes a raw command token into an Action.
//
// Matching is case-sensitive: the command vocabulary is a closed,
// exact-match set, so "Start" is unrecognized rather than an alias for
// "start". The empty token maps to ActionStart: invoking the
// controller with no argument is defined to be identical to "start".
// Any other unrecognized token yields an UnknownCommandError.
func ParseAction(token string) (Action, error) {
	if token == "" {
		return ActionStart, nil
	}
	action := Action(token)
	if !action.IsValid() {
		return "", &UnknownCommandError{Token: token}
	}
	return action, nil
}

// UnitStateValue is the coarse running/stopped classification of a
// managed unit as reported by the orchestration backend.
type UnitStateValue string

const (
	// UnitRunning indicates at least one container for the unit is
	// currently running.
	UnitRunning UnitStateValue = "running"

	// UnitStopped indicates the unit has no running container. This
	// covers both stopped containers and units that were never
	// started (no container exists at all).
	UnitStopped UnitStateValue = "stopped"
)

// UnitState is the observed state of one managed unit (the monitor
// application or its Redis store) at the moment of a single status
// query. It is never persisted or reused across invocations.
type UnitState struct {
	// Service is the compose service name addressing the unit.
	Service string `json:"service"`

	// ContainerName is the name of the unit's container, if one
	// exists. Empty for units that have never been brought up.
	ContainerName string `json:"containerName,omitempty"`

	// ContainerID is the container's ID, if one exists.
	ContainerID string `json:"containerId,omitempty"`

	// State is the coarse running/stopped classification.
	State UnitStateValue `json:"state"`

	// RawStatus is the backend's own status string (e.g. "Up 2 hours",
	// "exited"), passed through verbatim for display.
	RawStatus string `json:"rawStatus,omitempty"`
}

// Running reports whether the unit was observed running.
func (u UnitState) Running() bool {
	return u.State == UnitRunning
}

// ExitCode defines the process exit codes of the controller. The
// contract is intentionally narrow: zero for success, one for every
// locally detected failure. The logs action additionally passes through
// the exit code of the interrupted log-follow call.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError covers every failure the controller detects
	// itself: missing backend executables, failed delegated calls,
	// and unrecognized command tokens.
	ExitGeneralError ExitCode = 1
)

// CLIError is an error that carries a process exit code. It lets the
// point of failure decide the exit status while the CLI layer owns the
// single-line diagnostic formatting.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable, single-line diagnostic.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a CLIError that wraps an underlying error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
