// types_test.go covers the command-token decoding and
// error types. The Action vocabulary is a closed, case-sensitive set,
// so the tests pin down both the accepted tokens and the rejection of
// near-misses like "Start".
package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseAction verifies the closed-vocabulary decode: every
// recognized token maps to exactly one Action, the empty token maps to
// start, and everything else is rejected.
func TestParseAction(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		want    Action
		wantErr bool
	}{
		{name: "start", token: "start", want: ActionStart},
		{name: "stop", token: "stop", want: ActionStop},
		{name: "restart", token: "restart", want: ActionRestart},
		{name: "build", token: "build", want: ActionBuild},
		{name: "logs", token: "logs", want: ActionLogs},
		{name: "status", token: "status", want: ActionStatus},
		{name: "clear-cache", token: "clear-cache", want: ActionClearCache},
		{name: "empty token defaults to start", token: "", want: ActionStart},
		{name: "unrecognized token", token: "deploy", wantErr: true},
		{name: "case mismatch is unrecognized", token: "Start", wantErr: true},
		{name: "case mismatch status", token: "STATUS", wantErr: true},
		{name: "whitespace is not trimmed", token: " start", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAction(tt.token)
			if tt.wantErr {
				require.Error(t, err)
				var unknown *UnknownCommandError
				require.ErrorAs(t, err, &unknown)
				assert.Equal(t, tt.token, unknown.Token)
				assert.Contains(t, err.Error(), "unknown command")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestActionIsValid(t *testing.T) {
	for _, a := range []Action{
		ActionStart, ActionStop, ActionRestart, ActionBuild,
		ActionLogs, ActionStatus, ActionClearCache,
	} {
		assert.True(t, a.IsValid(), "expected %q to be valid", a)
	}

	assert.False(t, Action("deploy").IsValid())
	assert.False(t, Action("").IsValid())
	assert.False(t, Action("Start").IsValid())
}

func TestUnitStateRunning(t *testing.T) {
	assert.True(t, UnitState{Service: "monitor", State: UnitRunning}.Running())
	assert.False(t, UnitState{Service: "redis", State: UnitStopped}.Running())
	assert.False(t, UnitState{Service: "redis"}.Running())
}

// TestCLIError verifies message formatting and error unwrapping.
func TestCLIError(t *testing.T) {
	t.Run("without underlying error", func(t *testing.T) {
		err := NewCLIError(ExitGeneralError, "failed to stop services")
		assert.Equal(t, "failed to stop services", err.Error())
		assert.Equal(t, ExitGeneralError, err.Code)
		assert.Nil(t, err.Unwrap())
	})

	t.Run("with underlying error", func(t *testing.T) {
		inner := errors.New("exit status 1")
		err := WrapCLIError(ExitGeneralError, "failed to start services", inner)
		assert.Equal(t, "failed to start services: exit status 1", err.Error())
		assert.True(t, errors.Is(err, inner))
	})

	t.Run("errors.As finds the CLIError", func(t *testing.T) {
		var wrapped error = WrapCLIError(ExitGeneralError, "boom", errors.New("inner"))
		var cliErr *CLIError
		require.True(t, errors.As(wrapped, &cliErr))
		assert.Equal(t, ExitGeneralError, cliErr.Code)
	})
}
