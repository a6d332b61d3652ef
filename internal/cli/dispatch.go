// dispatch.go maps a decoded lifecycle Action onto exactly one
// capability call against the orchestration backend. The mapping is
// deliberately flat: one delegated call per invocation, binary
// success/failure, no retry, no rollback of partially applied state.
// The backend is idempotent and self-reconciling on the next start.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/pumpctl/internal/cache"
	"github.com/shinji-kodama/pumpctl/internal/config"
	"github.com/shinji-kodama/pumpctl/internal/docker"
	"github.com/shinji-kodama/pumpctl/internal/hostcheck"
	"github.com/shinji-kodama/pumpctl/internal/model"
)

// Backend is the capability surface the dispatcher requires from the
// orchestration backend. docker.Compose implements it; tests
// substitute a fake to exercise dispatch without a Docker host.
type Backend interface {
	// Up brings up both managed units detached, building the app
	// image only if missing.
	Up(ctx context.Context) error

	// Down tears down both managed units and releases their network.
	Down(ctx context.Context) error

	// Restart restarts the application unit in place, no rebuild.
	Restart(ctx context.Context) error

	// Build rebuilds the application image only.
	Build(ctx context.Context) error

	// FollowLogs blocks on the application unit's log stream and
	// returns the stream call's exit code once it terminates.
	FollowLogs(ctx context.Context) (int, error)

	// Status reports the current state of the declared units.
	Status(ctx context.Context) ([]model.UnitState, error)
}

// flushFunc is the clear-cache capability, separated so tests can
// substitute a fake for cache.Flush.
type flushFunc func(ctx context.Context, url string) (*cache.FlushResult, error)

// dispatcher binds a backend, the loaded configuration, and the cache
// flusher for one invocation.
type dispatcher struct {
	backend Backend
	cfg     *config.Config
	flush   flushFunc
}

// newBackend builds the orchestration backend for one invocation. A
// variable so command-level tests can substitute a fake and exercise
// the cobra wiring without a Docker host.
var newBackend = func(cfg *config.Config, command hostcheck.ComposeCommand) Backend {
	return docker.NewCompose(
		command,
		cfg.Compose.File,
		cfg.Compose.Project,
		cfg.Compose.AppService,
		cfg.Compose.StoreService,
	)
}

// newDispatcher builds the real dispatcher from the values the
// persistent pre-run stashed on the command context.
func newDispatcher(cmd *cobra.Command) *dispatcher {
	cfg := cmd.Context().Value(configKey).(*config.Config)
	composeCommand := cmd.Context().Value(composeKey).(hostcheck.ComposeCommand)

	return &dispatcher{backend: newBackend(cfg, composeCommand), cfg: cfg, flush: cache.Flush}
}

// dispatch executes the single capability call for the given action
// and collapses its outcome to one user-facing success or failure
// message. Exactly one branch runs per invocation.
func (d *dispatcher) dispatch(ctx context.Context, action model.Action) error {
	if closer, ok := d.backend.(io.Closer); ok {
		defer func() { _ = closer.Close() }()
	}

	log.Debug().Str("action", action.String()).Msg("dispatching")

	switch action {
	case model.ActionStart:
		if err := d.backend.Up(ctx); err != nil {
			return actionFailure("start the monitor deployment", err)
		}
		printStartResult(d.cfg)
		return nil

	case model.ActionStop:
		if err := d.backend.Down(ctx); err != nil {
			return actionFailure("stop the monitor deployment", err)
		}
		printStopResult(d.cfg)
		return nil

	case model.ActionRestart:
		if err := d.backend.Restart(ctx); err != nil {
			return actionFailure("restart the monitor", err)
		}
		printRestartResult(d.cfg)
		return nil

	case model.ActionBuild:
		if err := d.backend.Build(ctx); err != nil {
			return actionFailure("build the monitor image", err)
		}
		printBuildResult(d.cfg)
		return nil

	case model.ActionLogs:
		// Blocks until the log stream terminates, normally via an
		// external interrupt. The stream's exit code passes through.
		code, err := d.backend.FollowLogs(ctx)
		if err != nil {
			return actionFailure("follow the monitor logs", err)
		}
		if code != 0 {
			return model.NewCLIError(model.ExitCode(code), "log stream terminated")
		}
		return nil

	case model.ActionStatus:
		units, err := d.backend.Status(ctx)
		if err != nil {
			return actionFailure("query the deployment status", err)
		}
		printStatusResult(d.cfg, units)
		return nil

	case model.ActionClearCache:
		override := redisURLOverride
		if override == "" {
			override = d.cfg.Cache.RedisURL
		}
		url := cache.ResolveRedisURL(override, d.cfg.Cache.AppConfigFile)
		result, err := d.flush(ctx, url)
		if err != nil {
			return actionFailure("clear the monitor cache", err)
		}
		printClearCacheResult(result)
		return nil

	default:
		return model.NewCLIError(model.ExitGeneralError,
			fmt.Sprintf("unknown command %q", action))
	}
}

// actionFailure wraps a capability error into the named-action failure
// diagnostic, preserving an existing exit code when the error already
// carries one.
func actionFailure(what string, err error) error {
	if cliErr, ok := err.(*model.CLIError); ok {
		return model.WrapCLIError(cliErr.Code, "failed to "+what, err)
	}
	return model.WrapCLIError(model.ExitGeneralError, "failed to "+what, err)
}
