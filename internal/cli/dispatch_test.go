package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/pumpctl/internal/cache"
	"github.com/shinji-kodama/pumpctl/internal/config"
	"github.com/shinji-kodama/pumpctl/internal/model"
)

// fakeBackend records which capability methods dispatch invokes so
// tests can assert the one-call-per-action contract without a Docker
// host.
type fakeBackend struct {
	calls    []string
	err      error
	logsCode int
	units    []model.UnitState
	closed   bool
}

func (f *fakeBackend) Up(ctx context.Context) error {
	f.calls = append(f.calls, "up")
	return f.err
}

func (f *fakeBackend) Down(ctx context.Context) error {
	f.calls = append(f.calls, "down")
	return f.err
}

func (f *fakeBackend) Restart(ctx context.Context) error {
	f.calls = append(f.calls, "restart")
	return f.err
}

func (f *fakeBackend) Build(ctx context.Context) error {
	f.calls = append(f.calls, "build")
	return f.err
}

func (f *fakeBackend) FollowLogs(ctx context.Context) (int, error) {
	f.calls = append(f.calls, "logs")
	return f.logsCode, f.err
}

func (f *fakeBackend) Status(ctx context.Context) ([]model.UnitState, error) {
	f.calls = append(f.calls, "status")
	return f.units, f.err
}

func (f *fakeBackend) Close() error {
	f.closed = true
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		Compose: config.ComposeConfig{
			File:         "docker-compose.yml",
			Project:      "pump-monitor",
			AppService:   "monitor",
			StoreService: "redis",
		},
		Cache: config.CacheConfig{
			AppConfigFile: "does-not-exist.json",
		},
	}
}

func newTestDispatcher(backend *fakeBackend) *dispatcher {
	return &dispatcher{
		backend: backend,
		cfg:     testConfig(),
		flush: func(ctx context.Context, url string) (*cache.FlushResult, error) {
			return &cache.FlushResult{Addr: url, KeysFlushed: 0}, nil
		},
	}
}

func TestDispatchInvokesExactlyOneCapability(t *testing.T) {
	tests := []struct {
		action model.Action
		want   string
	}{
		{model.ActionStart, "up"},
		{model.ActionStop, "down"},
		{model.ActionRestart, "restart"},
		{model.ActionBuild, "build"},
		{model.ActionLogs, "logs"},
		{model.ActionStatus, "status"},
	}

	for _, tt := range tests {
		t.Run(tt.action.String(), func(t *testing.T) {
			backend := &fakeBackend{}
			d := newTestDispatcher(backend)

			err := d.dispatch(context.Background(), tt.action)

			require.NoError(t, err)
			assert.Equal(t, []string{tt.want}, backend.calls)
			assert.True(t, backend.closed, "backend should be closed after dispatch")
		})
	}
}

func TestDispatchPropagatesBackendFailure(t *testing.T) {
	actions := []model.Action{
		model.ActionStart,
		model.ActionStop,
		model.ActionRestart,
		model.ActionBuild,
		model.ActionLogs,
		model.ActionStatus,
	}

	for _, action := range actions {
		t.Run(action.String(), func(t *testing.T) {
			backend := &fakeBackend{err: errors.New("boom")}
			d := newTestDispatcher(backend)

			err := d.dispatch(context.Background(), action)

			require.Error(t, err)

			var cliErr *model.CLIError
			require.ErrorAs(t, err, &cliErr)
			assert.Equal(t, model.ExitGeneralError, cliErr.Code)
			assert.Contains(t, cliErr.Message, "failed to")
			assert.Len(t, backend.calls, 1, "a failed call must not be retried")
		})
	}
}

func TestDispatchPreservesBackendExitCode(t *testing.T) {
	backendErr := model.NewCLIError(model.ExitGeneralError, "compose up failed")
	backend := &fakeBackend{err: backendErr}
	d := newTestDispatcher(backend)

	err := d.dispatch(context.Background(), model.ActionStart)

	var cliErr *model.CLIError
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, model.ExitGeneralError, cliErr.Code)
	assert.ErrorIs(t, err, backendErr)
}

func TestDispatchLogsPassesExitCodeThrough(t *testing.T) {
	backend := &fakeBackend{logsCode: 130}
	d := newTestDispatcher(backend)

	err := d.dispatch(context.Background(), model.ActionLogs)

	var cliErr *model.CLIError
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, model.ExitCode(130), cliErr.Code)
}

func TestDispatchLogsZeroExitIsSuccess(t *testing.T) {
	backend := &fakeBackend{logsCode: 0}
	d := newTestDispatcher(backend)

	err := d.dispatch(context.Background(), model.ActionLogs)

	assert.NoError(t, err)
}

func TestDispatchClearCacheUsesResolvedURL(t *testing.T) {
	var flushedURL string
	backend := &fakeBackend{}
	d := newTestDispatcher(backend)
	d.flush = func(ctx context.Context, url string) (*cache.FlushResult, error) {
		flushedURL = url
		return &cache.FlushResult{Addr: url, KeysFlushed: 3}, nil
	}

	err := d.dispatch(context.Background(), model.ActionClearCache)

	require.NoError(t, err)
	// No override and no readable app config: the built-in default wins.
	assert.Equal(t, cache.DefaultRedisURL, flushedURL)
	assert.Empty(t, backend.calls, "clear-cache must not touch the orchestration backend")
}

func TestDispatchClearCacheConfigOverrideWins(t *testing.T) {
	var flushedURL string
	backend := &fakeBackend{}
	d := newTestDispatcher(backend)
	d.cfg.Cache.RedisURL = "redis://configured:6379/2"
	d.flush = func(ctx context.Context, url string) (*cache.FlushResult, error) {
		flushedURL = url
		return &cache.FlushResult{Addr: url, KeysFlushed: 0}, nil
	}

	err := d.dispatch(context.Background(), model.ActionClearCache)

	require.NoError(t, err)
	assert.Equal(t, "redis://configured:6379/2", flushedURL)
}

func TestDispatchClearCacheFlagOverrideWins(t *testing.T) {
	redisURLOverride = "redis://flagged:6380/1"
	t.Cleanup(func() { redisURLOverride = "" })

	var flushedURL string
	backend := &fakeBackend{}
	d := newTestDispatcher(backend)
	d.cfg.Cache.RedisURL = "redis://configured:6379/2"
	d.flush = func(ctx context.Context, url string) (*cache.FlushResult, error) {
		flushedURL = url
		return &cache.FlushResult{Addr: url, KeysFlushed: 0}, nil
	}

	err := d.dispatch(context.Background(), model.ActionClearCache)

	require.NoError(t, err)
	assert.Equal(t, "redis://flagged:6380/1", flushedURL)
}

func TestDispatchClearCacheFailure(t *testing.T) {
	backend := &fakeBackend{}
	d := newTestDispatcher(backend)
	d.flush = func(ctx context.Context, url string) (*cache.FlushResult, error) {
		return nil, model.NewCLIError(model.ExitGeneralError, "redis unreachable")
	}

	err := d.dispatch(context.Background(), model.ActionClearCache)

	var cliErr *model.CLIError
	require.ErrorAs(t, err, &cliErr)
	assert.Contains(t, cliErr.Message, "failed to clear the monitor cache")
}

func TestDispatchRejectsUnknownAction(t *testing.T) {
	backend := &fakeBackend{}
	d := newTestDispatcher(backend)

	err := d.dispatch(context.Background(), model.Action("deploy"))

	var cliErr *model.CLIError
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, model.ExitGeneralError, cliErr.Code)
	assert.Contains(t, cliErr.Message, "unknown command")
	assert.Empty(t, backend.calls)
}
