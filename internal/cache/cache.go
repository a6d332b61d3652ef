// Package cache implements the clear-cache action: flushing the Redis
// database the monitor uses as its transaction cache.
//
// The Redis address is discovered from the monitor's own config.json,
// the same file the monitor reads at startup, so the controller never
// duplicates connection settings. The file tolerates comments
// (JSONC), matching how the monitor's tooling treats it.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tidwall/jsonc"

	"github.com/shinji-kodama/pumpctl/internal/model"
)

// DefaultRedisURL is the conventional local deployment address, used
// when neither an explicit override nor the app config provides one.
const DefaultRedisURL = "redis://localhost:6379/0"

// flushTimeout bounds the whole connect-and-flush sequence. Flushing
// is O(keys) server-side but returns quickly for the cache sizes the
// monitor produces; a hung connection should not block the controller.
const flushTimeout = 30 * time.Second

// appConfig mirrors the single field of the monitor's config.json the
// controller is allowed to read. Everything else in that file belongs
// to the monitor.
type appConfig struct {
	RedisURL string `json:"redis_url"`
}

// ReadAppRedisURL extracts the redis_url field from the monitor's
// config file at path. The file may contain JSONC comments.
func ReadAppRedisURL(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read app config: %w", err)
	}

	var cfg appConfig
	if err := json.Unmarshal(jsonc.ToJSON(raw), &cfg); err != nil {
		return "", fmt.Errorf("failed to parse app config %q: %w", path, err)
	}
	if cfg.RedisURL == "" {
		return "", fmt.Errorf("app config %q has no redis_url", path)
	}
	return cfg.RedisURL, nil
}

// ResolveRedisURL picks the Redis address for clear-cache: an explicit
// override wins, then the monitor's config file, then the local
// default. The resolution never fails; a missing or unreadable app
// config simply falls through to the default.
func ResolveRedisURL(override, appConfigPath string) string {
	if override != "" {
		return override
	}
	if url, err := ReadAppRedisURL(appConfigPath); err == nil {
		return url
	}
	return DefaultRedisURL
}

// FlushResult reports what a flush removed.
type FlushResult struct {
	// Addr is the redacted server address the flush ran against.
	Addr string `json:"addr"`

	// KeysFlushed is the number of keys in the selected database
	// immediately before the flush.
	KeysFlushed int64 `json:"keysFlushed"`
}

// Flush connects to the Redis instance at url, counts the keys in the
// selected database, and flushes it. One attempt, no retry: a failure
// is reported and left to the operator, like every other delegated
// action.
func Flush(ctx context.Context, url string) (*FlushResult, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("invalid redis url %q", url), err)
	}

	flushCtx, cancel := context.WithTimeout(ctx, flushTimeout)
	defer cancel()

	client := redis.NewClient(opts)
	defer func() { _ = client.Close() }()

	if err := client.Ping(flushCtx).Err(); err != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("failed to connect to redis at %s", opts.Addr), err)
	}

	size, err := client.DBSize(flushCtx).Result()
	if err != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError,
			"failed to count redis keys", err)
	}

	if err := client.FlushDB(flushCtx).Err(); err != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError,
			"failed to flush redis cache", err)
	}

	return &FlushResult{Addr: opts.Addr, KeysFlushed: size}, nil
}
