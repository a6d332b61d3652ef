package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeAppConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReadAppRedisURL(t *testing.T) {
	path := writeAppConfig(t, `{
  "grpc_url": "https://grpc.example.com:443",
  "redis_url": "redis://127.0.0.1:6379/1",
  "x_token": "abc"
}`)

	url, err := ReadAppRedisURL(path)
	require.NoError(t, err)
	assert.Equal(t, "redis://127.0.0.1:6379/1", url)
}

// TestReadAppRedisURLWithComments verifies JSONC tolerance: the
// monitor's config file is routinely annotated in place.
func TestReadAppRedisURLWithComments(t *testing.T) {
	path := writeAppConfig(t, `{
  // local redis, db 1 is the transaction cache
  "redis_url": "redis://127.0.0.1:6379/1", // trailing comment
  /* block comment */
  "commitment": "processed",
}`)

	url, err := ReadAppRedisURL(path)
	require.NoError(t, err)
	assert.Equal(t, "redis://127.0.0.1:6379/1", url)
}

func TestReadAppRedisURLMissingField(t *testing.T) {
	path := writeAppConfig(t, `{"grpc_url": "https://grpc.example.com"}`)

	_, err := ReadAppRedisURL(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no redis_url")
}

func TestReadAppRedisURLMissingFile(t *testing.T) {
	_, err := ReadAppRedisURL(filepath.Join(t.TempDir(), "config.json"))
	require.Error(t, err)
}

func TestResolveRedisURL(t *testing.T) {
	path := writeAppConfig(t, `{"redis_url": "redis://127.0.0.1:6379/1"}`)

	t.Run("override wins", func(t *testing.T) {
		assert.Equal(t, "redis://override:6390/2",
			ResolveRedisURL("redis://override:6390/2", path))
	})

	t.Run("app config next", func(t *testing.T) {
		assert.Equal(t, "redis://127.0.0.1:6379/1", ResolveRedisURL("", path))
	})

	t.Run("default last", func(t *testing.T) {
		missing := filepath.Join(t.TempDir(), "config.json")
		assert.Equal(t, DefaultRedisURL, ResolveRedisURL("", missing))
	})
}
