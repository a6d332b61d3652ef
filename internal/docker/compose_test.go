// compose_test.go covers the delegated-call argument construction.
// The calls themselves are child processes, so the tests pin down the
// exact argv each lifecycle action produces for both compose tools.
package docker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestCompose() *Compose {
	return NewCompose(
		[]string{"docker", "compose"},
		"/srv/pump/docker-compose.yml",
		"pump-monitor",
		"monitor",
		"redis",
	)
}

func TestCommandLinePluginForm(t *testing.T) {
	c := newTestCompose()

	tests := []struct {
		name string
		sub  []string
		want []string
	}{
		{
			name: "up",
			sub:  []string{"up", "-d"},
			want: []string{"compose", "-p", "pump-monitor", "-f", "/srv/pump/docker-compose.yml", "up", "-d"},
		},
		{
			name: "down",
			sub:  []string{"down"},
			want: []string{"compose", "-p", "pump-monitor", "-f", "/srv/pump/docker-compose.yml", "down"},
		},
		{
			name: "restart targets only the app unit",
			sub:  []string{"restart", "monitor"},
			want: []string{"compose", "-p", "pump-monitor", "-f", "/srv/pump/docker-compose.yml", "restart", "monitor"},
		},
		{
			name: "build targets only the app unit",
			sub:  []string{"build", "monitor"},
			want: []string{"compose", "-p", "pump-monitor", "-f", "/srv/pump/docker-compose.yml", "build", "monitor"},
		},
		{
			name: "logs follow",
			sub:  []string{"logs", "-f", "monitor"},
			want: []string{"compose", "-p", "pump-monitor", "-f", "/srv/pump/docker-compose.yml", "logs", "-f", "monitor"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, args := c.commandLine(tt.sub...)
			assert.Equal(t, "docker", name)
			assert.Equal(t, tt.want, args)
		})
	}
}

// TestCommandLineLegacyForm verifies the standalone docker-compose
// binary is invoked directly, without the plugin subcommand.
func TestCommandLineLegacyForm(t *testing.T) {
	c := NewCompose([]string{"docker-compose"},
		"docker-compose.yml", "pump-monitor", "monitor", "redis")

	name, args := c.commandLine("up", "-d")
	assert.Equal(t, "docker-compose", name)
	assert.Equal(t, []string{"-p", "pump-monitor", "-f", "docker-compose.yml", "up", "-d"}, args)
}

func TestComposeDir(t *testing.T) {
	assert.Equal(t, "/srv/pump", composeDir("/srv/pump/docker-compose.yml"))
	assert.Equal(t, ".", composeDir("docker-compose.yml"))
}

func TestServiceAccessors(t *testing.T) {
	c := newTestCompose()
	assert.Equal(t, "monitor", c.AppService())
	assert.Equal(t, "redis", c.StoreService())
}
