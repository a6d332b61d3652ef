package hostcheck

import (
	"context"
	"os/exec"
	"time"

	"github.com/shinji-kodama/pumpctl/internal/model"
)

// probeTimeout bounds the "docker compose version" probe. The plugin
// answers locally without contacting the daemon, so anything slower
// than this indicates a broken installation.
const probeTimeout = 10 * time.Second

// ComposeCommand is the argv prefix that invokes the compose tool found
// on the host: ["docker", "compose"] for the CLI plugin, or
// ["docker-compose"] for the legacy standalone binary.
type ComposeCommand []string

// Checker runs the backend availability check. The probe functions are
// fields so tests can substitute fakes without a Docker installation.
type Checker struct {
	// lookPath resolves an executable on PATH. Defaults to exec.LookPath.
	lookPath func(file string) (string, error)

	// runProbe executes a probe command and returns its error status.
	// Defaults to running the command with discarded output.
	runProbe func(ctx context.Context, name string, args ...string) error
}

// New returns a Checker wired to the real host environment.
func New() *Checker {
	return &Checker{
		lookPath: exec.LookPath,
		runProbe: func(ctx context.Context, name string, args ...string) error {
			return exec.CommandContext(ctx, name, args...).Run()
		},
	}
}

// Run performs the availability check. On success it returns the
// compose invocation to use for delegated calls; on failure it returns
// a CLIError naming the missing dependency.
//
// The check runs exactly once per invocation, strictly before dispatch;
// on failure no lifecycle action is ever attempted.
func (c *Checker) Run(ctx context.Context) (ComposeCommand, error) {
	if _, err := c.lookPath("docker"); err != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError,
			"docker not found on PATH; install Docker to manage the monitor deployment", err)
	}

	probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	// Modern Docker ships compose as a CLI plugin; "docker compose
	// version" succeeds only when the plugin is installed. Older hosts
	// may instead carry the standalone docker-compose binary.
	if err := c.runProbe(probeCtx, "docker", "compose", "version"); err == nil {
		return ComposeCommand{"docker", "compose"}, nil
	} else if _, lookErr := c.lookPath("docker-compose"); lookErr == nil {
		return ComposeCommand{"docker-compose"}, nil
	} else {
		return nil, model.WrapCLIError(model.ExitGeneralError,
			"docker compose not found; install the compose plugin or docker-compose", err)
	}
}
