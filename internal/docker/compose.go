// compose.go delegates the mutating lifecycle calls to the compose
// tool as child processes. Each call is synchronous, inspects only the
// terminal exit status, and is never retried: the backend is expected
// to be idempotent and self-reconciling on the next invocation.
package docker

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/shinji-kodama/pumpctl/internal/model"
)

// Compose is the orchestration backend for one compose project. The
// descriptor location, project name, and managed unit names are
// injected at construction; nothing is read from ambient process state
// at call time.
type Compose struct {
	// command is the argv prefix invoking the compose tool, e.g.
	// ["docker", "compose"] or ["docker-compose"].
	command []string

	// file is the path to the compose descriptor.
	file string

	// project is the compose project name used for -p and for the
	// status query's label filter.
	project string

	// appService and storeService are the compose service names of
	// the two managed units.
	appService   string
	storeService string

	// cli is the SDK client used by Status. Created on first use so
	// the exec-delegated actions work without a resolvable socket.
	cli *Client
}

// NewCompose constructs the backend for the given descriptor, project
// name, and managed unit names. command comes from the availability
// check, which already proved the tool resolves.
func NewCompose(command []string, file, project, appService, storeService string) *Compose {
	return &Compose{
		command:      command,
		file:         file,
		project:      project,
		appService:   appService,
		storeService: storeService,
	}
}

// AppService returns the compose service name of the application unit.
func (c *Compose) AppService() string {
	return c.appService
}

// StoreService returns the compose service name of the store unit.
func (c *Compose) StoreService() string {
	return c.storeService
}

// Up brings up both managed units detached. Compose builds the
// application image only when it does not exist yet; an explicit
// rebuild goes through Build.
func (c *Compose) Up(ctx context.Context) error {
	return c.run(ctx, "up", "-d")
}

// Down tears down both managed units and releases the project network.
func (c *Compose) Down(ctx context.Context) error {
	return c.run(ctx, "down")
}

// Restart restarts the application unit in place without rebuilding
// its image.
func (c *Compose) Restart(ctx context.Context) error {
	return c.run(ctx, "restart", c.appService)
}

// Build rebuilds the application image without starting any unit.
func (c *Compose) Build(ctx context.Context) error {
	return c.run(ctx, "build", c.appService)
}

// FollowLogs attaches to the application unit's log stream with the
// invoking terminal's stdio and blocks until the stream terminates,
// normally via an external interrupt. It returns the log-follow call's
// exit code so the controller can pass it through.
func (c *Compose) FollowLogs(ctx context.Context) (int, error) {
	name, args := c.commandLine("logs", "-f", c.appService)

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = composeDir(c.file)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}
	// An ExitError means the child ran and terminated non-zero;
	// for logs -f that is the interrupt path, not a dispatch failure.
	if exitErr, ok := err.(*exec.ExitError); ok {
		return exitErr.ExitCode(), nil
	}
	return 0, model.WrapCLIError(model.ExitGeneralError,
		"failed to attach to monitor logs", err)
}

// run executes one delegated compose call, capturing combined output
// for the failure diagnostic. Success is exit status zero; everything
// else collapses to a single CLIError with the tool's output.
func (c *Compose) run(ctx context.Context, sub ...string) error {
	name, args := c.commandLine(sub...)

	cmd := exec.CommandContext(ctx, name, args...)
	// Compose resolves relative paths in the descriptor against the
	// working directory, so run from the descriptor's directory.
	cmd.Dir = composeDir(c.file)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("%s failed: %s", strings.Join(append(c.command, sub...), " "),
				strings.TrimSpace(string(output))),
			err)
	}
	return nil
}

// commandLine assembles the binary name and argument list for one
// compose invocation: <command> -p <project> -f <file> <sub...>.
func (c *Compose) commandLine(sub ...string) (string, []string) {
	args := make([]string, 0, len(c.command)+len(sub)+4)
	args = append(args, c.command[1:]...)
	args = append(args, "-p", c.project, "-f", c.file)
	args = append(args, sub...)
	return c.command[0], args
}

// composeDir returns the directory containing the compose descriptor.
func composeDir(file string) string {
	return filepath.Dir(file)
}
