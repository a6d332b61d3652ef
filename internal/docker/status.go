// status.go implements the status query through the Docker Engine SDK.
// Containers are filtered server-side by the compose project label, so
// the query sees exactly the managed units' containers regardless of
// what else runs on the host.
package docker

import (
	"context"
	"strings"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"

	"github.com/shinji-kodama/pumpctl/internal/model"
)

// Compose attaches these labels to every container it creates. They
// are the only attributes of a managed unit the controller reads.
const (
	labelComposeProject = "com.docker.compose.project"
	labelComposeService = "com.docker.compose.service"
)

// Status reports the running/stopped state of the project's declared
// units. It lists all containers carrying the project label (stopped
// ones included) and merges the result with the services declared in
// the descriptor, so a unit that was never brought up still shows as
// stopped rather than vanishing from the report.
//
// The state is observed for this single call only; nothing is cached.
func (c *Compose) Status(ctx context.Context) ([]model.UnitState, error) {
	cli, err := c.client(ctx)
	if err != nil {
		return nil, err
	}

	filterArgs := filters.NewArgs(
		filters.Arg("label", labelComposeProject+"="+c.project),
	)

	containers, err := cli.Inner().ContainerList(ctx, container.ListOptions{
		All:     true,
		Filters: filterArgs,
	})
	if err != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError,
			"failed to query container status", err)
	}

	observed := make(map[string]model.UnitState)
	for _, ctr := range containers {
		unit := containerToUnit(ctr)
		if unit.Service == "" {
			continue
		}
		// A service may briefly have several containers (e.g. one
		// exited and one recreated); a running one wins the report.
		if prev, ok := observed[unit.Service]; ok && prev.Running() {
			continue
		}
		observed[unit.Service] = unit
	}

	return mergeUnitStates(c.declaredServices(), observed), nil
}

// client lazily creates the SDK client and pings the daemon once on
// first use, so an unreachable daemon surfaces as the "is Docker
// running?" diagnostic instead of a raw API error. Exec-delegated
// actions never need it, so socket detection only runs for status
// queries.
func (c *Compose) client(ctx context.Context) (*Client, error) {
	if c.cli != nil {
		return c.cli, nil
	}
	cli, err := NewClient()
	if err != nil {
		return nil, err
	}
	if err := cli.Ping(ctx); err != nil {
		_ = cli.Close()
		return nil, err
	}
	c.cli = cli
	return c.cli, nil
}

// Close releases the SDK client if one was created.
func (c *Compose) Close() error {
	if c.cli != nil {
		return c.cli.Close()
	}
	return nil
}

// declaredServices enumerates the services in the compose descriptor,
// with the managed units first. When the descriptor cannot be read the
// report falls back to the two configured unit names: a status query
// must not fail because of a descriptor problem the backend itself
// would surface on the next mutating call.
func (c *Compose) declaredServices() []string {
	declared, err := ComposeServices(c.file)
	if err != nil {
		return []string{c.appService, c.storeService}
	}

	// The managed units lead the report even when the descriptor omits
	// one; the operator then sees the mismatch as a stopped unit.
	ordered := []string{c.appService, c.storeService}
	for _, name := range declared {
		if name != c.appService && name != c.storeService {
			ordered = append(ordered, name)
		}
	}
	return ordered
}

// containerToUnit maps a Docker API container summary to a UnitState.
// Pure mapping, no side effects.
func containerToUnit(ctr container.Summary) model.UnitState {
	name := ""
	if len(ctr.Names) > 0 {
		// The API reports names with a leading "/" that is an
		// artifact of the wire format, not meaningful to users.
		name = strings.TrimPrefix(ctr.Names[0], "/")
	}

	state := model.UnitStopped
	if ctr.State == "running" {
		state = model.UnitRunning
	}

	return model.UnitState{
		Service:       ctr.Labels[labelComposeService],
		ContainerName: name,
		ContainerID:   ctr.ID,
		State:         state,
		RawStatus:     ctr.Status,
	}
}

// mergeUnitStates builds the final report: one entry per declared
// service in order, taking the observed state when a container exists
// and reporting stopped otherwise.
func mergeUnitStates(declared []string, observed map[string]model.UnitState) []model.UnitState {
	units := make([]model.UnitState, 0, len(declared))
	for _, service := range declared {
		if unit, ok := observed[service]; ok {
			units = append(units, unit)
			continue
		}
		units = append(units, model.UnitState{
			Service: service,
			State:   model.UnitStopped,
		})
	}
	return units
}
