// status.go implements the "pumpctl status" command.
//
// status reports both managed units, running or not. Units declared
// in the deployment descriptor that have no container at all are
// reported as stopped rather than omitted, so the output shape is
// stable across the deployment's whole lifecycle.
package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/pumpctl/internal/config"
	"github.com/shinji-kodama/pumpctl/internal/model"
)

// NewStatusCommand creates the "status" cobra command.
func NewStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the state of both managed units",
		Long: `Show the state of the monitor and its Redis store, including units
that currently have no container.

Example:
  pumpctl status`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return newDispatcher(cmd).dispatch(cmd.Context(), model.ActionStatus)
		},
	}
}

// statusUnitJSON is the JSON shape of a single unit in status output.
type statusUnitJSON struct {
	Service   string `json:"service"`
	Container string `json:"container,omitempty"`
	State     string `json:"state"`
	Detail    string `json:"detail,omitempty"`
}

// statusResultJSON is the top-level JSON shape of status output.
type statusResultJSON struct {
	Project string           `json:"project"`
	Units   []statusUnitJSON `json:"units"`
}

// printStatusResult outputs the unit states in the requested format.
func printStatusResult(cfg *config.Config, units []model.UnitState) {
	if IsJSONOutput() {
		printStatusResultJSON(cfg, units)
		return
	}
	printStatusResultText(units)
}

func printStatusResultJSON(cfg *config.Config, units []model.UnitState) {
	result := statusResultJSON{
		Project: cfg.Compose.Project,
		Units:   make([]statusUnitJSON, 0, len(units)),
	}

	for _, u := range units {
		result.Units = append(result.Units, statusUnitJSON{
			Service:   u.Service,
			Container: u.ContainerName,
			State:     string(u.State),
			Detail:    u.RawStatus,
		})
	}

	data, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(data))
}

// printStatusResultText outputs the unit states as a text table with
// aligned columns.
//
// The table format is:
//
//	SERVICE    STATE      CONTAINER                 DETAIL
//	monitor    running    pump-monitor-monitor-1    Up 2 hours
//	redis      stopped    -                         -
func printStatusResultText(units []model.UnitState) {
	fmt.Printf("%-10s %-10s %-25s %s\n",
		"SERVICE", "STATE", "CONTAINER", "DETAIL")

	for _, u := range units {
		name := u.ContainerName
		if name == "" {
			name = "-"
		}
		detail := u.RawStatus
		if detail == "" {
			detail = "-"
		}

		fmt.Printf("%-10s %-10s %-25s %s\n",
			u.Service,
			string(u.State),
			name,
			detail,
		)
	}
}
