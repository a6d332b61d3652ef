// start.go implements the "pumpctl start" command.
//
// start is also the default action: running pumpctl with no argument
// dispatches it. It delegates a single detached bring-up of both
// managed units; compose builds the monitor image only when it does
// not exist yet. On a partial failure nothing is rolled back; the
// next start reconciles.
package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/pumpctl/internal/config"
	"github.com/shinji-kodama/pumpctl/internal/model"
)

// NewStartCommand creates the "start" cobra command.
func NewStartCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Bring up the monitor and its Redis store",
		Long: `Bring up both managed units in the background, building the monitor
image only if it does not exist yet.

Examples:
  pumpctl start
  pumpctl            (equivalent: start is the default)`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return newDispatcher(cmd).dispatch(cmd.Context(), model.ActionStart)
		},
	}
}

// printStartResult outputs the start result, including the log-tailing
// hint the operator usually wants next.
func printStartResult(cfg *config.Config) {
	if IsJSONOutput() {
		result := struct {
			Project string   `json:"project"`
			Action  string   `json:"action"`
			Units   []string `json:"units"`
		}{
			Project: cfg.Compose.Project,
			Action:  "started",
			Units:   []string{cfg.Compose.AppService, cfg.Compose.StoreService},
		}
		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(data))
		return
	}

	fmt.Printf("Started %s (%s + %s)\n",
		cfg.Compose.Project, cfg.Compose.AppService, cfg.Compose.StoreService)
	fmt.Println("Follow logs with: pumpctl logs")
}
