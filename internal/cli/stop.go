// stop.go implements the "pumpctl stop" command.
//
// stop tears down both managed units and releases the compose
// project's network. Container images and the store's on-disk data
// are left in place; the next start reuses them.
package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/pumpctl/internal/config"
	"github.com/shinji-kodama/pumpctl/internal/model"
)

// NewStopCommand creates the "stop" cobra command.
func NewStopCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Tear down the monitor deployment",
		Long: `Stop and remove both managed units and release the project network.

Example:
  pumpctl stop`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return newDispatcher(cmd).dispatch(cmd.Context(), model.ActionStop)
		},
	}
}

func printStopResult(cfg *config.Config) {
	if IsJSONOutput() {
		result := struct {
			Project string `json:"project"`
			Action  string `json:"action"`
		}{Project: cfg.Compose.Project, Action: "stopped"}
		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(data))
		return
	}

	fmt.Printf("Stopped %s\n", cfg.Compose.Project)
}
