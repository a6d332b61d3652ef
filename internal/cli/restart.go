// restart.go implements the "pumpctl restart" command.
//
// restart bounces the monitor unit in place. It intentionally does
// not rebuild the image: a changed artifact is only picked up through
// "pumpctl build" (or the build-if-needed path of start). The Redis
// store keeps running throughout.
package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/pumpctl/internal/config"
	"github.com/shinji-kodama/pumpctl/internal/model"
)

// NewRestartCommand creates the "restart" cobra command.
func NewRestartCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "restart",
		Short: "Restart the monitor in place (no rebuild)",
		Long: `Restart the monitor unit without rebuilding its image and without
touching the Redis store.

Example:
  pumpctl restart`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return newDispatcher(cmd).dispatch(cmd.Context(), model.ActionRestart)
		},
	}
}

func printRestartResult(cfg *config.Config) {
	if IsJSONOutput() {
		result := struct {
			Project string `json:"project"`
			Unit    string `json:"unit"`
			Action  string `json:"action"`
		}{Project: cfg.Compose.Project, Unit: cfg.Compose.AppService, Action: "restarted"}
		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(data))
		return
	}

	fmt.Printf("Restarted %s\n", cfg.Compose.AppService)
}
