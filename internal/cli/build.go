// build.go implements the "pumpctl build" command.
//
// build rebuilds the monitor image without starting any unit. It is
// the explicit counterpart to restart's no-rebuild contract: build
// then restart picks up a changed artifact.
package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/pumpctl/internal/config"
	"github.com/shinji-kodama/pumpctl/internal/model"
)

// NewBuildCommand creates the "build" cobra command.
func NewBuildCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Rebuild the monitor image",
		Long: `Rebuild the monitor image without starting any unit.

Example:
  pumpctl build`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return newDispatcher(cmd).dispatch(cmd.Context(), model.ActionBuild)
		},
	}
}

func printBuildResult(cfg *config.Config) {
	if IsJSONOutput() {
		result := struct {
			Project string `json:"project"`
			Unit    string `json:"unit"`
			Action  string `json:"action"`
		}{Project: cfg.Compose.Project, Unit: cfg.Compose.AppService, Action: "built"}
		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(data))
		return
	}

	fmt.Printf("Built %s image\n", cfg.Compose.AppService)
}
