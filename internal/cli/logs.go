// logs.go implements the "pumpctl logs" command.
//
// logs attaches to the monitor's log stream with the invoking
// terminal's stdio and follows it indefinitely. The command returns
// only when the stream call terminates (normally via an external
// interrupt) and passes that call's exit code through. There is no
// controller-side timeout or cancellation token.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/shinji-kodama/pumpctl/internal/model"
)

// NewLogsCommand creates the "logs" cobra command.
func NewLogsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logs",
		Short: "Follow the monitor's log stream",
		Long: `Attach to the monitor's log stream and follow it until interrupted
(Ctrl-C).

Example:
  pumpctl logs`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return newDispatcher(cmd).dispatch(cmd.Context(), model.ActionLogs)
		},
	}
}
