// Package cli implements the cobra-based commands of pumpctl.
//
// Each lifecycle action (start, stop, restart, build, logs, status,
// clear-cache) is defined in its own file within this package. This
// file defines the root command, the global flags, the availability
// check that gates every action, and the error-to-exit-code mapping.
//
// Invoking pumpctl with no argument runs start; an unrecognized token
// prints the unknown-command diagnostic plus the command reference and
// exits non-zero.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/shinji-kodama/pumpctl/internal/config"
	"github.com/shinji-kodama/pumpctl/internal/hostcheck"
	"github.com/shinji-kodama/pumpctl/internal/logging"
	"github.com/shinji-kodama/pumpctl/internal/model"
)

// Global flag variables bound to cobra persistent flags on the root
// command, available to every subcommand.
var (
	// jsonOutput switches command output to structured JSON.
	jsonOutput bool

	// verbose lowers the diagnostic log level to debug.
	verbose bool

	// configFile is an explicit pumpctl config file path.
	configFile string
)

// Version, Commit, and Date are injected from the main package.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// log is the process diagnostic logger, configured during the
// persistent pre-run. User-facing results never go through it.
var log = zerolog.Nop()

// contextKey namespaces the values the pre-run stashes on the command
// context for the subcommand RunE functions.
type contextKey string

const (
	configKey  = contextKey("config")
	composeKey = contextKey("composeCommand")
)

// NewRootCommand creates and configures the root cobra command.
//
// The root command doubles as the default action: running pumpctl with
// no arguments is identical to "pumpctl start". The persistent pre-run
// loads configuration and performs the backend availability check
// exactly once, strictly before any action dispatches; when the check
// fails, no lifecycle action is ever attempted.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pumpctl",
		Short: "Lifecycle controller for the pump transaction monitor deployment",
		Long: `pumpctl manages the pump transaction monitor and its backing Redis
store as a single Docker Compose project.

Commands:
  start        build-if-needed, bring up monitor and redis (default)
  stop         tear down both units and release the network
  restart      restart the monitor in place (no rebuild)
  build        rebuild the monitor image only
  logs         follow the monitor's log stream until interrupted
  status       report the running/stopped state of both units
  clear-cache  flush the monitor's Redis cache`,

		// Errors are formatted by Execute (text or JSON), not cobra.
		SilenceUsage:  true,
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		// A positional token only reaches the root after failing
		// subcommand routing, so decode it here: ParseAction yields
		// the typed unknown-command error Execute appends the command
		// reference to. A recognized token landing here anyway (after
		// "--") is rejected too rather than silently running start.
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return nil
			}
			if _, err := model.ParseAction(args[0]); err != nil {
				return err
			}
			return &model.UnknownCommandError{Token: args[0]}
		},

		PersistentPreRunE: setup,

		// No subcommand means start.
		RunE: func(cmd *cobra.Command, args []string) error {
			return newDispatcher(cmd).dispatch(cmd.Context(), model.ActionStart)
		},
	}

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is ./pumpctl.yaml)")
	rootCmd.PersistentFlags().StringP("file", "f", "", "compose descriptor path")
	rootCmd.PersistentFlags().StringP("project", "p", "", "compose project name")

	_ = viper.BindPFlag("compose.file", rootCmd.PersistentFlags().Lookup("file"))
	_ = viper.BindPFlag("compose.project", rootCmd.PersistentFlags().Lookup("project"))

	rootCmd.AddCommand(NewStartCommand())
	rootCmd.AddCommand(NewStopCommand())
	rootCmd.AddCommand(NewRestartCommand())
	rootCmd.AddCommand(NewBuildCommand())
	rootCmd.AddCommand(NewLogsCommand())
	rootCmd.AddCommand(NewStatusCommand())
	rootCmd.AddCommand(NewClearCacheCommand())

	return rootCmd
}

// setup is the persistent pre-run shared by the root command and every
// subcommand: load configuration, configure logging, and run the
// backend availability check.
func setup(cmd *cobra.Command, args []string) error {
	if err := config.Init(configFile); err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to load configuration", err)
	}
	cfg, err := config.Load()
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to load configuration", err)
	}

	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}
	log = logging.Setup(level)

	log.Debug().
		Str("compose_file", cfg.Compose.File).
		Str("project", cfg.Compose.Project).
		Msg("configuration loaded")

	composeCommand, err := hostcheck.New().Run(cmd.Context())
	if err != nil {
		return err
	}
	log.Debug().Strs("compose_command", composeCommand).Msg("backend available")

	ctx := context.WithValue(cmd.Context(), configKey, cfg)
	ctx = context.WithValue(ctx, composeKey, composeCommand)
	cmd.SetContext(ctx)
	return nil
}

// Execute runs the root command and translates errors into process
// exit codes. CLIError carries its own code; an unrecognized command
// additionally gets the command reference printed; anything else exits
// with the general error code.
func Execute(rootCmd *cobra.Command) {
	err := rootCmd.Execute()
	if err == nil {
		return
	}

	if cliErr, ok := err.(*model.CLIError); ok {
		printError(cliErr.Message, cliErr.Err)
		os.Exit(int(cliErr.Code))
	}

	printError(err.Error(), nil)
	// An unrecognized token gets the valid command set appended to
	// the diagnostic before failing.
	var unknown *model.UnknownCommandError
	if errors.As(err, &unknown) {
		fmt.Fprint(os.Stderr, rootCmd.UsageString())
	}
	os.Exit(int(model.ExitGeneralError))
}

// printError outputs an error in the format selected by --json.
// Errors go to stderr in both modes; stdout is reserved for
// successful command output.
func printError(message string, underlying error) {
	if jsonOutput {
		errObj := map[string]interface{}{
			"error": map[string]interface{}{
				"message": message,
			},
		}
		if underlying != nil {
			errObj["error"].(map[string]interface{})["detail"] = underlying.Error()
		}
		data, _ := json.MarshalIndent(errObj, "", "  ")
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		if underlying != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", message, underlying)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %s\n", message)
		}
	}
}

// IsJSONOutput returns whether the --json flag is set.
func IsJSONOutput() bool {
	return jsonOutput
}
