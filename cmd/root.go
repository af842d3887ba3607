package cmd

import (
	"github.com/dracalusb/dusb/internal/constants"
	"github.com/dracalusb/dusb/internal/errors"
	"github.com/dracalusb/dusb/internal/executor"
	"github.com/dracalusb/dusb/internal/spinners"

	"github.com/spf13/cobra"
)

// newExecutor creates the executor handed to every builder. Tests replace it
// with a mock.
var newExecutor = executor.NewExecutor

// NewRootCommand builds the dusb command tree.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dusb",
		Short: "Read Dracal USB sensors",
		Long: `dusb builds and runs dracal-usb-get command lines.

Select a sensor by serial number or use the first one found, pick channels,
set units and precision, then read once or log to a file.`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			verbosity, _ := cmd.Flags().GetCount("verbose")
			spinners.SetVerboseMode(verbosity > 0)
		},
	}

	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase verbosity level (can be used multiple times, e.g. -vv)")
	rootCmd.PersistentFlags().String("binary", "", "Path to dracal-usb-get (default $"+constants.BinaryEnv+" or "+constants.DefaultBinary+")")

	rootCmd.AddCommand(
		newGetCommand(),
		newLogCommand(),
		newUnitsCommand(),
		newVersionCommand(),
	)
	return rootCmd
}

// GetRootCommand returns the root command for use with fang.Execute
func GetRootCommand() *cobra.Command {
	return NewRootCommand()
}

// handleInterruptError checks if the error is from a user interrupt and triggers shutdown.
func handleInterruptError(err error) {
	errors.HandleInterruptError(err)
}
