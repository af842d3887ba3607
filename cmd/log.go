package cmd

import (
	"fmt"

	"github.com/dracalusb/dusb/internal/builder"
	"github.com/dracalusb/dusb/internal/constants"
	"github.com/dracalusb/dusb/internal/errors"
	"github.com/dracalusb/dusb/internal/spinners"

	"github.com/spf13/cobra"
)

func newLogCommand() *cobra.Command {
	logCmd := &cobra.Command{
		Use:   "log <path>",
		Short: "Log measurements to a file",
		Long: `Log a series of measurements with dracal-usb-get -L.

Use "-" as the path to stream measurements to stdout. With --duration the
interval is derived from --measurements, or the count from --interval.`,
		Example: `  dusb log readings.csv -i 0,1 -r 60 -I 1s
  dusb log - -s E24380 -d 1m -I 5s`,
		Args: cobra.ExactArgs(1),
		RunE: runLog,
	}
	addSensorFlags(logCmd)
	addLogFlags(logCmd)
	return logCmd
}

func runLog(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd, args[0])
	if err != nil {
		return err
	}

	b := s.Apply(s.NewBuilder(builder.WithExecutor(newExecutor())))
	if s.DryRun {
		printCommand(cmd.OutOrStdout(), b.Command())
		return nil
	}

	if s.Log.Path == constants.StdoutPath {
		err = b.Stream(cmd.Context(), cmd.OutOrStdout())
	} else {
		err = spinners.RunTaskWithSpinnerContext(cmd.Context(), "Logging to "+s.Log.Path, func() error {
			_, err := b.Execute(cmd.Context())
			return err
		})
	}
	if err != nil {
		handleInterruptError(err)
		return errors.Explain(err, s.Binary)
	}

	if s.Log.Path != constants.StdoutPath {
		spinners.RunInfoSpinner(fmt.Sprintf("Measurements written to %s", s.Log.Path))
	}
	return nil
}
