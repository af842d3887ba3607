package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/dracalusb/dusb/internal/builder"
	"github.com/dracalusb/dusb/internal/config"
	"github.com/dracalusb/dusb/internal/errors"
	"github.com/dracalusb/dusb/internal/logging"
	"github.com/dracalusb/dusb/internal/readings"
	"github.com/dracalusb/dusb/internal/spinners"
	"github.com/dracalusb/dusb/internal/styles"
	"github.com/dracalusb/dusb/internal/table"
	"github.com/dracalusb/dusb/internal/tty"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newGetCommand() *cobra.Command {
	getCmd := &cobra.Command{
		Use:   "get",
		Short: "Read a sensor once",
		Long: `Read a sensor once and print the result.

The output of dracal-usb-get is a single comma separated line. With --output
table, json or yaml each field is shown with the channel it came from.`,
		Example: `  dusb get -s E24380 -i 0,1
  dusb get -i a -T fahrenheit -x 2 --output table
  dusb get -f --dry-run`,
		Args: cobra.NoArgs,
		RunE: runGet,
	}
	addSensorFlags(getCmd)
	getCmd.Flags().String("output", "raw", "Output format: raw, table, json or yaml")
	return getCmd
}

func runGet(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings(cmd, "")
	if err != nil {
		return err
	}

	b := s.Apply(s.NewBuilder(builder.WithExecutor(newExecutor())))
	if s.DryRun {
		printCommand(cmd.OutOrStdout(), b.Command())
		return nil
	}

	var line string
	err = spinners.RunTaskWithSpinnerContext(cmd.Context(), "Reading sensor", func() error {
		var err error
		line, err = b.Execute(cmd.Context())
		return err
	})
	if err != nil {
		handleInterruptError(err)
		return errors.Explain(err, s.Binary)
	}

	logging.Debug(s.Verbosity, "Result: %q", line)
	return writeReadings(cmd.OutOrStdout(), line, s)
}

// printCommand writes a dry-run command line, coloured on a terminal.
func printCommand(w io.Writer, command string) {
	if tty.IsInteractive() {
		command = styles.CommandStyle.Render(command)
	}
	fmt.Fprintln(w, command)
}

// writeReadings prints line in the format chosen by --output.
func writeReadings(w io.Writer, line string, s *config.Settings) error {
	if s.Output == "" || s.Output == "raw" {
		fmt.Fprintln(w, line)
		return nil
	}

	rs := readings.Parse(line, s.ChannelList())
	if len(rs) == 0 {
		spinners.RunWarningSpinner("dracal-usb-get printed no readings")
		return nil
	}

	switch s.Output {
	case "table":
		if tty.IsInteractive() {
			table.Readings(w, rs, s.ASCII)
			return nil
		}
		rows := make([][]string, 0, len(rs))
		for _, r := range rs {
			rows = append(rows, []string{strconv.Itoa(r.Channel), r.String()})
		}
		table.Columns(w, rows)
	case "json":
		data, err := json.MarshalIndent(rs, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode readings: %w", err)
		}
		fmt.Fprintln(w, string(data))
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rs); err != nil {
			return fmt.Errorf("failed to encode readings: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q", s.Output)
	}
	return nil
}
