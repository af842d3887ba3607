package cmd

import (
	"github.com/dracalusb/dusb/internal/config"

	"github.com/spf13/cobra"
)

// addSensorFlags registers the selection, formatting and unit flags shared by
// get and log. Short names match the dracal-usb-get flags they produce.
func addSensorFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringP("serial", "s", "", "Serial number of the sensor to use")
	f.BoolP("first", "f", false, "Use the first sensor found")
	f.StringP("channels", "i", "", "Comma separated channel list, or 'a' for all channels")
	f.Bool("no-first", false, "Do not add -f when channels are given without a serial number")
	f.IntP("decimals", "x", 0, "Number of decimals, 0 to 6")
	f.IntP("retries", "R", 0, "Number of retries on read failure")
	f.BoolP("ascii", "7", false, "Use 7-bit ASCII output")
	f.BoolP("pretty", "p", false, "Pretty output")
	f.StringP("temperature", "T", "", "Temperature unit (see 'dusb units')")
	f.StringP("pressure", "P", "", "Pressure unit")
	f.StringP("length", "M", "", "Length unit")
	f.StringP("frequency", "F", "", "Frequency unit")
	f.StringP("concentration", "C", "", "Concentration unit")
	f.StringArrayP("option", "o", []string{}, "Enable an option, can be repeated")
	f.Bool("dry-run", false, "Print the command line instead of running it")
}

// addLogFlags registers the flags of the log command.
func addLogFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.IntP("measurements", "r", 0, "Number of measurements to log (default 10)")
	f.DurationP("interval", "I", 0, "Time between measurements, e.g. 500ms or 2s")
	f.DurationP("duration", "d", 0, "Total logging time, combined with --measurements or --interval")
}

// loadSettings starts from the environment defaults and overlays the flags the
// user set. logPath is empty for single reads. The result is validated.
func loadSettings(cmd *cobra.Command, logPath string) (*config.Settings, error) {
	s := config.Defaults()
	f := cmd.Flags()

	if f.Changed("binary") {
		s.Binary, _ = f.GetString("binary")
	}
	if verbosity, _ := f.GetCount("verbose"); verbosity > 0 {
		s.Verbosity = verbosity
	}

	s.Serial, _ = f.GetString("serial")
	s.FirstSensor, _ = f.GetBool("first")
	s.Channels, _ = f.GetString("channels")
	s.NoFirstSensor, _ = f.GetBool("no-first")
	if f.Changed("decimals") {
		s.Decimals, _ = f.GetInt("decimals")
	}
	if f.Changed("retries") {
		s.Retries, _ = f.GetInt("retries")
	}
	s.ASCII, _ = f.GetBool("ascii")
	s.Pretty, _ = f.GetBool("pretty")
	s.Temperature, _ = f.GetString("temperature")
	s.Pressure, _ = f.GetString("pressure")
	s.Length, _ = f.GetString("length")
	s.Frequency, _ = f.GetString("frequency")
	s.Concentration, _ = f.GetString("concentration")
	s.Options, _ = f.GetStringArray("option")
	s.DryRun, _ = f.GetBool("dry-run")

	if f.Lookup("output") != nil {
		s.Output, _ = f.GetString("output")
	}
	if logPath != "" {
		s.Log.Path = logPath
		if f.Changed("measurements") {
			s.Log.Measurements, _ = f.GetInt("measurements")
		}
		s.Log.Interval, _ = f.GetDuration("interval")
		s.Log.Duration, _ = f.GetDuration("duration")
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}
