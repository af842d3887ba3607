// Package config gathers CLI settings from flags and DUSB_* environment variables,
// validates them, and applies them to a command builder.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dracalusb/dusb/internal/builder"
	"github.com/dracalusb/dusb/internal/constants"
	"github.com/dracalusb/dusb/internal/logging"

	"github.com/go-playground/validator/v10"
)

// Unset marks an integer setting the user did not provide.
const Unset = -1

// Settings holds everything the get and log commands can pass to dracal-usb-get.
type Settings struct {
	Binary    string `validate:"required"`
	Verbosity int    `validate:"gte=0"`

	Serial        string `validate:"omitempty,serial_number"`
	FirstSensor   bool
	NoFirstSensor bool
	Channels      string `validate:"omitempty,channel_list"`

	Decimals int `validate:"gte=-1,lte=6"`
	Retries  int `validate:"gte=-1"`
	ASCII    bool
	Pretty   bool

	Temperature   string   `validate:"omitempty,unit=temperature"`
	Pressure      string   `validate:"omitempty,unit=pressure"`
	Length        string   `validate:"omitempty,unit=length"`
	Frequency     string   `validate:"omitempty,unit=frequency"`
	Concentration string   `validate:"omitempty,unit=concentration"`
	Options       []string `validate:"dive,unit=option"`

	Output string `validate:"omitempty,oneof=raw table json yaml"`
	DryRun bool

	Log LogSettings
}

// LogSettings configures -L/-r/-I. Path is empty when not logging.
type LogSettings struct {
	Path         string
	Measurements int           `validate:"gte=-1"`
	Interval     time.Duration `validate:"gte=0"`
	Duration     time.Duration `validate:"gte=0"`
}

// Defaults returns settings with every optional value unset, the binary and
// verbosity taken from the environment.
func Defaults() *Settings {
	s := &Settings{
		Binary:   constants.DefaultBinary,
		Decimals: Unset,
		Retries:  Unset,
		Output:   "raw",
		Log:      LogSettings{Measurements: Unset},
	}
	if bin := strings.TrimSpace(os.Getenv(constants.BinaryEnv)); bin != "" {
		s.Binary = bin
	}
	if v, err := strconv.Atoi(os.Getenv(constants.VerbosityEnv)); err == nil && v > 0 {
		s.Verbosity = v
	}
	return s
}

var serialPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

func serialNumberValidator(fl validator.FieldLevel) bool {
	return serialPattern.MatchString(fl.Field().String())
}

func channelListValidator(fl validator.FieldLevel) bool {
	value := strings.TrimSpace(fl.Field().String())
	if value == constants.AllChannels || strings.EqualFold(value, "all") {
		return true
	}
	for _, f := range strings.Split(value, ",") {
		ch, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil || ch < 0 {
			return false
		}
	}
	return true
}

// parseUnit resolves a unit or option name for the given kind.
func parseUnit(kind, value string) error {
	var err error
	switch kind {
	case "temperature":
		_, err = builder.ParseTemperatureUnit(value)
	case "pressure":
		_, err = builder.ParsePressureUnit(value)
	case "length":
		_, err = builder.ParseLengthUnit(value)
	case "frequency":
		_, err = builder.ParseFrequencyUnit(value)
	case "concentration":
		_, err = builder.ParseConcentrationUnit(value)
	case "option":
		_, err = builder.ParseBoolOption(value)
	default:
		err = fmt.Errorf("unknown unit kind %q", kind)
	}
	return err
}

func unitValidator(fl validator.FieldLevel) bool {
	return parseUnit(fl.Param(), fl.Field().String()) == nil
}

// RegisterCustomValidators registers the validators used by the Settings tags.
func RegisterCustomValidators(validate *validator.Validate) error {
	validators := map[string]validator.Func{
		"serial_number": serialNumberValidator,
		"channel_list":  channelListValidator,
		"unit":          unitValidator,
	}
	for tag, fn := range validators {
		if err := validate.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("failed to register %s validator: %w", tag, err)
		}
	}
	return nil
}

// Validate checks the settings and returns the first problem found, phrased for
// the command line.
func (s *Settings) Validate() error {
	logging.Debug(s.Verbosity, "Validating settings: %+v", *s)
	validate := validator.New()
	if err := RegisterCustomValidators(validate); err != nil {
		return err
	}

	if err := validate.Struct(s); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			for _, e := range validationErrors {
				fieldPath := strings.Replace(e.Namespace(), "Settings.", "", 1)
				fieldPath = strings.ToLower(fieldPath)
				logging.Debug(s.Verbosity, "Validation error on field '%s', tag '%s', value '%v', param '%s'", fieldPath, e.Tag(), e.Value(), e.Param())

				switch e.Tag() {
				case "required":
					return fmt.Errorf("field '%s' is required", fieldPath)
				case "unit":
					return fmt.Errorf("field '%s': %w", fieldPath, parseUnit(e.Param(), fmt.Sprint(e.Value())))
				case "channel_list":
					return fmt.Errorf("field '%s' must be a comma separated list of channel numbers or 'a', got: %v", fieldPath, e.Value())
				case "serial_number":
					return fmt.Errorf("field '%s' must only contain letters, digits, '-' and '_', got: %v", fieldPath, e.Value())
				case "lte", "gte":
					return fmt.Errorf("field '%s' is out of range (%s %s), got: %v", fieldPath, e.Tag(), e.Param(), e.Value())
				case "oneof":
					return fmt.Errorf("field '%s' must be one of [%s], got: %v", fieldPath, e.Param(), e.Value())
				default:
					return fmt.Errorf("field '%s' is invalid: %s", fieldPath, e.Error())
				}
			}
		}
		return err
	}

	if s.Serial != "" && s.FirstSensor {
		return fmt.Errorf("--serial and --first cannot be combined")
	}
	if s.Log.Path != "" && s.Log.Duration > 0 {
		if (s.Log.Measurements != Unset) == (s.Log.Interval > 0) {
			return fmt.Errorf("a logging duration needs exactly one of --measurements or --interval")
		}
	}
	if s.Log.Path != "" && s.Log.Measurements == 0 {
		return fmt.Errorf("field 'log.measurements' must be at least 1")
	}
	if s.Log.Interval > 0 && s.Log.Interval < time.Millisecond {
		return fmt.Errorf("field 'log.interval' must be at least 1ms, got: %s", s.Log.Interval)
	}

	return nil
}

// ChannelList returns the selected channel numbers, nil for none or "all".
func (s *Settings) ChannelList() []int {
	value := strings.TrimSpace(s.Channels)
	if value == "" || value == constants.AllChannels || strings.EqualFold(value, "all") {
		return nil
	}
	var channels []int
	for _, f := range strings.Split(value, ",") {
		ch, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil
		}
		channels = append(channels, ch)
	}
	return channels
}

// NewBuilder returns a builder for the configured binary and verbosity.
func (s *Settings) NewBuilder(opts ...builder.Option) *builder.Builder {
	base := []builder.Option{
		builder.WithBinary(s.Binary),
		builder.WithVerbosity(s.Verbosity),
	}
	return builder.New(append(base, opts...)...)
}

// Apply translates the settings into builder calls. Settings must be validated
// first; values that fail to parse here are skipped.
func (s *Settings) Apply(b *builder.Builder) *builder.Builder {
	switch {
	case s.Serial != "" && s.Channels != "":
		b.SetSerialNumber(s.Serial)
	case s.Serial != "":
		b.UseSensor(s.Serial)
	case s.FirstSensor && (s.Channels == "" || s.NoFirstSensor):
		b.UseFirstSensor()
	}

	if s.Channels != "" {
		var opts []builder.ChannelOption
		if s.NoFirstSensor {
			opts = append(opts, builder.WithoutFirstSensor())
		}
		b.UseChannelList(s.Channels, opts...)
	}

	if s.Decimals != Unset {
		b.NumDecimals(s.Decimals)
	}
	if s.Retries != Unset {
		b.Retries(s.Retries)
	}
	if s.ASCII {
		b.ASCIIOutput()
	}
	if s.Pretty {
		b.PrettyOutput()
	}

	if u, err := builder.ParseTemperatureUnit(s.Temperature); s.Temperature != "" && err == nil {
		b.TemperatureUnits(u)
	}
	if u, err := builder.ParsePressureUnit(s.Pressure); s.Pressure != "" && err == nil {
		b.PressureUnits(u)
	}
	if u, err := builder.ParseLengthUnit(s.Length); s.Length != "" && err == nil {
		b.LengthUnits(u)
	}
	if u, err := builder.ParseFrequencyUnit(s.Frequency); s.Frequency != "" && err == nil {
		b.FrequencyUnits(u)
	}
	if u, err := builder.ParseConcentrationUnit(s.Concentration); s.Concentration != "" && err == nil {
		b.ConcentrationUnits(u)
	}
	for _, name := range s.Options {
		if o, err := builder.ParseBoolOption(name); err == nil {
			b.EnableOption(o)
		}
	}

	if s.Log.Path != "" {
		s.applyLog(b)
	}
	return b
}

func (s *Settings) applyLog(b *builder.Builder) {
	var opts []builder.LogOption
	if s.Log.Measurements != Unset {
		opts = append(opts, builder.WithMeasurements(s.Log.Measurements))
	}
	if s.Log.Interval > 0 {
		opts = append(opts, builder.WithInterval(s.Log.Interval))
	}

	if s.Log.Duration > 0 {
		b.LogForDuration(s.Log.Path, s.Log.Duration, opts...)
		return
	}
	b.LogToFile(s.Log.Path, opts...)
}
