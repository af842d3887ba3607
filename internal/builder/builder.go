// Package builder assembles dracal-usb-get command lines through chained calls and
// runs them.
//
// Every configuration method validates its input before touching the command. A
// rejected call is a silent no-op, so a chain never breaks halfway:
//
//	out, err := builder.New().
//	    UseSensor("E24380").
//	    UseChannels([]int{0, 1}).
//	    NumDecimals(2).
//	    Execute(ctx)
//
// Flags are appended in call order. Execute and Reset return the builder to the bare
// executable name so one Builder can serve several invocations in sequence. A
// Builder is not safe for concurrent use.
package builder

import (
	"context"
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/dracalusb/dusb/internal/constants"
	"github.com/dracalusb/dusb/internal/executor"
	"github.com/dracalusb/dusb/internal/logging"

	"github.com/mattn/go-shellwords"
)

// state is everything a configuration call may change. It is snapshotted before
// each accepted mutation so Undo can restore it.
type state struct {
	tokens []string
	serial string
	// serialEmitted records that -s <serial> is already part of tokens.
	serialEmitted bool
}

func (s state) clone() state {
	s.tokens = slices.Clone(s.tokens)
	return s
}

// Builder accumulates a dracal-usb-get command line.
type Builder struct {
	binary    string
	cur       state
	prev      *state
	executor  executor.Executor
	verbosity int
}

// Option configures a Builder at construction time.
type Option func(*Builder)

// WithBinary replaces the executable name, e.g. with an absolute path.
func WithBinary(path string) Option {
	return func(b *Builder) {
		if strings.TrimSpace(path) != "" {
			b.binary = path
		}
	}
}

// WithExecutor sets the process executor used by Execute and Stream.
func WithExecutor(e executor.Executor) Option {
	return func(b *Builder) {
		if e != nil {
			b.executor = e
		}
	}
}

// WithVerbosity enables debug (1) or trace (2) output through the logging package.
func WithVerbosity(verbosity int) Option {
	return func(b *Builder) {
		b.verbosity = verbosity
	}
}

// New returns a Builder holding only the executable name.
func New(opts ...Option) *Builder {
	b := &Builder{
		binary:   constants.DefaultBinary,
		executor: executor.NewExecutor(),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.Reset()
	return b
}

// Command returns the accumulated command line.
func (b *Builder) Command() string {
	return strings.Join(b.cur.tokens, " ")
}

// String implements fmt.Stringer.
func (b *Builder) String() string {
	return b.Command()
}

// Previous returns the command line as it was before the last accepted call,
// or an empty string if there is nothing to undo.
func (b *Builder) Previous() string {
	if b.prev == nil {
		return ""
	}
	return strings.Join(b.prev.tokens, " ")
}

// SerialNumber returns the serial of the selected sensor, if any.
func (b *Builder) SerialNumber() string {
	return b.cur.serial
}

// SetSerialNumber records the sensor to use without emitting a flag. The next
// UseChannels call selects it with -s.
func (b *Builder) SetSerialNumber(serial string) *Builder {
	serial = strings.TrimSpace(serial)
	if serial == b.cur.serial {
		return b
	}
	b.cur.serial = serial
	b.cur.serialEmitted = false
	return b
}

// Args splits the command line into process arguments using shell-word rules.
// The first element is the executable.
func (b *Builder) Args() ([]string, error) {
	return shellwords.Parse(b.Command())
}

// apply snapshots the current state, then appends tokens in one step.
func (b *Builder) apply(mutate func(s *state), tokens ...string) *Builder {
	snapshot := b.cur.clone()
	b.prev = &snapshot
	for _, t := range tokens {
		b.cur.tokens = append(b.cur.tokens, quote(t))
	}
	if mutate != nil {
		mutate(&b.cur)
	}
	return b
}

// UseSensor selects the sensor with the given serial number (-s).
func (b *Builder) UseSensor(serial string) *Builder {
	serial = strings.TrimSpace(serial)
	if serial == "" {
		return b
	}
	return b.apply(func(s *state) {
		s.serial = serial
		s.serialEmitted = true
	}, "-s", serial)
}

// UseFirstSensor selects the first sensor found on the bus (-f).
func (b *Builder) UseFirstSensor() *Builder {
	return b.apply(nil, "-f")
}

type channelConfig struct {
	firstSensor bool
}

// ChannelOption adjusts UseChannels.
type ChannelOption func(*channelConfig)

// WithoutFirstSensor stops UseChannels from adding -f when no serial number is set.
func WithoutFirstSensor() ChannelOption {
	return func(c *channelConfig) {
		c.firstSensor = false
	}
}

// UseChannels reads the given channels (-i 0,1,2). A sensor is selected first: the
// serial number if one is set, otherwise -f unless WithoutFirstSensor is given.
// An empty list or a negative channel leaves the command unchanged.
func (b *Builder) UseChannels(channels []int, opts ...ChannelOption) *Builder {
	if len(channels) == 0 {
		return b
	}
	parts := make([]string, len(channels))
	for i, ch := range channels {
		if ch < 0 {
			return b
		}
		parts[i] = strconv.Itoa(ch)
	}
	return b.channels(strings.Join(parts, ","), opts)
}

// UseChannelList is UseChannels for textual input such as "0, 1,2". Every element
// must be an integer, otherwise the command is left unchanged. "a" and "all"
// select every channel.
func (b *Builder) UseChannelList(list string, opts ...ChannelOption) *Builder {
	list = strings.TrimSpace(list)
	if strings.EqualFold(list, "all") || list == constants.AllChannels {
		return b.channels(constants.AllChannels, opts)
	}
	if list == "" {
		return b
	}

	fields := strings.Split(list, ",")
	channels := make([]int, len(fields))
	for i, f := range fields {
		ch, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			logging.Debug(b.verbosity, "Ignoring channel list %q: %q is not an integer", list, f)
			return b
		}
		channels[i] = ch
	}
	return b.UseChannels(channels, opts...)
}

// UseAllChannels reads every channel of the first sensor (-f -i a), whatever was
// selected before.
func (b *Builder) UseAllChannels() *Builder {
	return b.apply(nil, "-f", "-i", constants.AllChannels)
}

func (b *Builder) channels(value string, opts []ChannelOption) *Builder {
	cfg := channelConfig{firstSensor: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	var tokens []string
	var mutate func(s *state)
	switch {
	case b.cur.serial != "":
		if !b.cur.serialEmitted {
			tokens = append(tokens, "-s", b.cur.serial)
			mutate = func(s *state) { s.serialEmitted = true }
		}
	case cfg.firstSensor:
		tokens = append(tokens, "-f")
	}
	tokens = append(tokens, "-i", value)
	return b.apply(mutate, tokens...)
}

// NumDecimals sets the number of decimals printed per value (-x). Only 0 through 6
// are accepted.
func (b *Builder) NumDecimals(n int) *Builder {
	if n < 0 || n > constants.MaxDecimals {
		return b
	}
	return b.apply(nil, "-x", strconv.Itoa(n))
}

// Retries sets how many times the utility retries a failed read (-R).
func (b *Builder) Retries(n int) *Builder {
	if n < 0 {
		return b
	}
	return b.apply(nil, "-R", strconv.Itoa(n))
}

// ASCIIOutput restricts output to 7-bit ASCII (-7).
func (b *Builder) ASCIIOutput() *Builder {
	return b.apply(nil, "-7")
}

// PrettyOutput prints labelled, human readable values (-p).
func (b *Builder) PrettyOutput() *Builder {
	return b.apply(nil, "-p")
}

type logConfig struct {
	measurements    int
	hasMeasurements bool
	interval        time.Duration
	hasInterval     bool
}

// LogOption adjusts LogToFile and LogForDuration.
type LogOption func(*logConfig)

// WithMeasurements sets the number of measurements to record (-r).
func WithMeasurements(n int) LogOption {
	return func(c *logConfig) {
		c.measurements = n
		c.hasMeasurements = true
	}
}

// WithInterval sets the time between measurements (-I), emitted in whole milliseconds.
func WithInterval(d time.Duration) LogOption {
	return func(c *logConfig) {
		c.interval = d
		c.hasInterval = true
	}
}

// LogToFile records measurements to path (-L path -r n [-I ms]). The count defaults
// to 10 and the interval to the utility's own default. "-" logs to stdout.
func (b *Builder) LogToFile(path string, opts ...LogOption) *Builder {
	cfg := logConfig{measurements: constants.DefaultMeasurements}
	for _, opt := range opts {
		opt(&cfg)
	}

	intervalMs := int64(0)
	if cfg.hasInterval {
		intervalMs = cfg.interval.Milliseconds()
		if intervalMs < 1 {
			return b
		}
	}
	return b.logFlags(path, cfg.measurements, intervalMs, cfg.hasInterval)
}

// LogForDuration records measurements to path for a total duration d. Exactly one of
// WithMeasurements or WithInterval must be given; the other is derived from d and
// rounded half to even. Any other combination leaves the command unchanged.
func (b *Builder) LogForDuration(path string, d time.Duration, opts ...LogOption) *Builder {
	var cfg logConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if d <= 0 || cfg.hasMeasurements == cfg.hasInterval {
		return b
	}

	totalMs := float64(d) / float64(time.Millisecond)

	if cfg.hasMeasurements {
		if cfg.measurements < 1 {
			return b
		}
		intervalMs := int64(math.RoundToEven(totalMs / float64(cfg.measurements)))
		if intervalMs < 1 {
			return b
		}
		return b.logFlags(path, cfg.measurements, intervalMs, true)
	}

	intervalMs := cfg.interval.Milliseconds()
	if intervalMs < 1 {
		return b
	}
	count := math.RoundToEven(totalMs / float64(intervalMs))
	if count < 1 || count > math.MaxInt32 {
		return b
	}
	return b.logFlags(path, int(count), intervalMs, true)
}

func (b *Builder) logFlags(path string, measurements int, intervalMs int64, withInterval bool) *Builder {
	if path == "" || measurements < 1 {
		return b
	}
	tokens := []string{"-L", path, "-r", strconv.Itoa(measurements)}
	if withInterval {
		tokens = append(tokens, "-I", strconv.FormatInt(intervalMs, 10))
	}
	return b.apply(nil, tokens...)
}

// TemperatureUnits sets the temperature unit (-T).
func (b *Builder) TemperatureUnits(u TemperatureUnit) *Builder {
	if !u.valid() {
		return b
	}
	return b.apply(nil, "-T", u.Code())
}

// PressureUnits sets the pressure unit (-P).
func (b *Builder) PressureUnits(u PressureUnit) *Builder {
	if !u.valid() {
		return b
	}
	return b.apply(nil, "-P", u.Code())
}

// LengthUnits sets the length unit (-M).
func (b *Builder) LengthUnits(u LengthUnit) *Builder {
	if !u.valid() {
		return b
	}
	return b.apply(nil, "-M", u.Code())
}

// FrequencyUnits sets the frequency unit (-F).
func (b *Builder) FrequencyUnits(u FrequencyUnit) *Builder {
	if !u.valid() {
		return b
	}
	return b.apply(nil, "-F", u.Code())
}

// ConcentrationUnits sets the concentration unit (-C).
func (b *Builder) ConcentrationUnits(u ConcentrationUnit) *Builder {
	if !u.valid() {
		return b
	}
	return b.apply(nil, "-C", u.Code())
}

// EnableOption turns on a named option (-o). Call once per option.
func (b *Builder) EnableOption(o BoolOption) *Builder {
	if !o.valid() {
		return b
	}
	return b.apply(nil, "-o", o.Code())
}

// Reset restores the bare executable name and forgets the serial number.
func (b *Builder) Reset() *Builder {
	b.cur = state{tokens: []string{quote(b.binary)}}
	b.prev = nil
	return b
}

// Undo reverts the last accepted call. Only one level is kept.
func (b *Builder) Undo() *Builder {
	if b.prev == nil {
		return b
	}
	b.cur = *b.prev
	b.prev = nil
	return b
}

// Execute runs the command and returns its output with one trailing line ending
// ("\r\n" or "\n") removed. Invalid UTF-8 sequences are replaced with U+FFFD.
// The builder is reset whether or not the run succeeds.
func (b *Builder) Execute(ctx context.Context) (string, error) {
	defer b.Reset()

	result, err := b.run(ctx, executor.WithOutputMode(executor.OutputModeCapture))
	if err != nil {
		return "", err
	}

	out := strings.ToValidUTF8(string(result.Stdout), "\uFFFD")
	logging.Trace(b.verbosity, "Raw output: %q", out)
	if trimmed, ok := strings.CutSuffix(out, "\r\n"); ok {
		return trimmed, nil
	}
	return strings.TrimSuffix(out, "\n"), nil
}

// Stream runs the command and copies its output to w while it runs. Used for
// logging sessions writing to "-". The builder is reset afterwards.
func (b *Builder) Stream(ctx context.Context, w io.Writer) error {
	defer b.Reset()

	_, err := b.run(ctx,
		executor.WithOutputMode(executor.OutputModeStream),
		executor.WithStdout(w),
	)
	return err
}

// run splits the command line and hands it to the executor. At trace verbosity the
// utility's stderr is mirrored to the log output as it is written.
func (b *Builder) run(ctx context.Context, opts ...executor.Option) (*executor.Result, error) {
	command := b.Command()
	argv, err := b.Args()
	if err != nil {
		return nil, fmt.Errorf("failed to split command %q: %w", command, err)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("empty command")
	}

	opts = append([]executor.Option{executor.WithArgs(argv[1:]...)}, opts...)
	if b.verbosity > 1 {
		opts = append(opts, executor.WithStderr(logging.Output))
	}
	config := executor.NewConfig(ctx, argv[0], opts...)

	logging.Command(b.verbosity, config.Command, config.Args)
	result, err := b.executor.Execute(config)
	if err == nil && result == nil {
		return nil, fmt.Errorf("command failed: %s: executor returned no result", command)
	}
	if err != nil {
		if result != nil && result.Error != nil {
			return nil, result.FormatError(command)
		}
		return nil, fmt.Errorf("command failed: %s: %w", command, err)
	}
	return result, nil
}

// quote single-quotes a token unless it only holds characters that survive a
// shell-word split unchanged.
func quote(token string) string {
	if token == "" {
		return "''"
	}
	if strings.IndexFunc(token, unsafeRune) < 0 {
		return token
	}
	return "'" + strings.ReplaceAll(token, "'", `'\''`) + "'"
}

func unsafeRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return false
	case strings.ContainsRune("-_.,/:=+@%", r):
		return false
	}
	return true
}
