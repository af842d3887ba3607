package constants

const (
	// DefaultBinary is the vendor utility every command line starts with.
	DefaultBinary = "dracal-usb-get"

	// BinaryEnv overrides the executable name or path used by the CLI.
	BinaryEnv = "DUSB_BINARY"
	// VerbosityEnv sets the default verbosity level of the CLI.
	VerbosityEnv = "DUSB_VERBOSE"

	// MaxDecimals is the largest value accepted by -x.
	MaxDecimals = 6
	// DefaultMeasurements is the -r value used when logging without an explicit count.
	DefaultMeasurements = 10

	// AllChannels is the -i value selecting every channel of a sensor.
	AllChannels = "a"
	// StdoutPath makes -L write the log to standard output.
	StdoutPath = "-"
)
