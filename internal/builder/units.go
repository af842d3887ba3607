package builder

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

// ErrUnknownValue is returned by the Parse functions for names outside an enumeration.
var ErrUnknownValue = errors.New("unknown value")

// enumEntry pairs a human name with the code dracal-usb-get expects on the command line.
type enumEntry struct {
	name string
	code string
}

// TemperatureUnit selects the unit passed with -T.
type TemperatureUnit int

const (
	Celsius TemperatureUnit = iota
	Fahrenheit
	Kelvin
)

var temperatureUnits = []enumEntry{
	{"celsius", "C"},
	{"fahrenheit", "F"},
	{"kelvin", "K"},
}

// PressureUnit selects the unit passed with -P.
type PressureUnit int

const (
	Kilopascal PressureUnit = iota
	Hectopascal
	Pascal
	Bar
	TechnicalAtmosphere
	Atmosphere
	Torr
	PSI
	InchesOfMercury
)

var pressureUnits = []enumEntry{
	{"kilopascal", "kPa"},
	{"hectopascal", "hPa"},
	{"pascal", "Pa"},
	{"bar", "bar"},
	{"technical-atmosphere", "at"},
	{"atmosphere", "atm"},
	{"torr", "Torr"},
	{"psi", "psi"},
	{"inches-of-mercury", "inHg"},
}

// LengthUnit selects the unit passed with -M.
type LengthUnit int

const (
	Millimeter LengthUnit = iota
	Centimeter
	Decimeter
	Meter
	Mil
	Inch
	Foot
	Yard
)

var lengthUnits = []enumEntry{
	{"millimeter", "mm"},
	{"centimeter", "cm"},
	{"decimeter", "dm"},
	{"meter", "m"},
	{"mil", "mil"},
	{"inch", "in"},
	{"foot", "ft"},
	{"yard", "yd"},
}

// FrequencyUnit selects the unit passed with -F.
type FrequencyUnit int

const (
	Millihertz FrequencyUnit = iota
	Hertz
	Kilohertz
	Megahertz
	RPM
)

var frequencyUnits = []enumEntry{
	{"millihertz", "mHz"},
	{"hertz", "Hz"},
	{"kilohertz", "kHz"},
	{"megahertz", "MHz"},
	{"rpm", "rpm"},
}

// ConcentrationUnit selects the unit passed with -C.
type ConcentrationUnit int

const (
	PartsPerBillion ConcentrationUnit = iota
	PartsPerMillion
	Percent
)

var concentrationUnits = []enumEntry{
	{"ppb", "ppb"},
	{"ppm", "ppm"},
	{"percent", "percent"},
}

// BoolOption is a named switch enabled with -o.
type BoolOption int

const (
	// LegacyErrors reports errors with the codes used by older firmware tools.
	LegacyErrors BoolOption = iota
	// NoHumidexRange disables the humidex validity range check.
	NoHumidexRange
	// NoHeatIndexRange disables the heat index validity range check.
	NoHeatIndexRange
)

var boolOptions = []enumEntry{
	{"legacy_errors", "legacy_errors"},
	{"no_humidex_range", "no_humidex_range"},
	{"no_heat_index_range", "no_heat_index_range"},
}

func (u TemperatureUnit) Code() string   { return code(temperatureUnits, int(u)) }
func (u TemperatureUnit) String() string { return name(temperatureUnits, int(u)) }
func (u TemperatureUnit) valid() bool    { return inRange(temperatureUnits, int(u)) }

func (u PressureUnit) Code() string   { return code(pressureUnits, int(u)) }
func (u PressureUnit) String() string { return name(pressureUnits, int(u)) }
func (u PressureUnit) valid() bool    { return inRange(pressureUnits, int(u)) }

func (u LengthUnit) Code() string   { return code(lengthUnits, int(u)) }
func (u LengthUnit) String() string { return name(lengthUnits, int(u)) }
func (u LengthUnit) valid() bool    { return inRange(lengthUnits, int(u)) }

func (u FrequencyUnit) Code() string   { return code(frequencyUnits, int(u)) }
func (u FrequencyUnit) String() string { return name(frequencyUnits, int(u)) }
func (u FrequencyUnit) valid() bool    { return inRange(frequencyUnits, int(u)) }

func (u ConcentrationUnit) Code() string   { return code(concentrationUnits, int(u)) }
func (u ConcentrationUnit) String() string { return name(concentrationUnits, int(u)) }
func (u ConcentrationUnit) valid() bool    { return inRange(concentrationUnits, int(u)) }

func (o BoolOption) Code() string   { return code(boolOptions, int(o)) }
func (o BoolOption) String() string { return name(boolOptions, int(o)) }
func (o BoolOption) valid() bool    { return inRange(boolOptions, int(o)) }

// ParseTemperatureUnit accepts a unit name or code, e.g. "fahrenheit" or "F".
func ParseTemperatureUnit(s string) (TemperatureUnit, error) {
	i, err := parse("temperature unit", temperatureUnits, s)
	return TemperatureUnit(i), err
}

// ParsePressureUnit accepts a unit name or code, e.g. "atmosphere" or "atm".
func ParsePressureUnit(s string) (PressureUnit, error) {
	i, err := parse("pressure unit", pressureUnits, s)
	return PressureUnit(i), err
}

// ParseLengthUnit accepts a unit name or code, e.g. "centimeter" or "cm".
func ParseLengthUnit(s string) (LengthUnit, error) {
	i, err := parse("length unit", lengthUnits, s)
	return LengthUnit(i), err
}

// ParseFrequencyUnit accepts a unit name or code. Codes are case sensitive where
// they would otherwise collide ("mHz" and "MHz").
func ParseFrequencyUnit(s string) (FrequencyUnit, error) {
	i, err := parse("frequency unit", frequencyUnits, s)
	return FrequencyUnit(i), err
}

// ParseConcentrationUnit accepts a unit name or code, e.g. "ppb".
func ParseConcentrationUnit(s string) (ConcentrationUnit, error) {
	i, err := parse("concentration unit", concentrationUnits, s)
	return ConcentrationUnit(i), err
}

// ParseBoolOption accepts an option code such as "legacy_errors". Dashes are
// accepted in place of underscores.
func ParseBoolOption(s string) (BoolOption, error) {
	i, err := parse("option", boolOptions, strings.ReplaceAll(s, "-", "_"))
	return BoolOption(i), err
}

// Descriptor describes one enumeration value for listings.
type Descriptor struct {
	Flag string
	Kind string
	Name string
	Code string
}

// Descriptors lists every unit and option value in flag order.
func Descriptors() []Descriptor {
	groups := []struct {
		flag    string
		kind    string
		entries []enumEntry
	}{
		{"-T", "temperature", temperatureUnits},
		{"-P", "pressure", pressureUnits},
		{"-M", "length", lengthUnits},
		{"-F", "frequency", frequencyUnits},
		{"-C", "concentration", concentrationUnits},
		{"-o", "option", boolOptions},
	}

	var out []Descriptor
	for _, g := range groups {
		for _, e := range g.entries {
			out = append(out, Descriptor{Flag: g.flag, Kind: g.kind, Name: e.name, Code: e.code})
		}
	}
	return out
}

func inRange(entries []enumEntry, i int) bool {
	return i >= 0 && i < len(entries)
}

func code(entries []enumEntry, i int) string {
	if !inRange(entries, i) {
		return ""
	}
	return entries[i].code
}

func name(entries []enumEntry, i int) string {
	if !inRange(entries, i) {
		return fmt.Sprintf("unknown(%d)", i)
	}
	return entries[i].name
}

// parse resolves s against a table: exact code first, then name ignoring case,
// then code ignoring case when that is unambiguous.
func parse(kind string, entries []enumEntry, s string) (int, error) {
	s = strings.TrimSpace(s)
	for i, e := range entries {
		if e.code == s {
			return i, nil
		}
	}
	for i, e := range entries {
		if strings.EqualFold(e.name, s) {
			return i, nil
		}
	}

	match := -1
	for i, e := range entries {
		if strings.EqualFold(e.code, s) {
			if match >= 0 {
				return -1, fmt.Errorf("%w: %s %q is ambiguous, use the exact code", ErrUnknownValue, kind, s)
			}
			match = i
		}
	}
	if match >= 0 {
		return match, nil
	}

	if suggestion := suggest(entries, s); suggestion != "" {
		return -1, fmt.Errorf("%w: %s %q. Did you mean '%s'?", ErrUnknownValue, kind, s, suggestion)
	}
	return -1, fmt.Errorf("%w: %s %q", ErrUnknownValue, kind, s)
}

// suggest returns the closest name or code within an edit distance of 2.
func suggest(entries []enumEntry, s string) string {
	lower := strings.ToLower(s)
	bestMatch := ""
	bestDistance := 3

	for _, e := range entries {
		for _, candidate := range []string{e.name, e.code} {
			distance := levenshtein.ComputeDistance(lower, strings.ToLower(candidate))
			if distance < bestDistance {
				bestDistance = distance
				bestMatch = candidate
			}
		}
	}
	return bestMatch
}
