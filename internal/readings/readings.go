// Package readings turns the single line printed by dracal-usb-get into values.
package readings

import (
	"strconv"
	"strings"
)

// Reading is one comma-separated field of the utility's output.
type Reading struct {
	Channel int     `json:"channel" yaml:"channel"`
	Raw     string  `json:"raw" yaml:"raw"`
	Value   float64 `json:"value" yaml:"value"`
	Numeric bool    `json:"numeric" yaml:"numeric"`
}

// Parse splits line on commas. Channels, when given, label the fields in order;
// extra fields and calls without channels are numbered by position. Fields the
// utility reports as errors are kept as text with Numeric false.
func Parse(line string, channels []int) []Reading {
	line = strings.TrimRight(line, "\r\n")
	if strings.TrimSpace(line) == "" {
		return nil
	}

	fields := strings.Split(line, ",")
	out := make([]Reading, 0, len(fields))
	for i, f := range fields {
		r := Reading{Channel: i, Raw: strings.TrimSpace(f)}
		if i < len(channels) {
			r.Channel = channels[i]
		}
		if v, err := strconv.ParseFloat(r.Raw, 64); err == nil {
			r.Value = v
			r.Numeric = true
		}
		out = append(out, r)
	}
	return out
}

// String returns the field as printed by the utility.
func (r Reading) String() string {
	return r.Raw
}
