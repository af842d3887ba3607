package table

import (
	"bytes"
	"strings"
	"testing"

	aquatable "github.com/aquasecurity/table"

	"github.com/dracalusb/dusb/internal/builder"
	"github.com/dracalusb/dusb/internal/readings"
)

// verifyLineWidths checks that all lines have the same display width
func verifyLineWidths(t *testing.T, output string) {
	t.Helper()
	lines := strings.Split(strings.TrimRight(output, "\n"), "\n")
	expected := DisplayWidth(lines[0])
	for i, line := range lines {
		if got := DisplayWidth(line); got != expected {
			t.Errorf("line %d has width %d, expected %d\nLine: %q", i, got, expected, line)
		}
	}
}

func TestBasicTable(t *testing.T) {
	buf := &bytes.Buffer{}
	table := New(buf)
	table.SetHeaders("Column 1", "Column 2")
	table.SetAlignment(aquatable.AlignLeft, aquatable.AlignRight)
	table.AddRow("a", "1.5")
	table.AddRow("longer cell", "22.75")
	table.Render()

	output := buf.String()
	verifyLineWidths(t, output)
	for _, want := range []string{"Column 1", "Column 2", "longer cell", "22.75", "╭", "╯"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q\n%s", want, output)
		}
	}
}

func TestStyledTableKeepsWidths(t *testing.T) {
	buf := &bytes.Buffer{}
	table := New(buf)
	table.SetHeaders("H1", "H2")
	table.SetHeaderStyle(aquatable.StyleBold)
	table.SetLineStyle(aquatable.StyleDim)
	table.SetRowLines(true)
	table.AddRow("x", "y")
	table.AddRow("xx", "yy")
	table.Render()

	verifyLineWidths(t, buf.String())
	if !strings.Contains(buf.String(), "\x1b[1mH1\x1b[0m") {
		t.Error("expected bold header")
	}
}

func TestEmptyTable(t *testing.T) {
	buf := &bytes.Buffer{}
	New(buf).Render()
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestNoBorders(t *testing.T) {
	buf := &bytes.Buffer{}
	table := New(buf)
	table.SetBorders(false)
	table.AddRow("a", "b")
	table.Render()

	if strings.Contains(buf.String(), "╭") {
		t.Errorf("expected no border, got %q", buf.String())
	}
}

func TestReadings(t *testing.T) {
	buf := &bytes.Buffer{}
	Readings(buf, readings.Parse("21.50, Error\r\n", []int{0, 3}), false)

	output := buf.String()
	verifyLineWidths(t, output)
	for _, want := range []string{"Channel", "Value", "21.50", "Error", "3"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q\n%s", want, output)
		}
	}
}

func TestReadingsASCII(t *testing.T) {
	buf := &bytes.Buffer{}
	Readings(buf, readings.Parse("21.50", nil), true)

	output := buf.String()
	verifyLineWidths(t, output)
	for _, r := range output {
		if r > 127 {
			t.Fatalf("expected 7-bit output, found %q in\n%s", r, output)
		}
	}
}

func TestUnits(t *testing.T) {
	buf := &bytes.Buffer{}
	Units(buf, builder.Descriptors())

	output := buf.String()
	verifyLineWidths(t, output)
	for _, want := range []string{"fahrenheit", "inHg", "legacy_errors", "-T", "-o"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q", want)
		}
	}
}

func TestColumns(t *testing.T) {
	buf := &bytes.Buffer{}
	Columns(buf, [][]string{{"0", "21.50"}, {"12", "Error"}})

	want := "0   21.50\n12  Error\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestDisplayWidth(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"abc", 3},
		{"\x1b[1mabc\x1b[0m", 3},
		{"温度", 4},
	}
	for _, tt := range tests {
		if got := DisplayWidth(tt.in); got != tt.want {
			t.Errorf("DisplayWidth(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
