package table

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	aquatable "github.com/aquasecurity/table"

	"github.com/dracalusb/dusb/internal/builder"
	"github.com/dracalusb/dusb/internal/readings"
	"github.com/dracalusb/dusb/internal/styles"
)

// Readings renders one row per reading with the value as the utility printed it,
// numbers and error text in different colours. ascii draws the borders with
// 7-bit characters, matching dracal-usb-get -7.
func Readings(w io.Writer, rs []readings.Reading, ascii bool) {
	t := New(w)
	if ascii {
		t.SetDividers(aquatable.ASCIIDividers)
	}
	t.SetHeaders("Channel", "Value")
	t.SetAlignment(aquatable.AlignLeft, aquatable.AlignRight)
	t.SetHeaderStyle(aquatable.StyleBold)
	for _, r := range rs {
		value := styles.ErrorValueStyle.Render(r.String())
		if r.Numeric {
			value = styles.ValueStyle.Render(r.String())
		}
		t.AddRow(strconv.Itoa(r.Channel), value)
	}
	t.Render()
}

// Units renders the unit and option codes accepted by dracal-usb-get.
func Units(w io.Writer, ds []builder.Descriptor) {
	t := New(w)
	t.SetHeaders("Flag", "Kind", "Name", "Code")
	t.SetHeaderStyle(aquatable.StyleBold)
	t.SetLineStyle(aquatable.StyleDim)
	for _, d := range ds {
		t.AddRow(d.Flag, d.Kind, d.Name, d.Code)
	}
	t.Render()
}

// Columns writes fields padded to a common width, one line per row, with no
// borders. Used when stdout is not a terminal.
func Columns(w io.Writer, rows [][]string) {
	var widths []int
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], DisplayWidth(cell))
		}
	}
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			if i == len(row)-1 {
				cells[i] = cell
				continue
			}
			cells[i] = alignCell(cell, widths[i], aquatable.AlignLeft)
		}
		fmt.Fprintln(w, strings.Join(cells, "  "))
	}
}
