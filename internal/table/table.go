// Package table renders sensor readings and unit listings as bordered tables.
package table

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	aquatable "github.com/aquasecurity/table"
	runewidth "github.com/mattn/go-runewidth"
)

// Use types directly from aquasecurity/table
type (
	Alignment = aquatable.Alignment
	Dividers  = aquatable.Dividers
	Style     = aquatable.Style
)

// Table collects headers and rows and draws them with box dividers.
type Table struct {
	writer      io.Writer
	headers     []string
	rows        [][]string
	columnAlign []Alignment
	dividers    Dividers
	lineStyle   Style
	headerStyle Style
	padding     int
	borders     bool
	rowLines    bool
}

// New creates a new Table
func New(w io.Writer) *Table {
	return &Table{
		writer:   w,
		dividers: aquatable.UnicodeRoundedDividers,
		padding:  1,
		borders:  true,
	}
}

// SetHeaders sets the table headers
func (t *Table) SetHeaders(headers ...string) {
	t.headers = headers
}

// AddRow adds a row to the table
func (t *Table) AddRow(values ...string) {
	t.rows = append(t.rows, values)
}

// SetAlignment sets the alignment for each column
func (t *Table) SetAlignment(aligns ...Alignment) {
	t.columnAlign = aligns
}

// SetDividers replaces the rounded box-drawing characters.
func (t *Table) SetDividers(d Dividers) {
	t.dividers = d
}

func (t *Table) SetLineStyle(s Style) {
	t.lineStyle = s
}

func (t *Table) SetHeaderStyle(s Style) {
	t.headerStyle = s
}

func (t *Table) SetBorders(enabled bool) {
	t.borders = enabled
}

func (t *Table) SetRowLines(enabled bool) {
	t.rowLines = enabled
}

// Render writes the table. An empty table writes nothing.
func (t *Table) Render() {
	if len(t.headers) == 0 && len(t.rows) == 0 {
		return
	}

	numCols := len(t.headers)
	for _, row := range t.rows {
		numCols = max(numCols, len(row))
	}
	widths := t.columnWidths(numCols)

	if t.borders {
		t.writeLine(t.border(widths, t.dividers.ES, t.dividers.ESW, t.dividers.SW))
	}
	if len(t.headers) > 0 {
		t.renderRow(t.headers, widths, true)
		t.writeLine(t.border(widths, t.dividers.NES, t.dividers.ALL, t.dividers.NSW))
	}
	for i, row := range t.rows {
		t.renderRow(row, widths, false)
		if t.rowLines && i < len(t.rows)-1 {
			t.writeLine(t.border(widths, t.dividers.NES, t.dividers.ALL, t.dividers.NSW))
		}
	}
	if t.borders {
		t.writeLine(t.border(widths, t.dividers.NE, t.dividers.NEW, t.dividers.NW))
	}
}

func (t *Table) columnWidths(numCols int) []int {
	widths := make([]int, numCols)
	measure := func(cells []string) {
		for i, cell := range cells {
			widths[i] = max(widths[i], DisplayWidth(cell))
		}
	}
	measure(t.headers)
	for _, row := range t.rows {
		measure(row)
	}
	for i := range widths {
		widths[i] += 2 * t.padding
	}
	return widths
}

func (t *Table) renderRow(cells []string, widths []int, header bool) {
	sep := t.styledChar(t.dividers.NS)
	var b strings.Builder
	if t.borders {
		b.WriteString(sep)
	}
	for i, width := range widths {
		content := ""
		if i < len(cells) {
			content = cells[i]
		}
		align := aquatable.AlignLeft
		if header {
			align = aquatable.AlignCenter
		} else if i < len(t.columnAlign) {
			align = t.columnAlign[i]
		}
		styled := content
		if header && t.headerStyle != aquatable.StyleNormal {
			styled = fmt.Sprintf("\x1b[%dm%s\x1b[0m", t.headerStyle, content)
		}
		pad := strings.Repeat(" ", t.padding)
		b.WriteString(pad + alignCell(styled, width-2*t.padding, align) + pad)
		if t.borders || i < len(widths)-1 {
			b.WriteString(sep)
		}
	}
	t.writeLine(b.String())
}

func (t *Table) border(widths []int, left, junction, right string) string {
	var b strings.Builder
	b.WriteString(t.styledChar(left))
	for i, width := range widths {
		b.WriteString(strings.Repeat(t.styledChar(t.dividers.EW), width))
		if i < len(widths)-1 {
			b.WriteString(t.styledChar(junction))
		}
	}
	b.WriteString(t.styledChar(right))
	return b.String()
}

func alignCell(content string, width int, align Alignment) string {
	padSize := width - DisplayWidth(content)
	if padSize <= 0 {
		return content
	}
	switch align {
	case aquatable.AlignRight:
		return strings.Repeat(" ", padSize) + content
	case aquatable.AlignCenter:
		left := padSize / 2
		return strings.Repeat(" ", left) + content + strings.Repeat(" ", padSize-left)
	default:
		return content + strings.Repeat(" ", padSize)
	}
}

func (t *Table) styledChar(char string) string {
	if t.lineStyle != aquatable.StyleNormal {
		return fmt.Sprintf("\x1b[%dm%s\x1b[0m", t.lineStyle, char)
	}
	return char
}

func (t *Table) writeLine(line string) {
	fmt.Fprintf(t.writer, "%s\n", line)
}

var ansiPattern = regexp.MustCompile("\x1b\\[[0-9;]*[A-Za-z]")

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// DisplayWidth is the terminal cell width of s, ignoring ANSI escapes.
func DisplayWidth(s string) int {
	return runewidth.StringWidth(stripANSI(s))
}
