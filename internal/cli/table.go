package cli

import (
	"strings"
	"unicode/utf8"
)

// Alignment controls how a column's cells are padded.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// Table is a plain-text table with columns sized to their widest cell.
type Table struct {
	headers []string
	rows    [][]string
	align   []Alignment
	padding int
}

// NewTable creates a new table with the given headers.
func NewTable(headers []string) *Table {
	return &Table{
		headers: headers,
		rows:    make([][]string, 0),
		align:   make([]Alignment, len(headers)),
		padding: 2, // 2 spaces between columns
	}
}

// SetAlign sets the alignment of column col. Out-of-range columns are ignored.
func (t *Table) SetAlign(col int, a Alignment) {
	if col >= 0 && col < len(t.align) {
		t.align[col] = a
	}
}

// AddRow adds a row, padding or truncating it to the header count.
func (t *Table) AddRow(row []string) {
	if len(row) != len(t.headers) {
		newRow := make([]string, len(t.headers))
		copy(newRow, row)
		row = newRow
	}
	t.rows = append(t.rows, row)
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Lines renders the table as lines without trailing newlines: the header,
// a dashed separator, then one line per row.
func (t *Table) Lines() []string {
	if len(t.headers) == 0 {
		return nil
	}

	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			widths[i] = max(widths[i], utf8.RuneCountInString(cell))
		}
	}

	gap := strings.Repeat(" ", t.padding)
	line := func(cells []string) string {
		parts := make([]string, len(cells))
		for i, c := range cells {
			if t.align[i] == AlignRight {
				parts[i] = padLeft(c, widths[i])
			} else {
				parts[i] = padRight(c, widths[i])
			}
		}
		return strings.TrimRight(strings.Join(parts, gap), " ")
	}

	lines := make([]string, 0, len(t.rows)+2)
	lines = append(lines, line(t.headers))

	sep := make([]string, len(widths))
	for i, w := range widths {
		sep[i] = strings.Repeat("-", w)
	}
	lines = append(lines, strings.Join(sep, gap))

	for _, row := range t.rows {
		lines = append(lines, line(row))
	}
	return lines
}

// Render formats and returns the table as a string.
func (t *Table) Render() string {
	lines := t.Lines()
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// padRight pads s with spaces on the right to width runes.
func padRight(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// padLeft pads s with spaces on the left to width runes.
func padLeft(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return strings.Repeat(" ", width-n) + s
	}
	return s
}
