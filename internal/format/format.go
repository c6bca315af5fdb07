// Package format renders result tables for the terminal, Markdown reports
// and spreadsheets.
package format

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Mode controls the output format.
type Mode int

const (
	ASCII    Mode = iota // Box-drawn terminal tables
	Markdown             // GitHub-flavoured Markdown tables
	CSV                  // Comma-separated values
)

// ParseMode maps "ascii", "markdown"/"md" and "csv" to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "ascii", "":
		return ASCII, nil
	case "markdown", "md":
		return Markdown, nil
	case "csv":
		return CSV, nil
	}
	return ASCII, fmt.Errorf("unknown table format %q (available: ascii, markdown, csv)", s)
}

// Align is the horizontal alignment of a column.
type Align int

const (
	AlignDefault Align = iota
	AlignLeft
	AlignRight
)

// Table is a header, rows and optional footer rendered in one Mode.
type Table struct {
	w    table.Writer
	mode Mode
}

// NewTable returns an empty table rendered in mode m.
func NewTable(m Mode) *Table {
	w := table.NewWriter()
	if m == ASCII {
		w.SetStyle(table.StyleLight)
	}
	return &Table{w: w, mode: m}
}

func (t *Table) Header(cols ...string) {
	t.w.AppendHeader(toRow(cols))
}

// Row appends a data row. Values are converted with fmt.Sprint.
func (t *Table) Row(vals ...any) {
	t.w.AppendRow(table.Row(vals))
}

func (t *Table) Footer(vals ...any) {
	t.w.AppendFooter(table.Row(vals))
}

// Align sets the alignment of the 1-based columns listed.
func (t *Table) Align(a Align, cols ...int) {
	cfgs := make([]table.ColumnConfig, len(cols))
	for i, c := range cols {
		cfgs[i] = table.ColumnConfig{Number: c, Align: toTextAlign(a)}
	}
	t.w.SetColumnConfigs(cfgs)
}

func (t *Table) String() string {
	switch t.mode {
	case Markdown:
		return t.w.RenderMarkdown()
	case CSV:
		return t.w.RenderCSV()
	default:
		return t.w.Render()
	}
}

func toRow(cols []string) table.Row {
	row := make(table.Row, len(cols))
	for i, c := range cols {
		row[i] = c
	}
	return row
}

func toTextAlign(a Align) text.Align {
	switch a {
	case AlignLeft:
		return text.AlignLeft
	case AlignRight:
		return text.AlignRight
	default:
		return text.AlignDefault
	}
}
