package pmuevents

import (
	"encoding/csv"
	"io"

	"github.com/olekukonko/tablewriter"
)

// A TableWriter receives the rows of an event listing or an encoding report.
type TableWriter interface {
	SetHeader(headers []string)
	Append(record []string)
	Render()
}

// A CSVWriter writes rows as CSV records. Write errors are kept and reported
// by Err after Render.
type CSVWriter struct {
	w   *csv.Writer
	err error
}

func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{w: csv.NewWriter(w)}
}

func (c *CSVWriter) SetHeader(headers []string) {
	c.write(headers)
}

func (c *CSVWriter) Append(record []string) {
	c.write(record)
}

func (c *CSVWriter) write(record []string) {
	if c.err != nil {
		return
	}
	c.err = c.w.Write(record)
}

// Render flushes buffered records.
func (c *CSVWriter) Render() {
	c.w.Flush()
	if c.err == nil {
		c.err = c.w.Error()
	}
}

// Err returns the first error hit while writing or flushing.
func (c *CSVWriter) Err() error {
	return c.err
}

// NewTableWriter returns a left-aligned ASCII table writer.
func NewTableWriter(w io.Writer) *tablewriter.Table {
	t := tablewriter.NewWriter(w)
	t.SetAutoFormatHeaders(false)
	t.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	t.SetAlignment(tablewriter.ALIGN_LEFT)
	return t
}

// renderErr renders w and returns its write error, if it keeps one.
func renderErr(w TableWriter) error {
	w.Render()
	if e, ok := w.(interface{ Err() error }); ok {
		return e.Err()
	}
	return nil
}
