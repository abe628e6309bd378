/*
Package table accumulates the quantized pixels of a batch of images into a
single ordered table and writes it out as delimited text.

Each row holds one pixel; the RGB column is formatted as "(r, g, b)" and the
Name column holds the base name of the source image. Rows are kept in the
order images are appended and, within an image, in row-major order.
*/
package table

import (
	"encoding/csv"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
)

// Comma is the field delimiter used when writing a table
const Comma = ';'

// Header is the first record written
var Header = []string{"RGB", "Name"}

// Row is a single pixel of a source image.
type Row struct {
	Color color.RGBA
	Name  string
}

// RGB formats the color of r.
func (r Row) RGB() string {
	return fmt.Sprintf("(%d, %d, %d)", r.Color.R, r.Color.G, r.Color.B)
}

// Table is an ordered list of rows. The zero value is an empty table ready
// to use.
type Table struct {
	rows []Row
}

// New returns an empty table.
func New() *Table {
	return new(Table)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Rows returns the rows in insertion order.
func (t *Table) Rows() []Row {
	return t.rows
}

// Append adds a row for every pixel of m, scanning row by row.
func (t *Table) Append(name string, m *image.NRGBA) {
	b := m.Bounds()
	if n := len(t.rows) + b.Dx()*b.Dy(); n > cap(t.rows) {
		rows := make([]Row, len(t.rows), n)
		copy(rows, t.rows)
		t.rows = rows
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		i := m.PixOffset(b.Min.X, y)
		for x := b.Min.X; x < b.Max.X; x, i = x+1, i+4 {
			t.rows = append(t.rows, Row{
				Color: color.RGBA{m.Pix[i+0], m.Pix[i+1], m.Pix[i+2], 0xff},
				Name:  name,
			})
		}
	}
}

// WriteCSV writes the header followed by every row to w.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	cw.Comma = Comma

	if err := cw.Write(Header); err != nil {
		return err
	}

	record := make([]string, len(Header))
	for _, r := range t.rows {
		record[0], record[1] = r.RGB(), r.Name
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteFile writes the table to the named file, replacing it if it exists.
func (t *Table) WriteFile(file string) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}

	if err := t.WriteCSV(f); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
