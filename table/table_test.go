package table

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	m := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			m.SetNRGBA(x, y, c)
		}
	}
	return m
}

func TestAppend(t *testing.T) {
	a := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	a.SetNRGBA(0, 0, color.NRGBA{0, 0, 0, 0xff})
	a.SetNRGBA(1, 0, color.NRGBA{17, 0, 0, 0xff})
	a.SetNRGBA(0, 1, color.NRGBA{0, 17, 0, 0x00})
	a.SetNRGBA(1, 1, color.NRGBA{0, 0, 17, 0xff})

	tbl := New()
	tbl.Append("a.png", a)
	tbl.Append("b.png", solid(3, 1, color.NRGBA{255, 255, 255, 0xff}))

	require.Equal(t, 4+3, tbl.Len())
	assert.Equal(t, []Row{
		{color.RGBA{0, 0, 0, 0xff}, "a.png"},
		{color.RGBA{17, 0, 0, 0xff}, "a.png"},
		{color.RGBA{0, 17, 0, 0xff}, "a.png"},
		{color.RGBA{0, 0, 17, 0xff}, "a.png"},
		{color.RGBA{255, 255, 255, 0xff}, "b.png"},
		{color.RGBA{255, 255, 255, 0xff}, "b.png"},
		{color.RGBA{255, 255, 255, 0xff}, "b.png"},
	}, tbl.Rows())
}

func TestAppendSubImage(t *testing.T) {
	m := solid(4, 4, color.NRGBA{0, 0, 0, 0xff})
	m.SetNRGBA(2, 1, color.NRGBA{34, 51, 68, 0xff})

	var tbl Table
	tbl.Append("sub", m.SubImage(image.Rect(2, 1, 4, 3)).(*image.NRGBA))

	require.Equal(t, 4, tbl.Len())
	assert.Equal(t, "(34, 51, 68)", tbl.Rows()[0].RGB())
	assert.Equal(t, "(0, 0, 0)", tbl.Rows()[1].RGB())
}

func TestWriteCSV(t *testing.T) {
	tbl := New()
	tbl.Append("frame 0.jpg", solid(2, 1, color.NRGBA{204, 34, 119, 0xff}))
	tbl.Append("x;y.jpg", solid(1, 1, color.NRGBA{0, 0, 0, 0xff}))

	var b bytes.Buffer
	require.NoError(t, tbl.WriteCSV(&b))
	assert.Equal(t, "RGB;Name\n(204, 34, 119);frame 0.jpg\n(204, 34, 119);frame 0.jpg\n(0, 0, 0);\"x;y.jpg\"\n", b.String())
}

func TestWriteCSVEmpty(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, New().WriteCSV(&b))
	assert.Equal(t, "RGB;Name\n", b.String())
}

func TestWriteFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, os.WriteFile(file, []byte("stale contents that are longer\n"), 0644))

	tbl := New()
	tbl.Append("a", solid(1, 1, color.NRGBA{255, 0, 0, 0xff}))
	require.NoError(t, tbl.WriteFile(file))

	b, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, "RGB;Name\n(255, 0, 0);a\n", string(b))

	assert.Error(t, tbl.WriteFile(filepath.Join(t.TempDir(), "missing", "out.csv")))
}

func TestHistogram(t *testing.T) {
	a := solid(2, 2, color.NRGBA{0, 0, 0, 0xff})
	a.SetNRGBA(1, 1, color.NRGBA{255, 255, 255, 0xff})

	tbl := New()
	tbl.Append("a", a)
	tbl.Append("b", solid(3, 1, color.NRGBA{255, 255, 255, 0xff}))

	assert.Equal(t, []Count{
		{"a", color.RGBA{0, 0, 0, 0xff}, 3},
		{"a", color.RGBA{255, 255, 255, 0xff}, 1},
		{"b", color.RGBA{255, 255, 255, 0xff}, 3},
	}, tbl.Histogram())

	assert.Empty(t, New().Histogram())
}
