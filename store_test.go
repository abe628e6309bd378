package palettize

import (
	"image/color"
	"path/filepath"
	"testing"

	"github.com/bodgit/palettize/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	file := filepath.Join(t.TempDir(), "histogram.db")

	s, err := NewStore(file)
	require.NoError(t, err)

	a := solid(2, 2, color.NRGBA{0, 0, 0, 0xff})
	a.SetNRGBA(1, 1, color.NRGBA{255, 255, 255, 0xff})

	tbl := table.New()
	tbl.Append("b.png", solid(3, 1, color.NRGBA{17, 34, 51, 0xff}))
	tbl.Append("a.png", a)
	require.NoError(t, s.Import(tbl))

	names, err := s.Images()
	require.NoError(t, err)
	assert.Equal(t, []string{"b.png", "a.png"}, names)

	counts, err := s.Histogram("a.png")
	require.NoError(t, err)
	assert.Equal(t, []table.Count{
		{Name: "a.png", Color: color.RGBA{0, 0, 0, 0xff}, Pixels: 3},
		{Name: "a.png", Color: color.RGBA{255, 255, 255, 0xff}, Pixels: 1},
	}, counts)

	counts, err = s.Histogram("missing.png")
	require.NoError(t, err)
	assert.Empty(t, counts)

	require.NoError(t, s.Close())

	// Reopen and replace one image
	s, err = NewStore(file)
	require.NoError(t, err)
	defer s.Close()

	tbl = table.New()
	tbl.Append("a.png", solid(1, 1, color.NRGBA{34, 34, 34, 0xff}))
	require.NoError(t, s.Import(tbl))

	names, err = s.Images()
	require.NoError(t, err)
	assert.Equal(t, []string{"b.png", "a.png"}, names)

	counts, err = s.Histogram("a.png")
	require.NoError(t, err)
	assert.Equal(t, []table.Count{
		{Name: "a.png", Color: color.RGBA{34, 34, 34, 0xff}, Pixels: 1},
	}, counts)

	counts, err = s.Histogram("b.png")
	require.NoError(t, err)
	assert.Equal(t, []table.Count{
		{Name: "b.png", Color: color.RGBA{17, 34, 51, 0xff}, Pixels: 3},
	}, counts)
}

func TestStoreEmptyImport(t *testing.T) {
	s, err := NewStore(filepath.Join(t.TempDir(), "histogram.db"))
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Import(table.New()))

	names, err := s.Images()
	require.NoError(t, err)
	assert.Empty(t, names)
}

