/*
Package palette implements the reference palettes images are quantized to and
the nearest color lookup used to map each pixel onto them.

The fixed palette is a regular 16 by 16 by 16 grid in RGB space; each channel
takes one of the values 0, 17, 34, ..., 255 giving 4096 colors in total. The
entries are ordered with red varying slowest and blue fastest.
*/
package palette

import (
	"image"
	"image/color"
	"math"
)

const (
	// Step is the distance between two adjacent grid values on any channel
	Step   = 17
	levels = 0xff/Step + 1

	// Size is the number of colors in the grid palette
	Size = levels * levels * levels
)

// Mapper maps an arbitrary color to a member of a palette.
type Mapper interface {
	Nearest(c color.RGBA) color.RGBA
}

// Palette is an ordered list of opaque reference colors. Where two entries
// are the same distance from a color the earlier entry is preferred.
type Palette []color.RGBA

var grid = makeGrid()

func makeGrid() Palette {
	p := make(Palette, 0, Size)
	for r := 0; r <= 0xff; r += Step {
		for g := 0; g <= 0xff; g += Step {
			for b := 0; b <= 0xff; b += Step {
				p = append(p, color.RGBA{uint8(r), uint8(g), uint8(b), 0xff})
			}
		}
	}
	return p
}

// Grid returns a copy of the fixed 4096 color palette.
func Grid() Palette {
	return append(Palette(nil), grid...)
}

func sqDist(a, b color.RGBA) int {
	dr := int(a.R) - int(b.R)
	dg := int(a.G) - int(b.G)
	db := int(a.B) - int(b.B)
	return dr*dr + dg*dg + db*db
}

// Index returns the index of the palette entry closest to c in Euclidean
// distance, ignoring alpha. It returns -1 for an empty palette.
func (p Palette) Index(c color.RGBA) int {
	best, bestDist := -1, math.MaxInt32
	for i, v := range p {
		// Strictly less, the first of several equidistant entries wins
		if d := sqDist(c, v); d < bestDist {
			best, bestDist = i, d
			if d == 0 {
				break
			}
		}
	}
	return best
}

// Nearest returns the palette entry closest to c. It panics if the palette is
// empty.
func (p Palette) Nearest(c color.RGBA) color.RGBA {
	return p[p.Index(c)]
}

// Map replaces the color of every pixel in m with its nearest color according
// to mp. Alpha is left untouched.
func Map(m *image.NRGBA, mp Mapper) {
	b := m.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		i := m.PixOffset(b.Min.X, y)
		for x := b.Min.X; x < b.Max.X; x, i = x+1, i+4 {
			c := mp.Nearest(color.RGBA{m.Pix[i+0], m.Pix[i+1], m.Pix[i+2], 0xff})
			m.Pix[i+0], m.Pix[i+1], m.Pix[i+2] = c.R, c.G, c.B
		}
	}
}
