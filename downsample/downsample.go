/*
Package downsample reduces image resolution by repeated halving.

The default Pyramid filter convolves the image with the 5x5 Gaussian kernel
built from the binomial weights 1 4 6 4 1 and then drops every other row and
column, mirroring edge pixels without repeating them. Each level maps a W by
H image onto one of (W+1)/2 by (H+1)/2 pixels. The remaining filters resample
straight to the final size using the interpolation functions from
github.com/nfnt/resize.
*/
package downsample

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
)

// Filter selects how neighboring pixels are aggregated.
type Filter int

const (
	// Pyramid applies a Gaussian blur and decimation once per level
	Pyramid Filter = iota
	// NearestNeighbor samples without aggregating and so may alias
	NearestNeighbor
	// Bilinear interpolation
	Bilinear
	// Bicubic interpolation
	Bicubic
	// Lanczos3 windowed sinc interpolation
	Lanczos3
)

var filterNames = map[Filter]string{
	Pyramid:         "pyramid",
	NearestNeighbor: "nearest",
	Bilinear:        "bilinear",
	Bicubic:         "bicubic",
	Lanczos3:        "lanczos3",
}

var interpolation = map[Filter]resize.InterpolationFunction{
	NearestNeighbor: resize.NearestNeighbor,
	Bilinear:        resize.Bilinear,
	Bicubic:         resize.Bicubic,
	Lanczos3:        resize.Lanczos3,
}

func (f Filter) String() string {
	if s, ok := filterNames[f]; ok {
		return s
	}
	return fmt.Sprintf("Filter(%d)", int(f))
}

// ParseFilter returns the Filter with the given name.
func ParseFilter(s string) (Filter, error) {
	for f, name := range filterNames {
		if strings.EqualFold(s, name) {
			return f, nil
		}
	}
	return 0, fmt.Errorf("downsample: unknown filter %q", s)
}

// ErrTooSmall is returned when an image cannot be halved the requested number
// of times.
var ErrTooSmall = errors.New("downsample: image too small")

// Size returns the dimensions of a w by h image after the given number of
// halvings.
func Size(w, h, levels int) (int, int) {
	for i := 0; i < levels; i++ {
		w, h = (w+1)>>1, (h+1)>>1
	}
	return w, h
}

// Reduce halves m the given number of times in both dimensions using filter
// f. Each dimension of m must be at least 2^levels pixels.
func Reduce(m image.Image, levels int, f Filter) (*image.NRGBA, error) {
	if levels < 0 {
		return nil, fmt.Errorf("downsample: negative levels %d", levels)
	}

	b := m.Bounds()
	if b.Empty() || b.Dx() < 1<<levels || b.Dy() < 1<<levels {
		return nil, fmt.Errorf("%w: %dx%d", ErrTooSmall, b.Dx(), b.Dy())
	}

	switch f {
	case Pyramid:
		dst := imaging.Clone(m)
		for i := 0; i < levels; i++ {
			dst = PyrDown(dst)
		}
		return dst, nil
	default:
		fn, ok := interpolation[f]
		if !ok {
			return nil, fmt.Errorf("downsample: unknown filter %d", int(f))
		}
		w, h := Size(b.Dx(), b.Dy(), levels)
		return imaging.Clone(resize.Resize(uint(w), uint(h), m, fn)), nil
	}
}
