package palette

import (
	"errors"
	"image"
	"image/color"

	"github.com/ericpauley/go-quantize/quantize"
)

var errNoColors = errors.New("palette: no colors")

// Adaptive returns a palette of at most n colors chosen from m using median
// cut quantization.
func Adaptive(m image.Image, n int) (Palette, error) {
	if n < 1 {
		return nil, errNoColors
	}

	q := quantize.MedianCutQuantizer{}
	cp := q.Quantize(make(color.Palette, 0, n), m)

	p := make(Palette, 0, len(cp))
	seen := make(map[color.RGBA]struct{}, len(cp))
	for _, c := range cp {
		nc := color.NRGBAModel.Convert(c).(color.NRGBA)
		v := color.RGBA{nc.R, nc.G, nc.B, 0xff}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		p = append(p, v)
	}

	if len(p) == 0 {
		return nil, errNoColors
	}

	return p, nil
}
