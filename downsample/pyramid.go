package downsample

import "image"

var kernel = [5]int{1, 4, 6, 4, 1}

// Mirror p into [0, n) about the edge pixels, so -1 maps to 1 and n maps to
// n-2
func reflect101(p, n int) int {
	if n == 1 {
		return 0
	}
	for p < 0 || p >= n {
		if p < 0 {
			p = -p
		}
		if p >= n {
			p = 2*n - 2 - p
		}
	}
	return p
}

// PyrDown blurs m with a 5x5 Gaussian kernel and returns every other row and
// column of the result. All four channels are filtered.
func PyrDown(m *image.NRGBA) *image.NRGBA {
	b := m.Bounds()
	w, h := b.Dx(), b.Dy()
	dw, dh := (w+1)>>1, (h+1)>>1

	// Horizontal pass, only the even columns are kept
	tmp := make([]int, dw*h*4)
	for y := 0; y < h; y++ {
		row := m.Pix[m.PixOffset(b.Min.X, b.Min.Y+y):]
		for x := 0; x < dw; x++ {
			for c := 0; c < 4; c++ {
				var sum int
				for k, weight := range kernel {
					sum += weight * int(row[reflect101(x<<1+k-2, w)*4+c])
				}
				tmp[(y*dw+x)*4+c] = sum
			}
		}
	}

	// Vertical pass, kernel weights total 16 in each direction
	dst := image.NewNRGBA(image.Rect(0, 0, dw, dh))
	for y := 0; y < dh; y++ {
		for x := 0; x < dw; x++ {
			for c := 0; c < 4; c++ {
				var sum int
				for k, weight := range kernel {
					sum += weight * tmp[(reflect101(y<<1+k-2, h)*dw+x)*4+c]
				}
				dst.Pix[y*dst.Stride+x*4+c] = uint8((sum + 128) >> 8)
			}
		}
	}

	return dst
}
