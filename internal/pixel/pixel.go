// Package pixel holds the RGB grid the transform operates on and converts
// it to and from image.Image.
package pixel

import (
	"image"

	"github.com/disintegration/imaging"
)

// Pixel is one 8-bit RGB triple.
type Pixel struct {
	R, G, B uint8
}

// Grid is a row-major sequence of pixels: index i is (i % w, i / w).
type Grid []Pixel

// Clone returns a copy of g.
func (g Grid) Clone() Grid {
	if g == nil {
		return nil
	}
	out := make(Grid, len(g))
	copy(out, g)
	return out
}

// Equal reports whether g and o hold the same pixels in the same order.
func (g Grid) Equal(o Grid) bool {
	if len(g) != len(o) {
		return false
	}
	for i := range g {
		if g[i] != o[i] {
			return false
		}
	}
	return true
}

// Bytes flattens g into R,G,B,R,G,B... order.
func (g Grid) Bytes() []byte {
	b := make([]byte, 0, len(g)*3)
	for _, p := range g {
		b = append(b, p.R, p.G, p.B)
	}
	return b
}

// FromImage normalizes img to 8-bit RGB and returns its grid and size.
// Alpha is dropped rather than composited; palette, gray and 16-bit images
// are expanded to 8-bit RGB.
func FromImage(img image.Image) (Grid, int, int) {
	nrgba := imaging.Clone(img)
	w, h := nrgba.Rect.Dx(), nrgba.Rect.Dy()

	g := make(Grid, 0, w*h)
	for y := 0; y < h; y++ {
		row := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+w*4]
		for x := 0; x < len(row); x += 4 {
			g = append(g, Pixel{R: row[x], G: row[x+1], B: row[x+2]})
		}
	}
	return g, w, h
}

// ToImage builds an opaque image of size w×h from g. The caller ensures
// len(g) == w*h.
func ToImage(g Grid, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i, p := range g {
		o := i * 4
		img.Pix[o] = p.R
		img.Pix[o+1] = p.G
		img.Pix[o+2] = p.B
		img.Pix[o+3] = 0xff
	}
	return img
}
