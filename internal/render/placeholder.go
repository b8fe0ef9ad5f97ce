package render

import (
	"image"

	"github.com/gogpu/gg"
)

// Placeholder draws the stand-in bitmap shown when a page fails to
// rasterize: a flat sheet with a crossed-out box. Navigation continues
// normally around it.
func Placeholder(w, h int) *image.RGBA {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	dc := gg.NewContext(w, h)
	dc.SetRGB(0.93, 0.93, 0.94)
	dc.DrawRectangle(0, 0, float64(w), float64(h))
	dc.Fill()

	fw, fh := float64(w), float64(h)
	inset := 0.2 * fw

	dc.SetRGB(0.78, 0.33, 0.33)
	dc.SetLineWidth(maxf(1, 0.012*fw))
	dc.DrawRectangle(inset, fh/2-inset, fw-2*inset, 2*inset)
	dc.Stroke()
	dc.DrawLine(inset, fh/2-inset, fw-inset, fh/2+inset)
	dc.Stroke()
	dc.DrawLine(inset, fh/2+inset, fw-inset, fh/2-inset)
	dc.Stroke()

	return toRGBA(dc.Image())
}
