// Package compose turns resolved bitmaps and placement rectangles into
// the single RGBA frame handed to the presentation surface, including the
// skewed flip blend used mid-animation.
package compose

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"pageturn/internal/domain"
)

// Canvas background behind pages, the dark viewer chrome color.
var background = color.RGBA{R: 0x11, G: 0x13, B: 0x17, A: 0xff}

// Item is one bitmap with its destination rectangle in frame coordinates.
type Item struct {
	Bitmap *image.RGBA
	Rect   domain.Rect
}

// Frame composes items over the background into a viewport-sized frame.
// Bitmaps are scaled into their rectangles; scroll offsets are applied by
// the caller via the rectangles themselves.
func Frame(viewport domain.Size, items []Item) *image.RGBA {
	w, h := int(viewport.W), int(viewport.H)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(out, out.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	for _, it := range items {
		if it.Bitmap == nil {
			continue
		}
		dst := rectToBounds(it.Rect)
		if dst.Empty() {
			continue
		}
		draw.ApproxBiLinear.Scale(out, dst, it.Bitmap, it.Bitmap.Bounds(), draw.Over, nil)
	}
	return out
}

// ScaleTo resizes a bitmap to the given pixel dimensions.
func ScaleTo(src *image.RGBA, w, h int) *image.RGBA {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(out, out.Bounds(), src, src.Bounds(), draw.Src, nil)
	return out
}

// FlipBlend builds the interpolated flip composite. The first half of the
// animation shows the source sheet turning away (compressing and shearing
// toward the spine), the second half shows the target sheet turning in.
// Direction flips the shear sign; eased is in [0,1]. Signature matches
// anim.BlendFunc.
func FlipBlend(source, target *image.RGBA, eased float64, dir domain.Direction) *image.RGBA {
	w, h := blendDims(source, target)
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(out, out.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	var sheet *image.RGBA
	var widthScale float64
	if eased < 0.5 {
		sheet = source
		widthScale = 1 - 2*eased
	} else {
		sheet = target
		widthScale = 2*eased - 1
	}
	if sheet == nil {
		return out
	}
	// Never let the sheet vanish entirely; a sliver keeps the motion
	// readable at the midpoint.
	widthScale = math.Max(widthScale, 0.04)

	sb := sheet.Bounds()
	sw, sh := float64(sb.Dx()), float64(sb.Dy())
	if sw == 0 || sh == 0 {
		return out
	}

	// Horizontal compression about the frame center plus a vertical shear
	// that fakes the sheet tilting out of plane.
	shear := 0.18 * (1 - widthScale) * float64(dir)
	sx := widthScale * float64(w) / sw
	sy := float64(h) / sh
	tx := (1 - widthScale) * float64(w) / 2
	m := f64.Aff3{
		sx, 0, tx,
		shear * sy, sy, -shear * sy * sh / 2,
	}
	draw.ApproxBiLinear.Transform(out, m, sheet, sb, draw.Over, nil)
	return out
}

func blendDims(a, b *image.RGBA) (int, int) {
	w, h := 1, 1
	for _, img := range []*image.RGBA{a, b} {
		if img == nil {
			continue
		}
		if d := img.Bounds().Dx(); d > w {
			w = d
		}
		if d := img.Bounds().Dy(); d > h {
			h = d
		}
	}
	return w, h
}

func rectToBounds(r domain.Rect) image.Rectangle {
	return image.Rect(
		int(math.Floor(r.X)),
		int(math.Floor(r.Y)),
		int(math.Ceil(r.X+r.W)),
		int(math.Ceil(r.Y+r.H)),
	)
}
