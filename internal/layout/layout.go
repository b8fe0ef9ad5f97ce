// Package layout computes page placement and zoom geometry. It is pure
// math over viewer state: no rendering, no caching, no side effects.
package layout

import (
	"math"

	"pageturn/internal/domain"
)

// PageGap is the horizontal gap between the two pages of a spread, in
// viewport pixels at any zoom.
const PageGap = 12.0

// ClampZoom clamps a zoom factor to the supported range.
func ClampZoom(z float64) float64 {
	return math.Min(domain.MaxZoom, math.Max(domain.MinZoom, z))
}

// ZoomIn multiplies the zoom by step and clamps. Stepping is multiplicative
// so repeated in/out pairs cancel regardless of the current zoom.
func ZoomIn(z, step float64) float64 {
	return ClampZoom(z * step)
}

// ZoomOut divides the zoom by step and clamps.
func ZoomOut(z, step float64) float64 {
	return ClampZoom(z / step)
}

// ComputeScale returns the effective zoom for a page. In fit mode the scale
// makes the page's natural size fill the viewport in its tighter dimension;
// otherwise the manual zoom passes through unchanged.
func ComputeScale(natural, viewport domain.Size, fitMode bool, manualZoom float64) float64 {
	if !fitMode {
		return manualZoom
	}
	if natural.W <= 0 || natural.H <= 0 {
		return ClampZoom(manualZoom)
	}
	return ClampZoom(math.Min(viewport.W/natural.W, viewport.H/natural.H))
}

// Spread is the ordered set of pages shown together: one page, or a
// left/right pair in dual-page mode.
type Spread struct {
	Pages [2]int
	Count int
}

// SpreadFor returns the spread containing page for the given page count.
// The cover (page 0) is always alone; pairing starts at page 1, so the
// odd-numbered page of a pair sits on the left. A trailing unpaired page
// is shown alone.
func SpreadFor(page, pageCount int) Spread {
	if pageCount <= 0 {
		return Spread{}
	}
	if page <= 0 {
		return Spread{Pages: [2]int{0}, Count: 1}
	}
	if page >= pageCount {
		page = pageCount - 1
	}
	left := page
	if page%2 == 0 {
		left = page - 1
	}
	if left+1 < pageCount {
		return Spread{Pages: [2]int{left, left + 1}, Count: 2}
	}
	return Spread{Pages: [2]int{left}, Count: 1}
}

// NextSpreadStart returns the first page of the spread after the one
// containing page, clamped to the last spread.
func NextSpreadStart(page, pageCount int) int {
	s := SpreadFor(page, pageCount)
	next := s.Pages[0] + s.Count
	if s.Pages[0] == 0 {
		next = 1
	}
	if next >= pageCount {
		return s.Pages[0]
	}
	return next
}

// PrevSpreadStart returns the first page of the spread before the one
// containing page, clamped to the cover.
func PrevSpreadStart(page, pageCount int) int {
	s := SpreadFor(page, pageCount)
	switch s.Pages[0] {
	case 0:
		return 0
	case 1:
		return 0
	default:
		return s.Pages[0] - 2
	}
}

// NaturalSizeFunc reports a page's natural (unscaled) size in document units.
type NaturalSizeFunc func(page int) domain.Size

// Compute lays out the spread containing page. Single pages are centered in
// the viewport. Pairs sit side by side with PageGap between them, each page
// vertically centered against the taller of the two, and the pair as a
// whole centered horizontally. Rotation swaps page dimensions before
// scaling.
func Compute(page, pageCount int, natural NaturalSizeFunc, zoom float64, dualPage bool, rot domain.Rotation, viewport domain.Size) domain.LayoutResult {
	if pageCount <= 0 {
		return domain.LayoutResult{}
	}

	spread := Spread{Pages: [2]int{clampPage(page, pageCount)}, Count: 1}
	if dualPage {
		spread = SpreadFor(page, pageCount)
	}

	sizes := make([]domain.Size, spread.Count)
	for i := 0; i < spread.Count; i++ {
		n := natural(spread.Pages[i]).Rotated(rot)
		sizes[i] = domain.Size{W: n.W * zoom, H: n.H * zoom}
	}

	var res domain.LayoutResult
	switch spread.Count {
	case 1:
		s := sizes[0]
		r := domain.Rect{
			X: (viewport.W - s.W) / 2,
			Y: (viewport.H - s.H) / 2,
			W: s.W,
			H: s.H,
		}
		res.Placements = []domain.Placement{{
			Key:  domain.KeyFor(spread.Pages[0], zoom, rot),
			Rect: r,
		}}
		res.Content = r
	case 2:
		totalW := sizes[0].W + PageGap + sizes[1].W
		maxH := math.Max(sizes[0].H, sizes[1].H)
		x := (viewport.W - totalW) / 2
		top := (viewport.H - maxH) / 2
		res.Placements = make([]domain.Placement, 2)
		for i := 0; i < 2; i++ {
			s := sizes[i]
			res.Placements[i] = domain.Placement{
				Key: domain.KeyFor(spread.Pages[i], zoom, rot),
				Rect: domain.Rect{
					X: x,
					Y: top + (maxH-s.H)/2,
					W: s.W,
					H: s.H,
				},
			}
			x += s.W + PageGap
		}
		res.Content = domain.Rect{
			X: (viewport.W - totalW) / 2,
			Y: top,
			W: totalW,
			H: maxH,
		}
	}
	return res
}

func clampPage(page, pageCount int) int {
	if page < 0 {
		return 0
	}
	if page >= pageCount {
		return pageCount - 1
	}
	return page
}

// ClampScroll limits a scroll offset so the content rectangle never leaves
// the viewport entirely. Offsets are applied to the content before display.
func ClampScroll(offsetX, offsetY float64, content domain.Rect, viewport domain.Size) (float64, float64) {
	// Keep at least one content edge inside the viewport on each axis.
	minX := -(content.X + content.W)
	maxX := viewport.W - content.X
	minY := -(content.Y + content.H)
	maxY := viewport.H - content.Y
	return math.Min(maxX, math.Max(minX, offsetX)), math.Min(maxY, math.Max(minY, offsetY))
}
