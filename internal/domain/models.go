package domain

import (
	"fmt"
	"math"
)

// Rotation is a global page rotation in degrees.
type Rotation int

const (
	Rotate0   Rotation = 0
	Rotate90  Rotation = 90
	Rotate180 Rotation = 180
	Rotate270 Rotation = 270
)

// Next returns the rotation advanced by a quarter turn clockwise.
func (r Rotation) Next() Rotation {
	return Rotation((int(r) + 90) % 360)
}

// Size is a width/height pair in document units (or pixels once rendered).
type Size struct {
	W float64
	H float64
}

// Rotated returns the size with width and height swapped for quarter turns.
func (s Size) Rotated(r Rotation) Size {
	if r == Rotate90 || r == Rotate270 {
		return Size{W: s.H, H: s.W}
	}
	return s
}

// Zoom bounds shared by layout, viewer state and the UI.
const (
	MinZoom = 0.20
	MaxZoom = 6.00
)

// zoomBucketGrid is the coarse zoom grid used for cache keys: 1/0.05 steps,
// so a continuous zoom gesture maps many nearby zooms to one bucket.
const zoomBucketGrid = 20

// RenderKey identifies one rendered bitmap in the page cache.
// Zoom is bucketed so continuous zooming does not thrash the cache.
type RenderKey struct {
	Page       int
	ZoomBucket int
	Rotation   Rotation
}

// KeyFor builds the cache key for a page at a given zoom and rotation.
func KeyFor(page int, zoom float64, rot Rotation) RenderKey {
	return RenderKey{
		Page:       page,
		ZoomBucket: ZoomBucket(zoom),
		Rotation:   rot,
	}
}

// ZoomBucket rounds a zoom factor to the nearest 5% step.
func ZoomBucket(zoom float64) int {
	return int(math.Round(zoom * zoomBucketGrid))
}

// BucketZoom converts a bucket back to the zoom factor it represents.
func BucketZoom(bucket int) float64 {
	return float64(bucket) / zoomBucketGrid
}

// String is used for logging and as the singleflight key.
func (k RenderKey) String() string {
	return fmt.Sprintf("p%d/z%d/r%d", k.Page, k.ZoomBucket, int(k.Rotation))
}

// Direction of a page-flip animation.
type Direction int

const (
	Forward  Direction = 1
	Backward Direction = -1
)

// Rect is an axis-aligned placement rectangle in viewport coordinates.
type Rect struct {
	X float64
	Y float64
	W float64
	H float64
}

// Placement binds a render key to where its bitmap goes on screen.
type Placement struct {
	Key  RenderKey
	Rect Rect
}

// LayoutResult is the ordered set of placements for one composed frame:
// one entry in single-page mode, up to two in dual-page mode.
type LayoutResult struct {
	Placements []Placement
	Content    Rect // bounding box of all placements, pre-scroll
}
