package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pageturn/internal/domain"
)

func TestClampZoomBounds(t *testing.T) {
	assert.Equal(t, domain.MinZoom, ClampZoom(0.01))
	assert.Equal(t, domain.MaxZoom, ClampZoom(100))
	assert.Equal(t, 1.0, ClampZoom(1.0))
}

func TestZoomStepsStayInBounds(t *testing.T) {
	z := 1.0
	for i := 0; i < 50; i++ {
		z = ZoomIn(z, 1.25)
		require.LessOrEqual(t, z, domain.MaxZoom)
		require.GreaterOrEqual(t, z, domain.MinZoom)
	}
	for i := 0; i < 100; i++ {
		z = ZoomOut(z, 1.25)
		require.LessOrEqual(t, z, domain.MaxZoom)
		require.GreaterOrEqual(t, z, domain.MinZoom)
	}
}

func TestZoomStepsRoundTrip(t *testing.T) {
	// Multiplicative stepping: equal in/out counts cancel while unclamped.
	z := 1.0
	for i := 0; i < 4; i++ {
		z = ZoomIn(z, 1.1)
	}
	for i := 0; i < 4; i++ {
		z = ZoomOut(z, 1.1)
	}
	assert.InDelta(t, 1.0, z, 1e-9)
}

func TestComputeScaleFitMode(t *testing.T) {
	// 800x600 viewport, 400x600 page: width allows 2x, height allows 1x.
	zoom := ComputeScale(domain.Size{W: 400, H: 600}, domain.Size{W: 800, H: 600}, true, 3.0)
	assert.Equal(t, 1.0, zoom)
}

func TestComputeScaleManual(t *testing.T) {
	zoom := ComputeScale(domain.Size{W: 400, H: 600}, domain.Size{W: 800, H: 600}, false, 2.5)
	assert.Equal(t, 2.5, zoom)
}

func TestComputeScaleFitClamped(t *testing.T) {
	// Tiny page in a huge viewport must clamp at max zoom.
	zoom := ComputeScale(domain.Size{W: 10, H: 10}, domain.Size{W: 1000, H: 1000}, true, 1.0)
	assert.Equal(t, domain.MaxZoom, zoom)
}

func TestSpreadPairing(t *testing.T) {
	// 5 pages pair as {0}, {1,2}, {3,4}.
	s := SpreadFor(0, 5)
	assert.Equal(t, 1, s.Count)
	assert.Equal(t, 0, s.Pages[0])

	for _, page := range []int{1, 2} {
		s = SpreadFor(page, 5)
		require.Equal(t, 2, s.Count)
		assert.Equal(t, 1, s.Pages[0])
		assert.Equal(t, 2, s.Pages[1])
	}

	for _, page := range []int{3, 4} {
		s = SpreadFor(page, 5)
		require.Equal(t, 2, s.Count)
		assert.Equal(t, 3, s.Pages[0])
		assert.Equal(t, 4, s.Pages[1])
	}
}

func TestSpreadTrailingPageAlone(t *testing.T) {
	// 4 pages: {0}, {1,2}, {3}.
	s := SpreadFor(3, 4)
	assert.Equal(t, 1, s.Count)
	assert.Equal(t, 3, s.Pages[0])
}

func TestSpreadSinglePageDocument(t *testing.T) {
	s := SpreadFor(0, 1)
	assert.Equal(t, 1, s.Count)
	assert.Equal(t, 0, s.Pages[0])
}

func TestSpreadNavigation(t *testing.T) {
	assert.Equal(t, 1, NextSpreadStart(0, 5))
	assert.Equal(t, 3, NextSpreadStart(1, 5))
	assert.Equal(t, 3, NextSpreadStart(2, 5))
	assert.Equal(t, 3, NextSpreadStart(4, 5)) // last spread stays put

	assert.Equal(t, 1, PrevSpreadStart(3, 5))
	assert.Equal(t, 0, PrevSpreadStart(1, 5))
	assert.Equal(t, 0, PrevSpreadStart(0, 5))
}

func fixedSize(w, h float64) NaturalSizeFunc {
	return func(int) domain.Size { return domain.Size{W: w, H: h} }
}

func TestComputeSinglePageCentered(t *testing.T) {
	// The fit scenario: 800x600 viewport, 400x600 page at zoom 1.
	res := Compute(0, 5, fixedSize(400, 600), 1.0, false, domain.Rotate0, domain.Size{W: 800, H: 600})
	require.Len(t, res.Placements, 1)

	r := res.Placements[0].Rect
	assert.Equal(t, 200.0, r.X)
	assert.Equal(t, 0.0, r.Y)
	assert.Equal(t, 400.0, r.W)
	assert.Equal(t, 600.0, r.H)
	assert.Equal(t, 0, res.Placements[0].Key.Page)
}

func TestComputeDualPagePlacement(t *testing.T) {
	res := Compute(3, 5, fixedSize(400, 600), 0.5, true, domain.Rotate0, domain.Size{W: 800, H: 600})
	require.Len(t, res.Placements, 2)

	left, right := res.Placements[0], res.Placements[1]
	assert.Equal(t, 3, left.Key.Page)
	assert.Equal(t, 4, right.Key.Page)

	// Pair centered: total width 200+12+200=412.
	assert.InDelta(t, (800.0-412.0)/2, left.Rect.X, 1e-9)
	assert.InDelta(t, left.Rect.X+200+PageGap, right.Rect.X, 1e-9)
	// Same height pages share the same top.
	assert.Equal(t, left.Rect.Y, right.Rect.Y)
}

func TestComputeDualUnevenHeightsCentered(t *testing.T) {
	sizes := map[int]domain.Size{1: {W: 400, H: 600}, 2: {W: 400, H: 400}}
	natural := func(p int) domain.Size { return sizes[p] }
	res := Compute(1, 5, natural, 1.0, true, domain.Rotate0, domain.Size{W: 1000, H: 800})
	require.Len(t, res.Placements, 2)

	taller, shorter := res.Placements[0].Rect, res.Placements[1].Rect
	// Shorter page vertically centered against the taller.
	assert.InDelta(t, taller.Y+(600-400)/2.0, shorter.Y, 1e-9)
}

func TestComputeRotationSwapsDimensions(t *testing.T) {
	res := Compute(0, 1, fixedSize(400, 600), 1.0, false, domain.Rotate90, domain.Size{W: 800, H: 800})
	require.Len(t, res.Placements, 1)
	assert.Equal(t, 600.0, res.Placements[0].Rect.W)
	assert.Equal(t, 400.0, res.Placements[0].Rect.H)
	assert.Equal(t, domain.Rotate90, res.Placements[0].Key.Rotation)
}

func TestClampScrollKeepsContentVisible(t *testing.T) {
	content := domain.Rect{X: 200, Y: 0, W: 400, H: 600}
	vp := domain.Size{W: 800, H: 600}

	// Scrolling far left stops when the content's right edge reaches x=0.
	x, _ := ClampScroll(-10000, 0, content, vp)
	assert.Equal(t, -(content.X + content.W), x)

	// Scrolling far right stops when the content's left edge reaches vp.W.
	x, _ = ClampScroll(10000, 0, content, vp)
	assert.Equal(t, vp.W-content.X, x)

	// Small offsets pass through.
	x, y := ClampScroll(5, -7, content, vp)
	assert.Equal(t, 5.0, x)
	assert.Equal(t, -7.0, y)
}
