package viewer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pageturn/internal/domain"
)

func newTestState(pages int) *State {
	natural := func(int) domain.Size { return domain.Size{W: 400, H: 600} }
	return New(pages, natural, domain.Size{W: 800, H: 600}, 1.25)
}

func TestNewDerivesFitZoom(t *testing.T) {
	s := newTestState(5)
	// min(800/400, 600/600) = 1.0
	assert.True(t, s.FitMode)
	assert.Equal(t, 1.0, s.Zoom)
	assert.Equal(t, 0, s.CurrentPage)
}

func TestGoToPageClamps(t *testing.T) {
	s := newTestState(5)

	s.GoToPage(99)
	assert.Equal(t, 4, s.CurrentPage)

	s.GoToPage(-3)
	assert.Equal(t, 0, s.CurrentPage)

	s.GoToPage(2)
	assert.Equal(t, 2, s.CurrentPage)
}

func TestZoomStepsLeaveFitMode(t *testing.T) {
	s := newTestState(5)
	s.ZoomIn()
	assert.False(t, s.FitMode)
	assert.InDelta(t, 1.25, s.Zoom, 1e-9)

	s.ZoomOut()
	assert.InDelta(t, 1.0, s.Zoom, 1e-9)
}

func TestSetZoomClamps(t *testing.T) {
	s := newTestState(5)
	s.SetZoom(50)
	assert.Equal(t, domain.MaxZoom, s.Zoom)
	s.SetZoom(0.001)
	assert.Equal(t, domain.MinZoom, s.Zoom)
}

func TestToggleFitRecomputesZoom(t *testing.T) {
	s := newTestState(5)
	s.SetZoom(3.0)
	require.False(t, s.FitMode)

	s.ToggleFit()
	assert.True(t, s.FitMode)
	assert.Equal(t, 1.0, s.Zoom)
}

func TestFitZoomTracksViewport(t *testing.T) {
	s := newTestState(5)
	s.SetViewport(domain.Size{W: 400, H: 300})
	// min(400/400, 300/600) = 0.5
	assert.Equal(t, 0.5, s.Zoom)
}

func TestNavTargetSinglePage(t *testing.T) {
	s := newTestState(5)
	s.GoToPage(2)
	assert.Equal(t, 3, s.NavTarget(domain.Forward))
	assert.Equal(t, 1, s.NavTarget(domain.Backward))

	s.GoToPage(4)
	assert.Equal(t, 4, s.NavTarget(domain.Forward))
	s.GoToPage(0)
	assert.Equal(t, 0, s.NavTarget(domain.Backward))
}

func TestNavTargetDualStepsSpreads(t *testing.T) {
	s := newTestState(5)
	s.ToggleDual()

	// Cover -> first pair.
	assert.Equal(t, 1, s.NavTarget(domain.Forward))

	// From page 1 (spread {1,2}) forward lands on 3, the first page of
	// spread {3,4}.
	s.GoToPage(1)
	assert.Equal(t, 3, s.NavTarget(domain.Forward))

	s.GoToPage(3)
	assert.Equal(t, 1, s.NavTarget(domain.Backward))
	s.GoToPage(1)
	assert.Equal(t, 0, s.NavTarget(domain.Backward))
}

func TestToggleDualResetsScrollNotPage(t *testing.T) {
	s := newTestState(5)
	s.GoToPage(3)
	s.ScrollBy(10, 10)
	s.ToggleDual()
	assert.Equal(t, 3, s.CurrentPage)
	assert.Equal(t, 0.0, s.ScrollX)
	assert.Equal(t, 0.0, s.ScrollY)
}

func TestScrollClamped(t *testing.T) {
	s := newTestState(5)
	s.ScrollBy(-1e6, 0)
	content := s.Layout().Content
	// Content's right edge stays at or right of the viewport's left edge.
	assert.GreaterOrEqual(t, content.X+content.W+s.ScrollX, 0.0)

	s.ScrollX = 0
	s.ScrollBy(1e6, 0)
	assert.LessOrEqual(t, content.X+s.ScrollX, s.Viewport.W)
}

func TestRotateAffectsKeysAndFit(t *testing.T) {
	s := newTestState(5)
	k0 := s.KeyFor(0)
	s.RotateClockwise()
	k90 := s.KeyFor(0)
	assert.NotEqual(t, k0, k90)
	assert.Equal(t, domain.Rotate90, s.Rotation)
	// Rotated 600x400 page in 800x600 viewport: min(800/600, 600/400) = 4/3.
	assert.InDelta(t, 800.0/600.0, s.Zoom, 1e-9)
}

func TestZoomPercent(t *testing.T) {
	s := newTestState(5)
	s.SetZoom(1.5)
	assert.Equal(t, 150, s.ZoomPercent())
}
