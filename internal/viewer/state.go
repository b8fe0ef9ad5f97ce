// Package viewer holds the authoritative mutable state of one document
// session. All mutation goes through the transition methods; every
// transition validates against current bounds before writing.
package viewer

import (
	"pageturn/internal/domain"
	"pageturn/internal/layout"
)

// State is the single viewer-state record for the open document. One
// instance exists per session and it is only touched from the frame
// thread, so it carries no locking.
type State struct {
	PageCount   int
	CurrentPage int
	Zoom        float64
	FitMode     bool
	DualPage    bool
	Rotation    domain.Rotation
	ScrollX     float64
	ScrollY     float64
	Viewport    domain.Size

	natural  layout.NaturalSizeFunc
	zoomStep float64
}

// New creates session state for a document. zoomStep <= 1 falls back to
// the classic 1.25 step.
func New(pageCount int, natural layout.NaturalSizeFunc, viewport domain.Size, zoomStep float64) *State {
	if zoomStep <= 1 {
		zoomStep = 1.25
	}
	s := &State{
		PageCount: pageCount,
		Zoom:      1.0,
		FitMode:   true,
		Viewport:  viewport,
		natural:   natural,
		zoomStep:  zoomStep,
	}
	s.refitZoom()
	return s
}

// GoToPage clamps n into [0, PageCount) and jumps there, resetting scroll.
// Out-of-bounds requests are not an error.
func (s *State) GoToPage(n int) {
	if s.PageCount <= 0 {
		return
	}
	if n < 0 {
		n = 0
	}
	if n >= s.PageCount {
		n = s.PageCount - 1
	}
	s.CurrentPage = n
	s.ScrollX, s.ScrollY = 0, 0
}

// NavTarget returns the destination page for a navigation step without
// committing it; the animation controller commits once the flip finishes.
// Dual-page mode steps whole spreads.
func (s *State) NavTarget(dir domain.Direction) int {
	return s.NavTargetFrom(s.CurrentPage, dir)
}

// NavTargetFrom computes the same step from an arbitrary base page. An
// interrupted flip retargets from its in-flight destination, not from
// the still-uncommitted current page.
func (s *State) NavTargetFrom(base int, dir domain.Direction) int {
	if s.PageCount <= 0 {
		return 0
	}
	if s.DualPage {
		if dir == domain.Forward {
			return layout.NextSpreadStart(base, s.PageCount)
		}
		return layout.PrevSpreadStart(base, s.PageCount)
	}
	target := base + int(dir)
	if target < 0 {
		target = 0
	}
	if target >= s.PageCount {
		target = s.PageCount - 1
	}
	return target
}

// SetZoom switches to manual zoom, clamped.
func (s *State) SetZoom(z float64) {
	s.FitMode = false
	s.Zoom = layout.ClampZoom(z)
}

// ZoomIn steps the zoom up multiplicatively and leaves fit mode.
func (s *State) ZoomIn() {
	s.FitMode = false
	s.Zoom = layout.ZoomIn(s.Zoom, s.zoomStep)
}

// ZoomOut steps the zoom down multiplicatively and leaves fit mode.
func (s *State) ZoomOut() {
	s.FitMode = false
	s.Zoom = layout.ZoomOut(s.Zoom, s.zoomStep)
}

// ToggleFit flips fit mode. Turning it on derives the zoom from the
// viewport immediately; the derived value tracks later viewport changes
// via SetViewport.
func (s *State) ToggleFit() {
	s.FitMode = !s.FitMode
	if s.FitMode {
		s.refitZoom()
		s.ScrollX, s.ScrollY = 0, 0
	}
}

// ToggleDual flips dual-page mode. Layout follows on the next frame; no
// animation is triggered.
func (s *State) ToggleDual() {
	s.DualPage = !s.DualPage
	s.ScrollX, s.ScrollY = 0, 0
}

// RotateClockwise advances the global rotation a quarter turn. The caller
// invalidates the page cache: rotation is part of every render key.
func (s *State) RotateClockwise() {
	s.Rotation = s.Rotation.Next()
	if s.FitMode {
		s.refitZoom()
	}
}

// SetViewport records a new viewport size and re-derives the zoom in fit
// mode.
func (s *State) SetViewport(size domain.Size) {
	s.Viewport = size
	if s.FitMode {
		s.refitZoom()
	}
}

// ScrollBy adjusts the scroll offset, clamped so the laid-out content
// never leaves the viewport entirely.
func (s *State) ScrollBy(dx, dy float64) {
	content := s.Layout().Content
	s.ScrollX, s.ScrollY = layout.ClampScroll(s.ScrollX+dx, s.ScrollY+dy, content, s.Viewport)
}

// Layout computes the placement of the current spread from this state.
func (s *State) Layout() domain.LayoutResult {
	return layout.Compute(s.CurrentPage, s.PageCount, s.natural, s.Zoom, s.DualPage, s.Rotation, s.Viewport)
}

// LayoutFor computes placements for an arbitrary page with the current
// zoom and modes; the animation controller uses it for flip targets.
func (s *State) LayoutFor(page int) domain.LayoutResult {
	return layout.Compute(page, s.PageCount, s.natural, s.Zoom, s.DualPage, s.Rotation, s.Viewport)
}

// KeyFor builds the render key a page resolves to under current state.
func (s *State) KeyFor(page int) domain.RenderKey {
	return domain.KeyFor(page, s.Zoom, s.Rotation)
}

// ZoomPercent reports the zoom for chrome display, in [20, 600].
func (s *State) ZoomPercent() int {
	return int(s.Zoom*100 + 0.5)
}

func (s *State) refitZoom() {
	if s.PageCount <= 0 {
		return
	}
	n := s.natural(s.CurrentPage).Rotated(s.Rotation)
	s.Zoom = layout.ComputeScale(n, s.Viewport, true, s.Zoom)
}
