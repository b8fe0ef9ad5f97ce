// Package anim drives the page-flip animation as an explicit state
// machine advanced by injected time deltas. It never reads a clock, so
// tests can feed synthetic ticks.
package anim

import (
	"image"
	"time"

	"pageturn/internal/domain"
)

// DefaultFlipDuration is the wall time one uninterrupted flip takes.
const DefaultFlipDuration = 300 * time.Millisecond

// Phase of the controller.
type Phase int

const (
	Idle Phase = iota
	Flipping
)

// BlendFunc composes the interpolated flip frame from the source and
// target bitmaps at an eased weight in [0,1]; direction only affects the
// skew sign. Provided by the compositing layer.
type BlendFunc func(source, target *image.RGBA, eased float64, dir domain.Direction) *image.RGBA

// Controller interpolates between two already-rendered frames during page
// navigation. Both bitmaps are resolved before Start, so a flip never
// begins with a blank target.
type Controller struct {
	phase    Phase
	dir      domain.Direction
	progress float64
	duration time.Duration
	blend    BlendFunc

	sourcePage int
	targetPage int
	source     *image.RGBA
	target     *image.RGBA
}

// NewController creates an idle controller. duration <= 0 uses
// DefaultFlipDuration.
func NewController(duration time.Duration, blend BlendFunc) *Controller {
	if duration <= 0 {
		duration = DefaultFlipDuration
	}
	return &Controller{duration: duration, blend: blend}
}

// Start begins a flip from sourcePage toward targetPage. If a flip is
// already in progress it is cancelled, not queued: the new flip starts
// from the interpolated frame currently on screen, so rapid repeated
// navigation never freezes or jumps backward visually.
func (c *Controller) Start(dir domain.Direction, sourcePage, targetPage int, source, target *image.RGBA) {
	if c.phase == Flipping {
		source = c.Frame()
		sourcePage = c.sourcePage
	}
	c.phase = Flipping
	c.dir = dir
	c.progress = 0
	c.sourcePage = sourcePage
	c.targetPage = targetPage
	c.source = source
	c.target = target
}

// Cancel abandons any flip without committing, e.g. when the document
// closes mid-animation.
func (c *Controller) Cancel() {
	c.phase = Idle
	c.progress = 0
	c.source = nil
	c.target = nil
}

// Tick advances the flip by dt. Progress is monotonically non-decreasing
// within one flip and clamped to 1. When it reaches 1 the controller
// returns to Idle and reports the page to commit; the viewer's current
// page changes only then.
func (c *Controller) Tick(dt time.Duration) (committed int, done bool) {
	if c.phase != Flipping {
		return 0, false
	}
	c.progress += float64(dt) / float64(c.duration)
	if c.progress < 1 {
		return 0, false
	}
	c.progress = 1
	c.phase = Idle
	target := c.targetPage
	c.source = nil
	c.target = nil
	return target, true
}

// Frame returns the interpolated composite for the current progress.
// Outside a flip it returns nil.
func (c *Controller) Frame() *image.RGBA {
	if c.phase != Flipping || c.blend == nil {
		return nil
	}
	return c.blend(c.source, c.target, c.Eased(), c.dir)
}

// Eased maps progress through the ease-out curve 1-(1-p)^2.
func (c *Controller) Eased() float64 {
	p := c.progress
	return 1 - (1-p)*(1-p)
}

// Phase returns the current phase.
func (c *Controller) Phase() Phase { return c.phase }

// Progress returns raw (un-eased) progress in [0,1].
func (c *Controller) Progress() float64 { return c.progress }

// Direction returns the flip direction; meaningful only while Flipping.
func (c *Controller) Direction() domain.Direction { return c.dir }

// TargetPage returns the destination page; meaningful only while Flipping.
func (c *Controller) TargetPage() int { return c.targetPage }
