package input

import (
	"pageturn/internal/viewer"
)

// ModelContext adapts viewer state to the input Context interface.
type ModelContext struct {
	State    *viewer.State
	Flipping bool
}

func (c ModelContext) HasDocument() bool {
	return c.State != nil && c.State.PageCount > 0
}

func (c ModelContext) CurrentPage() int {
	if c.State == nil {
		return 0
	}
	return c.State.CurrentPage
}

func (c ModelContext) PageCount() int {
	if c.State == nil {
		return 0
	}
	return c.State.PageCount
}

func (c ModelContext) DualPage() bool {
	return c.State != nil && c.State.DualPage
}

func (c ModelContext) FitMode() bool {
	return c.State != nil && c.State.FitMode
}

func (c ModelContext) ZoomPercent() int {
	if c.State == nil {
		return 100
	}
	return c.State.ZoomPercent()
}

func (c ModelContext) IsFlipping() bool {
	return c.Flipping
}
