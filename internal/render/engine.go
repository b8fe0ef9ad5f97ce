package render

import (
	"fmt"
	"image"

	"pageturn/internal/domain"
)

// Document is an open document session owned by a rendering engine.
// Implementations must allow RenderPage to be called off the frame thread.
type Document interface {
	// PageCount returns the number of pages, >= 0.
	PageCount() int
	// PageSize returns the natural (unscaled, unrotated) size of a page
	// in document units.
	PageSize(page int) domain.Size
	// RenderPage rasterizes one page at the given zoom and rotation.
	// The returned bitmap is owned by the caller and never mutated again.
	RenderPage(page int, zoom float64, rot domain.Rotation) (*image.RGBA, error)
	// Close releases the document. Render results completing after Close
	// are discarded by the cache, not by the engine.
	Close() error
}

// Engine opens documents. The synthetic engine ships with pageturn; real
// format engines plug in behind the same interface.
type Engine interface {
	Open(path string) (Document, error)
}

// RenderError reports a page that failed to rasterize. It is non-fatal:
// the cache stores nothing and the viewer shows a placeholder.
type RenderError struct {
	Page int
	Err  error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render page %d: %v", e.Page, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// OpenError reports a document that could not be opened. No viewer
// session is created for it.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("open %s: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }
