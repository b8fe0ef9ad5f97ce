package ui

import (
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
)

// Presenter receives each composed frame. The terminal view is a schematic;
// the presenter is where the real bitmaps go.
type Presenter interface {
	Present(frame *image.RGBA)
}

// nopPresenter drops frames.
type nopPresenter struct{}

func (nopPresenter) Present(*image.RGBA) {}

// frameDump writes every presented frame as a numbered PNG. Useful for
// inspecting flip animation output and for driving the e2e suite.
type frameDump struct {
	dir string
	seq int
}

// NewPresenter returns a frame-dumping presenter when dir is non-empty,
// otherwise a no-op.
func NewPresenter(dir string) Presenter {
	if dir == "" {
		return nopPresenter{}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Printf("warn: cannot create dump dir %s: %v", dir, err)
		return nopPresenter{}
	}
	return &frameDump{dir: dir}
}

func (d *frameDump) Present(frame *image.RGBA) {
	if frame == nil {
		return
	}
	path := filepath.Join(d.dir, fmt.Sprintf("frame-%05d.png", d.seq))
	d.seq++

	f, err := os.Create(path)
	if err != nil {
		log.Printf("warn: frame dump: %v", err)
		return
	}
	defer f.Close()
	if err := png.Encode(f, frame); err != nil {
		log.Printf("warn: frame dump encode: %v", err)
	}
}
