package render

import (
	"fmt"
	"image"
	"image/draw"
	"strconv"
	"strings"

	"github.com/gogpu/gg"

	"pageturn/internal/domain"
)

// SynthScheme is the path prefix recognized by the synthetic engine:
// "synth:12" opens a twelve-page document with default page size,
// "synth:12:400x600" overrides the natural page size.
const SynthScheme = "synth:"

const (
	defaultSynthPages  = 12
	defaultSynthWidth  = 400.0
	defaultSynthHeight = 600.0
)

// SynthEngine renders deterministic vector pages with gg's software
// renderer. It exists so pageturn runs and can be exercised end to end
// without a document format engine.
type SynthEngine struct{}

// NewSynthEngine returns the built-in synthetic engine.
func NewSynthEngine() *SynthEngine { return &SynthEngine{} }

// Open parses a synth: path. Anything else is rejected so a future
// format engine can claim it.
func (e *SynthEngine) Open(path string) (Document, error) {
	if !strings.HasPrefix(path, SynthScheme) {
		return nil, &OpenError{Path: path, Err: fmt.Errorf("not a synthetic document")}
	}
	pages := defaultSynthPages
	size := domain.Size{W: defaultSynthWidth, H: defaultSynthHeight}

	parts := strings.Split(strings.TrimPrefix(path, SynthScheme), ":")
	if parts[0] != "" {
		n, err := strconv.Atoi(parts[0])
		if err != nil || n < 0 {
			return nil, &OpenError{Path: path, Err: fmt.Errorf("bad page count %q", parts[0])}
		}
		pages = n
	}
	if len(parts) > 1 {
		w, h, ok := strings.Cut(parts[1], "x")
		pw, errW := strconv.ParseFloat(w, 64)
		ph, errH := strconv.ParseFloat(h, 64)
		if !ok || errW != nil || errH != nil || pw <= 0 || ph <= 0 {
			return nil, &OpenError{Path: path, Err: fmt.Errorf("bad page size %q", parts[1])}
		}
		size = domain.Size{W: pw, H: ph}
	}

	return &synthDoc{pages: pages, size: size}, nil
}

type synthDoc struct {
	pages int
	size  domain.Size
}

func (d *synthDoc) PageCount() int { return d.pages }

func (d *synthDoc) PageSize(page int) domain.Size { return d.size }

func (d *synthDoc) Close() error { return nil }

// RenderPage draws a page frame, ruled "text" lines and a dot motif whose
// count encodes the page number, all scaled by zoom and rotated.
func (d *synthDoc) RenderPage(page int, zoom float64, rot domain.Rotation) (*image.RGBA, error) {
	if page < 0 || page >= d.pages {
		return nil, &RenderError{Page: page, Err: fmt.Errorf("page out of range [0,%d)", d.pages)}
	}
	sz := d.size.Rotated(rot)
	w := int(sz.W*zoom + 0.5)
	h := int(sz.H*zoom + 0.5)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dc := gg.NewContext(w, h)
	dc.ClearWithColor(gg.White)

	fw, fh := float64(w), float64(h)
	margin := 0.08 * fw

	// Page border
	dc.SetRGB(0.45, 0.45, 0.5)
	dc.SetLineWidth(maxf(1, 0.006*fw))
	dc.DrawRectangle(margin/2, margin/2, fw-margin, fh-margin)
	dc.Stroke()

	// Ruled lines standing in for text
	dc.SetRGB(0.75, 0.78, 0.82)
	dc.SetLineWidth(maxf(1, 0.004*fh))
	lines := 14
	for i := 0; i < lines; i++ {
		y := margin + (fh-2*margin)*float64(i+1)/float64(lines+1)
		right := fw - margin
		if i%4 == 3 {
			// Short paragraph-ending line
			right = margin + (fw-2*margin)*0.6
		}
		dc.DrawLine(margin, y, right, y)
		dc.Stroke()
	}

	// Dot motif near the top encodes page+1, capped to one row
	dots := page + 1
	if dots > 10 {
		dots = 10
	}
	r := 0.018 * fw
	dc.SetRGB(0.23, 0.45, 0.78)
	for i := 0; i < dots; i++ {
		dc.DrawCircle(margin+float64(i)*3*r+r, margin*0.75, r)
		dc.Fill()
	}

	// Corner fold on odd pages so facing pages differ visibly
	if page%2 == 1 {
		dc.SetRGB(0.85, 0.87, 0.9)
		dc.MoveTo(fw-margin*1.5, margin/2)
		dc.LineTo(fw-margin/2, margin/2)
		dc.LineTo(fw-margin/2, margin*1.5)
		dc.ClosePath()
		dc.Fill()
	}

	return toRGBA(dc.Image()), nil
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
