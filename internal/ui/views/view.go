package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"pageturn/internal/domain"
)

// Terminal cells are not square. These factors convert the pixel-space
// geometry the layout engine works in to character cells for the schematic.
const (
	CellWidth  = 8
	CellHeight = 16
)

// ChromeRows is the number of rows reserved around the canvas
// (title, slider, status).
const ChromeRows = 3

// PageState describes what the canvas should show inside a page box.
type PageState int

const (
	PageReady PageState = iota
	PagePending
	PageFailed
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width  int
	Height int

	DocPath     string
	PageCount   int
	SpreadPages []int
	ZoomPercent int
	FitMode     bool
	DualPage    bool
	RotationDeg int

	Placements []domain.Placement
	PageStates map[int]PageState
	ScrollX    float64
	ScrollY    float64

	Flipping     bool
	FlipProgress float64
	FlipForward  bool

	StatusMessage string
	ShowHelp      bool
	TextInput     string
	InputMode     string // "", "open" or "goto"
}

// Renderer handles all view rendering
type Renderer struct {
	styles *Styles
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{styles: NewStyles()}
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	width := state.Width
	if width <= 0 {
		width = 80
	}
	height := state.Height
	if height <= ChromeRows {
		height = 24
	}

	if state.ShowHelp {
		box := r.styles.HelpBox.Render(r.renderHelpContent())
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
	}

	var content strings.Builder
	content.WriteString(r.renderTitle(state, width))
	content.WriteString("\n")

	canvasHeight := height - ChromeRows
	if state.PageCount == 0 {
		content.WriteString(r.renderEmptyCanvas(width, canvasHeight))
	} else {
		content.WriteString(r.renderCanvas(state, width, canvasHeight))
	}
	content.WriteString("\n")

	content.WriteString(r.renderSlider(state, width))
	content.WriteString("\n")
	content.WriteString(r.renderStatus(state, width))

	return content.String()
}

func (r *Renderer) renderTitle(state ViewState, width int) string {
	logo := r.styles.Title.Render("pageturn")
	if state.DocPath == "" {
		return logo
	}

	doc := r.styles.Dim.Render(state.DocPath)
	pad := width - lipgloss.Width(logo) - lipgloss.Width(doc)
	if pad < 2 {
		pad = 2
	}
	return logo + strings.Repeat(" ", pad) + doc
}

func (r *Renderer) renderEmptyCanvas(width, height int) string {
	hint := r.styles.Dim.Render("No document open. Press o to open, q to quit.")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, hint)
}

// renderCanvas draws a schematic of the current page placements: one
// bordered box per visible page, positioned by the same geometry that
// drives the bitmap compositor.
func (r *Renderer) renderCanvas(state ViewState, width, height int) string {
	grid := make([][]rune, height)
	for y := range grid {
		grid[y] = make([]rune, width)
		for x := range grid[y] {
			grid[y][x] = ' '
		}
	}

	for _, p := range state.Placements {
		x0 := int((p.Rect.X + state.ScrollX) / CellWidth)
		y0 := int((p.Rect.Y + state.ScrollY) / CellHeight)
		x1 := int((p.Rect.X + state.ScrollX + p.Rect.W) / CellWidth)
		y1 := int((p.Rect.Y + state.ScrollY + p.Rect.H) / CellHeight)
		if x1 <= x0 {
			x1 = x0 + 1
		}
		if y1 <= y0 {
			y1 = y0 + 1
		}

		drawBox(grid, x0, y0, x1, y1)

		label := fmt.Sprintf("Page %d", p.Key.Page+1)
		switch state.PageStates[p.Key.Page] {
		case PagePending:
			label = fmt.Sprintf("Page %d …", p.Key.Page+1)
		case PageFailed:
			label = fmt.Sprintf("Page %d ✗", p.Key.Page+1)
		}
		drawLabel(grid, label, (x0+x1)/2, (y0+y1)/2)
	}

	if state.Flipping {
		arrow := "▶"
		if !state.FlipForward {
			arrow = "◀"
		}
		drawLabel(grid, fmt.Sprintf("%s %d%%", arrow, int(state.FlipProgress*100)), width/2, height/2)
	}

	lines := make([]string, height)
	for y := range grid {
		lines[y] = string(grid[y])
	}
	return strings.Join(lines, "\n")
}

func drawBox(grid [][]rune, x0, y0, x1, y1 int) {
	put := func(x, y int, ch rune) {
		if y >= 0 && y < len(grid) && x >= 0 && x < len(grid[y]) {
			grid[y][x] = ch
		}
	}
	for x := x0 + 1; x < x1; x++ {
		put(x, y0, '─')
		put(x, y1, '─')
	}
	for y := y0 + 1; y < y1; y++ {
		put(x0, y, '│')
		put(x1, y, '│')
	}
	put(x0, y0, '┌')
	put(x1, y0, '┐')
	put(x0, y1, '└')
	put(x1, y1, '┘')
}

func drawLabel(grid [][]rune, label string, cx, cy int) {
	runes := []rune(label)
	start := cx - len(runes)/2
	if cy < 0 || cy >= len(grid) {
		return
	}
	for i, ch := range runes {
		x := start + i
		if x >= 0 && x < len(grid[cy]) {
			grid[cy][x] = ch
		}
	}
}

// renderSlider draws the page position track. The knob sits proportionally
// to the current page so a click on the track maps back to a page number.
func (r *Renderer) renderSlider(state ViewState, width int) string {
	if state.PageCount <= 0 {
		return strings.Repeat(" ", width)
	}

	track := width - 2
	if track < 3 {
		track = 3
	}
	knob := 0
	if state.PageCount > 1 {
		page := 0
		if len(state.SpreadPages) > 0 {
			page = state.SpreadPages[0]
		}
		knob = page * (track - 1) / (state.PageCount - 1)
	}

	var b strings.Builder
	b.WriteString(r.styles.Slider.Render("├"))
	for i := 0; i < track; i++ {
		if i == knob {
			b.WriteString(r.styles.SliderKnob.Render("●"))
		} else {
			b.WriteString(r.styles.Slider.Render("─"))
		}
	}
	b.WriteString(r.styles.Slider.Render("┤"))
	return b.String()
}

// SliderRowIndex reports which terminal row the slider occupies.
func SliderRowIndex(height int) int {
	return height - 2
}

// SliderTarget maps a click column on the slider row to a page number.
func SliderTarget(x, width, pageCount int) int {
	if pageCount <= 1 {
		return 0
	}
	track := width - 2
	if track < 3 {
		track = 3
	}
	pos := x - 1
	if pos < 0 {
		pos = 0
	}
	if pos > track-1 {
		pos = track - 1
	}
	return pos * (pageCount - 1) / (track - 1)
}

func (r *Renderer) renderStatus(state ViewState, width int) string {
	if state.InputMode == "open" {
		return r.styles.Prompt.Render("Open: ") + state.TextInput
	}
	if state.InputMode == "goto" {
		return r.styles.Prompt.Render("Page: ") + state.TextInput
	}

	if state.PageCount == 0 {
		if state.StatusMessage != "" {
			return r.styles.StatusError.Render(state.StatusMessage)
		}
		return r.styles.Help.Render("Press ? for help")
	}

	pages := ""
	switch len(state.SpreadPages) {
	case 1:
		pages = fmt.Sprintf("Page %d/%d", state.SpreadPages[0]+1, state.PageCount)
	case 2:
		pages = fmt.Sprintf("Pages %d-%d/%d", state.SpreadPages[0]+1, state.SpreadPages[1]+1, state.PageCount)
	}

	parts := []string{pages, fmt.Sprintf("%d%%", state.ZoomPercent)}
	if state.FitMode {
		parts = append(parts, "fit")
	}
	if state.DualPage {
		parts = append(parts, "dual")
	}
	if state.RotationDeg != 0 {
		parts = append(parts, fmt.Sprintf("rot %d°", state.RotationDeg))
	}
	left := r.styles.Status.Render(strings.Join(parts, "  "))

	right := r.styles.Help.Render("? help")
	if state.StatusMessage != "" {
		right = r.styles.StatusError.Render(state.StatusMessage)
	}

	pad := width - lipgloss.Width(left) - lipgloss.Width(right)
	if pad < 2 {
		pad = 2
	}
	return left + strings.Repeat(" ", pad) + right
}

// renderHelpContent renders the help information
func (r *Renderer) renderHelpContent() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	var help strings.Builder

	help.WriteString(titleStyle.Render("PageTurn Help"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Navigation"))
	help.WriteString("\n")
	help.WriteString(fmt.Sprintf("  %s  %s\n", keyStyle.Render("←/→, h/l"), descStyle.Render("Flip page backward/forward")))
	help.WriteString(fmt.Sprintf("  %s    %s\n", keyStyle.Render("PgUp/PgDn"), descStyle.Render("Flip backward/forward")))
	help.WriteString(fmt.Sprintf("  %s     %s\n", keyStyle.Render("Home/End"), descStyle.Render("First/last page")))
	help.WriteString(fmt.Sprintf("  %s  %s\n", keyStyle.Render("↑/↓, k/j"), descStyle.Render("Scroll the view")))
	help.WriteString(fmt.Sprintf("  %s            %s\n", keyStyle.Render("g"), descStyle.Render("Go to page number")))

	help.WriteString(sectionStyle.Render("View"))
	help.WriteString("\n")
	help.WriteString(fmt.Sprintf("  %s          %s\n", keyStyle.Render("+/-"), descStyle.Render("Zoom in/out")))
	help.WriteString(fmt.Sprintf("  %s            %s\n", keyStyle.Render("f"), descStyle.Render("Toggle fit-to-window")))
	help.WriteString(fmt.Sprintf("  %s            %s\n", keyStyle.Render("d"), descStyle.Render("Toggle dual-page spread")))
	help.WriteString(fmt.Sprintf("  %s            %s\n", keyStyle.Render("r"), descStyle.Render("Rotate 90° clockwise")))

	help.WriteString(sectionStyle.Render("Document"))
	help.WriteString("\n")
	help.WriteString(fmt.Sprintf("  %s            %s\n", keyStyle.Render("o"), descStyle.Render("Open document")))
	help.WriteString(fmt.Sprintf("  %s            %s\n", keyStyle.Render("w"), descStyle.Render("Close document")))

	help.WriteString(sectionStyle.Render("Other"))
	help.WriteString("\n")
	help.WriteString(fmt.Sprintf("  %s            %s\n", keyStyle.Render("?"), descStyle.Render("Toggle this help")))
	help.WriteString(fmt.Sprintf("  %s            %s", keyStyle.Render("q"), descStyle.Render("Quit")))

	return help.String()
}
