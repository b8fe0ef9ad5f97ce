package ui

import (
	"fmt"
	"image"
	"log"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"pageturn/internal/anim"
	"pageturn/internal/cache"
	"pageturn/internal/compose"
	"pageturn/internal/config"
	"pageturn/internal/domain"
	"pageturn/internal/eventbus"
	"pageturn/internal/layout"
	"pageturn/internal/render"
	"pageturn/internal/ui/input"
	inputtypes "pageturn/internal/ui/input/types"
	"pageturn/internal/ui/views"
	"pageturn/internal/viewer"
)

const statusTimeout = 3 * time.Second

type Model struct {
	bus       eventbus.EventBus
	config    *config.Config
	engine    render.Engine
	renderSvc render.Service
	presenter Presenter

	// UI-specific state
	width  int
	height int

	renderer     *views.Renderer
	inputHandler *input.Handler

	// Session state for the open document; nil when nothing is open
	docPath string
	doc     render.Document
	state   *viewer.State
	pages   *cache.PageCache
	flip    *anim.Controller

	pending map[domain.RenderKey]bool
	failed  map[domain.RenderKey]bool

	showHelp      bool
	statusMessage string
	lastTick      time.Time
	dragging      bool
	panning       bool
	panX, panY    int
	dirty         bool
}

// NewModel creates a new UI model
func NewModel(bus eventbus.EventBus, cfg *config.Config, engine render.Engine, renderSvc render.Service, presenter Presenter) *Model {
	if presenter == nil {
		presenter = nopPresenter{}
	}
	return &Model{
		bus:          bus,
		config:       cfg,
		engine:       engine,
		renderSvc:    renderSvc,
		presenter:    presenter,
		renderer:     views.NewRenderer(),
		inputHandler: input.New(),
		flip:         anim.NewController(time.Duration(cfg.FlipDurationMs)*time.Millisecond, compose.FlipBlend),
		pending:      make(map[domain.RenderKey]bool),
		failed:       make(map[domain.RenderKey]bool),
	}
}

// OpenInitial opens a document before the program starts, so the first
// frame already shows it. Failures surface in the status bar only.
func (m *Model) OpenInitial(path string) {
	if path == "" {
		return
	}
	m.openDocument(path)
}

func (m *Model) Init() tea.Cmd {
	return m.tickCmd()
}

func (m *Model) tickCmd() tea.Cmd {
	fps := m.config.TargetFPS
	if fps <= 0 {
		fps = 30
	}
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.state != nil {
			m.state.SetViewport(m.pixelViewport())
			m.requestVisible()
			m.dirty = true
		}

	case tea.KeyMsg:
		if m.showHelp {
			switch msg.String() {
			case "esc", "?", "q":
				m.showHelp = false
			}
			return m, nil
		}

		ctx := input.ModelContext{
			State:    m.state,
			Flipping: m.flip.Phase() == anim.Flipping,
		}

		actions, cmd := m.inputHandler.HandleKey(msg, ctx)

		cmds := []tea.Cmd{}
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		for _, action := range actions {
			if actionCmd := m.processAction(action); actionCmd != nil {
				cmds = append(cmds, actionCmd)
			}
		}
		return m, tea.Batch(cmds...)

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case tickMsg:
		m.handleTick(time.Time(msg))
		return m, m.tickCmd()

	case EventMsg:
		return m, m.handleEvent(msg.Event)

	case clearStatusMsg:
		m.statusMessage = ""

	default:
		if cmd := m.inputHandler.Update(msg); cmd != nil {
			return m, cmd
		}
	}

	return m, nil
}

func (m *Model) handleTick(now time.Time) {
	dt := time.Duration(0)
	if !m.lastTick.IsZero() {
		dt = now.Sub(m.lastTick)
	}
	m.lastTick = now

	if m.state == nil {
		return
	}

	if m.flip.Phase() == anim.Flipping {
		committed, done := m.flip.Tick(dt)
		if done {
			m.state.GoToPage(committed)
			m.requestVisible()
		}
		m.dirty = true
	}

	if m.dirty {
		if frame := m.composeFrame(); frame != nil {
			m.presenter.Present(frame)
		}
		m.dirty = false
	}
}

func (m *Model) handleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch ev := event.(type) {
	case eventbus.PageRenderedEvent:
		if m.pages == nil || ev.Generation != m.pages.Generation() {
			return nil
		}
		delete(m.pending, ev.Key)
		delete(m.failed, ev.Key)
		m.dirty = true

	case eventbus.RenderFailedEvent:
		delete(m.pending, ev.Key)
		if !ev.Prefetch {
			m.failed[ev.Key] = true
			m.dirty = true
		}

	case eventbus.DocumentOpenFailedEvent:
		return m.setStatus(fmt.Sprintf("cannot open %s: %v", ev.Path, ev.Err))

	case eventbus.ErrorEvent:
		return m.setStatus(ev.Message)
	}
	return nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.state == nil {
		return nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.state.ScrollBy(0, scrollWheelStep)
		m.dirty = true
		return nil
	case tea.MouseButtonWheelDown:
		m.state.ScrollBy(0, -scrollWheelStep)
		m.dirty = true
		return nil
	}

	sliderRow := views.SliderRowIndex(m.height)

	switch msg.Action {
	case tea.MouseActionPress:
		switch {
		case msg.Button == tea.MouseButtonLeft && msg.Y == sliderRow:
			m.dragging = true
			m.dragTo(msg.X)
		case msg.Button == tea.MouseButtonMiddle:
			m.panning = true
			m.panX, m.panY = msg.X, msg.Y
		}
	case tea.MouseActionMotion:
		switch {
		case m.dragging:
			m.dragTo(msg.X)
		case m.panning:
			m.state.ScrollBy(
				float64((msg.X-m.panX)*views.CellWidth),
				float64((msg.Y-m.panY)*views.CellHeight),
			)
			m.panX, m.panY = msg.X, msg.Y
			m.dirty = true
		}
	case tea.MouseActionRelease:
		m.panning = false
		if m.dragging {
			m.dragging = false
			// One flip to wherever the knob landed.
			m.flipToPage(views.SliderTarget(msg.X, m.width, m.state.PageCount))
		}
	}
	return nil
}

const scrollWheelStep = 32.0

// dragTo moves the current page instantly while the knob is held; the
// animated flip fires once on release.
func (m *Model) dragTo(x int) {
	page := views.SliderTarget(x, m.width, m.state.PageCount)
	if page != m.state.CurrentPage && m.flip.Phase() != anim.Flipping {
		m.state.GoToPage(page)
		m.requestVisible()
		m.dirty = true
	}
}

func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.FlipPageAction:
		m.startFlip(a.Direction)

	case inputtypes.GoToPageAction:
		m.flipToPage(a.Page)

	case inputtypes.ScrollAction:
		if m.state != nil {
			m.state.ScrollBy(a.DX, a.DY)
			m.dirty = true
		}

	case inputtypes.ZoomInAction:
		if m.state != nil {
			m.state.ZoomIn()
			m.requestVisible()
			m.dirty = true
		}

	case inputtypes.ZoomOutAction:
		if m.state != nil {
			m.state.ZoomOut()
			m.requestVisible()
			m.dirty = true
		}

	case inputtypes.ToggleFitAction:
		if m.state != nil {
			m.state.ToggleFit()
			m.requestVisible()
			m.dirty = true
		}

	case inputtypes.ToggleDualAction:
		if m.state != nil {
			m.state.ToggleDual()
			m.requestVisible()
			m.dirty = true
		}

	case inputtypes.RotateAction:
		m.rotate()

	case inputtypes.OpenDocumentAction:
		m.openDocument(a.Path)

	case inputtypes.CloseDocumentAction:
		m.closeDocument()

	case inputtypes.SubmitTextAction:
		return m.submitText(a)

	case inputtypes.ToggleHelpAction:
		m.showHelp = !m.showHelp

	case inputtypes.QuitAction:
		m.closeDocument()
		return tea.Quit
	}
	return nil
}

func (m *Model) submitText(a inputtypes.SubmitTextAction) tea.Cmd {
	text := strings.TrimSpace(a.Text)
	switch a.Mode {
	case inputtypes.ModeOpenFile:
		if text != "" {
			m.openDocument(text)
		}
	case inputtypes.ModeGotoPage:
		n, err := strconv.Atoi(text)
		if err != nil || m.state == nil {
			return m.setStatus(fmt.Sprintf("not a page number: %q", text))
		}
		// One-based on the prompt, zero-based inside.
		m.flipToPage(n - 1)
	}
	return nil
}

func (m *Model) rotate() {
	if m.state == nil {
		return
	}
	m.flip.Cancel()
	m.state.RotateClockwise()

	rot := m.state.Rotation
	m.pages.Invalidate(func(k domain.RenderKey) bool {
		return k.Rotation != rot
	})
	m.bus.Publish(eventbus.CacheInvalidatedEvent{Remaining: m.pages.Len()})

	m.pending = make(map[domain.RenderKey]bool)
	m.failed = make(map[domain.RenderKey]bool)
	m.requestVisible()
	m.dirty = true
}

// startFlip begins an animated page turn. A flip already in progress is
// retargeted from its in-flight destination, keeping the shown motion
// continuous.
func (m *Model) startFlip(dir domain.Direction) {
	if m.state == nil {
		return
	}
	base := m.state.CurrentPage
	if m.flip.Phase() == anim.Flipping {
		base = m.flip.TargetPage()
	}
	target := m.state.NavTargetFrom(base, dir)
	if target == base {
		return
	}
	m.beginFlip(base, target, dir)
}

// flipToPage animates a single flip straight to an absolute page.
func (m *Model) flipToPage(page int) {
	if m.state == nil {
		return
	}
	if page < 0 {
		page = 0
	}
	if page >= m.state.PageCount {
		page = m.state.PageCount - 1
	}
	base := m.state.CurrentPage
	if m.flip.Phase() == anim.Flipping {
		base = m.flip.TargetPage()
	}
	if page == base {
		return
	}
	dir := domain.Forward
	if page < base {
		dir = domain.Backward
	}
	m.beginFlip(base, page, dir)
}

func (m *Model) beginFlip(base, target int, dir domain.Direction) {
	src := m.pageBitmap(base)
	tgt := m.pageBitmap(target)
	m.flip.Start(dir, base, target, src, tgt)

	// Warm the cache around where we are heading.
	m.prefetchAround(target)
	m.dirty = true
}

// pageBitmap returns the cached bitmap for a page at the current zoom and
// rotation, rendering synchronously on a miss. Render failures degrade to
// a placeholder sheet.
func (m *Model) pageBitmap(page int) *image.RGBA {
	key := m.state.KeyFor(page)
	if bmp, ok := m.pages.Get(key); ok {
		return bmp
	}
	bmp, err := m.pages.GetOrRender(key)
	if err != nil {
		log.Printf("render %s failed: %v", key, err)
		m.failed[key] = true
		w, h := m.placementDims(page)
		return render.Placeholder(w, h)
	}
	return bmp
}

func (m *Model) placementDims(page int) (int, int) {
	lay := m.state.LayoutFor(page)
	for _, p := range lay.Placements {
		if p.Key.Page == page {
			return int(p.Rect.W), int(p.Rect.H)
		}
	}
	return int(lay.Content.W), int(lay.Content.H)
}

// requestVisible queues renders for every page placed in the current
// layout and prefetches the neighbouring spread pages.
func (m *Model) requestVisible() {
	if m.state == nil || m.pages == nil {
		return
	}
	gen := m.pages.Generation()
	for _, p := range m.state.Layout().Placements {
		if _, ok := m.pages.Get(p.Key); ok {
			continue
		}
		if !m.pending[p.Key] {
			m.pending[p.Key] = true
			m.bus.Publish(eventbus.RenderRequestedEvent{Key: p.Key, Generation: gen})
		}
	}
	m.prefetchAround(m.state.CurrentPage)
}

func (m *Model) prefetchAround(page int) {
	if m.state == nil || m.pages == nil {
		return
	}
	gen := m.pages.Generation()
	for _, n := range []int{page - 1, page + 1} {
		if n < 0 || n >= m.state.PageCount {
			continue
		}
		key := m.state.KeyFor(n)
		if _, ok := m.pages.Get(key); ok {
			continue
		}
		m.bus.Publish(eventbus.RenderRequestedEvent{Key: key, Generation: gen, Prefetch: true})
	}
}

func (m *Model) openDocument(path string) {
	m.closeDocument()

	doc, err := m.engine.Open(path)
	if err != nil {
		log.Printf("open %s: %v", path, err)
		m.bus.Publish(eventbus.DocumentOpenFailedEvent{Path: path, Err: err})
		m.statusMessage = fmt.Sprintf("cannot open %s: %v", path, err)
		return
	}
	if doc.PageCount() == 0 {
		doc.Close()
		m.statusMessage = fmt.Sprintf("%s has no pages", path)
		return
	}

	pages, err := cache.New(m.config.CacheCapacity, func(key domain.RenderKey) (*image.RGBA, error) {
		return doc.RenderPage(key.Page, domain.BucketZoom(key.ZoomBucket), key.Rotation)
	})
	if err != nil {
		doc.Close()
		log.Printf("cache init: %v", err)
		m.statusMessage = fmt.Sprintf("cannot open %s: %v", path, err)
		return
	}

	m.docPath = path
	m.doc = doc
	m.pages = pages
	m.state = viewer.New(doc.PageCount(), doc.PageSize, m.pixelViewport(), m.config.ZoomStep)
	m.state.FitMode = m.config.ViewDefaults.FitMode
	m.state.DualPage = m.config.ViewDefaults.DualPage
	m.pending = make(map[domain.RenderKey]bool)
	m.failed = make(map[domain.RenderKey]bool)

	m.renderSvc.SetSession(pages)
	m.bus.Publish(eventbus.DocumentOpenedEvent{Path: path, PageCount: doc.PageCount()})

	m.requestVisible()
	m.statusMessage = ""
	m.dirty = true
}

func (m *Model) closeDocument() {
	if m.doc == nil {
		return
	}
	m.flip.Cancel()
	m.renderSvc.SetSession(nil)
	if err := m.doc.Close(); err != nil {
		log.Printf("close %s: %v", m.docPath, err)
	}
	m.bus.Publish(eventbus.DocumentClosedEvent{Path: m.docPath})

	m.docPath = ""
	m.doc = nil
	m.state = nil
	m.pages = nil
	m.pending = make(map[domain.RenderKey]bool)
	m.failed = make(map[domain.RenderKey]bool)
	m.dirty = false
}

func (m *Model) pixelViewport() domain.Size {
	w := m.width
	if w <= 0 {
		w = 80
	}
	h := m.height
	if h <= views.ChromeRows {
		h = 24
	}
	return domain.Size{
		W: float64(w * views.CellWidth),
		H: float64((h - views.ChromeRows) * views.CellHeight),
	}
}

// composeFrame renders the bitmap the presenter sees: the flip blend while
// animating, otherwise the placed pages over the canvas background.
func (m *Model) composeFrame() *image.RGBA {
	if m.state == nil {
		return nil
	}
	lay := m.state.Layout()

	var items []compose.Item
	if frame := m.flip.Frame(); frame != nil {
		items = append(items, compose.Item{Bitmap: frame, Rect: lay.Content})
	} else {
		for _, p := range lay.Placements {
			bmp, ok := m.pages.Get(p.Key)
			if !ok {
				bmp = render.Placeholder(int(p.Rect.W), int(p.Rect.H))
			}
			r := p.Rect
			r.X += m.state.ScrollX
			r.Y += m.state.ScrollY
			items = append(items, compose.Item{Bitmap: bmp, Rect: r})
		}
	}
	return compose.Frame(m.state.Viewport, items)
}

func (m *Model) setStatus(msg string) tea.Cmd {
	m.statusMessage = msg
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

// View renders the UI
func (m *Model) View() string {
	vs := views.ViewState{
		Width:         m.width,
		Height:        m.height,
		StatusMessage: m.statusMessage,
		ShowHelp:      m.showHelp,
	}

	switch m.inputHandler.CurrentMode() {
	case inputtypes.ModeOpenFile:
		vs.InputMode = "open"
	case inputtypes.ModeGotoPage:
		vs.InputMode = "goto"
	}
	if ti := m.inputHandler.TextInput(); ti != nil {
		vs.TextInput = ti.Value()
	}

	if m.state != nil {
		lay := m.state.Layout()
		vs.DocPath = m.docPath
		vs.PageCount = m.state.PageCount
		vs.ZoomPercent = m.state.ZoomPercent()
		vs.FitMode = m.state.FitMode
		vs.DualPage = m.state.DualPage
		vs.RotationDeg = int(m.state.Rotation)
		vs.Placements = lay.Placements
		vs.ScrollX = m.state.ScrollX
		vs.ScrollY = m.state.ScrollY

		if m.state.DualPage {
			sp := layout.SpreadFor(m.state.CurrentPage, m.state.PageCount)
			vs.SpreadPages = append(vs.SpreadPages, sp.Pages[:sp.Count]...)
		} else {
			vs.SpreadPages = []int{m.state.CurrentPage}
		}

		vs.PageStates = make(map[int]views.PageState, len(lay.Placements))
		for _, p := range lay.Placements {
			switch {
			case m.failed[p.Key]:
				vs.PageStates[p.Key.Page] = views.PageFailed
			case m.pending[p.Key]:
				vs.PageStates[p.Key.Page] = views.PagePending
			}
		}

		if m.flip.Phase() == anim.Flipping {
			vs.Flipping = true
			vs.FlipProgress = m.flip.Progress()
			vs.FlipForward = m.flip.Direction() == domain.Forward
		}
	}

	return m.renderer.Render(vs)
}
