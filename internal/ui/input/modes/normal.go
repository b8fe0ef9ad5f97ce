package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"pageturn/internal/domain"
	"pageturn/internal/ui/input/types"
)

const scrollStep = 48.0

type NormalMode struct{}

func NewNormalMode() *NormalMode {
	return &NormalMode{}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil // No special actions on enter
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil // No special actions on exit
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return []types.Action{types.QuitAction{Force: true}}, true

	case tea.KeyEsc:
		// In normal mode, Esc doesn't do anything
		return nil, false

	case tea.KeyRight:
		if ctx.HasDocument() {
			return []types.Action{types.FlipPageAction{Direction: domain.Forward}}, true
		}
		return nil, false

	case tea.KeyLeft:
		if ctx.HasDocument() {
			return []types.Action{types.FlipPageAction{Direction: domain.Backward}}, true
		}
		return nil, false

	case tea.KeyPgDown, tea.KeySpace:
		if ctx.HasDocument() {
			return []types.Action{types.FlipPageAction{Direction: domain.Forward}}, true
		}
		return nil, false

	case tea.KeyPgUp:
		if ctx.HasDocument() {
			return []types.Action{types.FlipPageAction{Direction: domain.Backward}}, true
		}
		return nil, false

	case tea.KeyHome:
		if ctx.HasDocument() {
			return []types.Action{types.GoToPageAction{Page: 0}}, true
		}
		return nil, false

	case tea.KeyEnd:
		if ctx.HasDocument() {
			return []types.Action{types.GoToPageAction{Page: ctx.PageCount() - 1}}, true
		}
		return nil, false

	case tea.KeyUp:
		if ctx.HasDocument() {
			return []types.Action{types.ScrollAction{DY: scrollStep}}, true
		}
		return nil, false

	case tea.KeyDown:
		if ctx.HasDocument() {
			return []types.Action{types.ScrollAction{DY: -scrollStep}}, true
		}
		return nil, false
	}

	// Handle string keys
	switch msg.String() {
	case "l":
		if ctx.HasDocument() {
			return []types.Action{types.FlipPageAction{Direction: domain.Forward}}, true
		}
		return nil, false

	case "h":
		if ctx.HasDocument() {
			return []types.Action{types.FlipPageAction{Direction: domain.Backward}}, true
		}
		return nil, false

	case "j":
		if ctx.HasDocument() {
			return []types.Action{types.ScrollAction{DY: -scrollStep}}, true
		}
		return nil, false

	case "k":
		if ctx.HasDocument() {
			return []types.Action{types.ScrollAction{DY: scrollStep}}, true
		}
		return nil, false

	case "+", "=":
		if ctx.HasDocument() {
			return []types.Action{types.ZoomInAction{}}, true
		}
		return nil, false

	case "-", "_":
		if ctx.HasDocument() {
			return []types.Action{types.ZoomOutAction{}}, true
		}
		return nil, false

	case "f":
		if ctx.HasDocument() {
			return []types.Action{types.ToggleFitAction{}}, true
		}
		return nil, false

	case "d":
		if ctx.HasDocument() {
			return []types.Action{types.ToggleDualAction{}}, true
		}
		return nil, false

	case "r":
		if ctx.HasDocument() {
			return []types.Action{types.RotateAction{}}, true
		}
		return nil, false

	case "g":
		if ctx.HasDocument() {
			return []types.Action{types.ChangeModeAction{Mode: types.ModeGotoPage}}, true
		}
		return nil, false

	case "o", "ctrl+o":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeOpenFile}}, true

	case "w":
		if ctx.HasDocument() {
			return []types.Action{types.CloseDocumentAction{}}, true
		}
		return nil, false

	case "?":
		return []types.Action{types.ToggleHelpAction{}}, true

	case "q":
		return []types.Action{types.QuitAction{}}, true
	}

	return nil, false
}
