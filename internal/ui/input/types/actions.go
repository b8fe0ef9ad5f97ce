package types

import "pageturn/internal/domain"

// Navigation actions
type FlipPageAction struct {
	Direction domain.Direction
}

func (a FlipPageAction) Type() string { return "flip_page" }

type GoToPageAction struct {
	Page int // zero-based
}

func (a GoToPageAction) Type() string { return "go_to_page" }

type ScrollAction struct {
	DX, DY float64
}

func (a ScrollAction) Type() string { return "scroll" }

// Zoom and layout actions
type ZoomInAction struct{}

func (a ZoomInAction) Type() string { return "zoom_in" }

type ZoomOutAction struct{}

func (a ZoomOutAction) Type() string { return "zoom_out" }

type ToggleFitAction struct{}

func (a ToggleFitAction) Type() string { return "toggle_fit" }

type ToggleDualAction struct{}

func (a ToggleDualAction) Type() string { return "toggle_dual" }

type RotateAction struct{}

func (a RotateAction) Type() string { return "rotate" }

// Document actions
type OpenDocumentAction struct {
	Path string
}

func (a OpenDocumentAction) Type() string { return "open_document" }

type CloseDocumentAction struct{}

func (a CloseDocumentAction) Type() string { return "close_document" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
	Data interface{} // Optional data for the mode
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Text input actions
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

type SubmitTextAction struct {
	Text string
	Mode Mode // Which mode submitted the text
}

func (a SubmitTextAction) Type() string { return "submit_text" }

type CancelTextAction struct{}

func (a CancelTextAction) Type() string { return "cancel_text" }

// UI actions
type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type QuitAction struct {
	Force bool
}

func (a QuitAction) Type() string { return "quit" }
