package modes

import (
	"github.com/charmbracelet/bubbles/textinput"

	"pageturn/internal/ui/input/types"
)

type OpenFileMode struct {
	TextInputMode
}

func NewOpenFileMode(ti *textinput.Model) *OpenFileMode {
	return &OpenFileMode{
		TextInputMode: NewTextInputMode(types.ModeOpenFile, "open", "Open: ", ti),
	}
}
