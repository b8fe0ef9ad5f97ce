package modes

import (
	"github.com/charmbracelet/bubbles/textinput"

	"pageturn/internal/ui/input/types"
)

type GotoPageMode struct {
	TextInputMode
}

func NewGotoPageMode(ti *textinput.Model) *GotoPageMode {
	return &GotoPageMode{
		TextInputMode: NewTextInputMode(types.ModeGotoPage, "goto", "Page: ", ti),
	}
}
