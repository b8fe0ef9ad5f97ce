package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title       lipgloss.Style
	Dim         lipgloss.Style
	Status      lipgloss.Style
	StatusError lipgloss.Style
	Prompt      lipgloss.Style
	Help        lipgloss.Style
	HelpBox     lipgloss.Style
	PageBorder  lipgloss.Style
	PageLabel   lipgloss.Style
	PagePending lipgloss.Style
	PageFailed  lipgloss.Style
	Slider      lipgloss.Style
	SliderKnob  lipgloss.Style
	Flip        lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Dim:    lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		StatusError: lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")),
		Prompt: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Help:   lipgloss.NewStyle().Faint(true),
		HelpBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(1).
			BorderForeground(lipgloss.Color("241")),
		PageBorder:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		PageLabel:   lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		PagePending: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		PageFailed:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Slider:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		SliderKnob:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		Flip:        lipgloss.NewStyle().Foreground(lipgloss.Color("51")),
	}
}
