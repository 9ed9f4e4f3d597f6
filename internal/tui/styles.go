package tui

import (
	"charm.land/lipgloss/v2"
	"github.com/xonecas/dvlayout/internal/tui/modal"
)

var (
	ColorBg        = lipgloss.Color("#161821")
	ColorFg        = lipgloss.Color("#c6c8d1")
	ColorDim       = lipgloss.Color("#6b7089")
	ColorBorder    = lipgloss.Color("#3e445e")
	ColorAccent    = lipgloss.Color("#84a0c6") // selected section
	ColorHighlight = lipgloss.Color("#e2a478") // live drag handle
	ColorError     = lipgloss.Color("#e27878")
	ColorSelection = lipgloss.Color("#2e3244")
)

// Styles is the set of lipgloss styles the view draws with.
type Styles struct {
	Header     lipgloss.Style
	Text       lipgloss.Style
	Muted      lipgloss.Style
	Border     lipgloss.Style
	Selected   lipgloss.Style
	Handle     lipgloss.Style
	HandleLive lipgloss.Style
	Preview    lipgloss.Style
	StatusText lipgloss.Style
	Error      lipgloss.Style
	Selection  lipgloss.Style
	BgFill     lipgloss.Style
}

func defaultStyles() Styles {
	base := lipgloss.NewStyle().Background(ColorBg)
	return Styles{
		Header:     base.Foreground(ColorFg).Bold(true),
		Text:       base.Foreground(ColorFg),
		Muted:      base.Foreground(ColorDim),
		Border:     base.Foreground(ColorBorder),
		Selected:   base.Foreground(ColorAccent),
		Handle:     base.Foreground(ColorBorder),
		HandleLive: base.Foreground(ColorHighlight).Bold(true),
		Preview:    base.Foreground(ColorHighlight),
		StatusText: base.Foreground(ColorDim),
		Error:      base.Foreground(ColorError),
		Selection:  lipgloss.NewStyle().Background(ColorSelection).Foreground(ColorFg),
		BgFill:     base,
	}
}

var modalColors = modal.Colors{
	Fg:     "#c6c8d1",
	Bg:     "#1e2132",
	Dim:    "#6b7089",
	SelFg:  "#161821",
	SelBg:  "#84a0c6",
	Border: "#3e445e",
}
