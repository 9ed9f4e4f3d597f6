package tui

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/exp/golden"
	"github.com/xonecas/dvlayout/internal/report"
)

func TestCanvasGolden(t *testing.T) {
	quietLogs(t)
	m := New(Options{Report: report.Demo(), SnapPoints: report.AllowedWidths})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 102, Height: 40})
	m = updated.(Model)

	styled, plain := m.renderCanvas()
	for i := range styled {
		if got := ansi.Strip(styled[i]); got != plain[i] {
			t.Fatalf("line %d: styled and plain differ\n%q\n%q", i, got, plain[i])
		}
	}
	golden.RequireEqual(t, []byte(strings.Join(plain, "\n")))
}
