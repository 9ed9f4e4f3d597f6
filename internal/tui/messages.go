package tui

import (
	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ---------------------------------------------------------------------------
// ELM messages
// ---------------------------------------------------------------------------

// widthSavedMsg reports the outcome of persisting a committed width.
type widthSavedMsg struct {
	section uuid.UUID
	width   int
	err     error
}

// ---------------------------------------------------------------------------
// ELM commands
// ---------------------------------------------------------------------------

// applyCommits moves widths committed by controllers into the report and
// returns the commands that persist them.
func (m *Model) applyCommits() tea.Cmd {
	commits := m.host.takeCommits()
	if len(commits) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(commits))
	for _, c := range commits {
		if err := m.rep.SetWidth(c.section, c.width); err != nil {
			log.Error().Err(err).Msg("apply committed width")
			continue
		}
		cmds = append(cmds, m.saveWidthCmd(c))
	}
	return tea.Batch(cmds...)
}

// saveWidthCmd persists one commit. The host's WaitGroup tracks it so quit
// can wait for in-flight writes.
func (m *Model) saveWidthCmd(c commit) tea.Cmd {
	if m.store == nil {
		return nil
	}
	store, ctx, h := m.store, m.ctx, m.host
	h.inflight.Add(1)
	return func() tea.Msg {
		defer h.inflight.Done()
		err := store.UpdateSectionWidth(ctx, c.section, c.width)
		return widthSavedMsg{section: c.section, width: c.width, err: err}
	}
}

// quitCmd tears down controllers, waits for pending writes, then quits.
func (m *Model) quitCmd() tea.Cmd {
	m.closeAll()
	h, cancel := m.host, m.cancel
	return func() tea.Msg {
		h.inflight.Wait()
		cancel()
		return tea.Quit()
	}
}
