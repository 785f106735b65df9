package ui

import tea "github.com/charmbracelet/bubbletea"

// startConfirm switches to the y/n modal. The accept callback runs on
// "y"; declining falls back to the supplied mode.
func (m *Model) startConfirm(prompt string, decline Mode, accept func() tea.Cmd) {
	m.confirm = confirmState{prompt: prompt, accept: accept, decline: decline}
	m.mode = ModeConfirm
}

func (m *Model) handleConfirmKey(keyMsg tea.KeyMsg) tea.Cmd {
	switch keyMsg.String() {
	case "ctrl+c":
		return tea.Quit
	case "y", "Y", "enter":
		accept := m.confirm.accept
		m.confirm = confirmState{}
		m.mode = ModeBrowse
		if accept == nil {
			return nil
		}
		return accept()
	case "n", "N", "esc":
		decline := m.confirm.decline
		m.confirm = confirmState{}
		m.mode = decline
		return nil
	}
	return nil
}
