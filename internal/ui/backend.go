package ui

import (
	"github.com/teskalabs/asab-console/internal/backend"
	"github.com/teskalabs/asab-console/internal/library"
	"github.com/teskalabs/asab-console/internal/logging"
	"github.com/teskalabs/asab-console/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

func waitForBackendEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	m.applyBackendEvent(eventMsg.event)
	if m.backend != nil {
		return waitForBackendEvent(m.backend)
	}
	return nil
}

func (m *Model) handleBackendDoneMsg(msg tea.Msg) tea.Cmd {
	m.backend = nil
	return nil
}

// applyBackendEvent rebuilds the sidebar trees from a fresh listing.
// A malformed listing keeps the previous tree on screen; only the
// warning line changes.
func (m *Model) applyBackendEvent(evt backend.Event) {
	if evt.Err != nil {
		m.backendErr = evt.Err.Error()
		return
	}
	root, err := library.Build(evt.Records)
	if err != nil {
		m.backendErr = err.Error()
		logging.Error(err)
		return
	}
	m.backendErr = ""
	m.library.SetRoot(root)
	m.config.SetRoot(root.Subtree(configSubtree))
	events.UI.TreeRebuilt(len(evt.Records), len(m.library.Items))

	if sb := m.activeSidebar(); sb != nil {
		sb.SyncFromRoute(m.currentPath, openAllThreshold)
		m.syncViewport(sb)
	}
}
