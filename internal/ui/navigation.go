package ui

import (
	"fmt"
	"strings"

	"github.com/teskalabs/asab-console/internal/api"
	"github.com/teskalabs/asab-console/internal/library"
	"github.com/teskalabs/asab-console/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch m.mode {
	case ModeConfirm:
		return m.handleConfirmKey(keyMsg)
	case ModeHelp:
		return m.handleHelpKey(keyMsg)
	case ModeBrowse:
		return m.handleBrowseKey(keyMsg)
	}
	return nil
}

func (m *Model) handleBrowseKey(keyMsg tea.KeyMsg) tea.Cmd {
	if m.handleTextInput(keyMsg) {
		return nil
	}
	switch keyMsg.String() {
	case "ctrl+c", "q":
		return tea.Quit
	case "esc":
		return m.handleEscapeKey()
	case "enter":
		return m.handleEnterKey()
	case "up":
		m.moveCursorUp()
	case "down":
		m.moveCursorDown()
	case "pgup":
		m.moveCursorPageUp()
	case "pgdown":
		m.moveCursorPageDown()
	case "home":
		m.moveCursorHome()
	case "end":
		m.moveCursorEnd()
	case "f1":
		return m.openHelp()
	case "ctrl+e":
		return m.beginEdit()
	case "ctrl+d":
		return m.beginDisableToggle()
	case "ctrl+r":
		if m.backend != nil {
			m.backend.Refresh()
		}
	case "ctrl+g":
		return m.navigate("/")
	}
	return nil
}

// handleEscapeKey clears the filter first; with no filter it walks
// back towards the home screen.
func (m *Model) handleEscapeKey() tea.Cmd {
	if sb := m.activeSidebar(); sb != nil && sb.Filter != "" {
		before := sb.FilterCursorPos()
		sb.SetFilter("", 0)
		m.noteFilterCursorChange(sb, before)
		events.Filter.Cleared()
		m.syncViewport(sb)
		return nil
	}
	if m.currentPath == "/" {
		return tea.Quit
	}
	m.errMsg = ""
	m.forceClearInfo()
	if sb := m.activeSidebar(); sb != nil {
		if _, ok := m.params["path"]; ok {
			return m.navigate(sb.URLPrefix())
		}
	}
	return m.navigate("/")
}

func (m *Model) handleEnterKey() tea.Cmd {
	if m.loading {
		return nil
	}
	sb := m.activeSidebar()
	if sb == nil {
		return m.enterNavItem()
	}
	row, ok := sb.Current()
	if !ok {
		return nil
	}
	events.UI.TreeSelect(row.Key, row.Type.String())
	before := sb.FilterCursorPos()
	sb.SetFilter("", 0)
	m.noteFilterCursorChange(sb, before)
	outcome := sb.Select(row.Key)
	if row.Type == library.Folder {
		events.UI.TreeToggle(row.Key, sb.IsOpen(row.Key))
	}
	m.syncViewport(sb)
	if !outcome.Navigate {
		return nil
	}
	return m.navigate(outcome.URL)
}

// enterNavItem activates the highlighted entry of the home menu.
func (m *Model) enterNavItem() tea.Cmd {
	items := m.visibleNavItems()
	if len(items) == 0 {
		return nil
	}
	if m.navCursor < 0 || m.navCursor >= len(items) {
		m.navCursor = 0
	}
	item := items[m.navCursor]
	url := item.URL
	if url == "" && len(item.Children) > 0 {
		url = item.Children[0].URL
	}
	if url == "" {
		return nil
	}
	events.UI.MenuEnter(item.Name, url)
	return m.navigate(url)
}

func (m *Model) beginEdit() tea.Cmd {
	if m.loading {
		return nil
	}
	if m.buffer.Path() == "" || m.buffer.Loading() {
		return nil
	}
	if m.buffer.Disabled() == api.ItemDisabled {
		m.setInfo("Item is disabled; enable it before editing.")
		return nil
	}
	if err := m.buffer.BeginEdit(); err != nil {
		m.errMsg = err.Error()
		return nil
	}
	m.mode = ModeEdit
	m.errMsg = ""
	m.forceClearInfo()
	m.textarea.SetValue(m.buffer.Working())
	return m.textarea.Focus()
}

func (m *Model) handleEditKey(keyMsg tea.KeyMsg) tea.Cmd {
	switch keyMsg.String() {
	case "ctrl+c":
		return tea.Quit
	case "esc":
		return m.requestCancelEdit()
	case "ctrl+s":
		return m.requestSave()
	}
	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(keyMsg)
	if err := m.buffer.Edit(m.textarea.Value()); err != nil {
		m.errMsg = err.Error()
	}
	return cmd
}

// requestSave persists the working copy. Saving an unchanged buffer
// only leaves edit mode.
func (m *Model) requestSave() tea.Cmd {
	if m.loading {
		return nil
	}
	if !m.buffer.Dirty() {
		m.mode = ModeBrowse
		// working already matches pristine; Cancel only restores the
		// read-only state.
		m.buffer.Cancel()
		m.textarea.Blur()
		m.setInfo("No changes to save.")
		return nil
	}
	m.loading = true
	m.pendingOp = fmt.Sprintf("Saving %s", m.buffer.Path())
	m.errMsg = ""
	m.forceClearInfo()
	m.textarea.Blur()
	return m.saveItemCmd(m.buffer.Generation(), m.buffer.Path(), m.buffer.Working())
}

// requestCancelEdit leaves edit mode, asking first when edits would be
// lost.
func (m *Model) requestCancelEdit() tea.Cmd {
	if !m.buffer.Dirty() {
		m.buffer.Cancel()
		m.textarea.Blur()
		m.mode = ModeBrowse
		return nil
	}
	path := m.buffer.Path()
	m.startConfirm(fmt.Sprintf("Discard changes to %s?", path), ModeEdit, func() tea.Cmd {
		m.buffer.Cancel()
		m.textarea.Blur()
		events.Editor.Cancelled(path)
		return m.loadItemCmd(m.buffer.Generation(), path)
	})
	return nil
}

// beginDisableToggle asks for confirmation, then flips the remote
// disabled flag of the shown item.
func (m *Model) beginDisableToggle() tea.Cmd {
	if m.loading {
		return nil
	}
	path := m.buffer.Path()
	if path == "" || m.buffer.Loading() {
		return nil
	}
	disable := m.buffer.Disabled() != api.ItemDisabled
	verb := "Disable"
	if !disable {
		verb = "Enable"
	}
	gen := m.buffer.Generation()
	m.startConfirm(fmt.Sprintf("%s %s?", verb, path), ModeBrowse, func() tea.Cmd {
		m.loading = true
		m.pendingOp = fmt.Sprintf("%s %s", verb, path)
		return m.toggleDisabledCmd(gen, path, disable)
	})
	return nil
}

func (m *Model) moveCursorUp() {
	if sb := m.activeSidebar(); sb != nil {
		if n := len(sb.Items); n > 0 {
			if sb.Cursor > 0 {
				sb.Cursor--
			} else {
				sb.Cursor = n - 1
			}
			m.traceCursor(sb)
			m.syncViewport(sb)
		}
		return
	}
	if items := m.visibleNavItems(); len(items) > 0 {
		if m.navCursor > 0 {
			m.navCursor--
		} else {
			m.navCursor = len(items) - 1
		}
	}
}

func (m *Model) moveCursorDown() {
	if sb := m.activeSidebar(); sb != nil {
		if n := len(sb.Items); n > 0 {
			if sb.Cursor < n-1 {
				sb.Cursor++
			} else {
				sb.Cursor = 0
			}
			m.traceCursor(sb)
			m.syncViewport(sb)
		}
		return
	}
	if items := m.visibleNavItems(); len(items) > 0 {
		if m.navCursor < len(items)-1 {
			m.navCursor++
		} else {
			m.navCursor = 0
		}
	}
}

func (m *Model) moveCursorPageUp() {
	if sb := m.activeSidebar(); sb != nil {
		if moved := sb.MoveCursorPageUp(m.maxVisibleRows()); moved {
			m.traceCursor(sb)
		}
		m.syncViewport(sb)
	}
}

func (m *Model) moveCursorPageDown() {
	if sb := m.activeSidebar(); sb != nil {
		if moved := sb.MoveCursorPageDown(m.maxVisibleRows()); moved {
			m.traceCursor(sb)
		}
		m.syncViewport(sb)
	}
}

func (m *Model) moveCursorHome() {
	if sb := m.activeSidebar(); sb != nil {
		if moved := sb.MoveCursorHome(); moved {
			m.traceCursor(sb)
		}
		m.syncViewport(sb)
	}
}

func (m *Model) moveCursorEnd() {
	if sb := m.activeSidebar(); sb != nil {
		if moved := sb.MoveCursorEnd(); moved {
			m.traceCursor(sb)
		}
		m.syncViewport(sb)
	}
}

func (m *Model) traceCursor(sb *sidebar) {
	if row, ok := sb.Current(); ok {
		events.UI.TreeCursor(row.Key, sb.Cursor)
	}
}

func (m *Model) syncViewport(sb *sidebar) {
	if sb == nil {
		return
	}
	sb.EnsureCursorVisible(m.maxVisibleRows())
}

// helpTopicForRoute maps the current screen to a remote help topic.
func (m *Model) helpTopicForRoute() string {
	name := strings.TrimSpace(m.route.Name)
	if name == "" {
		name = "Home"
	}
	return name
}
