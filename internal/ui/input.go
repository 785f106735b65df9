package ui

import (
	"unicode"

	"github.com/teskalabs/asab-console/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (m *Model) updateFilterCursorModel(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.filterCursor, cmd = m.filterCursor.Update(msg)
	return cmd
}

func (m *Model) noteFilterCursorChange(sb *sidebar, before int) {
	if sb == nil {
		return
	}
	if before != sb.FilterCursorPos() {
		m.filterCursorDirty = true
	}
}

// handleTextInput feeds printable keys into the sidebar filter. It
// reports whether the key was consumed.
func (m *Model) handleTextInput(msg tea.KeyMsg) bool {
	if m.loading {
		return false
	}
	sb := m.activeSidebar()
	if sb == nil {
		return false
	}
	switch msg.String() {
	case "ctrl+u":
		if sb.Filter == "" {
			return false
		}
		before := sb.FilterCursorPos()
		sb.SetFilter("", 0)
		m.noteFilterCursorChange(sb, before)
		m.forceClearInfo()
		m.errMsg = ""
		events.Filter.Cleared()
		m.syncViewport(sb)
		return true
	case "ctrl+w":
		before := sb.FilterCursorPos()
		if !sb.DeleteFilterWordBackward() {
			return false
		}
		m.noteFilterCursorChange(sb, before)
		m.forceClearInfo()
		m.errMsg = ""
		events.Filter.WordBackspace(sb.Filter)
		m.syncViewport(sb)
		return true
	case "ctrl+a":
		before := sb.FilterCursorPos()
		if !sb.MoveFilterCursorStart() {
			return false
		}
		m.noteFilterCursorChange(sb, before)
		events.Filter.Cursor(sb.FilterCursor)
		return true
	}
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyCtrlH:
		return m.removeFilterRune()
	case tea.KeyRunes:
		if msg.Alt {
			return false
		}
		if len(msg.Runes) == 0 {
			return false
		}
		for _, r := range msg.Runes {
			if unicode.IsControl(r) {
				return false
			}
			if unicode.IsSpace(r) {
				// the dedicated space handler manages spaces
				return false
			}
		}
		return m.appendToFilter(string(msg.Runes))
	case tea.KeySpace:
		return m.appendToFilter(" ")
	case tea.KeyLeft:
		before := sb.FilterCursorPos()
		if !sb.MoveFilterCursorRuneBackward() {
			return false
		}
		m.noteFilterCursorChange(sb, before)
		events.Filter.Cursor(sb.FilterCursor)
		return true
	case tea.KeyRight:
		before := sb.FilterCursorPos()
		if !sb.MoveFilterCursorRuneForward() {
			return false
		}
		m.noteFilterCursorChange(sb, before)
		events.Filter.Cursor(sb.FilterCursor)
		return true
	}
	return false
}

func (m *Model) appendToFilter(text string) bool {
	if text == "" {
		return false
	}
	sb := m.activeSidebar()
	if sb == nil {
		return false
	}
	before := sb.FilterCursorPos()
	if !sb.InsertFilterText(text) {
		return false
	}
	m.noteFilterCursorChange(sb, before)
	m.forceClearInfo()
	m.errMsg = ""
	events.Filter.Append(sb.Filter)
	m.syncViewport(sb)
	return true
}

func (m *Model) removeFilterRune() bool {
	sb := m.activeSidebar()
	if sb == nil {
		return false
	}
	before := sb.FilterCursorPos()
	if !sb.DeleteFilterRuneBackward() {
		return false
	}
	m.noteFilterCursorChange(sb, before)
	m.forceClearInfo()
	m.errMsg = ""
	events.Filter.Backspace(sb.Filter)
	m.syncViewport(sb)
	return true
}

func (m *Model) filterPrompt() string {
	sb := m.activeSidebar()
	if sb == nil {
		return ""
	}
	render := func(style *lipgloss.Style, value string) string {
		if style == nil || value == "" {
			return value
		}
		return style.Render(value)
	}
	if styles.Cursor != nil {
		m.filterCursor.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		m.filterCursor.TextStyle = styles.Filter.Copy()
	} else {
		m.filterCursor.TextStyle = lipgloss.Style{}
	}
	prompt := "» "
	if styles.FilterPrompt != nil {
		prompt = styles.FilterPrompt.Render(prompt)
	}
	text := sb.Filter
	if text == "" {
		placeholder := "(type to search)"
		runes := []rune(placeholder)
		var caretRune string
		var rest string
		if len(runes) > 0 {
			caretRune = string(runes[0])
			rest = string(runes[1:])
		}
		if styles.FilterPlaceholder != nil {
			m.filterCursor.TextStyle = styles.FilterPlaceholder.Copy()
		}
		caret := m.renderFilterCursor(caretRune)
		return prompt + caret + render(styles.FilterPlaceholder, rest)
	}
	runes := []rune(text)
	pos := sb.FilterCursorPos()
	if pos < 0 {
		pos = 0
	}
	if pos > len(runes) {
		pos = len(runes)
	}
	before := render(styles.Filter, string(runes[:pos]))
	var caretRune string
	if pos < len(runes) {
		caretRune = string(runes[pos])
	} else {
		caretRune = " "
	}
	caret := m.renderFilterCursor(caretRune)
	var after string
	if pos < len(runes) {
		after = render(styles.Filter, string(runes[pos+1:]))
	}
	return prompt + before + caret + after
}

func (m *Model) renderFilterCursor(char string) string {
	if char == "" {
		char = " "
	}
	m.filterCursor.SetChar(char)

	base := m.filterCursor.TextStyle.Copy()
	base = base.Inline(true)

	if m.filterCursor.Blink {
		return base.Render(char)
	}

	if styles.Cursor != nil {
		cursorStyle := styles.Cursor.Copy().Inline(true)
		base = base.Inherit(cursorStyle).Blink(false)
		return base.Render(char)
	}

	return base.Reverse(true).Render(char)
}
