package ui

import (
	"strings"

	"github.com/teskalabs/asab-console/internal/format/table"
	tea "github.com/charmbracelet/bubbletea"
)

var helpBindings = [][]string{
	{"↑/↓", "move"},
	{"enter", "open folder / show item"},
	{"esc", "clear filter / go back"},
	{"ctrl+e", "edit the shown item"},
	{"ctrl+s", "save (while editing)"},
	{"ctrl+d", "disable or enable the shown item"},
	{"ctrl+r", "refresh the library listing"},
	{"ctrl+u", "clear the filter"},
	{"ctrl+g", "go to the home screen"},
	{"f1", "this help"},
	{"q / ctrl+c", "quit"},
}

// openHelp shows the key bindings and asks the backend for the help
// article of the current screen.
func (m *Model) openHelp() tea.Cmd {
	m.mode = ModeHelp
	topic := m.helpTopicForRoute()
	if topic == m.helpTopic && m.helpText != "" {
		return nil
	}
	m.helpTopic = topic
	m.helpText = ""
	m.helpLoading = true
	return m.loadHelpCmd(topic)
}

func (m *Model) handleHelpKey(keyMsg tea.KeyMsg) tea.Cmd {
	switch keyMsg.String() {
	case "ctrl+c":
		return tea.Quit
	case "esc", "q", "f1", "enter":
		m.mode = ModeBrowse
	}
	return nil
}

// helpLines renders the overlay body: bindings first, then the remote
// article when it is available.
func (m *Model) helpLines() []styledLine {
	lines := make([]styledLine, 0, len(helpBindings)+8)
	lines = append(lines, styledLine{text: "Key bindings", style: styles.Header})
	for _, row := range table.Format(helpBindings, []table.Alignment{table.AlignRight, table.AlignLeft}) {
		lines = append(lines, styledLine{text: "  " + row, style: styles.HelpText, prefixStyle: styles.HelpKey})
	}
	lines = append(lines, styledLine{})
	switch {
	case m.helpLoading:
		lines = append(lines, styledLine{text: "Loading help…", style: styles.Loading})
	case m.helpText != "":
		lines = append(lines, styledLine{text: "About this screen", style: styles.Header})
		for _, line := range strings.Split(m.helpText, "\n") {
			lines = append(lines, styledLine{text: line, style: styles.HelpText})
		}
	default:
		lines = append(lines, styledLine{text: "No help available for this screen.", style: styles.Info})
	}
	lines = append(lines, styledLine{})
	lines = append(lines, styledLine{text: "esc close", style: styles.Footer})
	return lines
}
