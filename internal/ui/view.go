package ui

import (
	"fmt"
	"strings"

	"github.com/teskalabs/asab-console/internal/api"
	"github.com/teskalabs/asab-console/internal/library"
	"github.com/teskalabs/asab-console/internal/navigation"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

const (
	contentPanelMinWidth = 40  // minimum cols for the content panel; below this no split
	contentPanelFraction = 0.6 // fraction of total width given to the content panel
)

var (
	panelBorderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	panelMetaStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
	raw           bool // text contains ANSI escapes; skip style wrapping
}

// hasSideContent reports whether the current screen renders the tree
// column next to the content panel.
func (m *Model) hasSideContent() bool {
	if !m.route.HasSidebar {
		return false
	}
	if m.activeSidebar() == nil {
		return false
	}
	return m.contentPanelWidth() > 0
}

// contentPanelWidth returns the width in columns for the right-hand
// content panel. Returns 0 when the terminal is too narrow to split.
func (m *Model) contentPanelWidth() int {
	if m.width <= 0 {
		return 0
	}
	w := int(float64(m.width) * contentPanelFraction)
	if w < contentPanelMinWidth {
		return 0
	}
	return w
}

// sidebarColumnWidth returns the width available for the tree column.
func (m *Model) sidebarColumnWidth() int {
	return m.width - m.contentPanelWidth()
}

// View implements tea.Model.
func (m *Model) View() string {
	header := m.headerLine()
	if m.mode == ModeHelp {
		return m.viewHelp(header)
	}
	if m.hasSideContent() {
		return m.viewSideBySide(header)
	}
	return m.viewVertical(header)
}

func (m *Model) viewHelp(header string) string {
	lines := make([]styledLine, 0, 24)
	if header != "" {
		lines = append(lines, styledLine{text: header, style: styles.Header})
		lines = append(lines, styledLine{})
	}
	lines = append(lines, m.helpLines()...)
	lines = limitHeight(lines, m.height, m.width)
	lines = applyWidth(lines, m.width)
	return renderLines(lines)
}

// viewVertical is the single-column layout used for the home and about
// screens, and when the terminal is too narrow for a split.
func (m *Model) viewVertical(header string) string {
	lines := make([]styledLine, 0, 16)
	if header != "" {
		lines = append(lines, styledLine{text: header, style: styles.Header})
	}
	if sb := m.activeSidebar(); sb != nil {
		m.syncViewport(sb)
		lines = append(lines, m.sidebarLines(sb, m.width)...)
	} else {
		lines = append(lines, m.homeLines()...)
	}
	if m.mode == ModeConfirm && m.confirm.prompt != "" {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: m.confirm.prompt + " (y/n)", style: styles.ConfirmPrompt})
	}
	if info := m.currentInfo(); info != "" {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: info, style: styles.Info})
	}
	if m.showFooter {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: footerHint, style: styles.Footer})
	}
	lines = limitHeight(lines, m.height-2, m.width)
	lines = applyWidth(lines, m.width)

	bottomLines := applyWidth(m.bottomBarLines(), m.width)
	lines = append(lines, bottomLines...)
	return renderLines(lines)
}

// viewSideBySide renders the tree on the left and the content panel on
// the right.
func (m *Model) viewSideBySide(header string) string {
	treeW := m.sidebarColumnWidth()
	panelW := m.contentPanelWidth()

	// Bottom bar rows spanning the full width beneath both columns.
	const bottomBarRows = 2

	contentLines := make([]styledLine, 0, 16)
	if header != "" {
		contentLines = append(contentLines, styledLine{text: header, style: styles.Header})
	}
	sb := m.activeSidebar()
	m.syncViewport(sb)
	contentLines = append(contentLines, m.sidebarLines(sb, treeW)...)
	if info := m.currentInfo(); info != "" {
		contentLines = append(contentLines, styledLine{})
		contentLines = append(contentLines, styledLine{text: info, style: styles.Info})
	}
	if m.showFooter {
		contentLines = append(contentLines, styledLine{})
		contentLines = append(contentLines, styledLine{text: footerHint, style: styles.Footer})
	}

	panelH := m.height - bottomBarRows
	if panelH < 1 {
		panelH = 1
	}
	if len(contentLines) > panelH {
		contentLines = contentLines[:panelH]
	}
	for len(contentLines) < panelH {
		contentLines = append(contentLines, styledLine{})
	}

	contentLines = applyWidth(contentLines, treeW)
	leftStr := renderLines(contentLines)

	// Pad/truncate every rendered row to exactly treeW visible columns
	// so JoinHorizontal keeps the panel flush to the right edge.
	leftRows := strings.Split(leftStr, "\n")
	for i, row := range leftRows {
		w := lipgloss.Width(row)
		if w > treeW {
			leftRows[i] = truncate.StringWithTail(row, uint(treeW-1), "…")
		} else if w < treeW {
			leftRows[i] = row + strings.Repeat(" ", treeW-w)
		}
	}
	leftStr = strings.Join(leftRows, "\n")

	rightStr := m.renderContentPanel(panelW, panelH)

	topSection := lipgloss.JoinHorizontal(lipgloss.Top, leftStr, rightStr)

	bottomLines := applyWidth(m.bottomBarLines(), m.width)
	return topSection + "\n" + renderLines(bottomLines)
}

const footerHint = "↑/↓ move  enter open  ctrl+e edit  ctrl+d disable  f1 help  esc back  ctrl+c quit"

func (m *Model) bottomBarLines() []styledLine {
	var statusLine styledLine
	switch {
	case m.errMsg != "":
		statusLine = styledLine{text: fmt.Sprintf("Error: %s", m.errMsg), style: styles.Error}
	case m.backendErr != "":
		statusLine = styledLine{text: fmt.Sprintf("Warning: %s", m.backendErr), style: styles.Error}
	case m.loading && m.pendingOp != "":
		statusLine = styledLine{text: m.pendingOp + "…", style: styles.Loading}
	}
	return []styledLine{
		statusLine,
		{text: m.filterPrompt()},
	}
}

// sidebarLines renders the flattened tree rows inside the viewport.
func (m *Model) sidebarLines(sb *sidebar, width int) []styledLine {
	lines := make([]styledLine, 0, 16)
	if sb.Root() == nil {
		lines = append(lines, styledLine{text: "Loading library…", style: styles.Loading})
		return lines
	}
	start := 0
	displayRows := sb.Items
	if maxRows := m.maxVisibleRows(); maxRows > 0 && len(displayRows) > maxRows {
		start = sb.ViewportOffset
		if start < 0 {
			start = 0
		}
		if start+maxRows > len(displayRows) {
			start = len(displayRows) - maxRows
			if start < 0 {
				start = 0
			}
			sb.ViewportOffset = start
		}
		displayRows = displayRows[start : start+maxRows]
	}
	if len(sb.Items) == 0 {
		msg := "(empty)"
		if sb.Filter != "" {
			msg = fmt.Sprintf("No matches for %q", sb.Filter)
		}
		lines = append(lines, styledLine{text: msg, style: styles.Info})
		return lines
	}
	for i, row := range displayRows {
		idx := start + i
		lines = append(lines, m.buildRowLine(row, idx, sb, width))
	}
	return lines
}

// buildRowLine constructs a single styledLine for a tree row.
func (m *Model) buildRowLine(row sidebarRow, idx int, sb *sidebar, width int) styledLine {
	indicator := "▌"
	lineStyle := styles.File
	indicatorStyle := styles.TreeIndicator
	marker := "  "
	if row.Type == library.Folder {
		lineStyle = styles.Folder
		marker = "▸ "
		if row.Open {
			marker = "▾ "
		}
	} else if row.Key == sb.ActiveKey() {
		marker = "• "
	}
	if idx == sb.Cursor {
		indicatorStyle = styles.SelectedIndicator
		lineStyle = styles.SelectedRow
	}
	indent := strings.Repeat("  ", row.Depth)
	fullText := indicator + " " + indent + marker + row.Name
	if width > 0 {
		if pad := width - lipgloss.Width(fullText); pad > 0 {
			fullText += strings.Repeat(" ", pad)
		}
	}
	return styledLine{
		text:          fullText,
		style:         lineStyle,
		prefixStyle:   indicatorStyle,
		highlightFrom: 1, // just the ▌ character
	}
}

// homeLines renders the navigation menu shown at the root screen.
func (m *Model) homeLines() []styledLine {
	if m.route.Name == "About" {
		return aboutLines()
	}
	items := m.visibleNavItems()
	lines := make([]styledLine, 0, len(items)+2)
	if len(items) == 0 {
		lines = append(lines, styledLine{text: "(no screens registered)", style: styles.Info})
		return lines
	}
	if m.navCursor >= len(items) {
		m.navCursor = len(items) - 1
	}
	for i, item := range items {
		indicator := "▌"
		lineStyle := styles.File
		indicatorStyle := styles.TreeIndicator
		if i == m.navCursor {
			indicatorStyle = styles.SelectedIndicator
			lineStyle = styles.SelectedRow
		}
		label := item.Name
		if item.Icon != "" {
			label = item.Icon + " " + label
		}
		lines = append(lines, styledLine{
			text:          indicator + " " + label,
			style:         lineStyle,
			prefixStyle:   indicatorStyle,
			highlightFrom: 1,
		})
	}
	return lines
}

func aboutLines() []styledLine {
	return []styledLine{
		{text: "ASAB admin console", style: styles.Header},
		{},
		{text: "A terminal front-end for the ASAB library service.", style: styles.Info},
		{text: "Items are fetched from the configured API gateway and", style: styles.Info},
		{text: "edited in place; the listing refreshes in the background.", style: styles.Info},
	}
}

// renderContentPanel builds the bordered item panel with exactly
// height rows and totalWidth columns.
func (m *Model) renderContentPanel(totalWidth, height int) string {
	const (
		tlc = "╭"
		trc = "╮"
		blc = "╰"
		brc = "╯"
		hz  = "─"
		vt  = "│"
	)

	innerW := totalWidth - 2
	innerH := height - 2
	if innerW < 1 {
		innerW = 1
	}
	if innerH < 1 {
		innerH = 1
	}

	title, meta, contentLines, bodyStyle := m.contentPanelBody(innerW, innerH)

	titleSeg := " " + title + " "
	dirtySeg := ""
	if m.buffer.Path() != "" && m.buffer.Dirty() {
		dirtySeg = "* "
	}
	metaSeg := meta
	dashes := totalWidth - 4 - len([]rune(titleSeg)) - len([]rune(dirtySeg)) - len([]rune(metaSeg))
	if dashes < 0 {
		metaSeg = ""
		dashes = totalWidth - 4 - len([]rune(titleSeg))
	}
	if dashes < 0 {
		titleSeg = " … "
		dashes = totalWidth - 4 - len([]rune(titleSeg))
	}
	if dashes < 0 {
		dashes = 0
	}
	if dirtySeg != "" && styles.EditorDirty != nil {
		dirtySeg = styles.EditorDirty.Render(dirtySeg)
	}
	topLine := panelBorderStyle.Render(tlc+hz) +
		styles.EditorTitle.Render(titleSeg) +
		dirtySeg +
		panelBorderStyle.Render(strings.Repeat(hz, dashes)) +
		panelMetaStyle.Render(metaSeg) +
		panelBorderStyle.Render(hz+trc)
	bottomLine := panelBorderStyle.Render(blc + strings.Repeat(hz, innerW) + brc)

	rows := make([]string, 0, height)
	rows = append(rows, topLine)
	for i := 0; i < innerH; i++ {
		var content string
		var raw bool
		if i < len(contentLines) {
			content = contentLines[i].text
			raw = contentLines[i].raw
		}
		w := lipgloss.Width(content)
		if w > innerW {
			content = truncate.StringWithTail(content, uint(innerW-1), "…")
			w = lipgloss.Width(content)
		}
		if w < innerW {
			content = content + strings.Repeat(" ", innerW-w)
		}
		var styledContent string
		if raw {
			styledContent = content
		} else if bodyStyle != nil {
			styledContent = bodyStyle.Render(content)
		} else {
			styledContent = content
		}
		rows = append(rows, panelBorderStyle.Render(vt)+styledContent+panelBorderStyle.Render(vt))
	}
	rows = append(rows, bottomLine)
	return strings.Join(rows, "\n")
}

// contentPanelBody picks the panel content for the current mode.
func (m *Model) contentPanelBody(innerW, innerH int) (string, string, []styledLine, *lipgloss.Style) {
	path := m.buffer.Path()
	if path == "" {
		return "Library", "", []styledLine{
			{text: "Select an item to view its content."},
		}, styles.Info
	}

	title := path
	meta := ""
	if lang := m.buffer.Language(); lang != "" {
		meta = " " + lang + " "
	}
	if m.buffer.Disabled() == api.ItemDisabled {
		meta = " disabled " + meta
	}

	if m.buffer.Loading() {
		return title, meta, []styledLine{{text: "Loading…"}}, styles.Loading
	}

	if m.mode == ModeEdit {
		m.textarea.SetWidth(innerW)
		m.textarea.SetHeight(innerH)
		view := m.textarea.View()
		lines := make([]styledLine, 0, innerH)
		for _, line := range strings.Split(view, "\n") {
			lines = append(lines, styledLine{text: line, raw: true})
		}
		return title, meta, lines, nil
	}

	lines := make([]styledLine, 0, 16)
	if m.mode == ModeConfirm && m.confirm.prompt != "" {
		prompt := m.confirm.prompt + " (y/n)"
		if styles.ConfirmPrompt != nil {
			prompt = styles.ConfirmPrompt.Render(prompt)
		}
		lines = append(lines, styledLine{text: prompt, raw: true})
		lines = append(lines, styledLine{})
	}
	for _, line := range strings.Split(m.buffer.Working(), "\n") {
		lines = append(lines, styledLine{text: line})
	}
	bodyStyle := styles.EditorBody
	if m.buffer.Disabled() == api.ItemDisabled {
		bodyStyle = styles.DisabledItem
	}
	return title, meta, lines, bodyStyle
}

// headerLine renders the breadcrumb chain, falling back to the route
// name on screens without breadcrumbs.
func (m *Model) headerLine() string {
	if !m.route.HasHeader {
		return ""
	}
	if m.route.HasBreadcrumb {
		crumbs := navigation.ResolveCrumbs(m.routes.Routes(), m.currentPath, m.params)
		if len(crumbs) > 0 {
			segments := make([]string, 0, len(crumbs))
			for _, crumb := range crumbs {
				text := crumb.Name
				if crumb.Active && styles.BreadcrumbActive != nil {
					text = styles.BreadcrumbActive.Render(text)
				} else if styles.Breadcrumb != nil {
					text = styles.Breadcrumb.Render(text)
				}
				segments = append(segments, text)
			}
			return strings.Join(segments, breadcrumbSeparator)
		}
	}
	return strings.TrimSpace(m.route.Name)
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	if sb := m.activeSidebar(); sb != nil {
		m.syncViewport(sb)
	}
	return nil
}

func (m *Model) maxVisibleRows() int {
	if m.height <= 0 {
		return -1
	}
	used := 2 // bottom bar: status + filter prompt
	if m.headerLine() != "" {
		used++
	}
	if info := m.currentInfo(); info != "" {
		used += 2
	}
	if m.showFooter {
		used += 2
	}
	remain := m.height - used
	if remain < 1 {
		return 1
	}
	return remain
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			w := lipgloss.Width(text)
			if w > width {
				text = truncate.StringWithTail(text, uint(width-1), "…")
			}
		} else {
			text = truncateText(text, width)
		}
		result[i] = styledLine{
			text:          text,
			style:         line.style,
			prefixStyle:   line.prefixStyle,
			highlightFrom: line.highlightFrom,
			raw:           line.raw,
		}
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			// Text already contains ANSI escapes; pass through as-is.
			out[i] = text
			continue
		}
		runes := []rune(text)
		if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
			head := string(runes[:line.highlightFrom])
			tail := string(runes[line.highlightFrom:])
			if line.prefixStyle != nil {
				head = line.prefixStyle.Render(head)
			}
			if line.style != nil {
				tail = line.style.Render(tail)
			}
			text = head + tail
		} else if line.style != nil {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width == 1 {
		return string(runes[:1])
	}
	return string(runes[:width-1]) + "…"
}
