package ui

import (
	"strings"
	"testing"

	"github.com/teskalabs/asab-console/internal/api"
	"github.com/teskalabs/asab-console/internal/library"
	"github.com/teskalabs/asab-console/internal/navigation"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func TestViewHomeListsNavItems(t *testing.T) {
	m := newTestModel(t, nil)
	view := m.View()
	for _, want := range []string{"Home", "Library", "Config", "About"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in home view:\n%s", want, view)
		}
	}
}

func TestViewLibraryShowsTreeAndPanel(t *testing.T) {
	m := newTestModel(t, nil)
	m.applyBackendEvent(listing(testRecords()))
	m.navigate(libraryPrefix)

	view := m.View()
	if !strings.Contains(view, "Templates") {
		t.Fatalf("expected tree rows in view:\n%s", view)
	}
	if !strings.Contains(view, "Select an item") {
		t.Fatalf("expected panel hint in view:\n%s", view)
	}
}

func TestViewShowsLoadedItemContent(t *testing.T) {
	svc := newFakeService()
	svc.items["Templates/readme.md"] = api.Item{Content: "item body text", Disabled: api.ItemEnabled}
	m := newTestModel(t, svc)
	m.applyBackendEvent(listing(testRecords()))
	cmd := m.navigate(libraryPrefix + "/Templates/readme.md")
	m.handleItemLoadedMsg(cmd())

	view := m.View()
	if !strings.Contains(view, "item body text") {
		t.Fatalf("expected item content in view:\n%s", view)
	}
	if !strings.Contains(view, "readme.md") {
		t.Fatalf("expected item path in panel title:\n%s", view)
	}
}

func TestViewMarksDirtyBuffer(t *testing.T) {
	svc := newFakeService()
	svc.items["Templates/readme.md"] = api.Item{Content: "one"}
	m := newTestModel(t, svc)
	m.applyBackendEvent(listing(testRecords()))
	cmd := m.navigate(libraryPrefix + "/Templates/readme.md")
	m.handleItemLoadedMsg(cmd())

	m.beginEdit()
	m.buffer.Edit("two")
	m.textarea.SetValue("two")
	view := m.View()
	if !strings.Contains(view, "readme.md *") && !strings.Contains(view, "readme.md  *") {
		t.Fatalf("expected dirty marker in panel title:\n%s", view)
	}
}

func TestViewBreadcrumbChain(t *testing.T) {
	svc := newFakeService()
	svc.items["Templates/readme.md"] = api.Item{Content: "x"}
	m := newTestModel(t, svc)
	m.applyBackendEvent(listing(testRecords()))
	cmd := m.navigate(libraryPrefix + "/Templates/readme.md")
	m.handleItemLoadedMsg(cmd())

	header := m.headerLine()
	if !strings.Contains(header, "Library") || !strings.Contains(header, "Item") {
		t.Fatalf("expected Library › Item chain, got %q", header)
	}
}

func TestViewHelpListsBindings(t *testing.T) {
	m := newTestModel(t, nil)
	m.mode = ModeHelp
	view := m.View()
	for _, want := range []string{"ctrl+s", "ctrl+e", "f1"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in help view:\n%s", want, view)
		}
	}
}

func TestViewShowsBackendWarning(t *testing.T) {
	m := newTestModel(t, nil)
	m.applyBackendEvent(listing(testRecords()))
	m.navigate(libraryPrefix)
	m.backendErr = "listing failed"
	view := m.View()
	if !strings.Contains(view, "listing failed") {
		t.Fatalf("expected warning in view:\n%s", view)
	}
}

func TestWindowSizeUpdatesUnfixedDimensions(t *testing.T) {
	m := NewModel(newFakeService(), nil, testRegistry(t), testRoutes(), navigation.Policy{}, 0, 0, false, false)
	m.handleWindowSizeMsg(tea.WindowSizeMsg{Width: 120, Height: 40})
	if m.width != 120 || m.height != 40 {
		t.Fatalf("expected 120x40, got %dx%d", m.width, m.height)
	}
}

func TestWindowSizeIgnoredWhenFixed(t *testing.T) {
	m := newTestModel(t, nil)
	m.handleWindowSizeMsg(tea.WindowSizeMsg{Width: 10, Height: 5})
	if m.width != 80 || m.height != 24 {
		t.Fatalf("expected fixed 80x24, got %dx%d", m.width, m.height)
	}
}

func TestNarrowTerminalFallsBackToSingleColumn(t *testing.T) {
	m := NewModel(newFakeService(), nil, testRegistry(t), testRoutes(), navigation.Policy{}, 50, 20, false, false)
	m.applyBackendEvent(listing(testRecords()))
	m.navigate(libraryPrefix)
	if m.hasSideContent() {
		t.Fatalf("expected single column below the split threshold")
	}
	view := m.View()
	if !strings.Contains(view, "Templates") {
		t.Fatalf("expected tree rows in narrow view:\n%s", view)
	}
}

func TestRowPaddingCountsWideGlyphs(t *testing.T) {
	m := newTestModel(t, nil)
	m.applyBackendEvent(listing([]library.Record{
		{Path: "/Templates/设定.yaml", Type: "file"},
		{Path: "/Templates/notes.md", Type: "file"},
	}))
	m.navigate(libraryPrefix)

	sb := m.activeSidebar()
	const width = 30
	var widths []int
	for i, row := range sb.Items {
		line := m.buildRowLine(row, i, sb, width)
		widths = append(widths, lipgloss.Width(line.text))
	}
	for i, w := range widths {
		if w != widths[0] {
			t.Fatalf("row %d padded to %d cells, row 0 to %d", i, w, widths[0])
		}
	}
}

func TestTruncateText(t *testing.T) {
	if got := truncateText("hello", 10); got != "hello" {
		t.Fatalf("expected unchanged text, got %q", got)
	}
	if got := truncateText("hello", 4); got != "hel…" {
		t.Fatalf("expected ellipsis truncation, got %q", got)
	}
	if got := truncateText("hello", 1); got != "h" {
		t.Fatalf("expected single rune, got %q", got)
	}
}

func TestLimitHeight(t *testing.T) {
	lines := []styledLine{{text: "a"}, {text: "b"}, {text: "c"}}
	trimmed := limitHeight(lines, 2, 10)
	if len(trimmed) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(trimmed))
	}
	if trimmed[1].text != "…" {
		t.Fatalf("expected ellipsis line, got %q", trimmed[1].text)
	}
	untouched := limitHeight(lines, 5, 10)
	if len(untouched) != 3 {
		t.Fatalf("expected all lines kept, got %d", len(untouched))
	}
}
