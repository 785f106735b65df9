package ui

import (
	"context"
	"errors"
	"testing"

	"github.com/teskalabs/asab-console/internal/api"
	"github.com/teskalabs/asab-console/internal/backend"
	"github.com/teskalabs/asab-console/internal/library"
	"github.com/teskalabs/asab-console/internal/navigation"
)

// fakeService backs the model with an in-memory item store.
type fakeService struct {
	items    map[string]api.Item
	saved    map[string]string
	disabled map[string]bool
	help     map[string]string
	itemErr  error
	saveErr  error
}

func newFakeService() *fakeService {
	return &fakeService{
		items:    map[string]api.Item{},
		saved:    map[string]string{},
		disabled: map[string]bool{},
		help:     map[string]string{},
	}
}

func (f *fakeService) Item(ctx context.Context, path string) (api.Item, error) {
	if f.itemErr != nil {
		return api.Item{}, f.itemErr
	}
	item, ok := f.items[path]
	if !ok {
		return api.Item{}, errors.New("no such item: " + path)
	}
	return item, nil
}

func (f *fakeService) SaveItem(ctx context.Context, path, content string) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved[path] = content
	item := f.items[path]
	item.Content = content
	f.items[path] = item
	return nil
}

func (f *fakeService) SetItemDisabled(ctx context.Context, path string, disabled bool) error {
	f.disabled[path] = disabled
	item := f.items[path]
	if disabled {
		item.Disabled = api.ItemDisabled
	} else {
		item.Disabled = api.ItemEnabled
	}
	f.items[path] = item
	return nil
}

func (f *fakeService) Help(ctx context.Context, topic string) (string, error) {
	text, ok := f.help[topic]
	if !ok {
		return "", errors.New("no help for " + topic)
	}
	return text, nil
}

func testRoutes() *navigation.Table {
	t := navigation.NewTable()
	t.AddRoute(navigation.Route{Path: "/", Exact: true, Name: "Home", HasHeader: true, HasFooter: true})
	t.AddRoute(navigation.Route{Path: "/library", Exact: true, Name: "Library", Authn: true, HasHeader: true, HasSidebar: true, HasBreadcrumb: true})
	t.AddRoute(navigation.Route{Path: "/library/:path", Name: "Item", Authn: true, HasHeader: true, HasSidebar: true, HasBreadcrumb: true})
	t.AddRoute(navigation.Route{Path: "/config", Exact: true, Name: "Config", Authn: true, HasHeader: true, HasSidebar: true, HasBreadcrumb: true})
	t.AddRoute(navigation.Route{Path: "/config/:path", Name: "Item", Authn: true, HasHeader: true, HasSidebar: true, HasBreadcrumb: true})
	t.AddRoute(navigation.Route{Path: "/about", Exact: true, Name: "About", HasHeader: true})
	return t
}

func testRegistry(t *testing.T) *navigation.Registry {
	t.Helper()
	r := navigation.NewRegistry()
	for _, item := range []navigation.Item{
		{Name: "Library", URL: "/library", Icon: "📚"},
		{Name: "Config", URL: "/config", Icon: "⚙"},
		{Name: "About", URL: "/about"},
	} {
		if err := r.AddItem(item); err != nil {
			t.Fatalf("AddItem(%q): %v", item.Name, err)
		}
	}
	return r
}

func newTestModel(t *testing.T, svc ItemService) *Model {
	t.Helper()
	if svc == nil {
		svc = newFakeService()
	}
	return NewModel(svc, nil, testRegistry(t), testRoutes(), navigation.Policy{}, 80, 24, false, false)
}

func listing(records []library.Record) backend.Event {
	return backend.Event{Records: records}
}

func testRecords() []library.Record {
	return []library.Record{
		{Path: "/Config/app.yaml", Type: "file"},
		{Path: "/Config/sub/db.yaml", Type: "file"},
		{Path: "/Templates/Email/welcome.html", Type: "file"},
		{Path: "/Templates/readme.md", Type: "file"},
	}
}

func TestNewModelStartsAtHome(t *testing.T) {
	m := newTestModel(t, nil)
	if m.currentPath != "/" {
		t.Fatalf("expected current path /, got %q", m.currentPath)
	}
	if m.route.Name != "Home" {
		t.Fatalf("expected Home route, got %q", m.route.Name)
	}
	if m.activeSidebar() != nil {
		t.Fatalf("expected no sidebar at home")
	}
}

func TestNavigateUnknownPathKeepsLocation(t *testing.T) {
	m := newTestModel(t, nil)
	m.navigate("/nowhere")
	if m.currentPath != "/" {
		t.Fatalf("expected to stay at /, got %q", m.currentPath)
	}
	if m.errMsg == "" {
		t.Fatalf("expected error message for unknown path")
	}
}

func TestNavigateLibraryActivatesSidebar(t *testing.T) {
	m := newTestModel(t, nil)
	m.navigate(libraryPrefix)
	if sb := m.activeSidebar(); sb != m.library {
		t.Fatalf("expected library sidebar, got %v", sb)
	}
}

func TestNavigateConfigUsesConfigSubtree(t *testing.T) {
	m := newTestModel(t, nil)
	m.applyBackendEvent(listing(testRecords()))
	m.navigate(configPrefix)
	sb := m.activeSidebar()
	if sb != m.config {
		t.Fatalf("expected config sidebar")
	}
	for _, row := range sb.Full {
		if row.Key == "Templates" {
			t.Fatalf("config sidebar must not list Templates")
		}
	}
}

func TestNavigateItemPathOpensBuffer(t *testing.T) {
	svc := newFakeService()
	svc.items["Templates/readme.md"] = api.Item{Content: "hello", Disabled: api.ItemEnabled}
	m := newTestModel(t, svc)
	m.applyBackendEvent(listing(testRecords()))

	cmd := m.navigate(libraryPrefix + "/Templates/readme.md")
	if cmd == nil {
		t.Fatalf("expected a load command")
	}
	if m.buffer.Path() != "Templates/readme.md" {
		t.Fatalf("expected buffer opened for item, got %q", m.buffer.Path())
	}
	if !m.buffer.Loading() {
		t.Fatalf("expected buffer to be loading until fetch lands")
	}

	msg := cmd()
	if handlerCmd := m.handleItemLoadedMsg(msg); handlerCmd != nil {
		t.Fatalf("expected no follow-up command")
	}
	if m.buffer.Loading() {
		t.Fatalf("expected fetch to finish")
	}
	if got := m.buffer.Working(); got != "hello" {
		t.Fatalf("expected fetched content, got %q", got)
	}
}

func TestMalformedListingKeepsPreviousTree(t *testing.T) {
	m := newTestModel(t, nil)
	m.applyBackendEvent(listing(testRecords()))
	before := len(m.library.Full)
	if before == 0 {
		t.Fatalf("expected tree rows from the first listing")
	}

	m.applyBackendEvent(listing([]library.Record{{Path: "", Type: "file"}}))
	if m.backendErr == "" {
		t.Fatalf("expected a backend warning")
	}
	if got := len(m.library.Full); got != before {
		t.Fatalf("expected previous tree kept, rows %d != %d", got, before)
	}
}

func TestBackendRecoveryClearsWarning(t *testing.T) {
	m := newTestModel(t, nil)
	m.applyBackendEvent(listing([]library.Record{{Path: "", Type: "file"}}))
	if m.backendErr == "" {
		t.Fatalf("expected a backend warning")
	}
	m.applyBackendEvent(listing(testRecords()))
	if m.backendErr != "" {
		t.Fatalf("expected warning cleared, got %q", m.backendErr)
	}
}

func TestVisibleNavItemsHonoursPolicy(t *testing.T) {
	m := newTestModel(t, nil)
	m.policy = navigation.Policy{Hidden: map[string]bool{"About": true}}
	for _, item := range m.visibleNavItems() {
		if item.Name == "About" {
			t.Fatalf("expected About hidden")
		}
	}
}

func TestHelpTopicForRoute(t *testing.T) {
	m := newTestModel(t, nil)
	if got := m.helpTopicForRoute(); got != "Home" {
		t.Fatalf("expected Home topic, got %q", got)
	}
	m.navigate(libraryPrefix)
	if got := m.helpTopicForRoute(); got != "Library" {
		t.Fatalf("expected Library topic, got %q", got)
	}
}

func TestStartPathOverridesHome(t *testing.T) {
	m := newTestModel(t, nil)
	m.SetStartPath(configPrefix)
	m.Init()
	if m.currentPath != configPrefix {
		t.Fatalf("expected start at /config, got %q", m.currentPath)
	}
}
