package ui

import (
	"context"
	"reflect"
	"strings"
	"time"

	"github.com/teskalabs/asab-console/internal/api"
	"github.com/teskalabs/asab-console/internal/backend"
	"github.com/teskalabs/asab-console/internal/editor"
	"github.com/teskalabs/asab-console/internal/logging/events"
	"github.com/teskalabs/asab-console/internal/navigation"
	"github.com/teskalabs/asab-console/internal/theme"
	"github.com/teskalabs/asab-console/internal/ui/command"
	uistate "github.com/teskalabs/asab-console/internal/ui/state"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
)

type (
	sidebar    = uistate.Sidebar
	sidebarRow = uistate.Row
)

type Mode int

const (
	ModeBrowse Mode = iota
	ModeEdit
	ModeConfirm
	ModeHelp
)

const (
	breadcrumbSeparator = " › "
	libraryPrefix       = "/library"
	configPrefix        = "/config"
	configSubtree       = "Config"

	// Small trees are fully expanded on first sync; anything larger
	// starts collapsed.
	openAllThreshold = 24
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// ItemService is the slice of the library API the model consumes.
// Satisfied by api.Client.
type ItemService interface {
	Item(ctx context.Context, path string) (api.Item, error)
	SaveItem(ctx context.Context, path, content string) error
	SetItemDisabled(ctx context.Context, path string, disabled bool) error
	Help(ctx context.Context, topic string) (string, error)
}

// confirmState is the pending y/n modal, if any. decline is the mode
// to fall back to when the user says no.
type confirmState struct {
	prompt  string
	accept  func() tea.Cmd
	decline Mode
}

// Model implements the Bubble Tea model for the admin console.
type Model struct {
	svc      ItemService
	backend  *backend.Watcher
	registry *navigation.Registry
	routes   *navigation.Table
	policy   navigation.Policy
	bus      *command.Bus

	library *sidebar
	config  *sidebar
	buffer  *editor.Buffer

	mode        Mode
	startPath   string
	currentPath string
	route       navigation.Route
	params      map[string]string
	navCursor   int

	loading    bool
	pendingOp  string
	errMsg     string
	infoMsg    string
	infoExpire time.Time

	backendErr string

	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	verbose     bool

	textarea          textarea.Model
	filterCursor      cursor.Model
	filterCursorDirty bool

	confirm confirmState

	helpText    string
	helpTopic   string
	helpLoading bool

	handlers map[reflect.Type]msgHandler
}

// NewModel initialises the UI state at the home screen.
func NewModel(svc ItemService, watcher *backend.Watcher, registry *navigation.Registry, routes *navigation.Table, policy navigation.Policy, width, height int, showFooter, verbose bool) *Model {
	m := &Model{
		svc:        svc,
		backend:    watcher,
		registry:   registry,
		routes:     routes,
		policy:     policy,
		bus:        command.New(),
		library:    uistate.NewSidebar(libraryPrefix),
		config:     uistate.NewSidebar(configPrefix),
		buffer:     editor.New(),
		mode:       ModeBrowse,
		showFooter: showFooter,
		verbose:    verbose,
	}
	if width > 0 {
		m.width = width
		m.fixedWidth = true
	}
	if height > 0 {
		m.height = height
		m.fixedHeight = true
	}

	ta := textarea.New()
	ta.ShowLineNumbers = true
	m.textarea = ta

	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		c.TextStyle = styles.Filter.Copy()
	}
	c.SetChar(" ")
	m.filterCursor = c

	m.navigate("/")
	m.registerHandlers()
	return m
}

// SetStartPath overrides the screen shown when the program starts.
// Must be called before Init.
func (m *Model) SetStartPath(path string) {
	m.startPath = path
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if m.startPath != "" && m.startPath != m.currentPath {
		if cmd := m.navigate(m.startPath); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if m.backend != nil {
		cmds = append(cmds, waitForBackendEvent(m.backend))
	}
	if cmd := m.filterCursor.Focus(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if cmd := m.updateFilterCursorModel(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if m.mode == ModeEdit {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			if cmd := m.handleEditKey(keyMsg); cmd != nil {
				cmds = append(cmds, cmd)
			}
			return m, m.finishUpdate(cmds)
		}
		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, m.finishUpdate(cmds)
	}

	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(backendEventMsg{}):   m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):    m.handleBackendDoneMsg,
		reflect.TypeOf(itemLoadedMsg{}):     m.handleItemLoadedMsg,
		reflect.TypeOf(itemSavedMsg{}):      m.handleItemSavedMsg,
		reflect.TypeOf(itemDisabledMsg{}):   m.handleItemDisabledMsg,
		reflect.TypeOf(helpLoadedMsg{}):     m.handleHelpLoadedMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if m.filterCursorDirty {
		m.filterCursorDirty = false
		m.filterCursor.Blink = false
		if cmd := m.filterCursor.BlinkCmd(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// navigate resolves the path against the route table and aligns the
// sidebar and edit buffer with it. An unknown path is ignored.
func (m *Model) navigate(path string) tea.Cmd {
	route, params, ok := m.routes.Match(path)
	if !ok {
		m.errMsg = "No screen registered for " + path
		return nil
	}
	events.App.Navigate(path)
	m.currentPath = path
	m.route = route
	m.params = params

	if sb := m.activeSidebar(); sb != nil {
		sb.SyncFromRoute(path, openAllThreshold)
	}

	if itemPath, ok := params["path"]; ok && itemPath != "" {
		gen := m.buffer.Open(itemPath)
		events.Editor.Open(itemPath, gen)
		return m.loadItemCmd(gen, itemPath)
	}
	return nil
}

// activeSidebar picks the tree for the current screen: the full
// library under /library, the Config subtree under /config, none
// elsewhere.
func (m *Model) activeSidebar() *sidebar {
	switch {
	case m.currentPath == libraryPrefix || strings.HasPrefix(m.currentPath, libraryPrefix+"/"):
		return m.library
	case m.currentPath == configPrefix || strings.HasPrefix(m.currentPath, configPrefix+"/"):
		return m.config
	default:
		return nil
	}
}

// visibleNavItems derives the home menu from the registry and policy.
func (m *Model) visibleNavItems() []navigation.Item {
	if m.registry == nil {
		return nil
	}
	return m.registry.VisibleItems(m.policy)
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(5 * time.Second)
}

func (m *Model) clearInfo() {
	if m.infoMsg == "" {
		return
	}
	if !m.infoExpire.IsZero() && time.Now().Before(m.infoExpire) {
		return
	}
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}
